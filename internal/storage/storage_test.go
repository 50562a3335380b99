package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	s, err := New(ctx, filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndFetchNotes(t *testing.T) {
	s := testStorage(t)

	require.NoError(t, s.AppendNote("guild-1", Note{
		ID: "n1", AuthorID: "user-1", AuthorName: "alice", Text: "first", Datetime: time.Now(),
	}))
	require.NoError(t, s.AppendNote("guild-1", Note{
		ID: "n2", AuthorID: "user-1", AuthorName: "alice", Text: "second", Datetime: time.Now(),
	}))

	notes, err := s.FetchNotes("guild-1", "user-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first", notes[0].Text)
	assert.Equal(t, "second", notes[1].Text)

	notes, err = s.FetchNotes("guild-1", "user-2")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNotesAreCapped(t *testing.T) {
	s := testStorage(t)

	for i := 0; i < noteHistoryLimit+5; i++ {
		require.NoError(t, s.AppendNote("guild-1", Note{
			ID: fmt.Sprintf("n%d", i), AuthorID: "user-1", Text: fmt.Sprintf("note %d", i),
		}))
	}

	notes, err := s.FetchNotes("guild-1", "user-1")
	require.NoError(t, err)
	require.Len(t, notes, noteHistoryLimit)
	assert.Equal(t, "note 5", notes[0].Text)
	assert.Equal(t, fmt.Sprintf("note %d", noteHistoryLimit+4), notes[len(notes)-1].Text)
}

func TestNotesAreScopedPerGuild(t *testing.T) {
	s := testStorage(t)

	require.NoError(t, s.AppendNote("guild-1", Note{ID: "n1", AuthorID: "user-1", Text: "here"}))

	notes, err := s.FetchNotes("guild-2", "user-1")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestAwakeChannelSnapshotRoundTrip(t *testing.T) {
	s := testStorage(t)

	channels, err := s.GetAwakeChannels()
	require.NoError(t, err)
	assert.Nil(t, channels)

	require.NoError(t, s.SetAwakeChannels([]string{"chan-2", "chan-1"}))

	channels, err = s.GetAwakeChannels()
	require.NoError(t, err)
	assert.Equal(t, []string{"chan-1", "chan-2"}, channels)

	require.NoError(t, s.SetAwakeChannels(nil))
	channels, err = s.GetAwakeChannels()
	require.NoError(t, err)
	assert.Empty(t, channels)
}
