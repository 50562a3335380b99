package brain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecentWindowBounded(t *testing.T) {
	s := newSession("chan-1", 5, 5)
	for i := 0; i < 8; i++ {
		s.RecordMessage("alice", fmt.Sprintf("message %d", i), time.Now())
	}

	recent := s.Recent()
	require.Len(t, recent, 5)
	assert.Equal(t, "message 3", recent[0].Text)
	assert.Equal(t, "message 7", recent[4].Text)
}

func TestSessionKeywordsAccumulate(t *testing.T) {
	s := newSession("chan-1", 5, 5)
	s.RecordMessage("alice", "I love RuneScape", time.Now())
	s.RecordMessage("bob", "check the Discord invite", time.Now())

	assert.True(t, s.HasKeyword("runescape"))
	assert.True(t, s.HasKeyword("discord"))
	assert.False(t, s.HasKeyword("osrs"))

	// Keywords survive the message window rolling over.
	for i := 0; i < 10; i++ {
		s.RecordMessage("carol", fmt.Sprintf("filler %d", i), time.Now())
	}
	assert.True(t, s.HasKeyword("runescape"))

	s.ResetKeywords()
	assert.False(t, s.HasKeyword("runescape"))
	assert.Equal(t, 0, s.KeywordCount())
}

func TestSessionThoughtLogBounded(t *testing.T) {
	s := newSession("chan-1", 5, 5)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		s.PushThought(ThoughtEntry{
			ID:     fmt.Sprintf("id-%d", i),
			At:     at.Add(time.Duration(i) * time.Second),
			Author: "alice",
			Label:  "quest",
			Query:  fmt.Sprintf("query %d", i),
			Action: "general conversation",
		})
	}
	require.Equal(t, 5, s.ThoughtCount())

	rendered := s.RenderThoughts()
	assert.NotContains(t, rendered, "query 0")
	assert.NotContains(t, rendered, "query 1")
	assert.Contains(t, rendered, "query 2")
	assert.Contains(t, rendered, "query 6")
}

func TestSessionRenderThoughtsFormat(t *testing.T) {
	s := newSession("chan-1", 5, 5)
	at := time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC)
	s.PushThought(ThoughtEntry{At: at, Author: "alice", Label: "skill", Query: "how to train slayer", Action: "researched online"})
	s.PushThought(ThoughtEntry{At: at.Add(time.Minute), Author: "bob", Label: "economy", Query: "ge prices", Action: "general conversation"})

	rendered := s.RenderThoughts()
	assert.Equal(t,
		`Thought[15:04:05]: Author=alice, Context=skill, Query="how to train slayer" Action: researched online`+
			` | `+
			`Thought[15:05:05]: Author=bob, Context=economy, Query="ge prices" Action: general conversation`,
		rendered)
}

func TestStoreWakeSleepLifecycle(t *testing.T) {
	st := NewStore(5, 5)

	assert.False(t, st.IsAwake("chan-1"))
	st.Wake("chan-1")
	st.Wake("chan-2")
	assert.True(t, st.IsAwake("chan-1"))
	assert.Equal(t, []string{"chan-1", "chan-2"}, st.AwakeChannels())

	st.Sleep("chan-1")
	assert.False(t, st.IsAwake("chan-1"))
	assert.Equal(t, []string{"chan-2"}, st.AwakeChannels())
}

func TestStoreGetOrCreateReturnsSameSession(t *testing.T) {
	st := NewStore(5, 5)
	a := st.GetOrCreate("chan-1")
	b := st.GetOrCreate("chan-1")
	assert.Same(t, a, b)
}

func TestStoreRestoreAwake(t *testing.T) {
	st := NewStore(5, 5)
	st.RestoreAwake([]string{"chan-1", "chan-3"})
	assert.True(t, st.IsAwake("chan-1"))
	assert.False(t, st.IsAwake("chan-2"))
	assert.True(t, st.IsAwake("chan-3"))
}

func TestStorePruneKeywords(t *testing.T) {
	st := NewStore(5, 5)
	s := st.GetOrCreate("chan-1")
	s.RecordMessage("alice", "one two three four five six", time.Now())
	st.GetOrCreate("chan-2").RecordMessage("bob", "tiny", time.Now())

	pruned := st.PruneKeywords(3)
	assert.Equal(t, 1, pruned)
	assert.Equal(t, 0, s.KeywordCount())
	assert.Equal(t, 0, st.PruneKeywords(0))
}
