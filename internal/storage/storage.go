// /internal/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/keshon/datastore"
)

const noteHistoryLimit int = 20

// awakeKey is the datastore key for the awake-channel snapshot. It lives
// outside the per-guild records because channel IDs are globally unique.
const awakeKey = "awake_channels"

type Storage struct {
	ds *datastore.DataStore
}

// Note is one saved user note, newest last.
type Note struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	Datetime   time.Time `json:"datetime"`
}

type Record struct {
	Notes map[string][]Note `json:"notes"` // key = userID
}

// New opens the backing file. ctx bounds the datastore's background save
// goroutine; cancel it before the process exits.
func New(ctx context.Context, filePath string) (*Storage, error) {
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Helper function to get or create a Record for a guild
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	var record Record
	exists, err := s.ds.Get(guildID, &record)
	if err != nil {
		return nil, fmt.Errorf("error reading guild record: %w", err)
	}
	if !exists {
		record = Record{Notes: map[string][]Note{}}
		if err := s.ds.Set(guildID, &record); err != nil {
			return nil, fmt.Errorf("error creating guild record: %w", err)
		}
	}
	if record.Notes == nil {
		record.Notes = map[string][]Note{}
	}
	return &record, nil
}

// AppendNote stores a note for a user, keeping only the most recent
// noteHistoryLimit entries.
func (s *Storage) AppendNote(guildID string, note Note) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	notes := append(record.Notes[note.AuthorID], note)
	if len(notes) > noteHistoryLimit {
		notes = notes[len(notes)-noteHistoryLimit:]
	}
	record.Notes[note.AuthorID] = notes
	return s.ds.Set(guildID, record)
}

// FetchNotes returns the user's notes, oldest first.
func (s *Storage) FetchNotes(guildID, userID string) ([]Note, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.Notes[userID], nil
}

// SetAwakeChannels replaces the persisted awake-channel snapshot.
func (s *Storage) SetAwakeChannels(channelIDs []string) error {
	sorted := make([]string, len(channelIDs))
	copy(sorted, channelIDs)
	sort.Strings(sorted)
	return s.ds.Set(awakeKey, sorted)
}

// GetAwakeChannels returns the persisted awake-channel snapshot.
func (s *Storage) GetAwakeChannels() ([]string, error) {
	var channels []string
	exists, err := s.ds.Get(awakeKey, &channels)
	if err != nil {
		return nil, fmt.Errorf("error reading channel snapshot: %w", err)
	}
	if !exists {
		return nil, nil
	}
	return channels, nil
}
