package brain

import (
	"strings"
	"sync"
	"time"
)

// Session holds per-channel conversational state. All access goes through
// methods; getters return copies so callers never hold live references.
type Session struct {
	ChannelID string

	mu           sync.Mutex
	awake        bool
	recent       []Message
	keywords     map[string]struct{}
	thoughts     []ThoughtEntry
	recentLimit  int
	thoughtLimit int
}

func newSession(channelID string, recentLimit, thoughtLimit int) *Session {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	if thoughtLimit <= 0 {
		thoughtLimit = 5
	}
	return &Session{
		ChannelID:    channelID,
		keywords:     make(map[string]struct{}),
		recentLimit:  recentLimit,
		thoughtLimit: thoughtLimit,
	}
}

// Awake reports whether the channel is currently in conversation mode.
func (s *Session) Awake() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awake
}

func (s *Session) setAwake(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awake = v
}

// RecordMessage appends to the recent-message window, dropping the oldest
// entry when full, and merges the message's tokens into the keyword set.
func (s *Session) RecordMessage(author, text string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append(s.recent, Message{Author: author, Text: text, At: at})
	if len(s.recent) > s.recentLimit {
		s.recent = s.recent[len(s.recent)-s.recentLimit:]
	}
	for _, tok := range Tokenize(text) {
		s.keywords[tok] = struct{}{}
	}
}

// Recent returns a copy of the message window, oldest first.
func (s *Session) Recent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.recent))
	copy(out, s.recent)
	return out
}

// HasKeyword reports whether any of the given tokens was ever seen in this
// channel.
func (s *Session) HasKeyword(tokens ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tokens {
		if _, ok := s.keywords[t]; ok {
			return true
		}
	}
	return false
}

// KeywordCount returns the size of the accumulated keyword set.
func (s *Session) KeywordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keywords)
}

// ResetKeywords drops the keyword set. Used by the sweeper when the set
// outgrows the configured cap; mirrors what a process restart did for the
// bot this replaced.
func (s *Session) ResetKeywords() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = make(map[string]struct{})
}

// PushThought appends to the thought log with the same bounded FIFO
// behavior as the message window.
func (s *Session) PushThought(e ThoughtEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thoughts = append(s.thoughts, e)
	if len(s.thoughts) > s.thoughtLimit {
		s.thoughts = s.thoughts[len(s.thoughts)-s.thoughtLimit:]
	}
}

// RenderThoughts joins the current thought log into one display line,
// oldest entry first.
func (s *Session) RenderThoughts() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts := make([]string, 0, len(s.thoughts))
	for _, e := range s.thoughts {
		var b strings.Builder
		b.WriteString("Thought[")
		b.WriteString(e.At.Format("15:04:05"))
		b.WriteString("]: Author=")
		b.WriteString(e.Author)
		b.WriteString(", Context=")
		b.WriteString(e.Label)
		b.WriteString(", Query=\"")
		b.WriteString(e.Query)
		b.WriteString("\" Action: ")
		b.WriteString(e.Action)
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " | ")
}

// ThoughtCount returns the number of entries currently in the log.
func (s *Session) ThoughtCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.thoughts)
}

// RecentCount returns the number of entries in the message window.
func (s *Session) RecentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recent)
}
