package brain

import (
	"sort"
	"sync"
)

// Store holds all per-channel sessions. Safe for concurrent use; sessions
// are created lazily and live for the life of the process.
type Store struct {
	mu           sync.RWMutex
	sessions     map[string]*Session
	recentLimit  int
	thoughtLimit int
}

// NewStore creates a Store whose sessions use the given window sizes.
func NewStore(recentLimit, thoughtLimit int) *Store {
	return &Store{
		sessions:     make(map[string]*Session),
		recentLimit:  recentLimit,
		thoughtLimit: thoughtLimit,
	}
}

// GetOrCreate returns the session for channelID, creating a fresh asleep
// one if none exists.
func (st *Store) GetOrCreate(channelID string) *Session {
	st.mu.RLock()
	s := st.sessions[channelID]
	st.mu.RUnlock()
	if s != nil {
		return s
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	if s = st.sessions[channelID]; s != nil {
		return s
	}
	s = newSession(channelID, st.recentLimit, st.thoughtLimit)
	st.sessions[channelID] = s
	return s
}

// Wake marks the channel awake.
func (st *Store) Wake(channelID string) {
	st.GetOrCreate(channelID).setAwake(true)
}

// Sleep marks the channel asleep. Releasing any attached voice resource is
// the dispatcher's job, not the store's.
func (st *Store) Sleep(channelID string) {
	st.GetOrCreate(channelID).setAwake(false)
}

// IsAwake reports the awake flag without creating a session.
func (st *Store) IsAwake(channelID string) bool {
	st.mu.RLock()
	s := st.sessions[channelID]
	st.mu.RUnlock()
	if s == nil {
		return false
	}
	return s.Awake()
}

// AwakeChannels returns a sorted list of channels currently awake, for
// persistence snapshots.
func (st *Store) AwakeChannels() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	var out []string
	for id, s := range st.sessions {
		if s.Awake() {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// RestoreAwake marks the given channels awake, creating sessions as
// needed. Called once at startup from the persisted snapshot.
func (st *Store) RestoreAwake(channelIDs []string) {
	for _, id := range channelIDs {
		st.Wake(id)
	}
}

// PruneKeywords resets the keyword set of every session whose set exceeds
// cap, and returns how many sessions were pruned. cap <= 0 disables pruning.
func (st *Store) PruneKeywords(cap int) int {
	if cap <= 0 {
		return 0
	}
	st.mu.RLock()
	defer st.mu.RUnlock()
	pruned := 0
	for _, s := range st.sessions {
		if s.KeywordCount() > cap {
			s.ResetKeywords()
			pruned++
		}
	}
	return pruned
}
