package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long an idle session survives before the janitor
	// drops it.
	DefaultTTL = 12 * time.Hour
	// DefaultCleanupInterval is how often the janitor sweeps idle sessions.
	DefaultCleanupInterval = 15 * time.Minute
)

// Store keeps live sessions in memory, keyed by UUID. A background janitor
// removes sessions that have been idle longer than the TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ttl    time.Duration
	ticker *time.Ticker
	stop   chan struct{}
	once   sync.Once
}

// NewStore creates a session store. Non-positive ttl or cleanupInterval
// fall back to the defaults.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	st := &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		ticker:   time.NewTicker(cleanupInterval),
		stop:     make(chan struct{}),
	}
	go st.janitor()
	return st
}

// Create registers and returns a fresh empty session.
func (st *Store) Create() *Session {
	s := newSession()
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks up a session by ID and marks it as recently used.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch()
	return s, true
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Stop halts the janitor goroutine. Safe to call more than once.
func (st *Store) Stop() {
	st.once.Do(func() {
		st.ticker.Stop()
		close(st.stop)
	})
}

func (st *Store) janitor() {
	for {
		select {
		case <-st.ticker.C:
			st.sweep()
		case <-st.stop:
			return
		}
	}
}

func (st *Store) sweep() {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.sessions {
		if s.idleSince(cutoff) {
			delete(st.sessions, id)
		}
	}
}
