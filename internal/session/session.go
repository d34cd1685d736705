// Package session holds per-user interactive state: the cached brand spec
// keyed by document digest, and the most recent QA verdict. Sessions live in
// memory only; nothing is written to durable storage.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mockhotels/brandaudit/internal/types"
)

// Session is the state of one authenticated user: at most one cached
// extraction (with the digest of the document it came from) and the latest
// verdict. The spec is replaced, never merged, when a new digest appears.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	submitMu sync.Mutex
	digest   string
	spec     *types.BrandSpec
	verdict  *types.Verdict
	lastSeen time.Time
}

func newSession() *Session {
	return &Session{
		ID:       uuid.New(),
		lastSeen: time.Now(),
	}
}

// AcquireSubmit serializes submit actions for this session. The returned
// release function must be called when the submit finishes.
func (s *Session) AcquireSubmit() (release func()) {
	s.submitMu.Lock()
	return s.submitMu.Unlock
}

// CachedSpec returns the cached extraction and the digest it was produced
// from. ok is false when nothing is cached.
func (s *Session) CachedSpec() (spec *types.BrandSpec, digest string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spec == nil {
		return nil, "", false
	}
	copied := *s.spec
	return &copied, s.digest, true
}

// StoreSpec replaces the cached extraction and its digest.
func (s *Session) StoreSpec(spec types.BrandSpec, digest string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = &spec
	s.digest = digest
}

// ClearSpec drops the cached extraction and its digest. A failed extraction
// must never leave a stale spec behind.
func (s *Session) ClearSpec() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = nil
	s.digest = ""
}

// StoreVerdict replaces the most recent verdict.
func (s *Session) StoreVerdict(v types.Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdict = &v
}

// LastVerdict returns the most recent verdict, if any.
func (s *Session) LastVerdict() (*types.Verdict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verdict == nil {
		return nil, false
	}
	copied := *s.verdict
	return &copied, true
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}
