package services

import (
	"sync"
	"time"
)

// Registry defaults; both knobs are runtime-tunable through the setters.
const (
	DefaultSessionTTL      = time.Hour
	DefaultCleanupInterval = time.Minute
)

// sessionData tracks one session: the hashes already issued to it and the
// last time the registry was touched on its behalf.
type sessionData struct {
	hashes       map[string]struct{}
	lastAccessed time.Time
}

// CardRegistry enforces per-session card uniqueness. It is a TTL-bounded
// in-memory store of content hashes: a hash registered under one session
// says nothing about any other session. Expiry is sliding (keyed to last
// access) and cleanup runs opportunistically inside Register and Exists
// calls, throttled by the cleanup interval; there is no background timer, so
// an idle registry holds its sessions until the next call arrives.
//
// One mutex serializes every operation, keeping Register's check-and-insert
// atomic under concurrent generation for the same session.
type CardRegistry struct {
	mu              sync.Mutex
	sessions        map[string]*sessionData
	sessionTTL      time.Duration
	cleanupInterval time.Duration
	lastCleanup     time.Time

	now func() time.Time // stubbed in tests
}

// NewCardRegistry returns an empty registry with the default TTL and
// cleanup throttle.
func NewCardRegistry() *CardRegistry {
	return &CardRegistry{
		sessions:        make(map[string]*sessionData),
		sessionTTL:      DefaultSessionTTL,
		cleanupInterval: DefaultCleanupInterval,
		now:             time.Now,
	}
}

// Register records hash for the session. It returns true when the hash was
// novel, and is now recorded, or false for a duplicate, which is not
// re-inserted. Either way the session is created if absent and its access
// time refreshed.
func (r *CardRegistry) Register(sessionID, hash string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.maybeCleanup(now)

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &sessionData{hashes: make(map[string]struct{})}
		r.sessions[sessionID] = s
	}
	s.lastAccessed = now

	if _, dup := s.hashes[hash]; dup {
		return false
	}
	s.hashes[hash] = struct{}{}
	return true
}

// Exists reports whether hash is already recorded for the session. A known
// session gets its access time refreshed; an unknown session is never
// created by a lookup.
func (r *CardRegistry) Exists(sessionID, hash string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.maybeCleanup(now)

	s, ok := r.sessions[sessionID]
	if !ok {
		return false
	}
	s.lastAccessed = now
	_, found := s.hashes[hash]
	return found
}

// ClearSession drops the session and every hash recorded under it.
// Clearing an unknown session is a no-op.
func (r *CardRegistry) ClearSession(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}

// CleanupExpiredSessions removes every session idle past the TTL and returns
// how many were dropped. Register and Exists run it through the throttle;
// embedding applications may also call it directly.
func (r *CardRegistry) CleanupExpiredSessions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cleanupLocked(r.now())
}

// SessionCount returns how many hashes the session currently holds.
func (r *CardRegistry) SessionCount(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		return len(s.hashes)
	}
	return 0
}

// ActiveSessionCount returns the number of tracked sessions, expired-but-
// unswept ones included.
func (r *CardRegistry) ActiveSessionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// SessionLastAccessed returns the session's most recent registry touch;
// the bool is false for unknown sessions.
func (r *CardRegistry) SessionLastAccessed(sessionID string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s.lastAccessed, true
	}
	return time.Time{}, false
}

// SetSessionTTL tunes the sliding expiry window.
func (r *CardRegistry) SetSessionTTL(ttl time.Duration) {
	r.mu.Lock()
	r.sessionTTL = ttl
	r.mu.Unlock()
}

// SetCleanupInterval tunes the cleanup throttle. Zero makes every Register
// and Exists call sweep.
func (r *CardRegistry) SetCleanupInterval(interval time.Duration) {
	r.mu.Lock()
	r.cleanupInterval = interval
	r.mu.Unlock()
}

func (r *CardRegistry) maybeCleanup(now time.Time) {
	if now.Sub(r.lastCleanup) < r.cleanupInterval {
		return
	}
	r.cleanupLocked(now)
}

func (r *CardRegistry) cleanupLocked(now time.Time) int {
	removed := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastAccessed) > r.sessionTTL {
			delete(r.sessions, id)
			removed++
		}
	}
	r.lastCleanup = now
	return removed
}
