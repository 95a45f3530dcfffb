// Package session scopes the loaded document per browser session.
//
// The viewer keeps one mutable document per session rather than one per
// process, so two browser tabs with different cookies cannot clobber each
// other's loaded file.
package session

import (
	"sync"
	"time"

	"github.com/geodata-dev/geojson-viewer/internal/geodata"
	"github.com/geodata-dev/geojson-viewer/internal/timeutil"
	"github.com/google/uuid"
)

// Session holds one browser session's loaded dataset. All access goes
// through the per-session mutex.
type Session struct {
	mu       sync.Mutex
	ds       *geodata.Dataset
	lastSeen time.Time
}

// Dataset returns the currently loaded dataset, or nil.
func (s *Session) Dataset() *geodata.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ds
}

// SetDataset replaces the loaded dataset wholesale.
func (s *Session) SetDataset(ds *geodata.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ds = ds
}

// Clear drops the loaded dataset, returning the session to the never-loaded
// state.
func (s *Session) Clear() {
	s.SetDataset(nil)
}

// Store is a concurrent map of session ID to Session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    timeutil.Clock
}

// NewStore creates an empty Store. A nil clock falls back to the real clock.
func NewStore(clock timeutil.Clock) *Store {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Store{sessions: make(map[string]*Session), clock: clock}
}

// NewID issues a fresh session identifier.
func (st *Store) NewID() string {
	return uuid.NewString()
}

// Get returns the session for id, creating it on first use.
func (st *Store) Get(id string) *Session {
	now := st.clock.Now()

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.mu.Lock()
		s.lastSeen = now
		s.mu.Unlock()
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = &Session{lastSeen: now}
	st.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Prune removes sessions idle for longer than maxAge and reports how many
// were dropped.
func (st *Store) Prune(maxAge time.Duration) int {
	cutoff := st.clock.Now().Add(-maxAge)

	st.mu.Lock()
	defer st.mu.Unlock()

	dropped := 0
	for id, s := range st.sessions {
		s.mu.Lock()
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}
