package session

import (
	"fmt"
	"sync"
)

// Store is the in-memory session registry (spec §4.9). It is the single
// authoritative record of every live session; an optional Mirror may
// additionally receive write-through copies but is never consulted for
// reads — a mirror outage must never affect a session in progress.
type Store struct {
	mu       sync.Mutex
	sessions map[ID]*Session
	mirror   Mirror
}

// NewStore returns an empty Store. mirror may be nil.
func NewStore(mirror Mirror) *Store {
	return &Store{
		sessions: make(map[ID]*Session),
		mirror:   mirror,
	}
}

// Put registers or replaces a session and writes it through to the
// mirror, if configured. The mirror is advisory (spec §4.9): a mirror
// write error is returned to the caller so the caller can log it, but the
// session stays registered in the Store.
func (st *Store) Put(s *Session) error {
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	if st.mirror == nil {
		return nil
	}
	if err := st.mirror.Write(s); err != nil {
		return fmt.Errorf("session store: mirror write for %x: %w", s.ID, err)
	}
	return nil
}

// Get looks up a session by id.
func (st *Store) Get(id ID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session from the in-memory store and best-effort
// removes it from the mirror.
func (st *Store) Delete(id ID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()

	if st.mirror != nil {
		_ = st.mirror.Delete(id)
	}
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Range calls f for every live session until f returns false. Range
// takes a snapshot under the lock so f can run without holding it.
func (st *Store) Range(f func(*Session) bool) {
	st.mu.Lock()
	snapshot := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		snapshot = append(snapshot, s)
	}
	st.mu.Unlock()

	for _, s := range snapshot {
		if !f(s) {
			return
		}
	}
}
