package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds live sessions keyed by id
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	defaults Defaults
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store whose sessions expire after ttl without activity
func NewStore(defaults Defaults, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		defaults: defaults,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for id, or a fresh one when id is unknown or expired.
// created is true when a new session was made.
func (s *Store) Get(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeLocked(now)

	if sess, ok := s.sessions[id]; ok && id != "" {
		sess.LastSeen = now
		return sess, false
	}

	sess = newSession(uuid.NewString(), s.defaults, now)
	s.sessions[sess.ID] = sess
	return sess, true
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Purge removes sessions idle for longer than the ttl and returns how many were removed
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked(s.now())
}

func (s *Store) purgeLocked(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
