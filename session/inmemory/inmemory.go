package inmemory

import (
	"sync"
	"time"

	"github.com/supportdesk/aisha/session"
	"github.com/supportdesk/aisha/session/session_object"
)

// Store is the in-process session registry. Sessions expire after ttl of
// inactivity and the registry holds at most max sessions, evicting the least
// recently ensured one when full.
type Store struct {
	sessions map[string]*session_object.Session
	ttl      time.Duration
	max      int
	mu       sync.Mutex
	now      func() time.Time
}

func NewStore(ttl time.Duration, max int) *Store {
	return &Store{
		sessions: make(map[string]*session_object.Session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// Ensure idempotently creates the session for id. The empty id is a valid,
// distinct session.
func (st *Store) Ensure(id string) session.Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.sweep(now)

	if sess, ok := st.sessions[id]; ok {
		sess.Expire(st.ttl)
		return sess
	}

	if st.max > 0 && len(st.sessions) >= st.max {
		st.evictOldest()
	}

	sess := session_object.NewSession(id, st.ttl)
	st.sessions[id] = sess
	return sess
}

// Get returns the session for id, or nil when it is unseen or expired.
func (st *Store) Get(id string) session.Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok || sess.ExpiredAt(st.now()) {
		return nil
	}
	return sess
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// sweep drops expired sessions. Called with st.mu held.
func (st *Store) sweep(now time.Time) {
	for id, sess := range st.sessions {
		if sess.ExpiredAt(now) {
			delete(st.sessions, id)
		}
	}
}

// evictOldest removes the least recently ensured session. Called with st.mu held.
func (st *Store) evictOldest() {
	var oldestID string
	var oldest time.Time
	first := true
	for id, sess := range st.sessions {
		if last := sess.LastSeen(); first || last.Before(oldest) {
			oldestID, oldest = id, last
			first = false
		}
	}
	if !first {
		delete(st.sessions, oldestID)
	}
}
