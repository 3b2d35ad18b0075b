package session

import (
	"errors"
	"sync"
	"time"

	"tableorder/internal/cart"
	"tableorder/internal/restaurant"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoOrder         = errors.New("no order placed at this table yet")
)

// Session is one guest's visit to a table. It owns the cart; every access
// to the cart goes through mu.
type Session struct {
	ID        string
	Table     restaurant.Table
	CreatedAt time.Time

	mu          sync.Mutex
	cart        *cart.Cart
	orderIDs    []int
	unsubscribe func()
	closed      bool
}

// use runs fn under the session lock. A session that has been ended reads
// as not found even to callers that looked it up before End.
func (s *Session) use(fn func(s *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	return fn(s)
}

func (s *Session) currentOrder() (int, bool) {
	if len(s.orderIDs) == 0 {
		return 0, false
	}
	return s.orderIDs[len(s.orderIDs)-1], true
}

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes and returns the session.
func (st *Store) Delete(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(st.sessions, id)
	return s, nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
