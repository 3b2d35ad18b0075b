package scheduler

import (
	"sync"
	"time"
)

type entry struct {
	due   time.Duration
	seq   int
	every time.Duration
	fn    func()
	token *Token
}

// Manual is a deterministic Scheduler driven by Advance. Tests use it in
// place of Loop so timers fire without real waiting.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*entry
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) After(d time.Duration, fn func()) *Token {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) *Token {
	return m.add(d, d, fn)
}

func (m *Manual) Do(fn func()) {
	fn()
}

func (m *Manual) add(d, every time.Duration, fn func()) *Token {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &Token{}
	m.seq++
	m.pending = append(m.pending, &entry{due: m.now + d, seq: m.seq, every: every, fn: fn, token: t})
	return t
}

// Advance moves virtual time forward by d, running every callback that
// comes due in order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d

	for {
		next := m.popDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.token.Cancelled() {
			continue
		}
		if next.every > 0 {
			m.seq++
			m.pending = append(m.pending, &entry{
				due:   next.due + next.every,
				seq:   m.seq,
				every: next.every,
				fn:    next.fn,
				token: next.token,
			})
		}

		m.mu.Unlock()
		next.fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// Pending counts callbacks that can still fire.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.pending {
		if !e.token.Cancelled() {
			n++
		}
	}
	return n
}

func (m *Manual) popDue(target time.Duration) *entry {
	best := -1
	for i, e := range m.pending {
		if e.due > target {
			continue
		}
		if best < 0 || e.due < m.pending[best].due ||
			(e.due == m.pending[best].due && e.seq < m.pending[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	e := m.pending[best]
	m.pending = append(m.pending[:best], m.pending[best+1:]...)
	return e
}
