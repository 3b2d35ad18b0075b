package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs callbacks one at a time on a single logical thread.
type Scheduler interface {
	// After runs fn once, d from now, unless the token is cancelled first.
	After(d time.Duration, fn func()) *Token
	// Every runs fn each d until the token is cancelled.
	Every(d time.Duration, fn func()) *Token
	// Do runs fn on the scheduler thread and waits for it.
	// It must not be called from inside a scheduled callback.
	Do(fn func())
}

// Token cancels a scheduled callback. Once Cancel returns on the scheduler
// thread the callback never runs again.
type Token struct {
	cancelled atomic.Bool
	stop      func()
}

func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
	if t.stop != nil {
		t.stop()
	}
}

func (t *Token) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}

// Loop is the production Scheduler: timers post into a channel drained by
// one goroutine, so callbacks never overlap.
type Loop struct {
	events chan func()
	quit   chan struct{}
	once   sync.Once
}

func NewLoop() *Loop {
	l := &Loop{
		events: make(chan func(), 64),
		quit:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.events:
			fn()
		case <-l.quit:
			return
		}
	}
}

func (l *Loop) post(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	case <-l.quit:
		return false
	}
}

func (l *Loop) After(d time.Duration, fn func()) *Token {
	t := &Token{}
	timer := time.AfterFunc(d, func() {
		l.post(func() {
			if t.Cancelled() {
				return
			}
			fn()
		})
	})
	t.stop = func() { timer.Stop() }
	return t
}

func (l *Loop) Every(d time.Duration, fn func()) *Token {
	t := &Token{}

	var (
		mu    sync.Mutex
		timer *time.Timer
		arm   func()
	)
	arm = func() {
		mu.Lock()
		defer mu.Unlock()
		if t.Cancelled() {
			return
		}
		timer = time.AfterFunc(d, func() {
			l.post(func() {
				if t.Cancelled() {
					return
				}
				fn()
				arm()
			})
		})
	}
	t.stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}

	arm()
	return t
}

func (l *Loop) Do(fn func()) {
	done := make(chan struct{})
	if !l.post(func() {
		defer close(done)
		fn()
	}) {
		return
	}
	select {
	case <-done:
	case <-l.quit:
	}
}

// Close stops the loop; pending callbacks are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.quit) })
}
