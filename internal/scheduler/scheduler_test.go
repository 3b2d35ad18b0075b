package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestManualAfterFiresOnce(t *testing.T) {
	m := NewManual()
	fired := 0
	m.After(5*time.Second, func() { fired++ })

	m.Advance(4 * time.Second)
	if fired != 0 {
		t.Fatalf("fired too early")
	}
	m.Advance(time.Second)
	m.Advance(time.Hour)
	if fired != 1 {
		t.Fatalf("expected one call, got %d", fired)
	}
	if m.Pending() != 0 {
		t.Fatalf("expected nothing pending")
	}
}

func TestManualEveryRepeatsUntilCancelled(t *testing.T) {
	m := NewManual()
	ticks := 0
	var tok *Token
	tok = m.Every(time.Minute, func() {
		ticks++
		if ticks == 3 {
			tok.Cancel()
		}
	})

	m.Advance(10 * time.Minute)
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
}

func TestManualCancelBeforeFire(t *testing.T) {
	m := NewManual()
	fired := false
	tok := m.After(time.Second, func() { fired = true })
	tok.Cancel()

	m.Advance(time.Minute)
	if fired {
		t.Fatalf("cancelled callback fired")
	}
}

func TestManualOrdersByDueTime(t *testing.T) {
	m := NewManual()
	var order []string
	m.After(3*time.Second, func() { order = append(order, "c") })
	m.After(1*time.Second, func() { order = append(order, "a") })
	m.After(2*time.Second, func() { order = append(order, "b") })

	m.Advance(3 * time.Second)
	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestNilTokenCancelIsSafe(t *testing.T) {
	var tok *Token
	tok.Cancel()
	if tok.Cancelled() {
		t.Fatalf("nil token reports cancelled")
	}
}

func TestLoopRunsCallbacksSerially(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var running, overlaps int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		l.After(time.Millisecond, func() {
			defer wg.Done()
			if atomic.AddInt32(&running, 1) > 1 {
				atomic.AddInt32(&overlaps, 1)
			}
			time.Sleep(100 * time.Microsecond)
			atomic.AddInt32(&running, -1)
		})
	}
	wg.Wait()

	if overlaps != 0 {
		t.Fatalf("callbacks overlapped %d times", overlaps)
	}
}

func TestLoopCancelledAfterNeverFires(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var fired atomic.Bool
	tok := l.After(20*time.Millisecond, func() { fired.Store(true) })
	l.Do(tok.Cancel)

	time.Sleep(60 * time.Millisecond)
	l.Do(func() {})
	if fired.Load() {
		t.Fatalf("cancelled callback fired")
	}
}

func TestLoopEveryStopsOnCancel(t *testing.T) {
	l := NewLoop()
	defer l.Close()

	var ticks atomic.Int32
	tok := l.Every(5*time.Millisecond, func() { ticks.Add(1) })

	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	l.Do(tok.Cancel)
	seen := ticks.Load()

	time.Sleep(30 * time.Millisecond)
	l.Do(func() {})
	if ticks.Load() != seen {
		t.Fatalf("ticked after cancel: %d -> %d", seen, ticks.Load())
	}
	if seen < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", seen)
	}
}

func TestLoopDoAfterCloseReturns(t *testing.T) {
	l := NewLoop()
	l.Close()

	done := make(chan struct{})
	go func() {
		l.Do(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Do blocked after Close")
	}
}
