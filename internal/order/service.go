package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tableorder/internal/events"
	"tableorder/internal/metrics"
	"tableorder/internal/scheduler"

	"github.com/shopspring/decimal"
)

var errSchedulerStopped = errors.New("order scheduler stopped")

const (
	DefaultPreparingDelay    = 5 * time.Second
	DefaultCountdownInterval = time.Minute
)

type Config struct {
	PreparingDelay    time.Duration
	CountdownInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.PreparingDelay <= 0 {
		c.PreparingDelay = DefaultPreparingDelay
	}
	if c.CountdownInterval <= 0 {
		c.CountdownInterval = DefaultCountdownInterval
	}
	return c
}

// tracker holds the live timers of one order. Its fields are only touched
// on the scheduler thread.
type tracker struct {
	preparing *scheduler.Token
	countdown *scheduler.Token
	remaining int
	delivered bool
}

type Service struct {
	repo      Repository
	sched     scheduler.Scheduler
	publisher events.Publisher
	metrics   *metrics.Metrics
	cfg       Config
	now       func() time.Time

	mu       sync.Mutex
	trackers map[int]*tracker
}

func NewService(
	repo Repository,
	sched scheduler.Scheduler,
	publisher events.Publisher,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	if publisher == nil {
		publisher = events.Multi{}
	}
	return &Service{
		repo:      repo,
		sched:     sched,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
		trackers:  make(map[int]*tracker),
	}
}

// View is an order as a guest sees it on the tracking screen.
type View struct {
	*Order
	StatusLabel      string          `json:"status_label"`
	Progress         decimal.Decimal `json:"progress"`
	RemainingMinutes int             `json:"remaining_minutes"`
	Tracking         bool            `json:"tracking"`
}

// --------------------------------------------------
// Place
// --------------------------------------------------

// Place stores a new order as Received and starts its timers: the automatic
// move to Preparing and the minute countdown.
func (s *Service) Place(ctx context.Context, o *Order) error {
	now := s.now().UTC()
	o.Status = StatusReceived
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := s.repo.Save(ctx, o); err != nil {
		return err
	}

	id := o.ID
	s.sched.Do(func() {
		t := &tracker{remaining: o.EstimatedMinutes}
		t.preparing = s.sched.After(s.cfg.PreparingDelay, func() { s.autoPrepare(id) })
		if t.remaining > 0 {
			t.countdown = s.sched.Every(s.cfg.CountdownInterval, func() { s.tick(id) })
		}
		s.mu.Lock()
		s.trackers[id] = t
		s.mu.Unlock()
	})

	log.Printf("[ORDER] placed order=%d table=%s total=%s eta=%dm",
		o.ID, o.Table.TableNumber, o.Total.StringFixed(2), o.EstimatedMinutes)
	s.metrics.OrderPlaced(string(o.PaymentMethod))

	e := events.New(events.OrderCreated, id)
	e.Status = string(o.Status)
	e.RemainingMinutes = o.EstimatedMinutes
	e.TableNumber = o.Table.TableNumber
	s.publish(ctx, e)
	return nil
}

// --------------------------------------------------
// Status changes
// --------------------------------------------------

// Advance moves an order exactly one stage forward.
func (s *Service) Advance(ctx context.Context, id int) (*Order, error) {
	var (
		updated *Order
		err     = errSchedulerStopped
	)
	s.sched.Do(func() {
		updated, err = s.step(ctx, id, "")
	})
	return updated, err
}

// autoPrepare runs on the scheduler thread. A manual advance that already
// moved the order on wins; the timer then does nothing.
func (s *Service) autoPrepare(id int) {
	_, err := s.step(context.Background(), id, StatusReceived)
	if err != nil && !errors.Is(err, ErrStatusConflict) {
		log.Printf("[ORDER] auto transition for order=%d failed: %v", id, err)
	}
}

// step must run on the scheduler thread. A non-empty expect makes the step
// conditional on the current status.
func (s *Service) step(ctx context.Context, id int, expect Status) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expect != "" && o.Status != expect {
		return nil, ErrStatusConflict
	}

	next, err := o.Status.Next()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, o.Status, next, now); err != nil {
		return nil, err
	}
	o.Status = next
	o.UpdatedAt = now

	s.mu.Lock()
	if t, ok := s.trackers[id]; ok && next != StatusReceived {
		t.preparing.Cancel()
		t.delivered = next.IsTerminal()
	}
	remaining := s.remainingLocked(id)
	s.retireLocked(id)
	s.mu.Unlock()

	log.Printf("[ORDER] order=%d -> %s", id, next)
	s.metrics.StatusChanged(string(next))

	e := events.New(events.OrderStatusChanged, id)
	e.Status = string(next)
	e.TableNumber = o.Table.TableNumber
	e.RemainingMinutes = remaining
	s.publish(ctx, e)

	return o, nil
}

// tick runs on the scheduler thread once per countdown interval.
func (s *Service) tick(id int) {
	s.mu.Lock()
	t, ok := s.trackers[id]
	s.mu.Unlock()
	if !ok {
		return
	}

	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.countdown.Cancel()
		s.mu.Lock()
		s.retireLocked(id)
		s.mu.Unlock()
	}

	e := events.New(events.OrderCountdown, id)
	e.RemainingMinutes = t.remaining
	s.publish(context.Background(), e)
}

func (s *Service) remainingLocked(id int) int {
	if t, ok := s.trackers[id]; ok {
		return t.remaining
	}
	return 0
}

// retireLocked forgets a tracker once the order is delivered and its
// countdown has run out. Caller holds s.mu.
func (s *Service) retireLocked(id int) {
	t, ok := s.trackers[id]
	if !ok || !t.delivered || t.remaining > 0 {
		return
	}
	t.preparing.Cancel()
	t.countdown.Cancel()
	delete(s.trackers, id)
}

// Release stops the timers of an order, typically when its table session
// ends. The order itself stays in the archive and staff can still advance it.
func (s *Service) Release(id int) {
	s.sched.Do(func() {
		s.mu.Lock()
		t, ok := s.trackers[id]
		delete(s.trackers, id)
		s.mu.Unlock()
		if !ok {
			return
		}
		t.preparing.Cancel()
		t.countdown.Cancel()
	})
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (s *Service) Get(ctx context.Context, id int) (View, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	v := View{
		Order:       o,
		StatusLabel: o.Status.Label(),
		Progress:    o.Status.Progress(),
	}
	s.sched.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if t, ok := s.trackers[id]; ok {
			v.RemainingMinutes = t.remaining
			v.Tracking = true
		}
	})
	return v, nil
}

func (s *Service) List(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.Printf("[ORDER] publish %s for order=%d failed: %v", e.Type, e.OrderID, err)
	}
}
