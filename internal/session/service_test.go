package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableorder/internal/cart"
	"tableorder/internal/checkout"
	"tableorder/internal/events"
	"tableorder/internal/menu"
	"tableorder/internal/metrics"
	"tableorder/internal/order"
	"tableorder/internal/restaurant"
	"tableorder/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type stack struct {
	sessions *Service
	orders   *order.Service
	sched    *scheduler.Manual
	broker   *events.Broker
	metrics  *metrics.Metrics
}

func newStack(t *testing.T) *stack {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-12345")

	menuService, err := menu.NewService(context.Background(), menu.NewStaticSource(menu.DefaultItems()))
	if err != nil {
		t.Fatalf("menu: %v", err)
	}

	sched := scheduler.NewManual()
	broker := events.NewBroker()
	m := metrics.New("test")
	orders := order.NewService(order.NewInMemoryRepository(), sched, broker, m, order.Config{})
	checkoutService := checkout.NewService(orders, nil)

	return &stack{
		sessions: NewService(NewStore(), menuService, checkoutService, orders, m),
		orders:   orders,
		sched:    sched,
		broker:   broker,
		metrics:  m,
	}
}

const luigis = `{"id":"r-42","name":"Luigi's","tableNumber":"7"}`

func cashRequest() checkout.Request {
	return checkout.Request{Name: "Ada", Email: "ada@example.com", PaymentMethod: order.PaymentCash}
}

func TestScanOpensSession(t *testing.T) {
	st := newStack(t)

	s, token, err := st.sessions.Scan(luigis)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if token == "" || s.ID == "" {
		t.Fatalf("missing token or id")
	}
	want := restaurant.Table{RestaurantID: "r-42", RestaurantName: "Luigi's", TableNumber: "7"}
	if s.Table != want {
		t.Fatalf("unexpected table %+v", s.Table)
	}

	v, err := st.sessions.Cart(s.ID)
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if len(v.Lines) != 0 || v.ItemCount != 0 || !v.Total.IsZero() {
		t.Fatalf("new session cart not empty: %+v", v)
	}
	if got := testutil.ToFloat64(st.metrics.ActiveSessions); got != 1 {
		t.Fatalf("active sessions = %v", got)
	}
}

func TestScanRejectsInvalidQR(t *testing.T) {
	st := newStack(t)
	if _, _, err := st.sessions.Scan(`{"name":"no id"}`); !errors.Is(err, restaurant.ErrInvalidQRCode) {
		t.Fatalf("expected ErrInvalidQRCode, got %v", err)
	}
}

func TestCartOperations(t *testing.T) {
	st := newStack(t)
	s, _, _ := st.sessions.Scan(luigis)

	line, v, err := st.sessions.AddItem(s.ID, 2, cart.Options{"Size": `Large (14")`, "Crust": "Thick"}, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if v.Subtotal.String() != "37.98" || v.Tax.String() != "3.04" || v.Total.String() != "41.02" {
		t.Fatalf("unexpected totals %+v", v.Summary)
	}

	v, err = st.sessions.UpdateQuantity(s.ID, line.Key, 3)
	if err != nil || v.ItemCount != 3 {
		t.Fatalf("update: %v %d", err, v.ItemCount)
	}

	if _, err := st.sessions.UpdateQuantity(s.ID, "nope", 1); !errors.Is(err, cart.ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
	if _, _, err := st.sessions.AddItem(s.ID, 999, nil, 1); !errors.Is(err, menu.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	v, err = st.sessions.RemoveLine(s.ID, line.Key)
	if err != nil || len(v.Lines) != 0 {
		t.Fatalf("remove: %v %+v", err, v)
	}

	st.sessions.AddItem(s.ID, 6, nil, 1)
	v, _ = st.sessions.ClearCart(s.ID)
	if len(v.Lines) != 0 {
		t.Fatalf("clear left lines")
	}

	if got := testutil.ToFloat64(st.metrics.CartMutations.WithLabelValues("add")); got != 2 {
		t.Fatalf("add mutations = %v", got)
	}
}

func TestCheckoutAndTrackOrder(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()
	s, _, _ := st.sessions.Scan(luigis)

	if _, err := st.sessions.CurrentOrder(ctx, s.ID); !errors.Is(err, ErrNoOrder) {
		t.Fatalf("expected ErrNoOrder, got %v", err)
	}
	if _, err := st.sessions.Checkout(ctx, s.ID, cashRequest()); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	st.sessions.AddItem(s.ID, 2, cart.Options{"Size": `Large (14")`, "Crust": "Thick"}, 2)
	o, err := st.sessions.Checkout(ctx, s.ID, cashRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.Table.TableNumber != "7" || o.Total.String() != "41.02" {
		t.Fatalf("unexpected order %+v", o)
	}

	v, _ := st.sessions.Cart(s.ID)
	if len(v.Lines) != 0 {
		t.Fatalf("cart not cleared after checkout")
	}

	view, err := st.sessions.CurrentOrder(ctx, s.ID)
	if err != nil {
		t.Fatalf("current order: %v", err)
	}
	if view.ID != o.ID || view.Status != order.StatusReceived {
		t.Fatalf("unexpected view %+v", view)
	}

	st.sched.Advance(5 * time.Second)
	view, _ = st.sessions.CurrentOrder(ctx, s.ID)
	if view.Status != order.StatusPreparing {
		t.Fatalf("expected preparing, got %s", view.Status)
	}
}

func TestEndStopsTimersAndForgetsSession(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()
	s, _, _ := st.sessions.Scan(luigis)

	st.sessions.AddItem(s.ID, 6, nil, 1)
	o, err := st.sessions.Checkout(ctx, s.ID, cashRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if err := st.sessions.End(s.ID); err != nil {
		t.Fatalf("end: %v", err)
	}
	if st.sched.Pending() != 0 {
		t.Fatalf("timers survived the session")
	}

	st.sched.Advance(time.Hour)
	view, err := st.orders.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("order gone from archive: %v", err)
	}
	if view.Status != order.StatusReceived {
		t.Fatalf("released order moved to %s", view.Status)
	}

	if _, err := st.sessions.Cart(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := st.sessions.End(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second end: %v", err)
	}
	if got := testutil.ToFloat64(st.metrics.ActiveSessions); got != 0 {
		t.Fatalf("active sessions = %v", got)
	}
}

func TestEndedSessionHandleRejectsCheckout(t *testing.T) {
	st := newStack(t)
	ctx := context.Background()
	s, _, _ := st.sessions.Scan(luigis)
	st.sessions.AddItem(s.ID, 6, nil, 1)

	// s stands in for a request that looked the session up before End ran.
	if err := st.sessions.End(s.ID); err != nil {
		t.Fatalf("end: %v", err)
	}

	err := s.use(func(s *Session) error {
		_, err := st.sessions.checkout.Checkout(ctx, s.Table, s.cart, cashRequest())
		return err
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	orders, _ := st.orders.List(ctx)
	if len(orders) != 0 {
		t.Fatalf("order placed on an ended session: %d", len(orders))
	}
	if st.sched.Pending() != 0 {
		t.Fatalf("timers started for an ended session")
	}
}
