package session

import (
	"context"
	"log"
	"time"

	"tableorder/internal/auth"
	"tableorder/internal/cart"
	"tableorder/internal/checkout"
	"tableorder/internal/menu"
	"tableorder/internal/metrics"
	"tableorder/internal/order"
	"tableorder/internal/pricing"
	"tableorder/internal/restaurant"

	"github.com/google/uuid"
)

// Checkouter turns a cart into a placed order. *checkout.Service implements it.
type Checkouter interface {
	Checkout(ctx context.Context, table restaurant.Table, c *cart.Cart, req checkout.Request) (*order.Order, error)
}

// OrderTracker is the part of *order.Service a session needs.
type OrderTracker interface {
	Get(ctx context.Context, id int) (order.View, error)
	Release(id int)
}

type Service struct {
	store    *Store
	menu     *menu.Service
	checkout Checkouter
	orders   OrderTracker
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(
	store *Store,
	menuService *menu.Service,
	checkoutService Checkouter,
	orders OrderTracker,
	m *metrics.Metrics,
) *Service {
	return &Service{
		store:    store,
		menu:     menuService,
		checkout: checkoutService,
		orders:   orders,
		metrics:  m,
		now:      time.Now,
	}
}

// CartView is the cart as the guest sees it.
type CartView struct {
	Table     restaurant.Table `json:"table"`
	Lines     []cart.Line      `json:"lines"`
	ItemCount int              `json:"item_count"`
	pricing.Summary
}

func viewOf(s *Session) CartView {
	return CartView{
		Table:     s.Table,
		Lines:     s.cart.Lines(),
		ItemCount: s.cart.ItemCount(),
		Summary:   s.cart.Summary(),
	}
}

// --------------------------------------------------
// Lifecycle
// --------------------------------------------------

// Scan opens a session for the table named by a QR payload and returns it
// with a guest token bound to it.
func (svc *Service) Scan(payload string) (*Session, string, error) {
	table, err := restaurant.ParseQR(payload)
	if err != nil {
		return nil, "", err
	}

	s := &Session{
		ID:        uuid.New().String(),
		Table:     table,
		CreatedAt: svc.now().UTC(),
		cart:      cart.New(),
	}
	s.unsubscribe = s.cart.Subscribe(func(ch cart.Change) {
		svc.metrics.CartChanged(string(ch.Op))
	})

	token, err := auth.GenerateToken(s.ID, auth.RoleGuest)
	if err != nil {
		return nil, "", err
	}

	svc.store.Put(s)
	svc.metrics.SessionOpened()
	log.Printf("[SESSION] opened %s for %s table %s", s.ID, table.RestaurantName, table.TableNumber)
	return s, token, nil
}

// End clears the cart, stops order timers and forgets the session.
func (svc *Service) End(id string) error {
	s, err := svc.store.Delete(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for _, orderID := range s.orderIDs {
		svc.orders.Release(orderID)
	}
	s.cart.Clear()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}

	svc.metrics.SessionClosed()
	log.Printf("[SESSION] closed %s", id)
	return nil
}

func (svc *Service) with(id string, fn func(s *Session) error) error {
	s, err := svc.store.Get(id)
	if err != nil {
		return err
	}
	return s.use(fn)
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func (svc *Service) Cart(id string) (CartView, error) {
	var v CartView
	err := svc.with(id, func(s *Session) error {
		v = viewOf(s)
		return nil
	})
	return v, err
}

func (svc *Service) AddItem(id string, itemID int, options cart.Options, quantity int) (cart.Line, CartView, error) {
	item, err := svc.menu.Find(itemID)
	if err != nil {
		return cart.Line{}, CartView{}, err
	}

	var (
		line cart.Line
		v    CartView
	)
	err = svc.with(id, func(s *Session) error {
		l, err := s.cart.AddItem(item, options, quantity)
		if err != nil {
			return err
		}
		line, v = l, viewOf(s)
		return nil
	})
	return line, v, err
}

func (svc *Service) UpdateQuantity(id string, key cart.LineKey, quantity int) (CartView, error) {
	var v CartView
	err := svc.with(id, func(s *Session) error {
		if err := s.cart.UpdateQuantity(key, quantity); err != nil {
			return err
		}
		v = viewOf(s)
		return nil
	})
	return v, err
}

func (svc *Service) RemoveLine(id string, key cart.LineKey) (CartView, error) {
	var v CartView
	err := svc.with(id, func(s *Session) error {
		s.cart.RemoveLine(key)
		v = viewOf(s)
		return nil
	})
	return v, err
}

func (svc *Service) ClearCart(id string) (CartView, error) {
	var v CartView
	err := svc.with(id, func(s *Session) error {
		s.cart.Clear()
		v = viewOf(s)
		return nil
	})
	return v, err
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (svc *Service) Checkout(ctx context.Context, id string, req checkout.Request) (*order.Order, error) {
	var placed *order.Order
	err := svc.with(id, func(s *Session) error {
		o, err := svc.checkout.Checkout(ctx, s.Table, s.cart, req)
		if err != nil {
			return err
		}
		s.orderIDs = append(s.orderIDs, o.ID)
		placed = o
		return nil
	})
	return placed, err
}

// CurrentOrderID is the most recent order placed in the session.
func (svc *Service) CurrentOrderID(id string) (int, error) {
	var orderID int
	err := svc.with(id, func(s *Session) error {
		oid, ok := s.currentOrder()
		if !ok {
			return ErrNoOrder
		}
		orderID = oid
		return nil
	})
	return orderID, err
}

func (svc *Service) CurrentOrder(ctx context.Context, id string) (order.View, error) {
	orderID, err := svc.CurrentOrderID(id)
	if err != nil {
		return order.View{}, err
	}
	return svc.orders.Get(ctx, orderID)
}
