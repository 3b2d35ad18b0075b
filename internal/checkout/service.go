package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"tableorder/internal/cart"
	"tableorder/internal/order"
	"tableorder/internal/pricing"
	"tableorder/internal/restaurant"
)

var ErrEmptyCart = errors.New("cart is empty")

const (
	minOrderID   = 100000
	orderIDSpan  = 900000
	minEstimate  = 15
	estimateSpan = 16
	idAttempts   = 5
)

// Randomizer is the source of order ids and preparation estimates.
type Randomizer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// Placer stores an order and starts tracking it. *order.Service implements it.
type Placer interface {
	Place(ctx context.Context, o *order.Order) error
}

type Service struct {
	orders Placer
	rng    Randomizer
}

func NewService(orders Placer, rng Randomizer) *Service {
	if rng == nil {
		rng = globalRand{}
	}
	return &Service{orders: orders, rng: rng}
}

// Checkout validates the form, freezes the cart into an order, places it and
// clears the cart. Nothing changes if any step fails.
func (s *Service) Checkout(ctx context.Context, table restaurant.Table, c *cart.Cart, req Request) (*order.Order, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	summary := c.Summary()
	o := &order.Order{
		Table: table,
		Contact: order.Contact{
			Name:  strings.TrimSpace(req.Name),
			Email: strings.TrimSpace(req.Email),
			Phone: strings.TrimSpace(req.Phone),
		},
		PaymentMethod:       req.PaymentMethod,
		Lines:               freeze(c.Lines()),
		Subtotal:            summary.Subtotal,
		Tax:                 summary.Tax,
		Total:               summary.Total,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
		EstimatedMinutes:    minEstimate + s.rng.IntN(estimateSpan),
	}

	var err error
	for attempt := 0; attempt < idAttempts; attempt++ {
		o.ID = minOrderID + s.rng.IntN(orderIDSpan)
		err = s.orders.Place(ctx, o)
		if !errors.Is(err, order.ErrDuplicateOrder) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	c.Clear()
	return o, nil
}

func freeze(lines []cart.Line) []order.Line {
	out := make([]order.Line, 0, len(lines))
	for _, l := range lines {
		var opts map[string]string
		if len(l.Options) > 0 {
			opts = make(map[string]string, len(l.Options))
			for g, ch := range l.Options {
				opts[g] = ch
			}
		}
		out = append(out, order.Line{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			Options:   opts,
			Quantity:  l.Quantity,
			UnitPrice: pricing.Round(l.UnitPrice()),
			Total:     pricing.Round(l.Total()),
		})
	}
	return out
}
