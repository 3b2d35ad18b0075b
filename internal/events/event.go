package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusChanged Type = "order.status_changed"
	OrderCountdown     Type = "order.countdown"
)

// Event describes something that happened to an order. It is what the
// kitchen feed consumes from Kafka and what guests receive over websocket.
type Event struct {
	ID               string    `json:"id"`
	Type             Type      `json:"type"`
	OrderID          int       `json:"order_id"`
	Status           string    `json:"status,omitempty"`
	RemainingMinutes int       `json:"remaining_minutes"`
	TableNumber      string    `json:"table_number,omitempty"`
	At               time.Time `json:"at"`
}

func New(typ Type, orderID int) Event {
	return Event{
		ID:      uuid.NewString(),
		Type:    typ,
		OrderID: orderID,
		At:      time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
