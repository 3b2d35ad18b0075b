package order

import (
	"context"
	"time"
)

// Repository is the order archive. Service depends only on this interface.
type Repository interface {
	// Save fails with ErrDuplicateOrder if the id is already used.
	Save(ctx context.Context, o *Order) error
	Get(ctx context.Context, id int) (*Order, error)
	// List returns newest first.
	List(ctx context.Context) ([]*Order, error)
	// UpdateStatus moves an order from one status to another and fails with
	// ErrStatusConflict if it is no longer in from.
	UpdateStatus(ctx context.Context, id int, from, to Status, at time.Time) error
}
