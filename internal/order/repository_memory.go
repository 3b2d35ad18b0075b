package order

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders map[int]*Order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[int]*Order),
	}
}

func (r *InMemoryRepository) Save(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return ErrDuplicateOrder
	}
	r.orders[o.ID] = o.clone()
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o.clone(), nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id int, from, to Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	if o.Status != from {
		return ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}
