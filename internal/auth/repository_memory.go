package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type InMemoryStaffRepository struct {
	mu    sync.RWMutex
	staff map[string]*Staff
}

func NewInMemoryStaffRepository() *InMemoryStaffRepository {
	return &InMemoryStaffRepository{
		staff: make(map[string]*Staff),
	}
}

func (r *InMemoryStaffRepository) Save(ctx context.Context, staff *Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}
	cp := *staff
	r.staff[staff.Username] = &cp
	return nil
}

func (r *InMemoryStaffRepository) FindByUsername(ctx context.Context, username string) (*Staff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	staff, ok := r.staff[username]
	if !ok {
		return nil, ErrStaffNotFound
	}
	cp := *staff
	return &cp, nil
}
