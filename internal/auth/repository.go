package auth

import (
	"context"
	"errors"
)

var ErrStaffNotFound = errors.New("staff member not found")

// StaffRepository defines the data-access contract.
// Service depends ONLY on this interface.
type StaffRepository interface {
	// Save inserts or replaces a staff member by username.
	Save(ctx context.Context, staff *Staff) error
	FindByUsername(ctx context.Context, username string) (*Staff, error)
}
