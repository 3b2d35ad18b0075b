package auth

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	repo StaffRepository
}

func NewService(repo StaffRepository) *Service {
	return &Service{repo: repo}
}

// HashPassword is what STAFF_PASSWORD_HASH is expected to contain.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ENSURE STAFF
// Seeds the configured account. Accepts either a bcrypt hash or a plain
// password, which is hashed before saving.
func (s *Service) EnsureStaff(ctx context.Context, username, secret string) error {
	if username == "" || secret == "" {
		return errors.New("missing required fields")
	}

	hash := secret
	if _, err := bcrypt.Cost([]byte(secret)); err != nil {
		if hash, err = HashPassword(secret); err != nil {
			return err
		}
	}

	if err := s.repo.Save(ctx, &Staff{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleStaff,
	}); err != nil {
		return err
	}

	log.Printf("[AUTH] staff account %q ready", username)
	return nil
}

// LOGIN
func (s *Service) Login(ctx context.Context, username, password string) (*Staff, error) {
	staff, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrStaffNotFound) {
			log.Printf("[AUTH] staff lookup failed: %v", err)
		}
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(staff.PasswordHash),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return staff, nil
}
