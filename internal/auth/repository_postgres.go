package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStaffRepository struct {
	db *pgxpool.Pool
}

func NewPostgresStaffRepository(db *pgxpool.Pool) *PostgresStaffRepository {
	return &PostgresStaffRepository{db: db}
}

func (r *PostgresStaffRepository) Save(ctx context.Context, staff *Staff) error {
	// Generate UUID if not already set
	if staff.ID == "" {
		staff.ID = uuid.New().String()
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO staff (id, username, password, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username)
		DO UPDATE SET password = EXCLUDED.password, role = EXCLUDED.role
		RETURNING id
	`, staff.ID, staff.Username, staff.PasswordHash, staff.Role).Scan(&staff.ID)
	if err != nil {
		return fmt.Errorf("save staff %s: %w", staff.Username, err)
	}
	return nil
}

func (r *PostgresStaffRepository) FindByUsername(ctx context.Context, username string) (*Staff, error) {
	query := `
		SELECT id, username, password, role
		FROM staff WHERE username=$1
	`
	row := r.db.QueryRow(ctx, query, username)

	staff := &Staff{}
	err := row.Scan(&staff.ID, &staff.Username, &staff.PasswordHash, &staff.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find staff %s: %w", username, err)
	}
	return staff, nil
}
