package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tableorder/internal/pricing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `
	id, restaurant_id, restaurant_name, table_number,
	contact_name, contact_email, contact_phone, payment_method,
	lines, subtotal_cents, tax_cents, total_cents,
	special_instructions, status, estimated_minutes,
	created_at, updated_at
`

// --------------------------------------------------
// Save
// --------------------------------------------------

func (r *PostgresRepository) Save(ctx context.Context, o *Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO NOTHING
	`,
		o.ID, o.Table.RestaurantID, o.Table.RestaurantName, o.Table.TableNumber,
		o.Contact.Name, o.Contact.Email, o.Contact.Phone, string(o.PaymentMethod),
		lines, pricing.Cents(o.Subtotal), pricing.Cents(o.Tax), pricing.Cents(o.Total),
		o.SpecialInstructions, string(o.Status), o.EstimatedMinutes,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order %d: %w", o.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicateOrder
	}
	return nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *PostgresRepository) Get(ctx context.Context, id int) (*Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return o, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// --------------------------------------------------
// Status
// --------------------------------------------------

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, from, to Status, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`, string(to), at, id, string(from))
	if err != nil {
		return fmt.Errorf("update order %d status: %w", id, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check order %d: %w", id, err)
	}
	if !exists {
		return ErrOrderNotFound
	}
	return ErrStatusConflict
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                    Order
		lines                []byte
		payment, status      string
		subtotal, tax, total int64
	)

	err := row.Scan(
		&o.ID, &o.Table.RestaurantID, &o.Table.RestaurantName, &o.Table.TableNumber,
		&o.Contact.Name, &o.Contact.Email, &o.Contact.Phone, &payment,
		&lines, &subtotal, &tax, &total,
		&o.SpecialInstructions, &status, &o.EstimatedMinutes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return nil, fmt.Errorf("decode order lines: %w", err)
	}
	o.PaymentMethod = PaymentMethod(payment)
	o.Status = Status(status)
	o.Subtotal = pricing.FromCents(subtotal)
	o.Tax = pricing.FromCents(tax)
	o.Total = pricing.FromCents(total)

	return &o, nil
}
