package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoMenuDocument = errors.New("no menu published")

// PostgresSource keeps versioned menu documents; the highest version is live.
type PostgresSource struct {
	db *pgxpool.Pool
}

func NewPostgresSource(db *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: db}
}

// --------------------------------------------------
// LOAD LATEST MENU
// --------------------------------------------------

func (s *PostgresSource) Load(ctx context.Context) ([]Item, error) {
	var raw []byte

	err := s.db.QueryRow(ctx, `
		SELECT document
		FROM menu_documents
		ORDER BY version DESC
		LIMIT 1
	`).Scan(&raw)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoMenuDocument
		}
		return nil, fmt.Errorf("load menu document: %w", err)
	}

	var doc MenuDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode menu document: %w", err)
	}
	return doc.Items, nil
}

// --------------------------------------------------
// PUBLISH MENU (NEW VERSION)
// --------------------------------------------------

func (s *PostgresSource) Publish(ctx context.Context, items []Item) (int, error) {
	if err := ValidateItems(items); err != nil {
		return 0, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var version int
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0) + 1 FROM menu_documents
	`).Scan(&version); err != nil {
		return 0, err
	}

	raw, err := json.Marshal(MenuDocument{Version: strconv.Itoa(version), Items: items})
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO menu_documents (version, document)
		VALUES ($1, $2)
	`, version, raw); err != nil {
		return 0, fmt.Errorf("insert menu version %d: %w", version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return version, nil
}
