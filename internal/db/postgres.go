package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(dsn string) *pgxpool.Pool {
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// schema is applied in order on every start; each statement is idempotent.
var schema = []string{
	// -------------------------------
	// STAFF
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS staff (
			id UUID PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'STAFF',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`,

	// -------------------------------
	// MENU DOCUMENTS
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS menu_documents (
			version INTEGER PRIMARY KEY,
			document JSONB NOT NULL,
			published_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`,

	// -------------------------------
	// ORDERS
	// -------------------------------
	`
		CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY CHECK (id BETWEEN 100000 AND 999999),
			restaurant_id VARCHAR(255) NOT NULL,
			restaurant_name VARCHAR(255) NOT NULL,
			table_number VARCHAR(50) NOT NULL,
			contact_name VARCHAR(255) NOT NULL,
			contact_email VARCHAR(255) NOT NULL,
			contact_phone VARCHAR(50) NOT NULL DEFAULT '',
			payment_method VARCHAR(20) NOT NULL,
			lines JSONB NOT NULL,
			subtotal_cents BIGINT NOT NULL,
			tax_cents BIGINT NOT NULL,
			total_cents BIGINT NOT NULL,
			special_instructions TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'received',
			estimated_minutes INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC)`,
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
