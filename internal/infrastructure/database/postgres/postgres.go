// Package postgres opens the catalog database and keeps its schema current.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

// Drivers that may be passed to Open.
const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

// Open connects and pings the database.
func Open(ctx context.Context, driver, url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is not set")
	}
	if driver != DriverPgx && driver != DriverPq {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS catalog_product (
		product_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		price NUMERIC(12,2),
		original_price NUMERIC(12,2),
		discount_percentage INT NOT NULL DEFAULT 0,
		image_url TEXT,
		status SMALLINT NOT NULL DEFAULT 0,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		is_new BOOLEAN NOT NULL DEFAULT FALSE,
		date_created TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS catalog_product_category_idx ON catalog_product (category)`,
}

// EnsureSchema creates the catalog tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
