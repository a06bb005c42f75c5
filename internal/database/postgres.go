// Package database opens the optional connection to the store's order
// database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/sequra/e2e-fixtures/internal/config"
)

const pingTimeout = 5 * time.Second

// Connect opens and checks a connection to the PostgreSQL database
func Connect(cfg *config.PostgresConfig) (*sql.DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("order database is not configured")
	}

	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The fixtures only read, a small pool is enough
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
