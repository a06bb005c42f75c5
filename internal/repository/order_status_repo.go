// Package repository reads order data straight from the store database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sequra/e2e-fixtures/internal/config"
)

// ErrOrderNotFound is returned when the status query matches no row.
var ErrOrderNotFound = errors.New("order not found")

// OrderStatusRepository runs the configured status query.
type OrderStatusRepository struct {
	db    *sql.DB
	query string
}

// NewOrderStatusRepository creates a repository running query, which takes
// the order number as $1. An empty query uses config.DefaultStatusQuery.
func NewOrderStatusRepository(db *sql.DB, query string) *OrderStatusRepository {
	if query == "" {
		query = config.DefaultStatusQuery
	}
	return &OrderStatusRepository{db: db, query: query}
}

// Status returns the raw status of an order
func (r *OrderStatusRepository) Status(ctx context.Context, orderNumber string) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx, r.query, orderNumber).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get order status: %w", err)
	}
	return status, nil
}
