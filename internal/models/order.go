package models

import (
	"errors"
	"fmt"
	"strings"
)

// OrderStatus is an order state as rendered by the store back office.
type OrderStatus string

// Order statuses used by the storefront integrations
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusFailed     OrderStatus = "failed"
)

// Validation errors
var (
	ErrEmptyOrderNumber = errors.New("order number cannot be empty")
	ErrEmptyOrderStatus = errors.New("order status cannot be empty")
	ErrInvalidWaitFor   = errors.New("wait budget must be at least one second")
)

// OrderStatusExpectation describes an order that should reach Status within
// WaitFor attempts.
type OrderStatusExpectation struct {
	OrderNumber string
	Status      OrderStatus
	// FromStatus is the status the order is expected to leave. Optional.
	FromStatus OrderStatus
	// WaitFor is the number of checks, one per second of budget.
	WaitFor int
}

// Validate checks that every field the status wait relies on is present.
func (e OrderStatusExpectation) Validate() error {
	if strings.TrimSpace(e.OrderNumber) == "" {
		return ErrEmptyOrderNumber
	}
	if e.Status == "" {
		return ErrEmptyOrderStatus
	}
	if e.WaitFor < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWaitFor, e.WaitFor)
	}
	return nil
}

// Matches reports whether a status read from the store equals s, ignoring
// case and surrounding whitespace.
func (s OrderStatus) Matches(actual string) bool {
	return strings.EqualFold(strings.TrimSpace(actual), string(s))
}
