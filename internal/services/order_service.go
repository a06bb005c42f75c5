// Package services holds the state of the dummy store: catalog, cart,
// orders and the seQura plugin configuration.
package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sequra/e2e-fixtures/internal/models"
)

// Order errors
var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidOrder  = errors.New("invalid order")
)

// Order is an order placed in the dummy store.
type Order struct {
	ID          int64
	Product     string
	Country     string
	MerchantRef string
	Amount      int
	Status      models.OrderStatus
}

// OrderService keeps orders in memory. Orders paid with seQura start on
// hold and move to processing once their page has been viewed processAfter
// times, the way the IPN confirms them a little after checkout.
type OrderService struct {
	mu           sync.Mutex
	orders       map[int64]*Order
	views        map[int64]int
	nextID       int64
	processAfter int
	failNext     bool
}

// NewOrderService creates the order book. Order ids start at firstID.
func NewOrderService(firstID int64, processAfter int) *OrderService {
	return &OrderService{
		orders:       map[int64]*Order{},
		views:        map[int64]int{},
		nextID:       firstID,
		processAfter: processAfter,
	}
}

// PlaceOrder creates an order. After ForceFailure the next order fails.
func (s *OrderService) PlaceOrder(product, country, merchantRef string, amount int) (Order, error) {
	if product == "" || amount <= 0 {
		return Order{}, fmt.Errorf("%w: product %q amount %d", ErrInvalidOrder, product, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order := &Order{
		ID:          s.nextID,
		Product:     product,
		Country:     country,
		MerchantRef: merchantRef,
		Amount:      amount,
		Status:      models.OrderStatusOnHold,
	}
	if s.failNext {
		order.Status = models.OrderStatusFailed
		s.failNext = false
	}
	s.orders[order.ID] = order
	s.nextID++
	return *order, nil
}

// ForceFailure makes the next order fail.
func (s *OrderService) ForceFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

// Order returns an order without counting a view.
func (s *OrderService) Order(id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	return *order, nil
}

// Observe returns an order and counts a view of its page.
func (s *OrderService) Observe(id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	s.views[id]++
	if order.Status == models.OrderStatusOnHold && s.views[id] > s.processAfter {
		order.Status = models.OrderStatusProcessing
	}
	return *order, nil
}

// SetMerchantRef overrides the merchant reference an order was sent with.
func (s *OrderService) SetMerchantRef(id int64, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	order.MerchantRef = ref
	return nil
}

// Reset drops every order and the forced failure.
func (s *OrderService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = map[int64]*Order{}
	s.views = map[int64]int{}
	s.failNext = false
}
