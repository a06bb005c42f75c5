package services

import (
	"fmt"
	"sync"
)

// CartLine is a product and its quantity.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal is the line price in cents.
func (l CartLine) Subtotal() int {
	return l.Product.Price * l.Quantity
}

// CartService is the single shared cart of the dummy store.
type CartService struct {
	mu      sync.Mutex
	catalog Catalog
	lines   []CartLine
	coupon  string
}

func NewCartService(catalog Catalog) *CartService {
	return &CartService{catalog: catalog}
}

// Add adds quantity units of a product, merging with an existing line.
func (s *CartService) Add(slug string, quantity int) error {
	product, ok := s.catalog[slug]
	if !ok {
		return fmt.Errorf("unknown product %q", slug)
	}
	if quantity < 1 {
		return fmt.Errorf("invalid quantity %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].Product.Slug == slug {
			s.lines[i].Quantity += quantity
			return nil
		}
	}
	s.lines = append(s.lines, CartLine{Product: product, Quantity: quantity})
	return nil
}

// SetQuantity changes the quantity of the first line. Zero removes it.
func (s *CartService) SetQuantity(quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return fmt.Errorf("cart is empty")
	}
	if quantity < 1 {
		s.lines = s.lines[1:]
		return nil
	}
	s.lines[0].Quantity = quantity
	return nil
}

// Remove deletes the line at index i.
func (s *CartService) Remove(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.lines) {
		return fmt.Errorf("no cart line %d", i)
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	return nil
}

// Lines returns a copy of the cart lines.
func (s *CartService) Lines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.lines...)
}

// Total is the cart total in cents, with the coupon applied.
func (s *CartService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	if s.coupon != "" {
		total -= total / 10
	}
	return total
}

// ApplyCoupon sets a 10% coupon.
func (s *CartService) ApplyCoupon(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = code
}

func (s *CartService) Coupon() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coupon
}

// Clear empties the cart and drops the coupon.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.coupon = ""
}
