package domain

import "errors"

var (
	ErrNegativeQuantity = errors.New("stock quantity cannot be negative")
	// ErrInvalidAdjustment is returned when a delta would drive the quantity
	// below zero or would decrement a record that does not exist.
	ErrInvalidAdjustment = errors.New("stock adjustment would reduce quantity below zero")
)

// StockLevel tracks the on-hand quantity for one product. The quantity is
// never negative; operations that would violate this fail instead of
// clamping.
type StockLevel struct {
	ProductID int64
	Quantity  int
}

// NewStockLevel builds a stock record enforcing the non-negative invariant.
func NewStockLevel(productID int64, quantity int) (*StockLevel, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return &StockLevel{ProductID: productID, Quantity: quantity}, nil
}

// SetQuantity replaces the absolute on-hand value.
func (s *StockLevel) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s.Quantity = quantity
	return nil
}

// Apply adds a signed delta to the quantity, failing when the result would be
// negative. Both decrements and restorations flow through here so the
// invariant is enforced in exactly one place.
func (s *StockLevel) Apply(delta int) error {
	next := s.Quantity + delta
	if next < 0 {
		return ErrInvalidAdjustment
	}
	s.Quantity = next
	return nil
}

// Covers reports whether the on-hand quantity satisfies a request.
func (s *StockLevel) Covers(requested int) bool {
	return s.Quantity >= requested
}
