package mapper

import (
	"github.com/example/inventory-service/internal/domains/inventory/domain"
)

// StockLevel is the HTTP representation of one ledger entry.
type StockLevel struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// SetQuantity captures an absolute stock write.
type SetQuantity struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// Adjustment captures a signed delta applied against current stock.
type Adjustment struct {
	Delta *int `json:"delta" binding:"required"`
}

// FromDomainStockLevel maps a domain stock level into the transport shape.
func FromDomainStockLevel(s *domain.StockLevel) StockLevel {
	if s == nil {
		return StockLevel{}
	}
	return StockLevel{ProductID: s.ProductID, Quantity: s.Quantity}
}

// FromDomainStockLevels maps a list of stock levels, always returning a non-nil slice.
func FromDomainStockLevels(levels []*domain.StockLevel) []StockLevel {
	result := make([]StockLevel, 0, len(levels))
	for _, s := range levels {
		result = append(result, FromDomainStockLevel(s))
	}
	return result
}
