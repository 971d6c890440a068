package ports

import (
	"context"
	"errors"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
)

// ErrNoStockRecord is returned when a product has no inventory row yet.
var ErrNoStockRecord = errors.New("no stock record for product")

// Repository persists per-product stock levels. AdjustQuantity must be an
// atomic read-modify-write: two concurrent decrements for the same product
// may not both observe the same starting quantity.
type Repository interface {
	GetByProduct(ctx context.Context, productID int64) (*domain.StockLevel, error)
	Upsert(ctx context.Context, level *domain.StockLevel) (*domain.StockLevel, error)
	// AdjustQuantity applies a signed delta conditionally: the store rejects
	// the write when the resulting quantity would be negative, returning
	// domain.ErrInvalidAdjustment.
	AdjustQuantity(ctx context.Context, productID int64, delta int) (*domain.StockLevel, error)
	List(ctx context.Context) ([]*domain.StockLevel, error)
}
