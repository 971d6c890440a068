package ports

import (
	"context"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
)

// Service exposes the inventory ledger use cases to adapters and to the
// order workflow.
type Service interface {
	GetByProduct(ctx context.Context, productID int64) (*domain.StockLevel, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) (*domain.StockLevel, error)
	Adjust(ctx context.Context, productID int64, delta int) (*domain.StockLevel, error)
	List(ctx context.Context) ([]*domain.StockLevel, error)
}
