package application

import (
	"context"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
	"github.com/example/inventory-service/internal/domains/inventory/ports"
)

// Service orchestrates the inventory ledger use cases. It is deliberately
// keyed by product id only; catalog existence checks belong to the callers.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// GetByProduct returns the current stock level for a product.
func (s *Service) GetByProduct(ctx context.Context, productID int64) (*domain.StockLevel, error) {
	return s.repo.GetByProduct(ctx, productID)
}

// SetQuantity upserts an absolute on-hand value. Used for initial stocking
// and corrections, never by the order workflow.
func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) (*domain.StockLevel, error) {
	level, err := domain.NewStockLevel(productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Upsert(ctx, level)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Adjust applies a signed delta to a product's stock. A missing record is
// created at delta when the delta is non-negative; a decrement of a missing
// record or one that would go below zero fails.
func (s *Service) Adjust(ctx context.Context, productID int64, delta int) (*domain.StockLevel, error) {
	adjusted, err := s.repo.AdjustQuantity(ctx, productID, delta)
	if err != nil {
		return nil, mapError(err)
	}
	return adjusted, nil
}

// List returns every stock record.
func (s *Service) List(ctx context.Context) ([]*domain.StockLevel, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
