package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
	"github.com/example/inventory-service/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory stock ledger. The mutex makes AdjustQuantity an
// atomic read-modify-write, matching the conditional update the postgres
// adapter performs.
type Repository struct {
	mu     sync.Mutex
	levels map[int64]*domain.StockLevel
}

func NewRepository() *Repository {
	return &Repository{levels: map[int64]*domain.StockLevel{}}
}

func (r *Repository) GetByProduct(_ context.Context, productID int64) (*domain.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level, ok := r.levels[productID]
	if !ok {
		return nil, ports.ErrNoStockRecord
	}
	clone := *level
	return &clone, nil
}

func (r *Repository) Upsert(_ context.Context, level *domain.StockLevel) (*domain.StockLevel, error) {
	if level == nil {
		return nil, errors.New("stock level is nil")
	}
	if level.Quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *level
	r.levels[level.ProductID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) AdjustQuantity(_ context.Context, productID int64, delta int) (*domain.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level, ok := r.levels[productID]
	if !ok {
		if delta < 0 {
			return nil, domain.ErrInvalidAdjustment
		}
		created, err := domain.NewStockLevel(productID, delta)
		if err != nil {
			return nil, err
		}
		r.levels[productID] = created
		clone := *created
		return &clone, nil
	}
	if err := level.Apply(delta); err != nil {
		return nil, err
	}
	clone := *level
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.StockLevel, 0, len(r.levels))
	for _, level := range r.levels {
		clone := *level
		list = append(list, &clone)
	}
	return list, nil
}
