package application

import (
	"context"
	"errors"

	"github.com/example/inventory-service/internal/domains/catalog/domain"
	"github.com/example/inventory-service/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a new product, rejecting duplicate SKUs.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	candidate, err := domain.NewProduct(product.ID, product.Name, product.Description, product.SKU, product.Price)
	if err != nil {
		return nil, mapError(err)
	}
	if existing, err := s.repo.GetBySKU(ctx, candidate.SKU); err == nil && existing != nil {
		return nil, mapError(ports.ErrDuplicateSKU)
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, candidate)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateProduct overrides an existing product. A SKU change is re-checked for
// uniqueness against the rest of the catalog.
func (s *Service) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	existing, err := s.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.Rename(product.Name); err != nil {
		return nil, mapError(err)
	}
	if err := existing.Reprice(product.Price); err != nil {
		return nil, mapError(err)
	}
	existing.Description = product.Description
	if product.SKU != "" && product.SKU != existing.SKU {
		if other, err := s.repo.GetBySKU(ctx, product.SKU); err == nil && other != nil && other.ID != product.ID {
			return nil, mapError(ports.ErrDuplicateSKU)
		} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		if err := existing.AssignSKU(product.SKU); err != nil {
			return nil, mapError(err)
		}
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetProductBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

// FindByID satisfies the product lookup contract consumed by the order
// workflow.
func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
