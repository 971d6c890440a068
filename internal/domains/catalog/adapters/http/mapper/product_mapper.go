package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/example/inventory-service/internal/domains/catalog/domain"
)

// MutationProduct captures inbound payloads for create/update flows. SKU is
// optional on create; a blank value gets a generated one.
type MutationProduct struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Price       decimal.Decimal `json:"price"`
}

// Product is the HTTP representation of a catalog entry.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
}

// ToDomainProduct maps an inbound payload into the domain aggregate.
func ToDomainProduct(input MutationProduct) (*domain.Product, error) {
	return domain.NewProduct(input.ID, input.Name, input.Description, input.SKU, input.Price)
}

// FromDomainProduct maps a domain aggregate into the transport representation.
func FromDomainProduct(p *domain.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       p.Price,
	}
}

// FromDomainProducts maps a list of products, always returning a non-nil slice.
func FromDomainProducts(products []*domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		result = append(result, FromDomainProduct(p))
	}
	return result
}
