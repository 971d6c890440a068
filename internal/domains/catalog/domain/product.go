package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName    = errors.New("product name is required")
	ErrEmptySKU     = errors.New("product sku is required")
	ErrInvalidPrice = errors.New("product price must be greater than zero")
)

// Product represents a catalog entry. Its price is snapshotted onto order
// lines at order-creation time, so later price changes never rewrite
// historical orders.
type Product struct {
	ID          int64
	Name        string
	Description string
	SKU         string
	Price       decimal.Decimal
}

// NewProduct validates the invariants and builds a new Product. A blank SKU
// is replaced with a generated one.
func NewProduct(id int64, name, description, sku string, price decimal.Decimal) (*Product, error) {
	p := &Product{ID: id, Description: description}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sku) == "" {
		sku = GenerateSKU(name)
	}
	if err := p.AssignSKU(sku); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice mutates the list price ensuring it stays positive.
func (p *Product) Reprice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// AssignSKU sets the stock keeping unit. Uniqueness is enforced by the
// repository, not here.
func (p *Product) AssignSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return ErrEmptySKU
	}
	p.SKU = strings.ToUpper(sku)
	return nil
}

// GenerateSKU derives a readable unique-ish SKU from the product name plus a
// random suffix.
func GenerateSKU(name string) string {
	prefix := "PRD"
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		fields := strings.Fields(strings.ToUpper(trimmed))
		prefix = fields[0]
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
	}
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(suffix)))
}
