package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/example/inventory-service/internal/domains/catalog/adapters/memory"
	"github.com/example/inventory-service/internal/domains/catalog/domain"
	"github.com/example/inventory-service/internal/domains/catalog/ports"
)

func newProduct(t *testing.T, name, sku, price string) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(0, name, "", sku, decimal.RequireFromString(price))
	require.NoError(t, err)
	return product
}

func TestCreateProduct_PersistsAndAssignsID(t *testing.T) {
	svc := NewService(memory.NewRepository())

	saved, err := svc.CreateProduct(context.Background(), newProduct(t, "Widget", "WID-0001", "10.00"))
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	require.Equal(t, "WID-0001", saved.SKU)
	require.True(t, saved.Price.Equal(decimal.RequireFromString("10.00")))
}

func TestCreateProduct_GeneratesSKUWhenBlank(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product := &domain.Product{Name: "Widget", Price: decimal.NewFromInt(10)}
	saved, err := svc.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	require.NotEmpty(t, saved.SKU)
}

func TestCreateProduct_RejectsDuplicateSKU(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateProduct(context.Background(), newProduct(t, "Widget", "WID-0001", "10.00"))
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), newProduct(t, "Other Widget", "WID-0001", "12.00"))
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, ports.ErrDuplicateSKU)
}

func TestCreateProduct_RejectsNonPositivePrice(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product := &domain.Product{Name: "Widget", SKU: "WID-0001", Price: decimal.Zero}
	_, err := svc.CreateProduct(context.Background(), product)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdateProduct_ChangesNameAndPrice(t *testing.T) {
	svc := NewService(memory.NewRepository())

	saved, err := svc.CreateProduct(context.Background(), newProduct(t, "Widget", "WID-0001", "10.00"))
	require.NoError(t, err)

	saved.Name = "Improved Widget"
	saved.Price = decimal.RequireFromString("12.50")
	updated, err := svc.UpdateProduct(context.Background(), saved)
	require.NoError(t, err)
	require.Equal(t, "Improved Widget", updated.Name)
	require.True(t, updated.Price.Equal(decimal.RequireFromString("12.50")))
	require.Equal(t, "WID-0001", updated.SKU)
}

func TestUpdateProduct_RejectsSKUCollision(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateProduct(context.Background(), newProduct(t, "Widget", "WID-0001", "10.00"))
	require.NoError(t, err)
	other, err := svc.CreateProduct(context.Background(), newProduct(t, "Gadget", "GAD-0001", "4.50"))
	require.NoError(t, err)

	other.SKU = "WID-0001"
	_, err = svc.UpdateProduct(context.Background(), other)
	require.ErrorIs(t, err, ports.ErrDuplicateSKU)
}

func TestUpdateProduct_UnknownProduct(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product := newProduct(t, "Widget", "WID-0001", "10.00")
	product.ID = 42
	_, err := svc.UpdateProduct(context.Background(), product)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestGetProductBySKU(t *testing.T) {
	svc := NewService(memory.NewRepository())

	saved, err := svc.CreateProduct(context.Background(), newProduct(t, "Widget", "WID-0001", "10.00"))
	require.NoError(t, err)

	found, err := svc.GetProductBySKU(context.Background(), "WID-0001")
	require.NoError(t, err)
	require.Equal(t, saved.ID, found.ID)

	_, err = svc.GetProductBySKU(context.Background(), "NOPE-0001")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc := NewService(memory.NewRepository())

	saved, err := svc.CreateProduct(context.Background(), newProduct(t, "Widget", "WID-0001", "10.00"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), saved.ID))
	_, err = svc.GetProductByID(context.Background(), saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	require.ErrorIs(t, svc.DeleteProduct(context.Background(), saved.ID), ports.ErrNotFound)
}
