package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/example/inventory-service/internal/domains/catalog/domain"
)

func TestSave_ReturnsCloneNotAlias(t *testing.T) {
	repo := NewRepository()
	product, err := domain.NewProduct(0, "Widget", "", "WID-001", decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	saved.Name = "Tampered"

	stored, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, "Widget", stored.Name)
}
