package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/inventory-service/internal/domains/inventory/adapters/memory"
	"github.com/example/inventory-service/internal/domains/inventory/domain"
	"github.com/example/inventory-service/internal/domains/inventory/ports"
)

func TestSetQuantity_UpsertsAbsoluteValue(t *testing.T) {
	svc := NewService(memory.NewRepository())

	level, err := svc.SetQuantity(context.Background(), 1, 25)
	require.NoError(t, err)
	require.Equal(t, 25, level.Quantity)

	level, err = svc.SetQuantity(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Equal(t, 3, level.Quantity)
}

func TestSetQuantity_RejectsNegative(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SetQuantity(context.Background(), 1, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativeQuantity)
}

func TestAdjust_AppliesSignedDelta(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SetQuantity(context.Background(), 1, 10)
	require.NoError(t, err)

	level, err := svc.Adjust(context.Background(), 1, -4)
	require.NoError(t, err)
	require.Equal(t, 6, level.Quantity)

	level, err = svc.Adjust(context.Background(), 1, 4)
	require.NoError(t, err)
	require.Equal(t, 10, level.Quantity)
}

func TestAdjust_ToExactlyZeroIsAllowed(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SetQuantity(context.Background(), 1, 5)
	require.NoError(t, err)

	level, err := svc.Adjust(context.Background(), 1, -5)
	require.NoError(t, err)
	require.Equal(t, 0, level.Quantity)
}

func TestAdjust_BelowZeroFailsWithoutChange(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SetQuantity(context.Background(), 1, 5)
	require.NoError(t, err)

	_, err = svc.Adjust(context.Background(), 1, -6)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	level, err := svc.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 5, level.Quantity)
}

func TestAdjust_MissingRecord(t *testing.T) {
	svc := NewService(memory.NewRepository())

	// An increment seeds a fresh record at the delta.
	level, err := svc.Adjust(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Equal(t, 3, level.Quantity)

	// A decrement of a missing record is rejected.
	_, err = svc.Adjust(context.Background(), 8, -1)
	require.ErrorIs(t, err, domain.ErrInvalidAdjustment)
}

func TestGetByProduct_MissingRecord(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.GetByProduct(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrNoStockRecord)
}

func TestList_ReturnsEveryRecord(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SetQuantity(context.Background(), 1, 10)
	require.NoError(t, err)
	_, err = svc.SetQuantity(context.Background(), 2, 0)
	require.NoError(t, err)

	levels, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
}
