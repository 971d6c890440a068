package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
)

func TestAdjustQuantity_NeverOversellsUnderContention(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Upsert(context.Background(), &domain.StockLevel{ProductID: 1, Quantity: 50})
	require.NoError(t, err)

	const workers = 100
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.AdjustQuantity(context.Background(), 1, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 50, succeeded)
	level, err := repo.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, level.Quantity)
}

func TestUpsert_ReturnsCloneNotAlias(t *testing.T) {
	repo := NewRepository()

	saved, err := repo.Upsert(context.Background(), &domain.StockLevel{ProductID: 7, Quantity: 3})
	require.NoError(t, err)
	saved.Quantity = 999

	stored, err := repo.GetByProduct(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 3, stored.Quantity)
}

func TestAdjustQuantity_ReturnsCloneNotAlias(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Upsert(context.Background(), &domain.StockLevel{ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	level, err := repo.AdjustQuantity(context.Background(), 1, -1)
	require.NoError(t, err)
	level.Quantity = 999

	stored, err := repo.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 4, stored.Quantity)
}
