//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
	"github.com/example/inventory-service/internal/domains/inventory/ports"
	"github.com/example/inventory-service/internal/platform/migrations"
)

func setupInventoryPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_UpsertAndGetByProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	level, err := domain.NewStockLevel(1, 10)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, level)
	require.NoError(t, err)

	fetched, err := repo.GetByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, fetched.Quantity)

	level.Quantity = 3
	_, err = repo.Upsert(ctx, level)
	require.NoError(t, err)
	fetched, err = repo.GetByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched.Quantity)

	_, err = repo.GetByProduct(ctx, 99)
	assert.ErrorIs(t, err, ports.ErrNoStockRecord)
}

func TestRepository_AdjustQuantityGuardsZeroFloor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	level, err := domain.NewStockLevel(1, 5)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, level)
	require.NoError(t, err)

	adjusted, err := repo.AdjustQuantity(ctx, 1, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, adjusted.Quantity)

	_, err = repo.AdjustQuantity(ctx, 1, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	fetched, err := repo.GetByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Quantity)
}

func TestRepository_AdjustQuantityMissingRecord(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	// An increment seeds the record at the delta.
	created, err := repo.AdjustQuantity(ctx, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, created.Quantity)

	// A decrement of a missing record is rejected.
	_, err = repo.AdjustQuantity(ctx, 8, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)
}

func TestRepository_AdjustQuantityUnderContention(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	level, err := domain.NewStockLevel(1, 20)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, level)
	require.NoError(t, err)

	const workers = 40
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := repo.AdjustQuantity(ctx, 1, -1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, succeeded)
	fetched, err := repo.GetByProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Quantity)
}
