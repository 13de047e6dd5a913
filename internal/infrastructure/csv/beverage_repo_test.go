package csv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtledger/internal/domain/beverage"
	apperrors "courtledger/internal/shared/errors"
)

func TestWaterItemRepositoryApplyDelta(t *testing.T) {
	repo := NewWaterItemRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.ApplyDelta(ctx, "Aquafina", 10, 15000))

	item, err := repo.Find(ctx, "aquafina")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 10, item.Stock)
	assert.Equal(t, int64(15000), item.UnitPrice)

	// restock merges on the case-insensitive name and updates the price
	require.NoError(t, repo.ApplyDelta(ctx, "AQUAFINA", 5, 16000))
	item, err = repo.Find(ctx, "Aquafina")
	require.NoError(t, err)
	assert.Equal(t, 15, item.Stock)
	assert.Equal(t, int64(16000), item.UnitPrice)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWaterItemRepositoryApplyDeltaGuards(t *testing.T) {
	repo := NewWaterItemRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.ApplyDelta(ctx, "Aquafina", 3, 15000))

	err := repo.ApplyDelta(ctx, "Aquafina", -4, 15000)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	item, findErr := repo.Find(ctx, "Aquafina")
	require.NoError(t, findErr)
	assert.Equal(t, 3, item.Stock, "failed delta leaves stock unchanged")

	err = repo.ApplyDelta(ctx, "Lavie", -1, 10000)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err), "cannot create an item with a negative delta")
}

func TestWaterItemRepositoryRename(t *testing.T) {
	repo := NewWaterItemRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.ApplyDelta(ctx, "Aquafina", 10, 15000))
	require.NoError(t, repo.ApplyDelta(ctx, "Lavie", 4, 12000))

	ok, err := repo.Rename(ctx, "Aquafina", "Aquafina 500ml", 17000)
	require.NoError(t, err)
	require.True(t, ok)

	item, err := repo.Find(ctx, "Aquafina 500ml")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 10, item.Stock, "stock survives rename")
	assert.Equal(t, int64(17000), item.UnitPrice)

	_, err = repo.Rename(ctx, "Aquafina 500ml", "lavie", 17000)
	require.Error(t, err, "rename onto an existing name conflicts")
	assert.True(t, apperrors.IsConflictError(err))

	ok, err = repo.Rename(ctx, "Missing", "Whatever", 1000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWaterItemRepositoryDelete(t *testing.T) {
	repo := NewWaterItemRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.ApplyDelta(ctx, "Aquafina", 10, 15000))

	ok, err := repo.Delete(ctx, "aquafina")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, "aquafina")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWaterSaleRepository(t *testing.T) {
	repo := NewWaterSaleRepository(newTestStore(t))
	ctx := context.Background()

	sale, err := beverage.NewWaterSale("2025-08-15", "Aquafina", 3, 15000)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, sale))

	sales, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)
	assert.Equal(t, int64(45000), sales[0].LineTotal)

	removed, ok, err := repo.DeleteByID(ctx, sale.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, removed.Quantity)

	sales, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestWaterSaleRepositoryDeleteExact(t *testing.T) {
	repo := NewWaterSaleRepository(newTestStore(t))
	ctx := context.Background()

	sale, err := beverage.NewWaterSale("2025-08-15", "Aquafina", 3, 15000)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, sale))

	ok, err := repo.DeleteExact(ctx, "2025-08-15", "Aquafina", 2, 15000)
	require.NoError(t, err)
	assert.False(t, ok, "quantity mismatch keeps the row")

	ok, err = repo.DeleteExact(ctx, "2025-08-15", "aquafina", 3, 15000)
	require.NoError(t, err)
	assert.True(t, ok, "name match is case-insensitive")
}
