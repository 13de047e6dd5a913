package beverage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtledger/internal/infrastructure/csv"
	"courtledger/internal/shared/config"
	apperrors "courtledger/internal/shared/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	base := t.TempDir()
	store := csv.NewStore(config.StorageConfig{
		DataDir:           filepath.Join(base, "data"),
		LegacyDir:         base,
		LockAttempts:      2,
		LockDelayMs:       1,
		WriteRetries:      2,
		WriteRetryDelayMs: 1,
	}, nil)
	return NewService(csv.NewWaterItemRepository(store), csv.NewWaterSaleRepository(store), nil)
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 10, UnitPrice: 15000}))

	sale, err := svc.RecordSale(ctx, SaleInput{Date: "2025-08-15", ItemName: "aquafina", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), sale.UnitPrice, "priced from inventory, not caller")
	assert.Equal(t, int64(45000), sale.LineTotal)

	item, err := svc.FindItem(ctx, "Aquafina")
	require.NoError(t, err)
	assert.Equal(t, 7, item.Stock)
}

func TestRecordSaleStockGuard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 2, UnitPrice: 15000}))

	_, err := svc.RecordSale(ctx, SaleInput{Date: "2025-08-15", ItemName: "Aquafina", Quantity: 3})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	item, err := svc.FindItem(ctx, "Aquafina")
	require.NoError(t, err)
	assert.Equal(t, 2, item.Stock, "rejected sale leaves stock unchanged")

	sales, err := svc.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales, "no ledger row for a rejected sale")
}

func TestRecordSaleUnknownItem(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.RecordSale(context.Background(), SaleInput{Date: "2025-08-15", ItemName: "Lavie", Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDeleteSaleRecreditsStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 10, UnitPrice: 15000}))

	sale, err := svc.RecordSale(ctx, SaleInput{Date: "2025-08-15", ItemName: "Aquafina", Quantity: 4})
	require.NoError(t, err)

	ok, err := svc.DeleteSaleByID(ctx, sale.ID)
	require.NoError(t, err)
	require.True(t, ok)

	item, err := svc.FindItem(ctx, "Aquafina")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Stock, "sale exactly reversed")

	sales, err := svc.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestDeleteSaleExact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 10, UnitPrice: 15000}))
	_, err := svc.RecordSale(ctx, SaleInput{Date: "2025-08-15", ItemName: "Aquafina", Quantity: 4})
	require.NoError(t, err)

	ok, err := svc.DeleteSaleExact(ctx, "2025-08-15", "Aquafina", 3, 15000)
	require.NoError(t, err)
	assert.False(t, ok, "tuple must match exactly")

	ok, err = svc.DeleteSaleExact(ctx, "2025-08-15", "Aquafina", 4, 15000)
	require.NoError(t, err)
	require.True(t, ok)

	item, err := svc.FindItem(ctx, "Aquafina")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Stock)
}

func TestSalesForMonth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 10, UnitPrice: 15000}))
	_, err := svc.RecordSale(ctx, SaleInput{Date: "2025-08-15", ItemName: "Aquafina", Quantity: 2})
	require.NoError(t, err)
	_, err = svc.RecordSale(ctx, SaleInput{Date: "2025-09-01", ItemName: "Aquafina", Quantity: 1})
	require.NoError(t, err)

	sales, err := svc.SalesForMonth(ctx, "08-2025")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "2025-08-15", sales[0].Date)

	total, err := svc.MonthSalesTotal(ctx, "2025-08")
	require.NoError(t, err)
	assert.Equal(t, int64(30000), total)
}

func TestRestockNegativeDelta(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 10, UnitPrice: 15000}))
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: -4, UnitPrice: 15000}))

	item, err := svc.FindItem(ctx, "Aquafina")
	require.NoError(t, err)
	assert.Equal(t, 6, item.Stock)

	err = svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 0, UnitPrice: 15000})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	err = svc.Restock(ctx, RestockInput{Name: "Lavie", Quantity: -1, UnitPrice: 10000})
	require.Error(t, err, "negative delta cannot create an item")
}

func TestAggregateDaySales(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Aquafina", Quantity: 10, UnitPrice: 15000}))
	require.NoError(t, svc.Restock(ctx, RestockInput{Name: "Revive", Quantity: 10, UnitPrice: 20000}))
	for _, in := range []SaleInput{
		{Date: "2025-08-15", ItemName: "Aquafina", Quantity: 2},
		{Date: "2025-08-15", ItemName: "Revive", Quantity: 1},
		{Date: "2025-08-15", ItemName: "Aquafina", Quantity: 3},
		{Date: "2025-08-16", ItemName: "Revive", Quantity: 2},
	} {
		_, err := svc.RecordSale(ctx, in)
		require.NoError(t, err)
	}

	day, err := svc.DaySales(ctx, "2025-08-15")
	require.NoError(t, err)
	assert.Len(t, day, 3)

	aggr, err := svc.AggregateDaySales(ctx, "2025-08-15")
	require.NoError(t, err)
	require.Len(t, aggr, 2)
	assert.Equal(t, SaleAggregate{ItemName: "Aquafina", Quantity: 5, UnitPrice: 15000, Total: 75000}, aggr[0])
	assert.Equal(t, SaleAggregate{ItemName: "Revive", Quantity: 1, UnitPrice: 20000, Total: 20000}, aggr[1])
}
