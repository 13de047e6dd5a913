package booking

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

func testPricing() config.PricingConfig {
	return config.PricingConfig{
		PlayRateDay:         100000,
		PlayRateEvening:     120000,
		PracticeRateDay:     60000,
		PracticeRateEvening: 80000,
		LightSurcharge:      20000,
		EveningStartHour:    17,
		OffPeakBeforeHour:   6,
		OffPeakFromHour:     22,
		PriceWarnCeiling:    5000000,
	}
}

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
	return NewService(csv.NewBookingRepository(store), testPricing(), nil)
}

func appendInput(date, court, slot string, price int64) AppendInput {
	return AppendInput{Date: date, Court: court, Slot: slot, Price: price, Activity: "Play", Person: "Nhom A"}
}

func TestAppendRejectsOverlap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-8h", 300000))
	require.NoError(t, err)

	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 1", "7h-9h", 200000))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))

	// same slot on the other court is fine
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 2", "7h-9h", 200000))
	assert.NoError(t, err)

	// adjacent slots share a boundary hour without conflict
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 1", "8h-10h", 200000))
	assert.NoError(t, err)
}

func TestAppendBypassOverlap(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-8h", 300000))
	require.NoError(t, err)

	in := appendInput("2025-08-15", "Court 1", "5h-8h", 300000)
	in.BypassOverlap = true
	_, err = svc.Append(ctx, in)
	assert.NoError(t, err)

	recs, err := svc.GetAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestUpdateRecheckExcludesSelf(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 1", "8h-10h", 200000))
	require.NoError(t, err)

	// shifting the first slot inside its own range conflicts with nobody
	ok, err := svc.Update(ctx, UpdateInput{
		OldDate: "2025-08-15", OldCourt: "Court 1", OldSlot: "5h-7h", OldPrice: 200000,
		Date: "2025-08-15", Court: "Court 1", Slot: "6h-8h", Price: 200000,
		Activity: "Play", RecheckOverlap: true,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	// but stretching into the second booking does
	_, err = svc.Update(ctx, UpdateInput{
		OldDate: "2025-08-15", OldCourt: "Court 1", OldSlot: "6h-8h", OldPrice: 200000,
		Date: "2025-08-15", Court: "Court 1", Slot: "7h-9h", Price: 200000,
		Activity: "Play", RecheckOverlap: true,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
}

func TestUpdateWithoutRecheckSkipsScan(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 1", "8h-10h", 200000))
	require.NoError(t, err)

	ok, err := svc.Update(ctx, UpdateInput{
		OldDate: "2025-08-15", OldCourt: "Court 1", OldSlot: "5h-7h", OldPrice: 200000,
		Date: "2025-08-15", Court: "Court 1", Slot: "8h-10h", Price: 200000,
		Activity: "Play",
	})
	require.NoError(t, err)
	assert.True(t, ok, "re-check is caller controlled")
}

func TestUpdateByID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	b, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)

	ok, err := svc.UpdateByID(ctx, b.ID, UpdateInput{
		Date: "2025-08-16", Court: "Court 2", Slot: "9h-11h", Price: 240000, Activity: "Practice",
	})
	require.NoError(t, err)
	require.True(t, ok)

	got, err := svc.repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-08-16", got.Date)
	assert.Equal(t, "9h-11h", got.SlotText)

	ok, err = svc.UpdateByID(ctx, "bk_missing00000", UpdateInput{
		Date: "2025-08-16", Court: "Court 2", Slot: "9h-11h", Price: 240000,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUndoReversesAppend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)
	require.Equal(t, 1, svc.UndoDepth())

	label, err := svc.Undo(ctx)
	require.NoError(t, err)
	assert.Contains(t, label, "append")

	recs, err := svc.GetAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, 0, svc.UndoDepth())
}

func TestUndoReversesDelete(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	b, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)

	ok, err := svc.DeleteByID(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	label, err := svc.Undo(ctx)
	require.NoError(t, err)
	assert.Contains(t, label, "delete")

	got, err := svc.repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "deleted booking restored with its ID")
	assert.Equal(t, "5h-7h", got.SlotText)
}

func TestUndoIsLIFO(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-16", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)

	label, err := svc.Undo(ctx)
	require.NoError(t, err)
	assert.Contains(t, label, "2025-08-16", "newest mutation reversed first")

	label, err = svc.Undo(ctx)
	require.NoError(t, err)
	assert.Contains(t, label, "2025-08-15")

	_, err = svc.Undo(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestDailyTotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 2", "5h-7h", 240000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-16", "Court 1", "5h-7h", 100000))
	require.NoError(t, err)

	total, err := svc.DailyTotal(ctx, "2025-08-15")
	require.NoError(t, err)
	assert.Equal(t, int64(440000), total)

	total, err = svc.DailyTotal(ctx, "2025-08-20")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	byCourt, err := svc.DailyBreakdownByCourt(ctx, "2025-08-15")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Court 1": 200000, "Court 2": 240000}, byCourt)
}

func TestGroupedByDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.Append(ctx, appendInput("2025-08-16", "Court 1", "5h-7h", 100000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 1", "5h-7h", 200000))
	require.NoError(t, err)
	_, err = svc.Append(ctx, appendInput("2025-08-15", "Court 2", "8h-10h", 240000))
	require.NoError(t, err)

	dates, groups, err := svc.GroupedByDate(ctx, "2025-08")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-08-15", "2025-08-16"}, dates)
	assert.Len(t, groups["2025-08-15"], 2)
	assert.Len(t, groups["2025-08-16"], 1)
}

func TestPriceHelpers(t *testing.T) {
	svc := newTestService(t)

	suggest, err := svc.SuggestPrice("Play", "18h-20h")
	require.NoError(t, err)
	assert.Equal(t, int64(120000), suggest)

	price, err := svc.SlotPrice("Practice", "5h-7h", true)
	require.NoError(t, err)
	assert.Equal(t, int64(160000), price)

	_, err = svc.SuggestPrice("Play", "bad")
	assert.Error(t, err)
}
