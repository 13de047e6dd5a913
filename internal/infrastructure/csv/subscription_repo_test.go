package csv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtledger/internal/domain/subscription"
)

func mustSubscription(t *testing.T, month, name, hours string) *subscription.Subscription {
	t.Helper()
	h, err := subscription.ParseSessionHours(hours)
	require.NoError(t, err)
	sub, err := subscription.NewSubscription(month, name, "Court 1", 3, h, "Mon, Wed, Fri", "", 1150000)
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepositoryRoundTrip(t *testing.T) {
	repo := NewSubscriptionRepository(newTestStore(t))
	ctx := context.Background()

	sub := mustSubscription(t, "2025-08", "Anh Minh", "2 (07:00-09:00)")
	require.NoError(t, repo.Append(ctx, sub))

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	got := subs[0]
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, "Anh Minh", got.CustomerName)
	assert.Equal(t, "2 (07:00-09:00)", got.HoursPerSession.Raw)
	assert.Equal(t, 2, got.HoursPerSession.Hours)
	assert.Equal(t, sub.Price, got.Price)
	assert.Equal(t, sub.Multiplier, got.Multiplier)
}

func TestSubscriptionRepositoryListMonth(t *testing.T) {
	repo := NewSubscriptionRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, mustSubscription(t, "2025-07", "Minh", "1")))
	require.NoError(t, repo.Append(ctx, mustSubscription(t, "2025-08", "Minh", "1")))
	require.NoError(t, repo.Append(ctx, mustSubscription(t, "2025-08", "Lan", "2")))

	subs, err := repo.ListMonth(ctx, "2025-08")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestSubscriptionRepositoryUpdateByIDKeepsID(t *testing.T) {
	repo := NewSubscriptionRepository(newTestStore(t))
	ctx := context.Background()
	sub := mustSubscription(t, "2025-08", "Minh", "1")
	require.NoError(t, repo.Append(ctx, sub))

	updated := mustSubscription(t, "2025-08", "Minh", "2")
	ok, err := repo.UpdateByID(ctx, sub.ID, updated)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.FindByID(ctx, sub.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.HoursPerSession.Hours)
}

func TestSubscriptionRepositoryNaturalKeyOps(t *testing.T) {
	repo := NewSubscriptionRepository(newTestStore(t))
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, mustSubscription(t, "2025-08", "Minh", "1")))
	require.NoError(t, repo.Append(ctx, mustSubscription(t, "2025-08", "Minh", "2")))

	ok, err := repo.UpdateFirst(ctx, "2025-08", "Minh", mustSubscription(t, "2025-08", "Minh Nguyen", "3"))
	require.NoError(t, err)
	require.True(t, ok)

	subs, err := repo.ListMonth(ctx, "2025-08")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Minh Nguyen", subs[0].CustomerName, "only the first match rewritten")
	assert.Equal(t, "Minh", subs[1].CustomerName)

	ok, err = repo.DeleteFirst(ctx, "2025-08", "Minh")
	require.NoError(t, err)
	require.True(t, ok)

	subs, err = repo.ListMonth(ctx, "2025-08")
	require.NoError(t, err)
	require.Len(t, subs, 1)

	ok, err = repo.DeleteFirst(ctx, "2025-08", "Nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubscriptionRepositoryDeleteByID(t *testing.T) {
	repo := NewSubscriptionRepository(newTestStore(t))
	ctx := context.Background()
	sub := mustSubscription(t, "2025-08", "Minh", "1")
	require.NoError(t, repo.Append(ctx, sub))

	ok, err := repo.DeleteByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
