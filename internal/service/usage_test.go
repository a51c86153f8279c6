package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/store"
)

const testShop = "wagashi.myshopify.com"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestUsage builds a usage service over a fresh in-memory store with a
// controllable clock.
func newTestUsage(t *testing.T) (*usageService, *store.MemoryStore, *time.Time) {
	t.Helper()

	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	st := store.NewMemoryStore()
	st.Now = func() time.Time { return now }

	svc := NewUsageService(st, testLogger()).(*usageService)
	svc.now = func() time.Time { return now }

	return svc, st, &now
}

func TestCheckAndIncrement_RejectsNonPositiveCount(t *testing.T) {
	svc, _, _ := newTestUsage(t)

	for _, count := range []int{0, -5} {
		_, err := svc.CheckAndIncrement(context.Background(), testShop, count)
		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	}
}

func TestCheckAndIncrement_NoPlan(t *testing.T) {
	svc, _, _ := newTestUsage(t)

	result, err := svc.CheckAndIncrement(context.Background(), testShop, 10)
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.True(t, result.NoPlan)
	assert.Zero(t, result.Used)

	// The rejection must not have consumed quota.
	usage, err := svc.GetRemaining(context.Background(), testShop)
	require.NoError(t, err)
	assert.Zero(t, usage.Used)
}

func TestCheckAndIncrement_WithinLimit(t *testing.T) {
	svc, st, _ := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, st.SetPlan(ctx, testShop, domain.PlanUme))

	result, err := svc.CheckAndIncrement(ctx, testShop, 95)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 95, result.Used)
	assert.Equal(t, 5, result.Remaining)
	assert.Equal(t, 100, result.Limit)
}

func TestCheckAndIncrement_BatchOverLimitIsAllOrNothing(t *testing.T) {
	svc, st, _ := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, st.SetPlan(ctx, testShop, domain.PlanUme))

	_, err := svc.CheckAndIncrement(ctx, testShop, 95)
	require.NoError(t, err)

	// 95 used, batch of 10 against limit 100: fully rejected.
	result, err := svc.CheckAndIncrement(ctx, testShop, 10)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.False(t, result.NoPlan)
	assert.Equal(t, 95, result.Used)
	assert.Equal(t, 5, result.Remaining)

	// A batch of exactly the remaining 5 still fits.
	result, err = svc.CheckAndIncrement(ctx, testShop, 5)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 100, result.Used)
	assert.Zero(t, result.Remaining)
}

func TestCheckAndIncrement_UnlimitedPlan(t *testing.T) {
	svc, st, _ := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, st.SetPlan(ctx, testShop, domain.PlanMatsu))

	result, err := svc.CheckAndIncrement(ctx, testShop, 10000)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, domain.UnlimitedLabels, result.Remaining)
	assert.Equal(t, domain.UnlimitedLabels, result.Limit)
	// The counter still tracks for reporting.
	assert.Equal(t, 10000, result.Used)
}

func TestCheckAndIncrement_LazyMonthRollover(t *testing.T) {
	svc, st, now := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, st.SetPlan(ctx, testShop, domain.PlanUme))
	_, err := svc.CheckAndIncrement(ctx, testShop, 100)
	require.NoError(t, err)

	// Limit exhausted.
	result, err := svc.CheckAndIncrement(ctx, testShop, 1)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// 31 days later the first access resets the counter.
	*now = now.Add(31 * 24 * time.Hour)

	result, err = svc.CheckAndIncrement(ctx, testShop, 1)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 1, result.Used)
	assert.Equal(t, 99, result.Remaining)
}

func TestGetRemaining_DoesNotConsumeQuota(t *testing.T) {
	svc, st, _ := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, st.SetPlan(ctx, testShop, domain.PlanTake))
	_, err := svc.CheckAndIncrement(ctx, testShop, 100)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		usage, err := svc.GetRemaining(ctx, testShop)
		require.NoError(t, err)
		assert.Equal(t, 100, usage.Used)
		assert.Equal(t, 400, usage.Remaining)
		assert.Equal(t, 500, usage.Limit)
		assert.True(t, usage.Allowed)
	}
}

func TestGetRemaining_NoPlan(t *testing.T) {
	svc, _, _ := newTestUsage(t)

	usage, err := svc.GetRemaining(context.Background(), testShop)
	require.NoError(t, err)
	assert.True(t, usage.NoPlan)
	assert.False(t, usage.Allowed)
}

func TestUpdatePlan(t *testing.T) {
	svc, _, _ := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdatePlan(ctx, testShop, domain.PlanTake))

	usage, err := svc.GetRemaining(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 500, usage.Limit)

	// Unknown plans are rejected.
	err = svc.UpdatePlan(ctx, testShop, domain.PlanID("diamond_plan"))
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	// Empty clears the plan.
	require.NoError(t, svc.UpdatePlan(ctx, testShop, ""))
	usage, err = svc.GetRemaining(ctx, testShop)
	require.NoError(t, err)
	assert.True(t, usage.NoPlan)
}

func TestOffboard(t *testing.T) {
	svc, st, _ := newTestUsage(t)
	ctx := context.Background()

	require.NoError(t, st.SetPlan(ctx, testShop, domain.PlanUme))
	_, err := svc.CheckAndIncrement(ctx, testShop, 50)
	require.NoError(t, err)

	require.NoError(t, svc.Offboard(ctx, testShop))

	// A reinstalled shop starts over with no plan and a zero counter.
	usage, err := svc.GetRemaining(ctx, testShop)
	require.NoError(t, err)
	assert.True(t, usage.NoPlan)
	assert.Zero(t, usage.Used)
}
