package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

const testShop = "kissaten.myshopify.com"

func TestMemoryStore_GetOrCreate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, testShop, u.Shop)
	assert.Empty(t, u.CurrentPlan)
	assert.Zero(t, u.LabelsThisMonth)
	assert.False(t, u.MonthStartDate.IsZero())

	// Second call returns the same record, not a fresh one.
	_, err = s.Increment(ctx, testShop, 3)
	require.NoError(t, err)

	u, err = s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 3, u.LabelsThisMonth)
}

func TestMemoryStore_SetPlan(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetPlan(ctx, testShop, domain.PlanTake))

	u, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanTake, u.CurrentPlan)

	// Clearing the plan keeps the counter.
	_, err = s.Increment(ctx, testShop, 5)
	require.NoError(t, err)
	require.NoError(t, s.SetPlan(ctx, testShop, ""))

	u, err = s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Empty(t, u.CurrentPlan)
	assert.Equal(t, 5, u.LabelsThisMonth)
}

func TestMemoryStore_ResetMonth(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetPlan(ctx, testShop, domain.PlanUme))
	_, err := s.Increment(ctx, testShop, 42)
	require.NoError(t, err)

	newStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	u, err := s.ResetMonth(ctx, testShop, newStart)
	require.NoError(t, err)

	assert.Zero(t, u.LabelsThisMonth)
	assert.Equal(t, newStart, u.MonthStartDate)
	// The plan survives the rollover.
	assert.Equal(t, domain.PlanUme, u.CurrentPlan)
}

func TestMemoryStore_IncrementWithinLimit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)

	used, ok, err := s.IncrementWithinLimit(ctx, testShop, 95, 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 95, used)

	// 95 + 10 > 100: rejected, counter unchanged.
	used, ok, err = s.IncrementWithinLimit(ctx, testShop, 10, 100)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 95, used)

	// 95 + 5 == 100: exactly at the limit is allowed.
	used, ok, err = s.IncrementWithinLimit(ctx, testShop, 5, 100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 100, used)
}

func TestMemoryStore_IncrementWithinLimit_Concurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)

	// 50 goroutines racing for a limit of 100, 5 labels each: exactly 20
	// may win, and the counter must land exactly on the limit.
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.IncrementWithinLimit(ctx, testShop, 5, 100)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, wins)

	u, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Equal(t, 100, u.LabelsThisMonth)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Increment(ctx, testShop, 1)
	require.Error(t, err) // unknown shop

	_, err = s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, testShop))

	// A recreated shop starts from zero.
	u, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Zero(t, u.LabelsThisMonth)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)

	// Mutating the returned record must not leak into the store.
	u.LabelsThisMonth = 999

	fresh, err := s.GetOrCreate(ctx, testShop)
	require.NoError(t, err)
	assert.Zero(t, fresh.LabelsThisMonth)
}
