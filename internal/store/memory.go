package store

import (
	"context"
	"sync"
	"time"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

// MemoryStore is an in-memory UsageStore for tests and development.
// A single mutex guards the map; the per-shop conditional increment is
// atomic under it.
type MemoryStore struct {
	mu    sync.Mutex
	shops map[string]*domain.ShopUsage
	// Now is the clock used for lazily created records; overridable in tests.
	Now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shops: make(map[string]*domain.ShopUsage),
		Now:   time.Now,
	}
}

// getOrCreateLocked returns the record for shop, creating it if absent.
// Caller holds mu.
func (s *MemoryStore) getOrCreateLocked(shop string) *domain.ShopUsage {
	if u, ok := s.shops[shop]; ok {
		return u
	}
	now := s.Now()
	u := &domain.ShopUsage{
		Shop:           shop,
		MonthStartDate: now,
		UpdatedAt:      now,
	}
	s.shops[shop] = u
	return u
}

func (s *MemoryStore) GetOrCreate(_ context.Context, shop string) (*domain.ShopUsage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *s.getOrCreateLocked(shop)
	return &u, nil
}

func (s *MemoryStore) SetPlan(_ context.Context, shop string, plan domain.PlanID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.getOrCreateLocked(shop)
	u.CurrentPlan = plan
	u.UpdatedAt = s.Now()
	return nil
}

func (s *MemoryStore) ResetMonth(_ context.Context, shop string, now time.Time) (*domain.ShopUsage, error) {
	const op = "store.memory.reset_month"

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.shops[shop]
	if !ok {
		return nil, domain.NotFound(op, "shop usage", shop)
	}
	u.LabelsThisMonth = 0
	u.MonthStartDate = now
	u.UpdatedAt = s.Now()

	copied := *u
	return &copied, nil
}

func (s *MemoryStore) Increment(_ context.Context, shop string, count int) (int, error) {
	const op = "store.memory.increment"

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.shops[shop]
	if !ok {
		return 0, domain.NotFound(op, "shop usage", shop)
	}
	u.LabelsThisMonth += count
	u.UpdatedAt = s.Now()
	return u.LabelsThisMonth, nil
}

func (s *MemoryStore) IncrementWithinLimit(_ context.Context, shop string, count, limit int) (int, bool, error) {
	const op = "store.memory.increment_within_limit"

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.shops[shop]
	if !ok {
		return 0, false, domain.NotFound(op, "shop usage", shop)
	}

	if u.LabelsThisMonth+count > limit {
		return u.LabelsThisMonth, false, nil
	}
	u.LabelsThisMonth += count
	u.UpdatedAt = s.Now()
	return u.LabelsThisMonth, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, shop string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.shops, shop)
	return nil
}
