// Package store provides the persistent per-shop usage record store.
//
// The store's one hard requirement is the conditional increment: the
// check-and-increment of a print batch must be a single atomic
// read-modify-write per shop, so two concurrent print requests can never
// both pass a check against a stale counter and jointly exceed the limit.
package store

import (
	"context"
	"time"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

// UsageStore is the per-tenant usage record store.
type UsageStore interface {
	// GetOrCreate returns the shop's usage record, creating it with a
	// zero counter and the current time as month start if absent.
	GetOrCreate(ctx context.Context, shop string) (*domain.ShopUsage, error)

	// SetPlan updates the shop's current plan, creating the record if
	// absent. An empty plan clears the subscription.
	SetPlan(ctx context.Context, shop string, plan domain.PlanID) error

	// ResetMonth zeroes the counter and restarts the billing month at now.
	ResetMonth(ctx context.Context, shop string, now time.Time) (*domain.ShopUsage, error)

	// Increment adds count to the counter unconditionally and returns the
	// new counter value. Used for unlimited plans.
	Increment(ctx context.Context, shop string, count int) (int, error)

	// IncrementWithinLimit adds count to the counter only if the
	// resulting value stays at or below limit, as one atomic operation.
	// It returns the counter value after the attempt and whether the
	// increment was applied; on rejection the stored counter is unchanged.
	IncrementWithinLimit(ctx context.Context, shop string, count, limit int) (used int, ok bool, err error)

	// Delete removes the shop's record. Used on tenant offboarding.
	Delete(ctx context.Context, shop string) error
}
