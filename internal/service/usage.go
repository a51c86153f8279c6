// Package service contains the business logic layer.
//
// This file implements the usage quota tracker: a per-shop monthly label
// counter with plan-based limits, atomic check-and-increment semantics,
// and lazy month rollover.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
	"github.com/shokunin-apps/label-shokunin/internal/metrics"
	"github.com/shokunin-apps/label-shokunin/internal/store"
)

// =============================================================================
// Interface Definition
// =============================================================================

// UsageService defines operations for metering label printing against a
// shop's plan quota.
type UsageService interface {
	// CheckAndIncrement atomically reserves count labels against the
	// shop's monthly quota. The batch fully succeeds (counter moves by
	// the full count) or fully fails (counter unchanged). Rejections are
	// outcomes carried in the result, not errors.
	CheckAndIncrement(ctx context.Context, shop string, count int) (domain.UsageResult, error)

	// GetRemaining reports the shop's current quota standing without
	// mutating the counter (beyond lazy month rollover).
	GetRemaining(ctx context.Context, shop string) (domain.UsageResult, error)

	// UpdatePlan records the shop's current subscription plan.
	UpdatePlan(ctx context.Context, shop string, plan domain.PlanID) error

	// Offboard removes the shop's usage record.
	Offboard(ctx context.Context, shop string) error
}

// =============================================================================
// Implementation
// =============================================================================

type usageService struct {
	store  store.UsageStore
	logger *slog.Logger
	now    func() time.Time
}

// NewUsageService creates a new UsageService.
func NewUsageService(st store.UsageStore, logger *slog.Logger) UsageService {
	return &usageService{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// loadCurrent returns the shop's usage record with the lazy month
// rollover applied: a counter past the 30-day boundary is reset before
// any request is evaluated.
func (s *usageService) loadCurrent(ctx context.Context, shop string) (*domain.ShopUsage, error) {
	u, err := s.store.GetOrCreate(ctx, shop)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if u.NeedsReset(now) {
		u, err = s.store.ResetMonth(ctx, shop, now)
		if err != nil {
			return nil, err
		}
		s.logger.Info("monthly usage counter reset",
			"shop", shop,
			"month_start", now,
		)
	}
	return u, nil
}

func (s *usageService) CheckAndIncrement(ctx context.Context, shop string, count int) (domain.UsageResult, error) {
	const op = "usage.check_and_increment"

	if count <= 0 {
		return domain.UsageResult{}, domain.Invalid(op, "label count must be positive")
	}

	u, err := s.loadCurrent(ctx, shop)
	if err != nil {
		return domain.UsageResult{}, err
	}

	plan, ok := domain.PlanByID(u.CurrentPlan)
	if !u.HasPlan() || !ok {
		metrics.QuotaRejections.WithLabelValues("no_plan").Inc()
		return domain.UsageResult{NoPlan: true, Used: u.LabelsThisMonth}, nil
	}

	// Unlimited plans skip the limit check entirely; the counter still
	// advances for reporting.
	if plan.Unlimited() {
		used, err := s.store.Increment(ctx, shop, count)
		if err != nil {
			return domain.UsageResult{}, err
		}
		metrics.LabelsPrinted.Add(float64(count))
		return domain.UsageResult{
			Allowed:   true,
			Remaining: domain.UnlimitedLabels,
			Limit:     domain.UnlimitedLabels,
			Used:      used,
		}, nil
	}

	used, applied, err := s.store.IncrementWithinLimit(ctx, shop, count, plan.LabelLimit)
	if err != nil {
		return domain.UsageResult{}, err
	}

	if !applied {
		remaining := plan.LabelLimit - used
		if remaining < 0 {
			remaining = 0
		}
		s.logger.Info("label quota exceeded",
			"shop", shop,
			"plan", plan.ID,
			"used", used,
			"requested", count,
			"limit", plan.LabelLimit,
		)
		metrics.QuotaRejections.WithLabelValues("limit_reached").Inc()
		return domain.UsageResult{
			Remaining: remaining,
			Limit:     plan.LabelLimit,
			Used:      used,
		}, nil
	}

	metrics.LabelsPrinted.Add(float64(count))
	return domain.UsageResult{
		Allowed:   true,
		Remaining: plan.LabelLimit - used,
		Limit:     plan.LabelLimit,
		Used:      used,
	}, nil
}

func (s *usageService) GetRemaining(ctx context.Context, shop string) (domain.UsageResult, error) {
	u, err := s.loadCurrent(ctx, shop)
	if err != nil {
		return domain.UsageResult{}, err
	}

	plan, ok := domain.PlanByID(u.CurrentPlan)
	if !u.HasPlan() || !ok {
		return domain.UsageResult{NoPlan: true, Used: u.LabelsThisMonth}, nil
	}

	if plan.Unlimited() {
		return domain.UsageResult{
			Allowed:   true,
			Remaining: domain.UnlimitedLabels,
			Limit:     domain.UnlimitedLabels,
			Used:      u.LabelsThisMonth,
		}, nil
	}

	remaining := plan.LabelLimit - u.LabelsThisMonth
	if remaining < 0 {
		remaining = 0
	}
	return domain.UsageResult{
		Allowed:   remaining > 0,
		Remaining: remaining,
		Limit:     plan.LabelLimit,
		Used:      u.LabelsThisMonth,
	}, nil
}

func (s *usageService) UpdatePlan(ctx context.Context, shop string, plan domain.PlanID) error {
	const op = "usage.update_plan"

	if plan != "" {
		if _, ok := domain.PlanByID(plan); !ok {
			return domain.Invalid(op, "unknown plan: "+string(plan))
		}
	}

	if err := s.store.SetPlan(ctx, shop, plan); err != nil {
		return err
	}
	s.logger.Info("shop plan updated", "shop", shop, "plan", plan)
	return nil
}

func (s *usageService) Offboard(ctx context.Context, shop string) error {
	if err := s.store.Delete(ctx, shop); err != nil {
		return err
	}
	s.logger.Info("shop usage record removed", "shop", shop)
	return nil
}
