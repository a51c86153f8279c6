package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shokunin-apps/label-shokunin/internal/domain"
)

// PostgresStore implements UsageStore on a shop_usage table. The
// conditional increment is expressed as a single UPDATE whose WHERE
// clause evaluates the limit inside the database, so concurrent batches
// from the same shop serialize on the row without application locking.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a UsageStore backed by the given database.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const getOrCreateSQL = `
INSERT INTO shop_usage (shop, current_plan, labels_this_month, month_start_date, updated_at)
VALUES ($1, '', 0, now(), now())
ON CONFLICT (shop) DO UPDATE SET shop = shop_usage.shop
RETURNING shop, current_plan, labels_this_month, month_start_date, updated_at`

func (s *PostgresStore) GetOrCreate(ctx context.Context, shop string) (*domain.ShopUsage, error) {
	const op = "store.usage.get_or_create"

	u, err := scanUsage(s.db.QueryRowContext(ctx, getOrCreateSQL, shop))
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load shop usage")
	}
	return u, nil
}

const setPlanSQL = `
INSERT INTO shop_usage (shop, current_plan, labels_this_month, month_start_date, updated_at)
VALUES ($1, $2, 0, now(), now())
ON CONFLICT (shop) DO UPDATE SET current_plan = EXCLUDED.current_plan, updated_at = now()`

func (s *PostgresStore) SetPlan(ctx context.Context, shop string, plan domain.PlanID) error {
	const op = "store.usage.set_plan"

	if _, err := s.db.ExecContext(ctx, setPlanSQL, shop, string(plan)); err != nil {
		return domain.Internal(err, op, "failed to update shop plan")
	}
	return nil
}

const resetMonthSQL = `
UPDATE shop_usage
SET labels_this_month = 0, month_start_date = $2, updated_at = now()
WHERE shop = $1
RETURNING shop, current_plan, labels_this_month, month_start_date, updated_at`

func (s *PostgresStore) ResetMonth(ctx context.Context, shop string, now time.Time) (*domain.ShopUsage, error) {
	const op = "store.usage.reset_month"

	u, err := scanUsage(s.db.QueryRowContext(ctx, resetMonthSQL, shop, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "shop usage", shop)
		}
		return nil, domain.Internal(err, op, "failed to reset shop usage")
	}
	return u, nil
}

const incrementSQL = `
UPDATE shop_usage
SET labels_this_month = labels_this_month + $2, updated_at = now()
WHERE shop = $1
RETURNING labels_this_month`

func (s *PostgresStore) Increment(ctx context.Context, shop string, count int) (int, error) {
	const op = "store.usage.increment"

	var used int
	err := s.db.QueryRowContext(ctx, incrementSQL, shop, count).Scan(&used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFound(op, "shop usage", shop)
		}
		return 0, domain.Internal(err, op, "failed to increment shop usage")
	}
	return used, nil
}

// The WHERE clause makes the limit check and the increment one atomic
// statement; a row that would exceed the limit is simply not updated.
const incrementWithinLimitSQL = `
UPDATE shop_usage
SET labels_this_month = labels_this_month + $2, updated_at = now()
WHERE shop = $1 AND labels_this_month + $2 <= $3
RETURNING labels_this_month`

const currentCountSQL = `
SELECT labels_this_month FROM shop_usage WHERE shop = $1`

func (s *PostgresStore) IncrementWithinLimit(ctx context.Context, shop string, count, limit int) (int, bool, error) {
	const op = "store.usage.increment_within_limit"

	var used int
	err := s.db.QueryRowContext(ctx, incrementWithinLimitSQL, shop, count, limit).Scan(&used)
	if err == nil {
		return used, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, domain.Internal(err, op, "failed to increment shop usage")
	}

	// Rejected (or the row is missing): report the stored counter.
	err = s.db.QueryRowContext(ctx, currentCountSQL, shop).Scan(&used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, domain.NotFound(op, "shop usage", shop)
		}
		return 0, false, domain.Internal(err, op, "failed to read shop usage")
	}
	return used, false, nil
}

const deleteSQL = `DELETE FROM shop_usage WHERE shop = $1`

func (s *PostgresStore) Delete(ctx context.Context, shop string) error {
	const op = "store.usage.delete"

	if _, err := s.db.ExecContext(ctx, deleteSQL, shop); err != nil {
		return domain.Internal(err, op, "failed to delete shop usage")
	}
	return nil
}

// scanUsage reads one shop_usage row.
func scanUsage(row *sql.Row) (*domain.ShopUsage, error) {
	var (
		u    domain.ShopUsage
		plan string
	)
	if err := row.Scan(&u.Shop, &plan, &u.LabelsThisMonth, &u.MonthStartDate, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.CurrentPlan = domain.PlanID(plan)
	return &u, nil
}
