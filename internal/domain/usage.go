// Package domain contains core business types and interfaces.
//
// This file defines per-shop usage state for quota metering.
package domain

import "time"

// MonthRolloverAfter is how long a billing month lasts. The counter is
// reset lazily on the first access past this boundary, not by a
// scheduled job.
const MonthRolloverAfter = 30 * 24 * time.Hour

// ShopUsage is the per-tenant usage record. One row per shop, created
// lazily on first access.
type ShopUsage struct {
	Shop            string // shop domain, the tenant key
	CurrentPlan     PlanID // empty when the shop has no active plan
	LabelsThisMonth int
	MonthStartDate  time.Time
	UpdatedAt       time.Time
}

// HasPlan returns true if the shop has an active plan.
func (u *ShopUsage) HasPlan() bool {
	return u.CurrentPlan != ""
}

// NeedsReset returns true when the billing month has elapsed and the
// counter must be reset before evaluating any request.
func (u *ShopUsage) NeedsReset(now time.Time) bool {
	return now.Sub(u.MonthStartDate) >= MonthRolloverAfter
}

// UsageResult is the outcome of a quota check. Rejections are outcomes,
// not errors: Allowed=false with NoPlan distinguishes "subscribe" from
// "upgrade" remediation.
type UsageResult struct {
	Allowed   bool
	NoPlan    bool // rejected because the shop has no active plan
	Remaining int  // labels left this month; UnlimitedLabels for uncapped plans
	Limit     int  // plan limit; 0 when no plan, UnlimitedLabels when uncapped
	Used      int  // counter value after the operation
}
