// Package domain contains core business types and interfaces.
//
// This file defines the subscription plan catalog. Plans gate printing by
// a monthly label quota; the catalog is static configuration.
package domain

// PlanID identifies a subscription plan.
type PlanID string

const (
	// PlanUme (梅プラン) is the entry-level plan.
	PlanUme PlanID = "ume_plan"
	// PlanTake (竹プラン) is the standard plan.
	PlanTake PlanID = "take_plan"
	// PlanMatsu (松プラン) is the premium plan with unlimited printing.
	PlanMatsu PlanID = "matsu_plan"
)

// UnlimitedLabels is the sentinel limit for plans without a monthly cap.
// All quota comparisons must special-case it before arithmetic.
const UnlimitedLabels = -1

// Plan describes one subscription plan.
type Plan struct {
	ID          PlanID
	Name        string // Japanese display name
	NameEn      string
	AmountJPY   int64 // monthly price in yen
	LabelLimit  int   // labels per month, UnlimitedLabels for no cap
	Description string
}

// Unlimited returns true for plans without a monthly label cap.
func (p Plan) Unlimited() bool {
	return p.LabelLimit == UnlimitedLabels
}

// plans is the static plan catalog.
var plans = map[PlanID]Plan{
	PlanUme: {
		ID: PlanUme, Name: "梅プラン", NameEn: "Ume Plan",
		AmountJPY: 980, LabelLimit: 100,
		Description: "月100枚までのラベル印刷",
	},
	PlanTake: {
		ID: PlanTake, Name: "竹プラン", NameEn: "Take Plan",
		AmountJPY: 1980, LabelLimit: 500,
		Description: "月500枚までのラベル印刷（人気No.1）",
	},
	PlanMatsu: {
		ID: PlanMatsu, Name: "松プラン", NameEn: "Matsu Plan",
		AmountJPY: 4980, LabelLimit: UnlimitedLabels,
		Description: "無制限のラベル印刷",
	},
}

// PlanByID looks up a plan. The second return value is false for unknown
// or empty IDs.
func PlanByID(id PlanID) (Plan, bool) {
	p, ok := plans[id]
	return p, ok
}

// Plans returns all plans in catalog order (ume, take, matsu).
func Plans() []Plan {
	return []Plan{plans[PlanUme], plans[PlanTake], plans[PlanMatsu]}
}
