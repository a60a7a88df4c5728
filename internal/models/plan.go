package models

import "time"

// GoalStatus / DebtStatus / InvestmentStatus are the lifecycle states of the
// obligation entities. Only active goals/investments and negotiated debts
// count toward the minimum budget and projections.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
)

type DebtStatus string

const (
	DebtStatusActive     DebtStatus = "active"
	DebtStatusNegotiated DebtStatus = "negotiated"
	DebtStatusSettled    DebtStatus = "settled"
)

type InvestmentStatus string

const (
	InvestmentStatusActive InvestmentStatus = "active"
	InvestmentStatusPaused InvestmentStatus = "paused"
	InvestmentStatusClosed InvestmentStatus = "closed"
)

// Goal is a savings goal with a recurring contribution.
type Goal struct {
	ID                       string     `json:"goal_id"`
	UserID                   string     `json:"user_id"`
	CategoryID               string     `json:"category_id"`
	Name                     string     `json:"name"`
	TargetCents              int64      `json:"target_cents"`
	MonthlyContributionCents int64      `json:"monthly_contribution_cents"`
	ContributionFrequency    Frequency  `json:"contribution_frequency,omitempty"`
	IncludeInPlan            bool       `json:"include_in_plan"`
	Status                   GoalStatus `json:"status"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// CountsTowardPlan reports whether the goal contributes to the minimum
// budget and to projections.
func (g *Goal) CountsTowardPlan() bool {
	return g.IncludeInPlan && g.Status == GoalStatusActive
}

// Debt is an owed balance with a recurring payment. Only negotiated debts
// contribute to the plan.
type Debt struct {
	ID                  string     `json:"debt_id"`
	UserID              string     `json:"user_id"`
	CategoryID          string     `json:"category_id"`
	Name                string     `json:"name"`
	TotalCents          int64      `json:"total_cents"`
	MonthlyPaymentCents int64      `json:"monthly_payment_cents"`
	PaymentFrequency    Frequency  `json:"payment_frequency,omitempty"`
	IncludeInPlan       bool       `json:"include_in_plan"`
	IsNegotiated        bool       `json:"is_negotiated"`
	Status              DebtStatus `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// CountsTowardPlan reports whether the debt contributes to the minimum
// budget and to projections. Non-negotiated debts never contribute.
func (d *Debt) CountsTowardPlan() bool {
	return d.IncludeInPlan && d.IsNegotiated && d.Status == DebtStatusNegotiated
}

// Investment is a recurring investment contribution.
type Investment struct {
	ID                       string           `json:"investment_id"`
	UserID                   string           `json:"user_id"`
	CategoryID               string           `json:"category_id"`
	Name                     string           `json:"name"`
	MonthlyContributionCents int64            `json:"monthly_contribution_cents"`
	ContributionFrequency    Frequency        `json:"contribution_frequency,omitempty"`
	IncludeInPlan            bool             `json:"include_in_plan"`
	Status                   InvestmentStatus `json:"status"`
	CreatedAt                time.Time        `json:"created_at"`
	UpdatedAt                time.Time        `json:"updated_at"`
}

// CountsTowardPlan reports whether the investment contributes to the minimum
// budget and to projections.
func (i *Investment) CountsTowardPlan() bool {
	return i.IncludeInPlan && i.Status == InvestmentStatusActive
}

// PlanEntry is a per-month override for a specific goal/debt/investment.
// When an entry exists for an entity in a month, its amount replaces — never
// adds to — that entity's generic monthly-equivalent contribution.
type PlanEntry struct {
	ID          string     `json:"entry_id"`
	UserID      string     `json:"user_id"`
	SourceType  SourceType `json:"source_type"` // goal, debt or investment
	SourceID    string     `json:"source_id"`
	CategoryID  string     `json:"category_id"`
	EntryMonth  time.Time  `json:"entry_month"` // first-of-month
	AmountCents int64      `json:"amount_cents"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Contribution is one entity's resolved contribution for a single month:
// either its plan-entry override or its default monthly equivalent.
type Contribution struct {
	SourceType  SourceType
	SourceID    string
	CategoryID  string
	AmountCents int64
	Description string
	Overridden  bool
}

// ResolveMonthlyContributions resolves the contribution of every eligible
// goal, debt and investment for the given month, applying plan-entry
// overrides. Each entity is resolved exactly once: entities with an entry
// for the month contribute the entry amount in full; the rest contribute
// their frequency-normalized default. Entities not counting toward the plan
// are skipped entirely. Results are ordered goals, then debts, then
// investments.
func ResolveMonthlyContributions(goals []*Goal, debts []*Debt, investments []*Investment, entries []*PlanEntry, month time.Time) []Contribution {
	monthStart := MonthStart(month)
	overrides := make(map[string]*PlanEntry, len(entries))
	for _, e := range entries {
		if MonthStart(e.EntryMonth).Equal(monthStart) {
			overrides[string(e.SourceType)+"/"+e.SourceID] = e
		}
	}

	resolve := func(sourceType SourceType, sourceID, categoryID, name string, defaultCents int64, f Frequency) Contribution {
		if e, ok := overrides[string(sourceType)+"/"+sourceID]; ok {
			desc := e.Description
			if desc == "" {
				desc = name
			}
			catID := e.CategoryID
			if catID == "" {
				catID = categoryID
			}
			return Contribution{
				SourceType:  sourceType,
				SourceID:    sourceID,
				CategoryID:  catID,
				AmountCents: e.AmountCents,
				Description: desc,
				Overridden:  true,
			}
		}
		return Contribution{
			SourceType:  sourceType,
			SourceID:    sourceID,
			CategoryID:  categoryID,
			AmountCents: MonthlyEquivalent(defaultCents, f),
			Description: name,
		}
	}

	var out []Contribution
	for _, g := range goals {
		if !g.CountsTowardPlan() {
			continue
		}
		out = append(out, resolve(SourceGoal, g.ID, g.CategoryID, g.Name, g.MonthlyContributionCents, g.ContributionFrequency))
	}
	for _, d := range debts {
		if !d.CountsTowardPlan() {
			continue
		}
		out = append(out, resolve(SourceDebt, d.ID, d.CategoryID, d.Name, d.MonthlyPaymentCents, d.PaymentFrequency))
	}
	for _, inv := range investments {
		if !inv.CountsTowardPlan() {
			continue
		}
		out = append(out, resolve(SourceInvestment, inv.ID, inv.CategoryID, inv.Name, inv.MonthlyContributionCents, inv.ContributionFrequency))
	}
	return out
}
