package models

import "time"

// Projection is a synthetic, non-persisted forecast entry. Projections exist
// only in memory for a single request/response cycle and are de-duplicated
// against persisted budgets by DedupKey.
type Projection struct {
	ID          string            `json:"id"`
	CategoryID  string            `json:"category_id,omitempty"`
	AmountCents int64             `json:"amount_cents"`
	SourceType  SourceType        `json:"source_type"`
	SourceID    string            `json:"source_id,omitempty"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// DedupKey matches Budget.DedupKey for reconciliation.
func (p *Projection) DedupKey() string {
	return dedupKey(p.Date.Year(), int(p.Date.Month()), p.CategoryID, string(p.SourceType), p.SourceID)
}

// MonthlyTotal aggregates signed projection amounts for one month.
type MonthlyTotal struct {
	IncomeCents   int64 `json:"income_cents"`
	ExpensesCents int64 `json:"expenses_cents"`
}

// Add folds a signed amount into the total: positive amounts accumulate as
// income, negative as expenses (kept negative).
func (t *MonthlyTotal) Add(amountCents int64) {
	if amountCents >= 0 {
		t.IncomeCents += amountCents
	} else {
		t.ExpensesCents += amountCents
	}
}

// ProjectionResult is the partial-failure aggregate of a projection run:
// successful projections plus a separate error list. A non-empty Errors
// slice with usable Projections is a valid, expected outcome.
type ProjectionResult struct {
	Projections   []Projection            `json:"projections"`
	MonthlyTotals map[string]MonthlyTotal `json:"monthly_totals"` // keyed "YYYY-MM"
	Errors        []string                `json:"errors"`
}

// MonthlyView is the reconciled per-window aggregate: persisted budgets,
// actual transaction totals and synthetic projections merged into one
// de-duplicated view. This is also the value memoized by the forecast cache.
type MonthlyView struct {
	Budgets       []*Budget               `json:"budgets"`
	MonthlyTotals map[string]MonthlyTotal `json:"monthly_totals"`
	Errors        []string                `json:"errors"`
}
