package models

import "time"

// BudgetLine is one entry of a budget's itemized breakdown, used for
// display (e.g. per-account overdraft interest).
type BudgetLine struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

// Budget is a per-(user, category, year, month) planned amount. At most one
// budget exists per key. A budget's planned amount never sits below its
// computed minimum.
type Budget struct {
	ID                  string       `json:"id"`
	UserID              string       `json:"user_id"`
	CategoryID          string       `json:"category_id"`
	Year                int          `json:"year"`
	Month               int          `json:"month"`
	AmountPlannedCents  int64        `json:"amount_planned_cents"`
	AmountActual        float64      `json:"amount_actual"` // legacy unit: reais, ×100 for cents
	MinimumPlannedCents int64        `json:"minimum_amount_planned_cents"`
	SourceType          SourceType   `json:"source_type"`
	SourceID            string       `json:"source_id,omitempty"`
	Description         string       `json:"description,omitempty"`
	IsProjected         bool         `json:"is_projected"`
	Breakdown           []BudgetLine `json:"breakdown,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// ActualCents returns the legacy reais actual converted to cents.
func (b *Budget) ActualCents() int64 {
	return ReaisToCents(b.AmountActual)
}

// DedupKey is the composite key budgets and synthetic projections are
// de-duplicated on: (year, month, category|"none", source type|"manual",
// source id|"none").
func (b *Budget) DedupKey() string {
	return dedupKey(b.Year, b.Month, b.CategoryID, string(b.SourceType), b.SourceID)
}

func dedupKey(year, month int, categoryID, sourceType, sourceID string) string {
	if categoryID == "" {
		categoryID = "none"
	}
	if sourceType == "" {
		sourceType = string(SourceManual)
	}
	if sourceID == "" {
		sourceID = "none"
	}
	return MonthKey(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)) +
		"|" + categoryID + "|" + sourceType + "|" + sourceID
}

// MinimumSource is one automatic obligation feeding a budget's minimum.
type MinimumSource struct {
	Type        SourceType `json:"type"`
	ID          string     `json:"id"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
}

// MinimumBudget is the floor below which a budget for a category/month may
// not be set, with the ordered list of sources that compose it.
type MinimumBudget struct {
	MinimumCents int64           `json:"minimum_cents"`
	Sources      []MinimumSource `json:"sources"`
}

// sourceTypeLabels maps source types to their user-facing explanation labels.
var sourceTypeLabels = map[SourceType]string{
	SourceRecurringTransaction: "recurring transactions",
	SourceGoal:                 "goals",
	SourceDebt:                 "debts",
	SourceInvestment:           "investments",
	SourceCreditCard:           "credit card bills",
}

// Explanation renders a human-readable, one-line-per-type account of the
// minimum: descriptions are comma-joined per type, in source order.
func (m *MinimumBudget) Explanation() string {
	if len(m.Sources) == 0 {
		return ""
	}

	type group struct {
		label string
		descs []string
		total int64
	}
	var order []SourceType
	groups := make(map[SourceType]*group)
	for _, src := range m.Sources {
		g, ok := groups[src.Type]
		if !ok {
			label := sourceTypeLabels[src.Type]
			if label == "" {
				label = string(src.Type)
			}
			g = &group{label: label}
			groups[src.Type] = g
			order = append(order, src.Type)
		}
		if src.Description != "" {
			g.descs = append(g.descs, src.Description)
		}
		g.total += src.AmountCents
	}

	out := ""
	for _, t := range order {
		g := groups[t]
		if out != "" {
			out += "\n"
		}
		out += g.label
		if len(g.descs) > 0 {
			out += ": " + joinComma(g.descs)
		}
		out += " (" + FormatCents(g.total) + ")"
	}
	return out
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
