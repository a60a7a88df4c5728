package forecast

import (
	"fmt"
	"sort"

	"github.com/bobmcallan/plano/internal/models"
)

// applyActuals folds the window's actual transactions into the persisted
// budgets: each budget receives the absolute net flow of its category for
// its month, in the legacy reais unit.
func applyActuals(budgets []*models.Budget, txs []*models.Transaction) {
	if len(budgets) == 0 || len(txs) == 0 {
		return
	}

	nets := make(map[string]int64)
	for _, tx := range txs {
		if tx.CategoryID == "" {
			continue
		}
		nets[models.MonthKey(tx.Date)+"|"+tx.CategoryID] += tx.AmountCents
	}

	for _, b := range budgets {
		monthKey := fmt.Sprintf("%04d-%02d", b.Year, b.Month)
		net := nets[monthKey+"|"+b.CategoryID]
		if net < 0 {
			net = -net
		}
		b.AmountActual = models.CentsToReais(net)
	}
}

// mergeProjections reconciles projections against persisted budgets: a
// projection whose dedup key collides with a budget (or an earlier
// projection) is dropped; survivors become synthetic projected budgets.
// Persisted budgets always win. Output is ordered by month, persisted
// before projected within a month.
func mergeProjections(userID string, budgets []*models.Budget, projections []models.Projection) []*models.Budget {
	seen := make(map[string]bool, len(budgets))
	merged := make([]*models.Budget, 0, len(budgets)+len(projections))
	for _, b := range budgets {
		seen[b.DedupKey()] = true
		merged = append(merged, b)
	}

	for i := range projections {
		p := &projections[i]
		key := p.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true

		amount := p.AmountCents
		if amount < 0 {
			amount = -amount
		}
		merged = append(merged, &models.Budget{
			ID:                 p.ID,
			UserID:             userID,
			CategoryID:         p.CategoryID,
			Year:               p.Date.Year(),
			Month:              int(p.Date.Month()),
			AmountPlannedCents: amount,
			SourceType:         p.SourceType,
			SourceID:           p.SourceID,
			Description:        p.Description,
			IsProjected:        true,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return !a.IsProjected && b.IsProjected
	})
	return merged
}
