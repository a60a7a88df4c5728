package budget

import (
	"context"
	"time"

	"github.com/bobmcallan/plano/internal/models"
)

// MinimumBudget computes the floor for a (category, year, month) budget by
// summing every automatic obligation bound to the category: recurring
// transactions first, then goal, debt and investment contributions with
// plan-entry overrides applied. A failing source is logged and contributes
// zero rather than failing the whole computation.
func (s *Service) MinimumBudget(ctx context.Context, userID, categoryID string, year, month int) (*models.MinimumBudget, error) {
	minimum := &models.MinimumBudget{}

	for _, src := range s.recurringTransactionSources(ctx, userID, categoryID) {
		minimum.Sources = append(minimum.Sources, src)
		minimum.MinimumCents += src.AmountCents
	}
	for _, src := range s.contributionSources(ctx, userID, categoryID, year, month) {
		minimum.Sources = append(minimum.Sources, src)
		minimum.MinimumCents += src.AmountCents
	}
	for _, src := range s.creditCardSources(ctx, userID, categoryID, year, month) {
		minimum.Sources = append(minimum.Sources, src)
		minimum.MinimumCents += src.AmountCents
	}

	return minimum, nil
}

func (s *Service) recurringTransactionSources(ctx context.Context, userID, categoryID string) []models.MinimumSource {
	txs, err := s.storage.TransactionStore().ListRecurringByCategory(ctx, userID, categoryID)
	if err != nil {
		s.logger.Warn().Err(err).Str("category_id", categoryID).
			Msg("Failed to list recurring transactions for minimum, contributing zero")
		return nil
	}

	var sources []models.MinimumSource
	for _, tx := range txs {
		amount := tx.MonthlyEquivalentCents()
		if amount < 0 {
			amount = -amount
		}
		sources = append(sources, models.MinimumSource{
			Type:        models.SourceRecurringTransaction,
			ID:          tx.ID,
			Description: tx.Description,
			AmountCents: amount,
		})
	}
	return sources
}

func (s *Service) contributionSources(ctx context.Context, userID, categoryID string, year, month int) []models.MinimumSource {
	plans := s.storage.PlanStore()
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	goals, err := plans.ListGoals(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list goals for minimum, contributing zero")
	}
	debts, err := plans.ListDebts(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list debts for minimum, contributing zero")
	}
	investments, err := plans.ListInvestments(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list investments for minimum, contributing zero")
	}
	entries, err := plans.ListEntriesBetween(ctx, userID, monthStart, monthStart)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list plan entries for minimum, applying defaults")
		entries = nil
	}

	var sources []models.MinimumSource
	for _, c := range models.ResolveMonthlyContributions(goals, debts, investments, entries, monthStart) {
		if c.CategoryID != categoryID {
			continue
		}
		sources = append(sources, models.MinimumSource{
			Type:        c.SourceType,
			ID:          c.SourceID,
			Description: c.Description,
			AmountCents: c.AmountCents,
		})
	}
	return sources
}

// creditCardSources is the hook for credit-card bill obligations. No card
// engine exists yet, so it contributes nothing.
func (s *Service) creditCardSources(_ context.Context, _, _ string, _, _ int) []models.MinimumSource {
	return nil
}
