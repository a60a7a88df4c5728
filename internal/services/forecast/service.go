// Package forecast expands recurring obligations into dated projections and
// serves cached, reconciled monthly views.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

// Compile-time interface check
var _ interfaces.ForecastService = (*Service)(nil)

// Service implements ForecastService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	cache   *viewCache
}

// NewService creates a new forecast service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		cache:   newViewCache(),
	}
}

// GenerateProjections expands the user's recurring transactions and plan
// contributions into one dated projection per obligation per month of
// [start, end]. A window starting and ending inside the same month yields a
// single month. Source failures are collected into the result's Errors
// list; what loaded still projects.
func (s *Service) GenerateProjections(ctx context.Context, userID string, start, end time.Time) (*models.ProjectionResult, error) {
	months := models.MonthsBetween(start, end)
	if len(months) == 0 {
		return nil, fmt.Errorf("invalid projection window: end %s precedes start %s",
			models.MonthKey(end), models.MonthKey(start))
	}

	result := &models.ProjectionResult{MonthlyTotals: make(map[string]models.MonthlyTotal)}

	recurring, err := s.storage.TransactionStore().ListRecurring(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list recurring transactions for projections")
		result.Errors = append(result.Errors, fmt.Sprintf("recurring transactions unavailable: %v", err))
	}

	plans := s.storage.PlanStore()
	goals, err := plans.ListGoals(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list goals for projections")
		result.Errors = append(result.Errors, fmt.Sprintf("goals unavailable: %v", err))
	}
	debts, err := plans.ListDebts(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list debts for projections")
		result.Errors = append(result.Errors, fmt.Sprintf("debts unavailable: %v", err))
	}
	investments, err := plans.ListInvestments(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list investments for projections")
		result.Errors = append(result.Errors, fmt.Sprintf("investments unavailable: %v", err))
	}
	entries, err := plans.ListEntriesBetween(ctx, userID, months[0], months[len(months)-1])
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list plan entries for projections, applying defaults")
		result.Errors = append(result.Errors, fmt.Sprintf("plan entries unavailable: %v", err))
		entries = nil
	}

	for _, month := range months {
		key := models.MonthKey(month)
		total := result.MonthlyTotals[key]

		for _, tx := range recurring {
			amount := tx.MonthlyEquivalentCents()
			result.Projections = append(result.Projections, models.Projection{
				ID:          fmt.Sprintf("pj_%s_%s", key, tx.ID),
				CategoryID:  tx.CategoryID,
				AmountCents: amount,
				SourceType:  models.SourceRecurringTransaction,
				SourceID:    tx.ID,
				Date:        month,
				Description: tx.Description,
			})
			total.Add(amount)
		}

		for _, c := range models.ResolveMonthlyContributions(goals, debts, investments, entries, month) {
			projection := models.Projection{
				ID:          fmt.Sprintf("pj_%s_%s_%s", key, c.SourceType, c.SourceID),
				CategoryID:  c.CategoryID,
				AmountCents: -c.AmountCents, // contributions are outflows
				SourceType:  c.SourceType,
				SourceID:    c.SourceID,
				Date:        month,
				Description: c.Description,
			}
			if c.Overridden {
				projection.Metadata = map[string]string{"overridden": "true"}
			}
			result.Projections = append(result.Projections, projection)
			total.Add(-c.AmountCents)
		}

		result.MonthlyTotals[key] = total
	}

	return result, nil
}

// MonthlyView serves the reconciled window: persisted budgets with actuals
// applied, plus projections for obligations no budget covers yet. Views are
// memoized per exact (user, start month, end month) until invalidated.
func (s *Service) MonthlyView(ctx context.Context, userID string, start, end time.Time) (*models.MonthlyView, error) {
	key := keyFor(userID, start, end)
	if view, ok := s.cache.get(key); ok {
		return view, nil
	}

	view, err := s.buildView(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	s.cache.set(key, view)
	return view, nil
}

// InvalidateUser drops every cached window for the user.
func (s *Service) InvalidateUser(userID string) {
	if dropped := s.cache.invalidateUser(userID); dropped > 0 {
		s.logger.Debug().Str("user_id", userID).Int("windows", dropped).Msg("Forecast cache invalidated")
	}
}

func (s *Service) buildView(ctx context.Context, userID string, start, end time.Time) (*models.MonthlyView, error) {
	budgets, err := s.storage.BudgetStore().ListBetween(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for view: %w", err)
	}

	projections, err := s.GenerateProjections(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	view := &models.MonthlyView{
		MonthlyTotals: projections.MonthlyTotals,
		Errors:        projections.Errors,
	}

	txs, err := s.storage.TransactionStore().List(ctx, userID, interfaces.TransactionQuery{
		From: models.MonthStart(start),
		To:   models.MonthEnd(end),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list transactions for actuals")
		view.Errors = append(view.Errors, fmt.Sprintf("actuals unavailable: %v", err))
	}
	applyActuals(budgets, txs)

	view.Budgets = mergeProjections(userID, budgets, projections.Projections)
	return view, nil
}
