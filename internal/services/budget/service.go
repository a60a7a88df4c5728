// Package budget computes minimum budgets and manages persisted budgets.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

// Compile-time interface check
var _ interfaces.BudgetService = (*Service)(nil)

// Service implements BudgetService
type Service struct {
	storage  interfaces.StorageManager
	interest interfaces.InterestService
	forecast interfaces.ForecastService
	logger   *common.Logger
	now      func() time.Time
}

// NewService creates a new budget service
func NewService(storage interfaces.StorageManager, interest interfaces.InterestService, forecast interfaces.ForecastService, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		interest: interest,
		forecast: forecast,
		logger:   logger,
		now:      time.Now,
	}
}

// MonthBudgets returns the persisted budgets for (user, year, month). When
// the month has started — meaning its prior month has fully elapsed — the
// overdraft interest engine runs first so the returned set includes the
// interest budget. Interest failures are logged, never surfaced: the read
// path always answers.
func (s *Service) MonthBudgets(ctx context.Context, userID string, year, month int) ([]*models.Budget, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if !s.now().Before(monthStart) {
		if _, err := s.interest.GenerateInterestBudget(ctx, userID, year, month); err != nil {
			s.logger.Warn().Err(err).Int("year", year).Int("month", month).
				Msg("Overdraft interest generation failed, serving budgets without it")
		}
	}

	budgets, err := s.storage.BudgetStore().ListByMonth(ctx, userID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// Create persists a new budget after enforcing the computed minimum.
func (s *Service) Create(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	if err := s.validate(ctx, budget); err != nil {
		return nil, err
	}
	if existing, err := s.storage.BudgetStore().Find(ctx, budget.UserID, budget.CategoryID, budget.Year, budget.Month); err != nil {
		return nil, fmt.Errorf("failed to check for existing budget: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("budget already exists for category %s in %04d-%02d", budget.CategoryID, budget.Year, budget.Month)
	}

	now := s.now().UTC()
	budget.CreatedAt = now
	return s.save(ctx, budget, now)
}

// Update rewrites an existing budget, re-enforcing the minimum.
func (s *Service) Update(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	if err := s.validate(ctx, budget); err != nil {
		return nil, err
	}
	existing, err := s.storage.BudgetStore().Get(ctx, budget.UserID, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	budget.CreatedAt = existing.CreatedAt
	return s.save(ctx, budget, s.now().UTC())
}

func (s *Service) save(ctx context.Context, budget *models.Budget, now time.Time) (*models.Budget, error) {
	minimum, err := s.MinimumBudget(ctx, budget.UserID, budget.CategoryID, budget.Year, budget.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to compute minimum budget: %w", err)
	}
	if budget.AmountPlannedCents < minimum.MinimumCents {
		return nil, &interfaces.BelowMinimumError{
			RequestedCents: budget.AmountPlannedCents,
			SuggestedCents: minimum.MinimumCents,
			Minimum:        minimum,
		}
	}

	budget.MinimumPlannedCents = minimum.MinimumCents
	budget.UpdatedAt = now
	if budget.SourceType == "" {
		budget.SourceType = models.SourceManual
	}
	if err := s.storage.BudgetStore().Save(ctx, budget, len(budget.Breakdown) > 0); err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.forecast.InvalidateUser(budget.UserID)
	s.logger.Info().Str("budget_id", budget.ID).Str("category_id", budget.CategoryID).
		Int("year", budget.Year).Int("month", budget.Month).
		Int64("planned_cents", budget.AmountPlannedCents).Msg("Budget saved")
	return budget, nil
}

// Delete removes a budget and invalidates the owner's cached forecasts.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.storage.BudgetStore().Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("budget_id", id).Msg("Budget deleted")
	return nil
}

func (s *Service) validate(ctx context.Context, budget *models.Budget) error {
	if budget.UserID == "" {
		budget.UserID = common.ResolveUserID(ctx)
	}
	if budget.Year < 1 || budget.Month < 1 || budget.Month > 12 {
		return fmt.Errorf("invalid budget month %04d-%02d", budget.Year, budget.Month)
	}
	return nil
}
