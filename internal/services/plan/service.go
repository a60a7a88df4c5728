// Package plan manages goals, debts, investments and per-month plan entries.
package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

// Compile-time interface check
var _ interfaces.PlanService = (*Service)(nil)

// Service implements PlanService
type Service struct {
	storage  interfaces.StorageManager
	forecast interfaces.ForecastService
	logger   *common.Logger
	now      func() time.Time
}

// NewService creates a new plan service
func NewService(storage interfaces.StorageManager, forecast interfaces.ForecastService, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		forecast: forecast,
		logger:   logger,
		now:      time.Now,
	}
}

// --- Goals ---

func (s *Service) GetGoal(ctx context.Context, userID, id string) (*models.Goal, error) {
	goal, err := s.storage.PlanStore().GetGoal(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

func (s *Service) SaveGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if goal.Name == "" {
		return nil, fmt.Errorf("goal name is required")
	}
	if goal.MonthlyContributionCents < 0 {
		return nil, fmt.Errorf("goal contribution must not be negative")
	}
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}
	if goal.ContributionFrequency != "" && !models.ValidFrequency(goal.ContributionFrequency) {
		return nil, fmt.Errorf("invalid frequency: %s", goal.ContributionFrequency)
	}
	s.prepare(ctx, &goal.UserID, &goal.ID, "gl", &goal.CreatedAt, &goal.UpdatedAt)

	if err := s.storage.PlanStore().SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}
	s.forecast.InvalidateUser(goal.UserID)
	s.logger.Info().Str("goal_id", goal.ID).Str("name", goal.Name).Msg("Goal saved")
	return goal, nil
}

func (s *Service) DeleteGoal(ctx context.Context, userID, id string) error {
	if err := s.storage.PlanStore().DeleteGoal(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("goal_id", id).Msg("Goal deleted")
	return nil
}

func (s *Service) ListGoals(ctx context.Context, userID string) ([]*models.Goal, error) {
	goals, err := s.storage.PlanStore().ListGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// --- Debts ---

func (s *Service) GetDebt(ctx context.Context, userID, id string) (*models.Debt, error) {
	debt, err := s.storage.PlanStore().GetDebt(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return debt, nil
}

func (s *Service) SaveDebt(ctx context.Context, debt *models.Debt) (*models.Debt, error) {
	if debt.Name == "" {
		return nil, fmt.Errorf("debt name is required")
	}
	if debt.MonthlyPaymentCents < 0 {
		return nil, fmt.Errorf("debt payment must not be negative")
	}
	if debt.Status == "" {
		debt.Status = models.DebtStatusActive
	}
	if debt.PaymentFrequency != "" && !models.ValidFrequency(debt.PaymentFrequency) {
		return nil, fmt.Errorf("invalid frequency: %s", debt.PaymentFrequency)
	}
	// Negotiation is recorded in two places for querying; keep them agreed.
	if debt.IsNegotiated && debt.Status == models.DebtStatusActive {
		debt.Status = models.DebtStatusNegotiated
	}
	s.prepare(ctx, &debt.UserID, &debt.ID, "db", &debt.CreatedAt, &debt.UpdatedAt)

	if err := s.storage.PlanStore().SaveDebt(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}
	s.forecast.InvalidateUser(debt.UserID)
	s.logger.Info().Str("debt_id", debt.ID).Str("name", debt.Name).Msg("Debt saved")
	return debt, nil
}

func (s *Service) DeleteDebt(ctx context.Context, userID, id string) error {
	if err := s.storage.PlanStore().DeleteDebt(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("debt_id", id).Msg("Debt deleted")
	return nil
}

func (s *Service) ListDebts(ctx context.Context, userID string) ([]*models.Debt, error) {
	debts, err := s.storage.PlanStore().ListDebts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	return debts, nil
}

// --- Investments ---

func (s *Service) GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error) {
	inv, err := s.storage.PlanStore().GetInvestment(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	return inv, nil
}

func (s *Service) SaveInvestment(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	if inv.Name == "" {
		return nil, fmt.Errorf("investment name is required")
	}
	if inv.MonthlyContributionCents < 0 {
		return nil, fmt.Errorf("investment contribution must not be negative")
	}
	if inv.Status == "" {
		inv.Status = models.InvestmentStatusActive
	}
	if inv.ContributionFrequency != "" && !models.ValidFrequency(inv.ContributionFrequency) {
		return nil, fmt.Errorf("invalid frequency: %s", inv.ContributionFrequency)
	}
	s.prepare(ctx, &inv.UserID, &inv.ID, "iv", &inv.CreatedAt, &inv.UpdatedAt)

	if err := s.storage.PlanStore().SaveInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to save investment: %w", err)
	}
	s.forecast.InvalidateUser(inv.UserID)
	s.logger.Info().Str("investment_id", inv.ID).Str("name", inv.Name).Msg("Investment saved")
	return inv, nil
}

func (s *Service) DeleteInvestment(ctx context.Context, userID, id string) error {
	if err := s.storage.PlanStore().DeleteInvestment(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("investment_id", id).Msg("Investment deleted")
	return nil
}

func (s *Service) ListInvestments(ctx context.Context, userID string) ([]*models.Investment, error) {
	investments, err := s.storage.PlanStore().ListInvestments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return investments, nil
}

// --- Plan entries ---

func (s *Service) SaveEntry(ctx context.Context, entry *models.PlanEntry) (*models.PlanEntry, error) {
	if entry.SourceID == "" {
		return nil, fmt.Errorf("plan entry source is required")
	}
	switch entry.SourceType {
	case models.SourceGoal, models.SourceDebt, models.SourceInvestment:
	default:
		return nil, fmt.Errorf("invalid plan entry source type: %s", entry.SourceType)
	}
	if entry.EntryMonth.IsZero() {
		return nil, fmt.Errorf("plan entry month is required")
	}
	if entry.AmountCents < 0 {
		return nil, fmt.Errorf("plan entry amount must not be negative")
	}
	entry.EntryMonth = models.MonthStart(entry.EntryMonth)
	if err := s.resolveEntryDefaults(ctx, entry); err != nil {
		return nil, err
	}
	s.prepare(ctx, &entry.UserID, &entry.ID, "pe", &entry.CreatedAt, &entry.UpdatedAt)

	if err := s.storage.PlanStore().SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save plan entry: %w", err)
	}
	s.forecast.InvalidateUser(entry.UserID)
	s.logger.Info().Str("entry_id", entry.ID).Str("source_id", entry.SourceID).
		Str("month", models.MonthKey(entry.EntryMonth)).Msg("Plan entry saved")
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, userID, id string) error {
	if err := s.storage.PlanStore().DeleteEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete plan entry: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("entry_id", id).Msg("Plan entry deleted")
	return nil
}

func (s *Service) ListEntries(ctx context.Context, userID string, from, to time.Time) ([]*models.PlanEntry, error) {
	entries, err := s.storage.PlanStore().ListEntriesBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan entries: %w", err)
	}
	return entries, nil
}

// resolveEntryDefaults verifies the referenced entity exists and backfills
// the entry's category from it when unset.
func (s *Service) resolveEntryDefaults(ctx context.Context, entry *models.PlanEntry) error {
	userID := entry.UserID
	if userID == "" {
		userID = common.ResolveUserID(ctx)
	}

	var categoryID string
	switch entry.SourceType {
	case models.SourceGoal:
		goal, err := s.storage.PlanStore().GetGoal(ctx, userID, entry.SourceID)
		if err != nil {
			return fmt.Errorf("plan entry references unknown goal %s: %w", entry.SourceID, err)
		}
		categoryID = goal.CategoryID
	case models.SourceDebt:
		debt, err := s.storage.PlanStore().GetDebt(ctx, userID, entry.SourceID)
		if err != nil {
			return fmt.Errorf("plan entry references unknown debt %s: %w", entry.SourceID, err)
		}
		categoryID = debt.CategoryID
	case models.SourceInvestment:
		inv, err := s.storage.PlanStore().GetInvestment(ctx, userID, entry.SourceID)
		if err != nil {
			return fmt.Errorf("plan entry references unknown investment %s: %w", entry.SourceID, err)
		}
		categoryID = inv.CategoryID
	}
	if entry.CategoryID == "" {
		entry.CategoryID = categoryID
	}
	return nil
}

// prepare fills the identity and timestamp fields common to every entity.
func (s *Service) prepare(ctx context.Context, userID, id *string, prefix string, createdAt, updatedAt *time.Time) {
	if *userID == "" {
		*userID = common.ResolveUserID(ctx)
	}
	now := s.now().UTC()
	if *id == "" {
		*id = prefix + "_" + uuid.New().String()[:8]
		*createdAt = now
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
