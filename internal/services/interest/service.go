// Package interest materializes overdraft interest budgets from
// reconstructed daily account balances.
package interest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

// Compile-time interface check
var _ interfaces.InterestService = (*Service)(nil)

// Service implements InterestService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	now     func() time.Time
}

// NewService creates a new interest service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// accountAccrual is one account's share of a month's overdraft interest.
type accountAccrual struct {
	account *models.Account
	owed    int64 // negative cents
}

// GenerateInterestBudget accrues overdraft interest over the calendar month
// preceding (year, month) and materializes it as a single itemized budget in
// the target month's Overdraft Interest category. The operation is
// idempotent: a month that already carries an interest budget reports
// Created:false and writes nothing.
func (s *Service) GenerateInterestBudget(ctx context.Context, userID string, year, month int) (*interfaces.InterestResult, error) {
	accruals := s.accrueAllAccounts(ctx, userID, year, month)
	if len(accruals) == 0 {
		return &interfaces.InterestResult{Created: false}, nil
	}

	// Only a month that actually accrued interest gets the category.
	category, err := s.interestCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.storage.BudgetStore().Find(ctx, userID, category.ID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing interest budget: %w", err)
	}
	if existing != nil {
		return &interfaces.InterestResult{Created: false, BudgetID: existing.ID}, nil
	}

	var totalOwed int64
	breakdown := make([]models.BudgetLine, 0, len(accruals))
	for _, a := range accruals {
		totalOwed += a.owed
		breakdown = append(breakdown, models.BudgetLine{Label: a.account.Name, AmountCents: -a.owed})
	}

	pYear, pMonth := models.PrevMonth(year, month)
	now := s.now().UTC()
	budget := &models.Budget{
		UserID:              userID,
		CategoryID:          category.ID,
		Year:                year,
		Month:               month,
		AmountPlannedCents:  -totalOwed,
		MinimumPlannedCents: -totalOwed,
		SourceType:          models.SourceGeneral,
		Description:         fmt.Sprintf("Overdraft interest accrued over %04d-%02d", pYear, pMonth),
		Breakdown:           breakdown,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.storage.BudgetStore().Save(ctx, budget, true); err != nil {
		s.logger.Warn().Err(err).Msg("Interest budget save with breakdown failed, retrying without")
		if err := s.storage.BudgetStore().Save(ctx, budget, false); err != nil {
			return nil, fmt.Errorf("failed to save interest budget: %w", err)
		}
	}

	s.logger.Info().Str("budget_id", budget.ID).Int("year", year).Int("month", month).
		Int64("interest_cents", -totalOwed).Int("accounts", len(accruals)).
		Msg("Overdraft interest budget created")
	return &interfaces.InterestResult{Created: true, BudgetID: budget.ID}, nil
}

// accrueAllAccounts runs the accrual for every overdraft-eligible account
// concurrently. An account whose transactions cannot be fetched is logged
// and skipped; accounts that accrued nothing are dropped.
func (s *Service) accrueAllAccounts(ctx context.Context, userID string, year, month int) []accountAccrual {
	accounts, err := s.storage.AccountStore().List(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to list accounts for interest accrual")
		return nil
	}

	pYear, pMonth := models.PrevMonth(year, month)
	windowStart := time.Date(pYear, time.Month(pMonth), 1, 0, 0, 0, 0, time.UTC)
	windowEnd := models.MonthEnd(windowStart)
	today := s.now().UTC()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accruals []accountAccrual
	)
	for _, account := range accounts {
		if !account.OverdraftEligible() {
			continue
		}
		wg.Add(1)
		go func(account *models.Account) {
			defer wg.Done()
			txs, err := s.storage.TransactionStore().ListByAccountBetween(ctx, userID, account.ID, windowStart, today)
			if err != nil {
				s.logger.Warn().Err(err).Str("account_id", account.ID).
					Msg("Failed to load transactions for interest accrual, skipping account")
				return
			}
			owed := accrueOverdraftInterest(account, dailyBalances(account.BalanceCents, txs, windowStart, windowEnd, today))
			if owed >= 0 {
				return
			}
			mu.Lock()
			accruals = append(accruals, accountAccrual{account: account, owed: owed})
			mu.Unlock()
		}(account)
	}
	wg.Wait()
	return accruals
}

// interestCategory looks up the user's Overdraft Interest expense category,
// creating it on first use.
func (s *Service) interestCategory(ctx context.Context, userID string) (*models.Category, error) {
	category, err := s.storage.CategoryStore().GetByName(ctx, userID, models.OverdraftInterestCategoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up interest category: %w", err)
	}
	if category != nil {
		return category, nil
	}

	now := s.now().UTC()
	category = &models.Category{
		ID:         "ct_" + uuid.New().String()[:8],
		UserID:     userID,
		Name:       models.OverdraftInterestCategoryName,
		Type:       models.CategoryTypeExpense,
		SourceType: models.SourceGeneral,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.storage.CategoryStore().Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create interest category: %w", err)
	}
	s.logger.Info().Str("category_id", category.ID).Msg("Overdraft interest category created")
	return category, nil
}
