// Package ledger manages accounts, transactions and categories.
package ledger

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
var _ interfaces.LedgerService = (*Service)(nil)

// Service implements LedgerService
type Service struct {
	storage  interfaces.StorageManager
	forecast interfaces.ForecastService
	logger   *common.Logger
	now      func() time.Time
}

// NewService creates a new ledger service
func NewService(storage interfaces.StorageManager, forecast interfaces.ForecastService, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		forecast: forecast,
		logger:   logger,
		now:      time.Now,
	}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}

// --- Accounts ---

func (s *Service) GetAccount(ctx context.Context, userID, id string) (*models.Account, error) {
	account, err := s.storage.AccountStore().Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *Service) SaveAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.Name == "" {
		return nil, fmt.Errorf("account name is required")
	}
	if account.Type == "" {
		account.Type = models.AccountTypeChecking
	}
	if !models.ValidAccountType(account.Type) {
		return nil, fmt.Errorf("invalid account type: %s", account.Type)
	}
	if account.OverdraftLimitCents < 0 {
		return nil, fmt.Errorf("overdraft limit must not be negative")
	}
	if account.OverdraftMonthlyRate < 0 {
		return nil, fmt.Errorf("overdraft rate must not be negative")
	}
	s.prepare(ctx, &account.UserID, &account.ID, "ac", &account.CreatedAt, &account.UpdatedAt)

	if err := s.storage.AccountStore().Save(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.forecast.InvalidateUser(account.UserID)
	s.logger.Info().Str("account_id", account.ID).Str("name", account.Name).Msg("Account saved")
	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, userID, id string) error {
	if err := s.storage.AccountStore().Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("account_id", id).Msg("Account deleted")
	return nil
}

func (s *Service) ListAccounts(ctx context.Context, userID string) ([]*models.Account, error) {
	accounts, err := s.storage.AccountStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// --- Transactions ---

func (s *Service) GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error) {
	tx, err := s.storage.TransactionStore().Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func (s *Service) SaveTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.AccountID == "" {
		return nil, fmt.Errorf("transaction account is required")
	}
	if tx.Frequency != "" && !models.ValidFrequency(tx.Frequency) {
		return nil, fmt.Errorf("invalid frequency: %s", tx.Frequency)
	}
	if tx.Date.IsZero() {
		tx.Date = s.now().UTC()
	}
	s.prepare(ctx, &tx.UserID, &tx.ID, "tx", &tx.CreatedAt, &tx.UpdatedAt)

	if err := s.storage.TransactionStore().Save(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	s.forecast.InvalidateUser(tx.UserID)
	s.logger.Info().Str("transaction_id", tx.ID).Str("account_id", tx.AccountID).
		Int64("amount_cents", tx.AmountCents).Msg("Transaction saved")
	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.storage.TransactionStore().Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("transaction_id", id).Msg("Transaction deleted")
	return nil
}

func (s *Service) ListTransactions(ctx context.Context, userID string, opts interfaces.TransactionQuery) ([]*models.Transaction, error) {
	txs, err := s.storage.TransactionStore().List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// --- Categories ---

func (s *Service) GetCategory(ctx context.Context, userID, id string) (*models.Category, error) {
	category, err := s.storage.CategoryStore().Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *Service) SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if category.Type == "" {
		category.Type = models.CategoryTypeExpense
	}
	if category.SourceType == "" {
		category.SourceType = models.SourceGeneral
	}
	s.prepare(ctx, &category.UserID, &category.ID, "ct", &category.CreatedAt, &category.UpdatedAt)

	if err := s.storage.CategoryStore().Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	s.forecast.InvalidateUser(category.UserID)
	s.logger.Info().Str("category_id", category.ID).Str("name", category.Name).Msg("Category saved")
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	if err := s.storage.CategoryStore().Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.forecast.InvalidateUser(userID)
	s.logger.Info().Str("category_id", id).Msg("Category deleted")
	return nil
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]*models.Category, error) {
	categories, err := s.storage.CategoryStore().List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// prepare fills the identity and timestamp fields common to every entity.
func (s *Service) prepare(ctx context.Context, userID, id *string, prefix string, createdAt, updatedAt *time.Time) {
	if *userID == "" {
		*userID = common.ResolveUserID(ctx)
	}
	now := s.now().UTC()
	if *id == "" {
		*id = newID(prefix)
		*createdAt = now
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
