// Package interfaces defines service and storage contracts for Plano
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/plano/internal/models"
)

// StorageManager coordinates all storage backends.
type StorageManager interface {
	InternalStore() InternalStore
	AccountStore() AccountStore
	TransactionStore() TransactionStore
	CategoryStore() CategoryStore
	PlanStore() PlanStore
	BudgetStore() BudgetStore

	// Lifecycle
	Close() error
}

// InternalStore manages user accounts and system-level KV.
type InternalStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)

	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// AccountStore manages money accounts.
type AccountStore interface {
	Get(ctx context.Context, userID, id string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Account, error)
}

// TransactionStore manages ledger transactions.
type TransactionStore interface {
	Get(ctx context.Context, userID, id string) (*models.Transaction, error)
	Save(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, opts TransactionQuery) ([]*models.Transaction, error)

	// ListByAccountBetween returns the account's transactions with
	// from <= date <= to, used for balance reconstruction.
	ListByAccountBetween(ctx context.Context, userID, accountID string, from, to time.Time) ([]*models.Transaction, error)

	// ListRecurringByCategory returns transactions bound to the category
	// that carry a frequency or a recurrence rule.
	ListRecurringByCategory(ctx context.Context, userID, categoryID string) ([]*models.Transaction, error)

	// ListRecurring returns all of the user's recurring transactions.
	ListRecurring(ctx context.Context, userID string) ([]*models.Transaction, error)
}

// TransactionQuery filters transaction listings.
type TransactionQuery struct {
	AccountID  string
	CategoryID string
	From       time.Time
	To         time.Time
	Limit      int
}

// CategoryStore manages categories.
type CategoryStore interface {
	Get(ctx context.Context, userID, id string) (*models.Category, error)
	// GetByName returns the user's category with the exact name, or nil
	// when none exists.
	GetByName(ctx context.Context, userID, name string) (*models.Category, error)
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]*models.Category, error)
}

// PlanStore manages goals, debts, investments and plan entries.
type PlanStore interface {
	GetGoal(ctx context.Context, userID, id string) (*models.Goal, error)
	SaveGoal(ctx context.Context, goal *models.Goal) error
	DeleteGoal(ctx context.Context, userID, id string) error
	ListGoals(ctx context.Context, userID string) ([]*models.Goal, error)

	GetDebt(ctx context.Context, userID, id string) (*models.Debt, error)
	SaveDebt(ctx context.Context, debt *models.Debt) error
	DeleteDebt(ctx context.Context, userID, id string) error
	ListDebts(ctx context.Context, userID string) ([]*models.Debt, error)

	GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error)
	SaveInvestment(ctx context.Context, inv *models.Investment) error
	DeleteInvestment(ctx context.Context, userID, id string) error
	ListInvestments(ctx context.Context, userID string) ([]*models.Investment, error)

	SaveEntry(ctx context.Context, entry *models.PlanEntry) error
	DeleteEntry(ctx context.Context, userID, id string) error
	// ListEntriesBetween returns plan entries with from <= entry_month <= to
	// (months compared at first-of-month granularity).
	ListEntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.PlanEntry, error)
}

// BudgetStore manages persisted budgets. Uniqueness per (user, category,
// year, month) is enforced by deterministic record identity.
type BudgetStore interface {
	Get(ctx context.Context, userID, id string) (*models.Budget, error)
	// Find returns the budget for the exact (user, category, year, month)
	// key, or nil when none exists.
	Find(ctx context.Context, userID, categoryID string, year, month int) (*models.Budget, error)
	// Save upserts a budget. When withBreakdown is false the breakdown
	// metadata field is omitted from the write (schema-compatibility
	// fallback for stores lacking the optional column).
	Save(ctx context.Context, budget *models.Budget, withBreakdown bool) error
	Delete(ctx context.Context, userID, id string) error
	ListByMonth(ctx context.Context, userID string, year, month int) ([]*models.Budget, error)
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.Budget, error)
}
