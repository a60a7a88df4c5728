package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/plano/internal/models"
)

// BudgetService computes minimum budgets and manages persisted budgets.
type BudgetService interface {
	// MinimumBudget sums all automatic obligations bound to the category for
	// the month: recurring transactions, goal/debt/investment contributions
	// with plan-entry override precedence. Individual lookup failures are
	// isolated; a failing source contributes zero.
	MinimumBudget(ctx context.Context, userID, categoryID string, year, month int) (*models.MinimumBudget, error)

	// MonthBudgets is the read path for a (user, month) query: when the
	// prior month has fully elapsed it first runs the overdraft interest
	// engine (idempotent), then returns the month's budgets.
	MonthBudgets(ctx context.Context, userID string, year, month int) ([]*models.Budget, error)

	// Create persists a budget, rejecting planned amounts below the computed
	// minimum with a *BelowMinimumError.
	Create(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	Delete(ctx context.Context, userID, id string) error
}

// InterestResult reports the outcome of an overdraft interest run.
type InterestResult struct {
	Created  bool   `json:"created"`
	BudgetID string `json:"budget_id,omitempty"`
}

// InterestService materializes overdraft interest budgets.
type InterestService interface {
	// GenerateInterestBudget reconstructs each eligible account's daily
	// balances over the prior calendar month of (year, month), accrues
	// compound daily interest on negative days, and creates a single
	// itemized budget for the target month. Re-invocation for a month that
	// already has an interest budget is a no-op reporting Created:false.
	GenerateInterestBudget(ctx context.Context, userID string, year, month int) (*InterestResult, error)
}

// ForecastService expands recurring obligations into dated projections and
// serves the cached, reconciled monthly view.
type ForecastService interface {
	GenerateProjections(ctx context.Context, userID string, start, end time.Time) (*models.ProjectionResult, error)

	// MonthlyView merges persisted budgets, actual transaction totals and
	// generated projections for the window, de-duplicated per month. Results
	// are memoized per (user, start month, end month) until invalidated.
	MonthlyView(ctx context.Context, userID string, start, end time.Time) (*models.MonthlyView, error)

	// InvalidateUser drops every cached window for the user.
	InvalidateUser(userID string)
}

// LedgerService manages accounts, transactions and categories.
type LedgerService interface {
	GetAccount(ctx context.Context, userID, id string) (*models.Account, error)
	SaveAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	DeleteAccount(ctx context.Context, userID, id string) error
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)

	GetTransaction(ctx context.Context, userID, id string) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	ListTransactions(ctx context.Context, userID string, opts TransactionQuery) ([]*models.Transaction, error)

	GetCategory(ctx context.Context, userID, id string) (*models.Category, error)
	SaveCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, id string) error
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
}

// PlanService manages goals, debts, investments and plan entries.
type PlanService interface {
	GetGoal(ctx context.Context, userID, id string) (*models.Goal, error)
	SaveGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
	ListGoals(ctx context.Context, userID string) ([]*models.Goal, error)

	GetDebt(ctx context.Context, userID, id string) (*models.Debt, error)
	SaveDebt(ctx context.Context, debt *models.Debt) (*models.Debt, error)
	DeleteDebt(ctx context.Context, userID, id string) error
	ListDebts(ctx context.Context, userID string) ([]*models.Debt, error)

	GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error)
	SaveInvestment(ctx context.Context, inv *models.Investment) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, userID, id string) error
	ListInvestments(ctx context.Context, userID string) ([]*models.Investment, error)

	SaveEntry(ctx context.Context, entry *models.PlanEntry) (*models.PlanEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error
	ListEntries(ctx context.Context, userID string, from, to time.Time) ([]*models.PlanEntry, error)
}
