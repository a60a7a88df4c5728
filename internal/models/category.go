package models

import "time"

// CategoryType distinguishes income from expense categories.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// SourceType tags who manages a category or budget: the user ("general" /
// "manual") or one of the system-managed planning surfaces.
type SourceType string

const (
	SourceGeneral    SourceType = "general"
	SourceManual     SourceType = "manual"
	SourceCreditCard SourceType = "credit_card"
	SourceGoal       SourceType = "goal"
	SourceDebt       SourceType = "debt"
	SourceInvestment SourceType = "investment"
	SourceAsset      SourceType = "asset"

	// SourceRecurringTransaction labels minimum-budget sources derived from
	// recurring transactions; it is never persisted on a category.
	SourceRecurringTransaction SourceType = "recurring_transaction"
)

// OverdraftInterestCategoryName is the name of the expense category the
// interest engine creates (once per user) to hold overdraft interest budgets.
const OverdraftInterestCategoryName = "Overdraft Interest"

// Category groups transactions and budgets.
type Category struct {
	ID         string       `json:"category_id"`
	UserID     string       `json:"user_id"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	SourceType SourceType   `json:"source_type"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
