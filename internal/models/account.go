package models

import "time"

// AccountType classifies an account for overdraft purposes.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
)

// ValidAccountType reports whether t is a known account type.
func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeCreditCard:
		return true
	}
	return false
}

// Account is a money account. The balance is mutated by transaction posting
// outside this core; the engines only read it.
type Account struct {
	ID                   string      `json:"account_id"`
	UserID               string      `json:"user_id"`
	Name                 string      `json:"name"`
	Type                 AccountType `json:"type"`
	BalanceCents         int64       `json:"balance_cents"`
	OverdraftLimitCents  int64       `json:"overdraft_limit_cents"`
	OverdraftMonthlyRate float64     `json:"overdraft_monthly_rate"` // percent, e.g. 5 = 5%/month
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// OverdraftEligible reports whether the account participates in overdraft
// interest accrual: a configured limit, a configured rate, and not a card.
func (a *Account) OverdraftEligible() bool {
	return a.OverdraftLimitCents > 0 &&
		a.OverdraftMonthlyRate > 0 &&
		a.Type != AccountTypeCreditCard
}
