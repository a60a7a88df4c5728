package models

import "time"

// Transaction is a signed ledger movement: positive amounts are income,
// negative amounts are expenses. Transactions carrying a frequency or a
// recurrence rule are treated as recurring obligations by the planning
// engines; the engines themselves never write transactions.
type Transaction struct {
	ID             string    `json:"transaction_id"`
	UserID         string    `json:"user_id"`
	AccountID      string    `json:"account_id"`
	CategoryID     string    `json:"category_id,omitempty"`
	AmountCents    int64     `json:"amount_cents"`
	Date           time.Time `json:"date"`
	Description    string    `json:"description"`
	Frequency      Frequency `json:"frequency,omitempty"`
	RecurrenceRule string    `json:"recurrence_rule,omitempty"`
	IsRecurring    bool      `json:"is_recurring"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Recurring reports whether the transaction describes a repeating cadence.
func (t *Transaction) Recurring() bool {
	return t.IsRecurring || t.Frequency != "" || t.RecurrenceRule != ""
}

// EffectiveFrequency resolves the cadence of a recurring transaction: an
// explicit frequency wins; otherwise the recurrence rule is sniffed for a
// cadence marker; otherwise monthly.
func (t *Transaction) EffectiveFrequency() Frequency {
	if ValidFrequency(t.Frequency) {
		return t.Frequency
	}
	if t.RecurrenceRule != "" {
		return FrequencyFromRule(t.RecurrenceRule)
	}
	return FrequencyMonthly
}

// MonthlyEquivalentCents is the transaction's frequency-normalized monthly
// impact in cents.
func (t *Transaction) MonthlyEquivalentCents() int64 {
	return MonthlyEquivalent(t.AmountCents, t.EffectiveFrequency())
}
