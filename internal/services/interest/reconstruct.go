package interest

import (
	"math"
	"time"

	"github.com/bobmcallan/plano/internal/models"
)

// dayOf truncates t to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dailyBalances reconstructs an account's end-of-day balances for every day
// in [windowStart, windowEnd], walking backward from the current balance
// anchored at today: balance(d-1) = balance(d) - net(d). Days after the
// anchor (a window reaching past today) carry the current balance unchanged.
func dailyBalances(currentCents int64, txs []*models.Transaction, windowStart, windowEnd, today time.Time) []int64 {
	start := dayOf(windowStart)
	end := dayOf(windowEnd)
	anchor := dayOf(today)
	if end.Before(start) {
		return nil
	}

	nets := make(map[time.Time]int64)
	for _, tx := range txs {
		d := dayOf(tx.Date)
		if !d.Before(start) && !d.After(anchor) {
			nets[d] += tx.AmountCents
		}
	}

	days := int(end.Sub(start).Hours()/24) + 1
	out := make([]int64, days)
	index := func(d time.Time) int { return int(d.Sub(start).Hours() / 24) }

	balance := currentCents
	for d := anchor; !d.Before(start); d = d.AddDate(0, 0, -1) {
		if !d.After(end) {
			out[index(d)] = balance
		}
		balance -= nets[d]
	}
	for d := anchor.AddDate(0, 0, 1); !d.After(end); d = d.AddDate(0, 0, 1) {
		out[index(d)] = currentCents
	}
	return out
}

// accrueOverdraftInterest accrues daily interest over the reconstructed
// balances. Compounding lives entirely in the daily-rate derivation,
// (1 + monthly/100)^(1/30) - 1 on a 30-day convention; each day charges
// round(balance * rate) with the balance clamped to the overdraft limit.
// Non-negative days accrue nothing. The returned total is negative cents
// (an amount owed) or zero.
func accrueOverdraftInterest(account *models.Account, balances []int64) int64 {
	rate := math.Pow(1+account.OverdraftMonthlyRate/100, 1.0/30) - 1
	if rate <= 0 {
		return 0
	}

	var accrued int64
	for _, balance := range balances {
		if balance >= 0 {
			continue
		}
		if balance < -account.OverdraftLimitCents {
			balance = -account.OverdraftLimitCents
		}
		accrued += int64(math.Round(float64(balance) * rate))
	}
	return accrued
}
