package models

import (
	"math"
	"strings"
)

// Frequency is the cadence at which a recurring obligation posts.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// ValidFrequency reports whether f is one of the six known cadences.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// MonthlyEquivalent converts an amount posting at cadence f into its average
// monthly value in cents, rounded to the nearest cent. The conversion uses a
// 30-day-month convention (daily ×30, weekly ×30/7, biweekly ×30/14,
// quarterly ÷3, yearly ÷12) — a deliberate approximation, consistent with
// the overdraft engine's 30-day compounding, not a calendar calculation.
// Unknown or empty frequencies behave as monthly.
func MonthlyEquivalent(amountCents int64, f Frequency) int64 {
	switch f {
	case FrequencyDaily:
		return amountCents * 30
	case FrequencyWeekly:
		return roundCents(float64(amountCents) * 30.0 / 7.0)
	case FrequencyBiweekly:
		return roundCents(float64(amountCents) * 30.0 / 14.0)
	case FrequencyQuarterly:
		return roundCents(float64(amountCents) / 3.0)
	case FrequencyYearly:
		return roundCents(float64(amountCents) / 12.0)
	default:
		return amountCents
	}
}

// FrequencyFromRule infers a cadence from a recurrence-rule string by
// substring match against the known cadence markers, defaulting to monthly
// when none match.
func FrequencyFromRule(rule string) Frequency {
	upper := strings.ToUpper(rule)
	switch {
	case strings.Contains(upper, "DAILY"):
		return FrequencyDaily
	case strings.Contains(upper, "WEEKLY"):
		return FrequencyWeekly
	case strings.Contains(upper, "YEARLY"):
		return FrequencyYearly
	case strings.Contains(upper, "MONTHLY"):
		return FrequencyMonthly
	default:
		return FrequencyMonthly
	}
}

// roundCents rounds half away from zero.
func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
