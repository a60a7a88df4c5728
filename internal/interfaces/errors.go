package interfaces

import (
	"fmt"

	"github.com/bobmcallan/plano/internal/models"
)

// BelowMinimumError rejects a budget whose planned amount sits below the
// computed minimum for its (category, year, month). It carries the full
// minimum with its sources so callers can explain the floor, and a
// suggested amount that would be accepted.
type BelowMinimumError struct {
	RequestedCents int64
	SuggestedCents int64
	Minimum        *models.MinimumBudget
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("planned amount %s is below the minimum %s",
		models.FormatCents(e.RequestedCents), models.FormatCents(e.Minimum.MinimumCents))
}
