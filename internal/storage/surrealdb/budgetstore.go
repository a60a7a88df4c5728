package surrealdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// BudgetStore implements interfaces.BudgetStore using SurrealDB. Budget
// record identity is derived from (user, category, year, month), which
// enforces the at-most-one-budget-per-key invariant at the storage layer.
type BudgetStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewBudgetStore(db *surrealdb.DB, logger *common.Logger) *BudgetStore {
	return &BudgetStore{db: db, logger: logger}
}

// budgetID is the canonical budget identity for a (category, year, month).
func budgetID(categoryID string, year, month int) string {
	if categoryID == "" {
		categoryID = "none"
	}
	return fmt.Sprintf("bg_%04d%02d_%s", year, month, categoryID)
}

func (s *BudgetStore) Get(ctx context.Context, userID, id string) (*models.Budget, error) {
	budget, err := s.lookup(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, errors.New("budget not found")
	}
	return budget, nil
}

func (s *BudgetStore) Find(ctx context.Context, userID, categoryID string, year, month int) (*models.Budget, error) {
	return s.lookup(ctx, userID, budgetID(categoryID, year, month))
}

func (s *BudgetStore) lookup(ctx context.Context, userID, id string) (*models.Budget, error) {
	sql := "SELECT " + budgetSelectFields + " FROM budget WHERE budget_id = $budget_id AND user_id = $user_id LIMIT 1"
	vars := map[string]any{"budget_id": id, "user_id": userID}
	budgets, err := s.query(ctx, sql, vars)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, nil
	}
	return budgets[0], nil
}

func (s *BudgetStore) Save(ctx context.Context, budget *models.Budget, withBreakdown bool) error {
	if budget.ID == "" {
		budget.ID = budgetID(budget.CategoryID, budget.Year, budget.Month)
	}

	sql := `UPSERT type::record('budget', $id) SET
		budget_id = $budget_id, user_id = $user_id, category_id = $category_id,
		year = $year, month = $month,
		amount_planned_cents = $amount_planned_cents, amount_actual = $amount_actual,
		minimum_amount_planned_cents = $minimum_amount_planned_cents,
		source_type = $source_type, source_id = $source_id, description = $description,
		is_projected = $is_projected,
		created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"id":                           recordKey(budget.UserID, budget.ID),
		"budget_id":                    budget.ID,
		"user_id":                      budget.UserID,
		"category_id":                  budget.CategoryID,
		"year":                         budget.Year,
		"month":                        budget.Month,
		"amount_planned_cents":         budget.AmountPlannedCents,
		"amount_actual":                budget.AmountActual,
		"minimum_amount_planned_cents": budget.MinimumPlannedCents,
		"source_type":                  budget.SourceType,
		"source_id":                    budget.SourceID,
		"description":                  budget.Description,
		"is_projected":                 budget.IsProjected,
		"created_at":                   budget.CreatedAt,
		"updated_at":                   budget.UpdatedAt,
	}
	if withBreakdown {
		sql += ",\n\t\tbreakdown = $breakdown"
		vars["breakdown"] = budget.Breakdown
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}

func (s *BudgetStore) Delete(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Budget](ctx, s.db, surrealmodels.NewRecordID("budget", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}

const budgetSelectFields = `budget_id as id, user_id, category_id, year, month,
	amount_planned_cents, amount_actual, minimum_amount_planned_cents,
	source_type, source_id, description, is_projected, breakdown,
	created_at, updated_at`

func (s *BudgetStore) ListByMonth(ctx context.Context, userID string, year, month int) ([]*models.Budget, error) {
	sql := "SELECT " + budgetSelectFields + " FROM budget WHERE user_id = $user_id AND year = $year AND month = $month"
	vars := map[string]any{"user_id": userID, "year": year, "month": month}
	return s.query(ctx, sql, vars)
}

func (s *BudgetStore) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.Budget, error) {
	sql := "SELECT " + budgetSelectFields + ` FROM budget WHERE user_id = $user_id
		AND (year * 100 + month) >= $from_key AND (year * 100 + month) <= $to_key
		ORDER BY year ASC, month ASC`
	vars := map[string]any{
		"user_id":  userID,
		"from_key": from.Year()*100 + int(from.Month()),
		"to_key":   to.Year()*100 + int(to.Month()),
	}
	return s.query(ctx, sql, vars)
}

func (s *BudgetStore) query(ctx context.Context, sql string, vars map[string]any) ([]*models.Budget, error) {
	results, err := surrealdb.Query[[]models.Budget](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	if results != nil && len(*results) > 0 {
		var mapped []*models.Budget
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
