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

// PlanStore implements interfaces.PlanStore using SurrealDB: goals, debts,
// investments and per-month plan entries.
type PlanStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewPlanStore(db *surrealdb.DB, logger *common.Logger) *PlanStore {
	return &PlanStore{db: db, logger: logger}
}

// --- goals ---

func (s *PlanStore) GetGoal(ctx context.Context, userID, id string) (*models.Goal, error) {
	goal, err := surrealdb.Select[models.Goal](ctx, s.db, surrealmodels.NewRecordID("goal", recordKey(userID, id)))
	if err != nil {
		return nil, fmt.Errorf("failed to select goal: %w", err)
	}
	if goal == nil {
		return nil, errors.New("goal not found")
	}
	return goal, nil
}

func (s *PlanStore) SaveGoal(ctx context.Context, goal *models.Goal) error {
	sql := "UPSERT type::record('goal', $id) CONTENT $goal"
	vars := map[string]any{"id": recordKey(goal.UserID, goal.ID), "goal": goal}

	if _, err := surrealdb.Query[[]models.Goal](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

func (s *PlanStore) DeleteGoal(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Goal](ctx, s.db, surrealmodels.NewRecordID("goal", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *PlanStore) ListGoals(ctx context.Context, userID string) ([]*models.Goal, error) {
	sql := "SELECT * FROM goal WHERE user_id = $user_id ORDER BY name ASC"
	results, err := surrealdb.Query[[]models.Goal](ctx, s.db, sql, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if results != nil && len(*results) > 0 {
		var mapped []*models.Goal
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

// --- debts ---

func (s *PlanStore) GetDebt(ctx context.Context, userID, id string) (*models.Debt, error) {
	debt, err := surrealdb.Select[models.Debt](ctx, s.db, surrealmodels.NewRecordID("debt", recordKey(userID, id)))
	if err != nil {
		return nil, fmt.Errorf("failed to select debt: %w", err)
	}
	if debt == nil {
		return nil, errors.New("debt not found")
	}
	return debt, nil
}

func (s *PlanStore) SaveDebt(ctx context.Context, debt *models.Debt) error {
	sql := "UPSERT type::record('debt', $id) CONTENT $debt"
	vars := map[string]any{"id": recordKey(debt.UserID, debt.ID), "debt": debt}

	if _, err := surrealdb.Query[[]models.Debt](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save debt: %w", err)
	}
	return nil
}

func (s *PlanStore) DeleteDebt(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Debt](ctx, s.db, surrealmodels.NewRecordID("debt", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}

func (s *PlanStore) ListDebts(ctx context.Context, userID string) ([]*models.Debt, error) {
	sql := "SELECT * FROM debt WHERE user_id = $user_id ORDER BY name ASC"
	results, err := surrealdb.Query[[]models.Debt](ctx, s.db, sql, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	if results != nil && len(*results) > 0 {
		var mapped []*models.Debt
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

// --- investments ---

func (s *PlanStore) GetInvestment(ctx context.Context, userID, id string) (*models.Investment, error) {
	inv, err := surrealdb.Select[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", recordKey(userID, id)))
	if err != nil {
		return nil, fmt.Errorf("failed to select investment: %w", err)
	}
	if inv == nil {
		return nil, errors.New("investment not found")
	}
	return inv, nil
}

func (s *PlanStore) SaveInvestment(ctx context.Context, inv *models.Investment) error {
	sql := "UPSERT type::record('investment', $id) CONTENT $investment"
	vars := map[string]any{"id": recordKey(inv.UserID, inv.ID), "investment": inv}

	if _, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save investment: %w", err)
	}
	return nil
}

func (s *PlanStore) DeleteInvestment(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}

func (s *PlanStore) ListInvestments(ctx context.Context, userID string) ([]*models.Investment, error) {
	sql := "SELECT * FROM investment WHERE user_id = $user_id ORDER BY name ASC"
	results, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, map[string]any{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	if results != nil && len(*results) > 0 {
		var mapped []*models.Investment
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}

// --- plan entries ---

func (s *PlanStore) SaveEntry(ctx context.Context, entry *models.PlanEntry) error {
	sql := "UPSERT type::record('plan_entry', $id) CONTENT $entry"
	vars := map[string]any{"id": recordKey(entry.UserID, entry.ID), "entry": entry}

	if _, err := surrealdb.Query[[]models.PlanEntry](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save plan entry: %w", err)
	}
	return nil
}

func (s *PlanStore) DeleteEntry(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.PlanEntry](ctx, s.db, surrealmodels.NewRecordID("plan_entry", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete plan entry: %w", err)
	}
	return nil
}

func (s *PlanStore) ListEntriesBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.PlanEntry, error) {
	sql := "SELECT * FROM plan_entry WHERE user_id = $user_id AND entry_month >= $from AND entry_month <= $to ORDER BY entry_month ASC"
	vars := map[string]any{
		"user_id": userID,
		"from":    models.MonthStart(from),
		"to":      models.MonthStart(to),
	}

	results, err := surrealdb.Query[[]models.PlanEntry](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan entries: %w", err)
	}
	if results != nil && len(*results) > 0 {
		var mapped []*models.PlanEntry
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
