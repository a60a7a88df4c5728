package surrealdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// TransactionStore implements interfaces.TransactionStore using SurrealDB.
type TransactionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewTransactionStore(db *surrealdb.DB, logger *common.Logger) *TransactionStore {
	return &TransactionStore{db: db, logger: logger}
}

func (s *TransactionStore) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	tx, err := surrealdb.Select[models.Transaction](ctx, s.db, surrealmodels.NewRecordID("transaction", recordKey(userID, id)))
	if err != nil {
		return nil, fmt.Errorf("failed to select transaction: %w", err)
	}
	if tx == nil {
		return nil, errors.New("transaction not found")
	}
	return tx, nil
}

func (s *TransactionStore) Save(ctx context.Context, tx *models.Transaction) error {
	sql := "UPSERT type::record('transaction', $id) CONTENT $tx"
	vars := map[string]any{"id": recordKey(tx.UserID, tx.ID), "tx": tx}

	if _, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (s *TransactionStore) Delete(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Transaction](ctx, s.db, surrealmodels.NewRecordID("transaction", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *TransactionStore) List(ctx context.Context, userID string, opts interfaces.TransactionQuery) ([]*models.Transaction, error) {
	sql := "SELECT * FROM transaction WHERE user_id = $user_id"
	vars := map[string]any{"user_id": userID}

	if opts.AccountID != "" {
		sql += " AND account_id = $account_id"
		vars["account_id"] = opts.AccountID
	}
	if opts.CategoryID != "" {
		sql += " AND category_id = $category_id"
		vars["category_id"] = opts.CategoryID
	}
	if !opts.From.IsZero() {
		sql += " AND date >= $from"
		vars["from"] = opts.From
	}
	if !opts.To.IsZero() {
		sql += " AND date <= $to"
		vars["to"] = opts.To
	}
	sql += " ORDER BY date DESC"
	if opts.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	return s.query(ctx, sql, vars)
}

func (s *TransactionStore) ListByAccountBetween(ctx context.Context, userID, accountID string, from, to time.Time) ([]*models.Transaction, error) {
	sql := "SELECT * FROM transaction WHERE user_id = $user_id AND account_id = $account_id AND date >= $from AND date <= $to ORDER BY date ASC"
	vars := map[string]any{
		"user_id":    userID,
		"account_id": accountID,
		"from":       from,
		"to":         to,
	}
	return s.query(ctx, sql, vars)
}

func (s *TransactionStore) ListRecurringByCategory(ctx context.Context, userID, categoryID string) ([]*models.Transaction, error) {
	sql := "SELECT * FROM transaction WHERE user_id = $user_id AND category_id = $category_id AND (is_recurring = true OR frequency != NONE OR recurrence_rule != NONE)"
	vars := map[string]any{
		"user_id":     userID,
		"category_id": categoryID,
	}
	return s.query(ctx, sql, vars)
}

func (s *TransactionStore) ListRecurring(ctx context.Context, userID string) ([]*models.Transaction, error) {
	sql := "SELECT * FROM transaction WHERE user_id = $user_id AND (is_recurring = true OR frequency != NONE OR recurrence_rule != NONE)"
	vars := map[string]any{"user_id": userID}
	return s.query(ctx, sql, vars)
}

func (s *TransactionStore) query(ctx context.Context, sql string, vars map[string]any) ([]*models.Transaction, error) {
	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Transaction
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
