package surrealdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// AccountStore implements interfaces.AccountStore using SurrealDB.
type AccountStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAccountStore(db *surrealdb.DB, logger *common.Logger) *AccountStore {
	return &AccountStore{db: db, logger: logger}
}

// recordKey scopes entity record IDs per user.
func recordKey(userID, id string) string {
	return userID + "_" + id
}

func (s *AccountStore) Get(ctx context.Context, userID, id string) (*models.Account, error) {
	account, err := surrealdb.Select[models.Account](ctx, s.db, surrealmodels.NewRecordID("account", recordKey(userID, id)))
	if err != nil {
		return nil, fmt.Errorf("failed to select account: %w", err)
	}
	if account == nil {
		return nil, errors.New("account not found")
	}
	return account, nil
}

func (s *AccountStore) Save(ctx context.Context, account *models.Account) error {
	sql := "UPSERT type::record('account', $id) CONTENT $account"
	vars := map[string]any{"id": recordKey(account.UserID, account.ID), "account": account}

	if _, err := surrealdb.Query[[]models.Account](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (s *AccountStore) Delete(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Account](ctx, s.db, surrealmodels.NewRecordID("account", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *AccountStore) List(ctx context.Context, userID string) ([]*models.Account, error) {
	sql := "SELECT * FROM account WHERE user_id = $user_id ORDER BY name ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Account](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Account
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
