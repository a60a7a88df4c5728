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

// CategoryStore implements interfaces.CategoryStore using SurrealDB.
type CategoryStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewCategoryStore(db *surrealdb.DB, logger *common.Logger) *CategoryStore {
	return &CategoryStore{db: db, logger: logger}
}

func (s *CategoryStore) Get(ctx context.Context, userID, id string) (*models.Category, error) {
	category, err := surrealdb.Select[models.Category](ctx, s.db, surrealmodels.NewRecordID("category", recordKey(userID, id)))
	if err != nil {
		return nil, fmt.Errorf("failed to select category: %w", err)
	}
	if category == nil {
		return nil, errors.New("category not found")
	}
	return category, nil
}

func (s *CategoryStore) GetByName(ctx context.Context, userID, name string) (*models.Category, error) {
	sql := "SELECT * FROM category WHERE user_id = $user_id AND name = $name LIMIT 1"
	vars := map[string]any{"user_id": userID, "name": name}

	results, err := surrealdb.Query[[]models.Category](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query category by name: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, nil
	}
	return &(*results)[0].Result[0], nil
}

func (s *CategoryStore) Save(ctx context.Context, category *models.Category) error {
	sql := "UPSERT type::record('category', $id) CONTENT $category"
	vars := map[string]any{"id": recordKey(category.UserID, category.ID), "category": category}

	if _, err := surrealdb.Query[[]models.Category](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, userID, id string) error {
	_, err := surrealdb.Delete[models.Category](ctx, s.db, surrealmodels.NewRecordID("category", recordKey(userID, id)))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *CategoryStore) List(ctx context.Context, userID string) ([]*models.Category, error) {
	sql := "SELECT * FROM category WHERE user_id = $user_id ORDER BY name ASC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Category](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if results != nil && len(*results) > 0 {
		var mapped []*models.Category
		for i := range (*results)[0].Result {
			mapped = append(mapped, &(*results)[0].Result[i])
		}
		return mapped, nil
	}
	return nil, nil
}
