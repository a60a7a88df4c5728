package surrealdb

import (
	"context"
	"fmt"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/surrealdb/surrealdb.go"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	internalStore    *InternalStore
	accountStore     *AccountStore
	transactionStore *TransactionStore
	categoryStore    *CategoryStore
	planStore        *PlanStore
	budgetStore      *BudgetStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables to ensure they exist (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{"user", "system_kv", "account", "transaction", "category", "goal", "debt", "investment", "plan_entry", "budget"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.internalStore = NewInternalStore(db, logger)
	m.accountStore = NewAccountStore(db, logger)
	m.transactionStore = NewTransactionStore(db, logger)
	m.categoryStore = NewCategoryStore(db, logger)
	m.planStore = NewPlanStore(db, logger)
	m.budgetStore = NewBudgetStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// NewManagerWithDB wraps an existing connection; used by tests.
func NewManagerWithDB(db *surrealdb.DB, logger *common.Logger) *Manager {
	return &Manager{
		db:               db,
		logger:           logger,
		internalStore:    NewInternalStore(db, logger),
		accountStore:     NewAccountStore(db, logger),
		transactionStore: NewTransactionStore(db, logger),
		categoryStore:    NewCategoryStore(db, logger),
		planStore:        NewPlanStore(db, logger),
		budgetStore:      NewBudgetStore(db, logger),
	}
}

func (m *Manager) InternalStore() interfaces.InternalStore {
	return m.internalStore
}

func (m *Manager) AccountStore() interfaces.AccountStore {
	return m.accountStore
}

func (m *Manager) TransactionStore() interfaces.TransactionStore {
	return m.transactionStore
}

func (m *Manager) CategoryStore() interfaces.CategoryStore {
	return m.categoryStore
}

func (m *Manager) PlanStore() interfaces.PlanStore {
	return m.planStore
}

func (m *Manager) BudgetStore() interfaces.BudgetStore {
	return m.budgetStore
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
