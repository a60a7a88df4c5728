package budget

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

var errNotImplemented = errors.New("not implemented")

// mockStorage wires function-backed stores into a StorageManager.
type mockStorage struct {
	transactions mockTransactionStore
	plans        mockPlanStore
	budgets      mockBudgetStore
}

func (m *mockStorage) InternalStore() interfaces.InternalStore       { return nil }
func (m *mockStorage) AccountStore() interfaces.AccountStore         { return nil }
func (m *mockStorage) TransactionStore() interfaces.TransactionStore { return &m.transactions }
func (m *mockStorage) CategoryStore() interfaces.CategoryStore       { return nil }
func (m *mockStorage) PlanStore() interfaces.PlanStore               { return &m.plans }
func (m *mockStorage) BudgetStore() interfaces.BudgetStore           { return &m.budgets }
func (m *mockStorage) Close() error                                  { return nil }

type mockTransactionStore struct {
	listRecurringByCategoryFn func(userID, categoryID string) ([]*models.Transaction, error)
}

func (m *mockTransactionStore) Get(context.Context, string, string) (*models.Transaction, error) {
	return nil, errNotImplemented
}
func (m *mockTransactionStore) Save(context.Context, *models.Transaction) error {
	return errNotImplemented
}
func (m *mockTransactionStore) Delete(context.Context, string, string) error {
	return errNotImplemented
}
func (m *mockTransactionStore) List(context.Context, string, interfaces.TransactionQuery) ([]*models.Transaction, error) {
	return nil, errNotImplemented
}
func (m *mockTransactionStore) ListByAccountBetween(context.Context, string, string, time.Time, time.Time) ([]*models.Transaction, error) {
	return nil, errNotImplemented
}
func (m *mockTransactionStore) ListRecurringByCategory(_ context.Context, userID, categoryID string) ([]*models.Transaction, error) {
	if m.listRecurringByCategoryFn != nil {
		return m.listRecurringByCategoryFn(userID, categoryID)
	}
	return nil, nil
}
func (m *mockTransactionStore) ListRecurring(context.Context, string) ([]*models.Transaction, error) {
	return nil, errNotImplemented
}

type mockPlanStore struct {
	goals       []*models.Goal
	debts       []*models.Debt
	investments []*models.Investment
	entries     []*models.PlanEntry
	listErr     error
}

func (m *mockPlanStore) GetGoal(context.Context, string, string) (*models.Goal, error) {
	return nil, errNotImplemented
}
func (m *mockPlanStore) SaveGoal(context.Context, *models.Goal) error { return errNotImplemented }
func (m *mockPlanStore) DeleteGoal(context.Context, string, string) error { return errNotImplemented }
func (m *mockPlanStore) ListGoals(context.Context, string) ([]*models.Goal, error) {
	return m.goals, m.listErr
}
func (m *mockPlanStore) GetDebt(context.Context, string, string) (*models.Debt, error) {
	return nil, errNotImplemented
}
func (m *mockPlanStore) SaveDebt(context.Context, *models.Debt) error { return errNotImplemented }
func (m *mockPlanStore) DeleteDebt(context.Context, string, string) error { return errNotImplemented }
func (m *mockPlanStore) ListDebts(context.Context, string) ([]*models.Debt, error) {
	return m.debts, m.listErr
}
func (m *mockPlanStore) GetInvestment(context.Context, string, string) (*models.Investment, error) {
	return nil, errNotImplemented
}
func (m *mockPlanStore) SaveInvestment(context.Context, *models.Investment) error {
	return errNotImplemented
}
func (m *mockPlanStore) DeleteInvestment(context.Context, string, string) error {
	return errNotImplemented
}
func (m *mockPlanStore) ListInvestments(context.Context, string) ([]*models.Investment, error) {
	return m.investments, m.listErr
}
func (m *mockPlanStore) SaveEntry(context.Context, *models.PlanEntry) error { return errNotImplemented }
func (m *mockPlanStore) DeleteEntry(context.Context, string, string) error { return errNotImplemented }
func (m *mockPlanStore) ListEntriesBetween(context.Context, string, time.Time, time.Time) ([]*models.PlanEntry, error) {
	return m.entries, m.listErr
}

type mockBudgetStore struct {
	byID    map[string]*models.Budget
	saved   []*models.Budget
	findFn  func(userID, categoryID string, year, month int) (*models.Budget, error)
	listFn  func(userID string, year, month int) ([]*models.Budget, error)
	saveErr error
	deleted []string
}

func (m *mockBudgetStore) Get(_ context.Context, _, id string) (*models.Budget, error) {
	if b, ok := m.byID[id]; ok {
		return b, nil
	}
	return nil, errors.New("budget not found")
}
func (m *mockBudgetStore) Find(_ context.Context, userID, categoryID string, year, month int) (*models.Budget, error) {
	if m.findFn != nil {
		return m.findFn(userID, categoryID, year, month)
	}
	return nil, nil
}
func (m *mockBudgetStore) Save(_ context.Context, b *models.Budget, _ bool) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, b)
	return nil
}
func (m *mockBudgetStore) Delete(_ context.Context, _, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}
func (m *mockBudgetStore) ListByMonth(_ context.Context, userID string, year, month int) ([]*models.Budget, error) {
	if m.listFn != nil {
		return m.listFn(userID, year, month)
	}
	return nil, nil
}
func (m *mockBudgetStore) ListBetween(context.Context, string, time.Time, time.Time) ([]*models.Budget, error) {
	return nil, errNotImplemented
}

// mockInterest records interest-engine invocations.
type mockInterest struct {
	calls  int
	result *interfaces.InterestResult
	err    error
}

func (m *mockInterest) GenerateInterestBudget(context.Context, string, int, int) (*interfaces.InterestResult, error) {
	m.calls++
	if m.result != nil || m.err != nil {
		return m.result, m.err
	}
	return &interfaces.InterestResult{}, nil
}

// mockForecast records cache invalidations.
type mockForecast struct {
	invalidated []string
}

func (m *mockForecast) GenerateProjections(context.Context, string, time.Time, time.Time) (*models.ProjectionResult, error) {
	return nil, errNotImplemented
}
func (m *mockForecast) MonthlyView(context.Context, string, time.Time, time.Time) (*models.MonthlyView, error) {
	return nil, errNotImplemented
}
func (m *mockForecast) InvalidateUser(userID string) {
	m.invalidated = append(m.invalidated, userID)
}
