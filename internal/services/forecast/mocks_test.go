package forecast

import (
	"context"
	"errors"
	"time"

	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
)

var errNotImplemented = errors.New("not implemented")

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
	recurring    []*models.Transaction
	recurringErr error
	window       []*models.Transaction
	listCalls    int
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
	m.listCalls++
	return m.window, nil
}
func (m *mockTransactionStore) ListByAccountBetween(context.Context, string, string, time.Time, time.Time) ([]*models.Transaction, error) {
	return nil, errNotImplemented
}
func (m *mockTransactionStore) ListRecurringByCategory(context.Context, string, string) ([]*models.Transaction, error) {
	return nil, errNotImplemented
}
func (m *mockTransactionStore) ListRecurring(context.Context, string) ([]*models.Transaction, error) {
	return m.recurring, m.recurringErr
}

type mockPlanStore struct {
	goals       []*models.Goal
	goalsErr    error
	debts       []*models.Debt
	investments []*models.Investment
	entries     []*models.PlanEntry
}

func (m *mockPlanStore) GetGoal(context.Context, string, string) (*models.Goal, error) {
	return nil, errNotImplemented
}
func (m *mockPlanStore) SaveGoal(context.Context, *models.Goal) error { return errNotImplemented }
func (m *mockPlanStore) DeleteGoal(context.Context, string, string) error {
	return errNotImplemented
}
func (m *mockPlanStore) ListGoals(context.Context, string) ([]*models.Goal, error) {
	return m.goals, m.goalsErr
}
func (m *mockPlanStore) GetDebt(context.Context, string, string) (*models.Debt, error) {
	return nil, errNotImplemented
}
func (m *mockPlanStore) SaveDebt(context.Context, *models.Debt) error { return errNotImplemented }
func (m *mockPlanStore) DeleteDebt(context.Context, string, string) error {
	return errNotImplemented
}
func (m *mockPlanStore) ListDebts(context.Context, string) ([]*models.Debt, error) {
	return m.debts, nil
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
	return m.investments, nil
}
func (m *mockPlanStore) SaveEntry(context.Context, *models.PlanEntry) error {
	return errNotImplemented
}
func (m *mockPlanStore) DeleteEntry(context.Context, string, string) error {
	return errNotImplemented
}
func (m *mockPlanStore) ListEntriesBetween(context.Context, string, time.Time, time.Time) ([]*models.PlanEntry, error) {
	return m.entries, nil
}

type mockBudgetStore struct {
	budgets      []*models.Budget
	betweenCalls int
}

func (m *mockBudgetStore) Get(context.Context, string, string) (*models.Budget, error) {
	return nil, errNotImplemented
}
func (m *mockBudgetStore) Find(context.Context, string, string, int, int) (*models.Budget, error) {
	return nil, errNotImplemented
}
func (m *mockBudgetStore) Save(context.Context, *models.Budget, bool) error {
	return errNotImplemented
}
func (m *mockBudgetStore) Delete(context.Context, string, string) error { return errNotImplemented }
func (m *mockBudgetStore) ListByMonth(context.Context, string, int, int) ([]*models.Budget, error) {
	return nil, errNotImplemented
}
func (m *mockBudgetStore) ListBetween(context.Context, string, time.Time, time.Time) ([]*models.Budget, error) {
	m.betweenCalls++
	return m.budgets, nil
}
