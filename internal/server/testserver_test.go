package server

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bobmcallan/plano/internal/app"
	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/models"
	"github.com/bobmcallan/plano/internal/services/budget"
	"github.com/bobmcallan/plano/internal/services/forecast"
	"github.com/bobmcallan/plano/internal/services/interest"
	"github.com/bobmcallan/plano/internal/services/ledger"
	"github.com/bobmcallan/plano/internal/services/plan"
)

// memStorage is an in-memory StorageManager backing handler tests, so the
// full service graph runs against real service code without a database.
type memStorage struct {
	mu sync.Mutex

	users        map[string]*models.User
	kv           map[string]string
	accounts     map[string]*models.Account
	transactions map[string]*models.Transaction
	categories   map[string]*models.Category
	goals        map[string]*models.Goal
	debts        map[string]*models.Debt
	investments  map[string]*models.Investment
	entries      map[string]*models.PlanEntry
	budgets      map[string]*models.Budget
}

func newMemStorage() *memStorage {
	return &memStorage{
		users:        make(map[string]*models.User),
		kv:           make(map[string]string),
		accounts:     make(map[string]*models.Account),
		transactions: make(map[string]*models.Transaction),
		categories:   make(map[string]*models.Category),
		goals:        make(map[string]*models.Goal),
		debts:        make(map[string]*models.Debt),
		investments:  make(map[string]*models.Investment),
		entries:      make(map[string]*models.PlanEntry),
		budgets:      make(map[string]*models.Budget),
	}
}

func memKey(userID, id string) string { return userID + "_" + id }

func (m *memStorage) InternalStore() interfaces.InternalStore       { return &memInternalStore{m} }
func (m *memStorage) AccountStore() interfaces.AccountStore         { return &memAccountStore{m} }
func (m *memStorage) TransactionStore() interfaces.TransactionStore { return &memTransactionStore{m} }
func (m *memStorage) CategoryStore() interfaces.CategoryStore       { return &memCategoryStore{m} }
func (m *memStorage) PlanStore() interfaces.PlanStore               { return &memPlanStore{m} }
func (m *memStorage) BudgetStore() interfaces.BudgetStore           { return &memBudgetStore{m} }
func (m *memStorage) Close() error                                  { return nil }

var _ interfaces.StorageManager = (*memStorage)(nil)

// --- internal store ---

type memInternalStore struct{ m *memStorage }

func (s *memInternalStore) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u, ok := s.m.users[userID]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.New("user not found")
}

func (s *memInternalStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New("user not found")
}

func (s *memInternalStore) SaveUser(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *user
	s.m.users[user.UserID] = &cp
	return nil
}

func (s *memInternalStore) DeleteUser(_ context.Context, userID string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.users, userID)
	return nil
}

func (s *memInternalStore) ListUsers(_ context.Context) ([]string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var ids []string
	for id := range s.m.users {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memInternalStore) GetSystemKV(_ context.Context, key string) (string, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if v, ok := s.m.kv[key]; ok {
		return v, nil
	}
	return "", errors.New("system KV not found")
}

func (s *memInternalStore) SetSystemKV(_ context.Context, key, value string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.kv[key] = value
	return nil
}

func (s *memInternalStore) Close() error { return nil }

// --- account store ---

type memAccountStore struct{ m *memStorage }

func (s *memAccountStore) Get(_ context.Context, userID, id string) (*models.Account, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if a, ok := s.m.accounts[memKey(userID, id)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, errors.New("account not found")
}

func (s *memAccountStore) Save(_ context.Context, account *models.Account) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *account
	s.m.accounts[memKey(account.UserID, account.ID)] = &cp
	return nil
}

func (s *memAccountStore) Delete(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.accounts, memKey(userID, id))
	return nil
}

func (s *memAccountStore) List(_ context.Context, userID string) ([]*models.Account, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Account
	for _, a := range s.m.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- transaction store ---

type memTransactionStore struct{ m *memStorage }

func (s *memTransactionStore) Get(_ context.Context, userID, id string) (*models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if tx, ok := s.m.transactions[memKey(userID, id)]; ok {
		cp := *tx
		return &cp, nil
	}
	return nil, errors.New("transaction not found")
}

func (s *memTransactionStore) Save(_ context.Context, tx *models.Transaction) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *tx
	s.m.transactions[memKey(tx.UserID, tx.ID)] = &cp
	return nil
}

func (s *memTransactionStore) Delete(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.transactions, memKey(userID, id))
	return nil
}

func (s *memTransactionStore) all(userID string) []*models.Transaction {
	var out []*models.Transaction
	for _, tx := range s.m.transactions {
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out
}

func (s *memTransactionStore) List(_ context.Context, userID string, opts interfaces.TransactionQuery) ([]*models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range s.all(userID) {
		if opts.AccountID != "" && tx.AccountID != opts.AccountID {
			continue
		}
		if opts.CategoryID != "" && tx.CategoryID != opts.CategoryID {
			continue
		}
		if !opts.From.IsZero() && tx.Date.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && tx.Date.After(opts.To) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *memTransactionStore) ListByAccountBetween(_ context.Context, userID, accountID string, from, to time.Time) ([]*models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range s.all(userID) {
		if tx.AccountID != accountID || tx.Date.Before(from) || tx.Date.After(to) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *memTransactionStore) ListRecurringByCategory(_ context.Context, userID, categoryID string) ([]*models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range s.all(userID) {
		if tx.CategoryID == categoryID && tx.Recurring() {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memTransactionStore) ListRecurring(_ context.Context, userID string) ([]*models.Transaction, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Transaction
	for _, tx := range s.all(userID) {
		if tx.Recurring() {
			out = append(out, tx)
		}
	}
	return out, nil
}

// --- category store ---

type memCategoryStore struct{ m *memStorage }

func (s *memCategoryStore) Get(_ context.Context, userID, id string) (*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c, ok := s.m.categories[memKey(userID, id)]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, errors.New("category not found")
}

func (s *memCategoryStore) GetByName(_ context.Context, userID, name string) (*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, c := range s.m.categories {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memCategoryStore) Save(_ context.Context, category *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *category
	s.m.categories[memKey(category.UserID, category.ID)] = &cp
	return nil
}

func (s *memCategoryStore) Delete(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.categories, memKey(userID, id))
	return nil
}

func (s *memCategoryStore) List(_ context.Context, userID string) ([]*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Category
	for _, c := range s.m.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- plan store ---

type memPlanStore struct{ m *memStorage }

func (s *memPlanStore) GetGoal(_ context.Context, userID, id string) (*models.Goal, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if g, ok := s.m.goals[memKey(userID, id)]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, errors.New("goal not found")
}

func (s *memPlanStore) SaveGoal(_ context.Context, goal *models.Goal) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *goal
	s.m.goals[memKey(goal.UserID, goal.ID)] = &cp
	return nil
}

func (s *memPlanStore) DeleteGoal(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.goals, memKey(userID, id))
	return nil
}

func (s *memPlanStore) ListGoals(_ context.Context, userID string) ([]*models.Goal, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Goal
	for _, g := range s.m.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memPlanStore) GetDebt(_ context.Context, userID, id string) (*models.Debt, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if d, ok := s.m.debts[memKey(userID, id)]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, errors.New("debt not found")
}

func (s *memPlanStore) SaveDebt(_ context.Context, debt *models.Debt) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *debt
	s.m.debts[memKey(debt.UserID, debt.ID)] = &cp
	return nil
}

func (s *memPlanStore) DeleteDebt(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.debts, memKey(userID, id))
	return nil
}

func (s *memPlanStore) ListDebts(_ context.Context, userID string) ([]*models.Debt, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Debt
	for _, d := range s.m.debts {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memPlanStore) GetInvestment(_ context.Context, userID, id string) (*models.Investment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if inv, ok := s.m.investments[memKey(userID, id)]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, errors.New("investment not found")
}

func (s *memPlanStore) SaveInvestment(_ context.Context, inv *models.Investment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *inv
	s.m.investments[memKey(inv.UserID, inv.ID)] = &cp
	return nil
}

func (s *memPlanStore) DeleteInvestment(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.investments, memKey(userID, id))
	return nil
}

func (s *memPlanStore) ListInvestments(_ context.Context, userID string) ([]*models.Investment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Investment
	for _, inv := range s.m.investments {
		if inv.UserID == userID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memPlanStore) SaveEntry(_ context.Context, entry *models.PlanEntry) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	cp := *entry
	s.m.entries[memKey(entry.UserID, entry.ID)] = &cp
	return nil
}

func (s *memPlanStore) DeleteEntry(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.entries, memKey(userID, id))
	return nil
}

func (s *memPlanStore) ListEntriesBetween(_ context.Context, userID string, from, to time.Time) ([]*models.PlanEntry, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	first, last := models.MonthStart(from), models.MonthStart(to)
	var out []*models.PlanEntry
	for _, e := range s.m.entries {
		if e.UserID != userID {
			continue
		}
		month := models.MonthStart(e.EntryMonth)
		if month.Before(first) || month.After(last) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryMonth.Before(out[j].EntryMonth) })
	return out, nil
}

// --- budget store ---

type memBudgetStore struct{ m *memStorage }

func memBudgetID(categoryID string, year, month int) string {
	if categoryID == "" {
		categoryID = "none"
	}
	return fmt.Sprintf("bg_%04d%02d_%s", year, month, categoryID)
}

func (s *memBudgetStore) Get(_ context.Context, userID, id string) (*models.Budget, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if b, ok := s.m.budgets[memKey(userID, id)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, errors.New("budget not found")
}

func (s *memBudgetStore) Find(_ context.Context, userID, categoryID string, year, month int) (*models.Budget, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if b, ok := s.m.budgets[memKey(userID, memBudgetID(categoryID, year, month))]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (s *memBudgetStore) Save(_ context.Context, budget *models.Budget, withBreakdown bool) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if budget.ID == "" {
		budget.ID = memBudgetID(budget.CategoryID, budget.Year, budget.Month)
	}
	cp := *budget
	if !withBreakdown {
		if existing, ok := s.m.budgets[memKey(budget.UserID, budget.ID)]; ok {
			cp.Breakdown = existing.Breakdown
		} else {
			cp.Breakdown = nil
		}
	}
	s.m.budgets[memKey(budget.UserID, budget.ID)] = &cp
	return nil
}

func (s *memBudgetStore) Delete(_ context.Context, userID, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.budgets, memKey(userID, id))
	return nil
}

func (s *memBudgetStore) ListByMonth(_ context.Context, userID string, year, month int) ([]*models.Budget, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []*models.Budget
	for _, b := range s.m.budgets {
		if b.UserID == userID && b.Year == year && b.Month == month {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memBudgetStore) ListBetween(_ context.Context, userID string, from, to time.Time) ([]*models.Budget, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	fromKey := from.Year()*100 + int(from.Month())
	toKey := to.Year()*100 + int(to.Month())
	var out []*models.Budget
	for _, b := range s.m.budgets {
		key := b.Year*100 + b.Month
		if b.UserID == userID && key >= fromKey && key <= toKey {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year*100+out[i].Month < out[j].Year*100+out[j].Month
	})
	return out, nil
}

// --- test server ---

// newTestServer builds a full server over in-memory storage. Rate limiting
// is disabled so tests never trip the per-client limiter.
func newTestServer(t *testing.T) (*Server, *memStorage) {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Environment = "test"
	config.Server.RateLimit = 0
	config.Auth.JWTSecret = "test-secret-key"

	logger := common.NewSilentLogger()
	store := newMemStorage()

	forecastSvc := forecast.NewService(store, logger)
	interestSvc := interest.NewService(store, logger)
	budgetSvc := budget.NewService(store, interestSvc, forecastSvc, logger)
	ledgerSvc := ledger.NewService(store, forecastSvc, logger)
	planSvc := plan.NewService(store, forecastSvc, logger)

	a := &app.App{
		Config:   config,
		Logger:   logger,
		Storage:  store,
		Budget:   budgetSvc,
		Interest: interestSvc,
		Forecast: forecastSvc,
		Ledger:   ledgerSvc,
		Plan:     planSvc,
	}

	return NewServer(a), store
}
