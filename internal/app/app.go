// Package app wires configuration, storage and services together.
package app

import (
	"fmt"

	"github.com/bobmcallan/plano/internal/common"
	"github.com/bobmcallan/plano/internal/interfaces"
	"github.com/bobmcallan/plano/internal/services/budget"
	"github.com/bobmcallan/plano/internal/services/forecast"
	"github.com/bobmcallan/plano/internal/services/interest"
	"github.com/bobmcallan/plano/internal/services/ledger"
	"github.com/bobmcallan/plano/internal/services/plan"
	"github.com/bobmcallan/plano/internal/storage"
)

// App holds the application's wired components.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	Budget   interfaces.BudgetService
	Interest interfaces.InterestService
	Forecast interfaces.ForecastService
	Ledger   interfaces.LedgerService
	Plan     interfaces.PlanService
}

// New builds the application from configuration: storage first, then the
// service graph in dependency order.
func New(config *common.Config, logger *common.Logger) (*App, error) {
	store, err := storage.NewManager(config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	forecastSvc := forecast.NewService(store, logger)
	interestSvc := interest.NewService(store, logger)
	budgetSvc := budget.NewService(store, interestSvc, forecastSvc, logger)
	ledgerSvc := ledger.NewService(store, forecastSvc, logger)
	planSvc := plan.NewService(store, forecastSvc, logger)

	return &App{
		Config:   config,
		Logger:   logger,
		Storage:  store,
		Budget:   budgetSvc,
		Interest: interestSvc,
		Forecast: forecastSvc,
		Ledger:   ledgerSvc,
		Plan:     planSvc,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
