package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sebuszqo/MyFinance/internal/auth"
	"github.com/sebuszqo/MyFinance/internal/config"
	database "github.com/sebuszqo/MyFinance/internal/db"
	"github.com/sebuszqo/MyFinance/internal/finance/application"
	"github.com/sebuszqo/MyFinance/internal/finance/domain"
	"github.com/sebuszqo/MyFinance/internal/finance/infrastructure"
	"github.com/sebuszqo/MyFinance/internal/finance/interfaces"
	"github.com/sebuszqo/MyFinance/internal/user"
	"github.com/shopspring/decimal"
)

type stores struct {
	users  user.Repository
	ledger domain.LedgerRepository
	health func(ctx context.Context) map[string]string
	close  func() error
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.StoreBackend != config.BackendPostgres {
		return &stores{
			users:  user.NewMemoryRepository(),
			ledger: infrastructure.NewMemoryLedgerRepository(),
			close:  func() error { return nil },
		}, nil
	}

	dbService, err := database.NewDBService(ctx, cfg.DBConnectionString, logger)
	if err != nil {
		return nil, err
	}
	if err := dbService.RunMigrations(ctx); err != nil {
		dbService.Close()
		return nil, err
	}
	return &stores{
		users:  user.NewUserRepository(dbService.DB),
		ledger: infrastructure.NewPostgresLedgerRepository(dbService.DB, logger),
		health: dbService.Health,
		close:  dbService.Close,
	}, nil
}

type app struct {
	server  *Server
	users   user.Service
	hasher  auth.PasswordHasher
	ledger  *application.LedgerService
	budgets *application.BudgetService
}

func newApp(cfg *config.Config, st *stores, logger *slog.Logger) *app {
	userService := user.NewUserService(st.users)
	hasher := auth.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
	authService := auth.NewAuthService(userService, auth.NewSessionManager(), hasher, logger)

	locker := application.NewUserLocker()
	budgetService := application.NewBudgetService(st.ledger, locker)
	ledgerService := application.NewLedgerService(st.ledger, budgetService, locker, logger)
	reportService := application.NewReportService(ledgerService)

	server := &Server{
		authHandler:      auth.NewHandler(authService, userService, ledgerService, logger),
		authService:      authService,
		userService:      userService,
		operationHandler: interfaces.NewOperationHandler(ledgerService, respondJSON, respondError, logger),
		budgetHandler:    interfaces.NewBudgetHandler(budgetService, respondJSON, respondError, logger),
		reportHandler:    interfaces.NewReportHandler(reportService, respondJSON, respondError, logger),
		categoryHandler:  interfaces.NewCategoryHandler(application.NewCategoryService(), respondJSON, respondError),
		profileHandler:   interfaces.NewProfileHandler(userService, ledgerService, budgetService, respondJSON, respondError, logger),
		health:           st.health,
		legacyRoutes:     cfg.LegacyRoutes,
		logger:           logger,
	}
	server.RegisterRoutes()

	return &app{
		server:  server,
		users:   userService,
		hasher:  hasher,
		ledger:  ledgerService,
		budgets: budgetService,
	}
}

const demoEmail = "demo@myfinance.com"

// seedDemo creates the demo account with one salary income and a food
// budget. An existing demo account is left untouched.
func (a *app) seedDemo(ctx context.Context, password string) (string, error) {
	if existing, err := a.users.GetUserByEmail(ctx, demoEmail); err == nil {
		return existing.ID, nil
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	demo, err := a.users.CreateUser(ctx, demoEmail, hash)
	if err != nil {
		return "", fmt.Errorf("could not create demo user: %w", err)
	}

	salary := decimal.RequireFromString("10000")
	description := "Salary"
	if _, _, err := a.ledger.RecordOperation(ctx, demo.ID, domain.OperationInput{
		Type:        string(domain.Income),
		Amount:      &salary,
		Category:    "salary",
		Description: &description,
		Date:        "2025-10-01",
	}); err != nil {
		return "", fmt.Errorf("could not seed demo income: %w", err)
	}

	limit := decimal.RequireFromString("15000")
	if _, err := a.budgets.CreateBudget(ctx, demo.ID, domain.BudgetInput{
		Category: "food",
		Limit:    &limit,
		Period:   "2025-10",
	}); err != nil {
		return "", fmt.Errorf("could not seed demo budget: %w", err)
	}
	return demo.ID, nil
}
