package main

import (
	"log"

	"kharcha/internal/domain/credit"
	"kharcha/internal/domain/report"
	"kharcha/internal/infrastructure/postgres"
	httphandlers "kharcha/internal/interfaces/http"
	"kharcha/internal/shared/auth"
	"kharcha/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler     *httphandlers.AuthHandler
	UserHandler     *httphandlers.UserHandler
	CategoryHandler *httphandlers.CategoryHandler
	ExpenseHandler  *httphandlers.ExpenseHandler
	ReportHandler   *httphandlers.ReportHandler
	CreditHandler   *httphandlers.CreditHandler
	HealthHandler   *httphandlers.HealthHandler

	// Auth
	JWT *auth.JWT

	// Repositories (for scheduler job provider)
	UserRepo    *postgres.UserRepository
	ExpenseRepo *postgres.ExpenseRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)

	// Initialize domain services
	reportService := report.NewService(expenseRepo)
	creditService := credit.NewService(expenseRepo)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt)
	userHandler := httphandlers.NewUserHandler(userRepo)
	categoryHandler := httphandlers.NewCategoryHandler(categoryRepo)
	expenseHandler := httphandlers.NewExpenseHandler(expenseRepo, categoryRepo)
	reportHandler := httphandlers.NewReportHandler(reportService)
	creditHandler := httphandlers.NewCreditHandler(creditService)
	healthHandler := httphandlers.NewHealthHandler(db)

	return &Dependencies{
		DB:              db,
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		CategoryHandler: categoryHandler,
		ExpenseHandler:  expenseHandler,
		ReportHandler:   reportHandler,
		CreditHandler:   creditHandler,
		HealthHandler:   healthHandler,
		JWT:             jwt,
		UserRepo:        userRepo,
		ExpenseRepo:     expenseRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
