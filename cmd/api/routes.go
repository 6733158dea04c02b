package main

import (
	"log"
	"net/http"

	"kharcha/internal/shared/config"
	"kharcha/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", deps.HealthHandler.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/users/me", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleMe)))
	mux.Handle("/api/categories/", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategories)))
	mux.Handle("/api/categories/{id}", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategoryByID)))
	mux.Handle("/api/expenses/", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenses)))
	mux.Handle("/api/expenses/{id}", authMiddleware(http.HandlerFunc(deps.ExpenseHandler.HandleExpenseByID)))
	mux.Handle("/api/reports/daily/{date}", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleDailyReport)))
	mux.Handle("/api/reports/summary", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleSummaryReport)))
	mux.Handle("/api/business-credits/", authMiddleware(http.HandlerFunc(deps.CreditHandler.HandleListCredits)))
	mux.Handle("/api/business-credits/pay/{id}", authMiddleware(http.HandlerFunc(deps.CreditHandler.HandleSettleCredit)))
	mux.Handle("/api/business-credits/settle", authMiddleware(http.HandlerFunc(deps.CreditHandler.HandleSettleCredits)))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	// Request tracing and metrics when telemetry is enabled
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
