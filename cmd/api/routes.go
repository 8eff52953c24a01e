package main

import (
	"log"
	"net/http"

	httphandlers "caixahub/internal/interfaces/http"
	"caixahub/internal/shared/config"
	"caixahub/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Public catalog and document validation
	mux.HandleFunc("/api/plans", deps.UsageHandler.HandlePlans)
	mux.HandleFunc("/api/documents/cnpj", deps.DocumentHandler.HandleCNPJ)
	mux.HandleFunc("/api/documents/phone", deps.DocumentHandler.HandlePhone)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/companies", authMiddleware(http.HandlerFunc(deps.CompanyHandler.HandleCompanies)))
	mux.Handle("/api/companies/{id}", authMiddleware(http.HandlerFunc(deps.CompanyHandler.HandleCompanyByID)))

	mux.Handle("/api/companies/{companyID}/accounts", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccounts)))
	mux.Handle("/api/companies/{companyID}/accounts/{id}", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccountByID)))

	mux.Handle("/api/companies/{companyID}/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/api/companies/{companyID}/transactions/{id}", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))
	mux.Handle("/api/companies/{companyID}/transactions/{id}/category", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleRecategorize)))
	mux.Handle("/api/companies/{companyID}/transactions/{id}/suggest-category", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleSuggestCategory)))

	mux.Handle("/api/companies/{companyID}/bills", authMiddleware(http.HandlerFunc(deps.BillHandler.HandleBills)))
	mux.Handle("/api/companies/{companyID}/bills/{id}", authMiddleware(http.HandlerFunc(deps.BillHandler.HandleBillByID)))
	mux.Handle("/api/companies/{companyID}/bills/{id}/pay", authMiddleware(http.HandlerFunc(deps.BillHandler.HandlePayBill)))

	mux.Handle("/api/companies/{companyID}/usage", authMiddleware(http.HandlerFunc(deps.UsageHandler.HandleUsage)))
	mux.Handle("/api/companies/{companyID}/subscription", authMiddleware(http.HandlerFunc(deps.UsageHandler.HandleSubscription)))

	mux.Handle("/api/notifications", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleListNotifications)))
	mux.Handle("/api/notifications/devices", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleRegisterDevice)))
	mux.Handle("/api/notifications/{id}/open", authMiddleware(http.HandlerFunc(deps.NotificationHandler.HandleMarkOpened)))

	// Apply global middleware
	handler := middleware.Logging(middleware.Telemetry(middleware.Metrics(middleware.CORS(cfg.Server.AllowedHosts)(mux))))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
