package main

import (
	"context"
	"log"

	"caixahub/internal/domain/account"
	"caixahub/internal/domain/bill"
	"caixahub/internal/domain/company"
	"caixahub/internal/domain/notification"
	"caixahub/internal/domain/plan"
	"caixahub/internal/domain/transaction"
	"caixahub/internal/infrastructure/firebase"
	"caixahub/internal/infrastructure/postgres"
	httphandlers "caixahub/internal/interfaces/http"
	"caixahub/internal/shared/auth"
	"caixahub/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	CompanyHandler      *httphandlers.CompanyHandler
	AccountHandler      *httphandlers.AccountHandler
	TransactionHandler  *httphandlers.TransactionHandler
	BillHandler         *httphandlers.BillHandler
	UsageHandler        *httphandlers.UsageHandler
	NotificationHandler *httphandlers.NotificationHandler
	DocumentHandler     *httphandlers.DocumentHandler

	// Auth
	JWT *auth.JWT

	// Services (for scheduler wiring)
	PlanService         *plan.Service
	NotificationService *notification.Service

	// Repositories (for scheduler job provider)
	CompanyRepo *postgres.CompanyRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	companyRepo := postgres.NewCompanyRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	billRepo := postgres.NewBillRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	usageCounters := postgres.NewUsageCounters(db)

	// Initialize Firebase messaging if configured. Invalid and
	// unregistered tokens reported by FCM are deactivated in place.
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Failed to initialize Firebase messaging: %v", err)
		} else {
			messenger = fcmClient
			log.Println("Firebase messaging initialized")
		}
	} else {
		log.Println("Firebase messaging disabled (no credentials file)")
	}

	// Initialize domain services
	planService := plan.NewService(subscriptionRepo, usageCounters)
	companyService := company.NewService(companyRepo)
	accountService := account.NewService(accountRepo, planService)
	transactionService := transaction.NewService(transactionRepo, planService, usageCounters)
	billService := bill.NewService(billRepo)
	notificationService := notification.NewService(notificationRepo, messenger)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userRepo, jwt)
	companyHandler := httphandlers.NewCompanyHandler(companyService)
	accountHandler := httphandlers.NewAccountHandler(accountService, companyService)
	transactionHandler := httphandlers.NewTransactionHandler(transactionService, companyService)
	billHandler := httphandlers.NewBillHandler(billService, companyService)
	usageHandler := httphandlers.NewUsageHandler(planService, companyService)
	notificationHandler := httphandlers.NewNotificationHandler(notificationService)
	documentHandler := httphandlers.NewDocumentHandler()

	return &Dependencies{
		DB:                  db,
		AuthHandler:         authHandler,
		CompanyHandler:      companyHandler,
		AccountHandler:      accountHandler,
		TransactionHandler:  transactionHandler,
		BillHandler:         billHandler,
		UsageHandler:        usageHandler,
		NotificationHandler: notificationHandler,
		DocumentHandler:     documentHandler,
		JWT:                 jwt,
		PlanService:         planService,
		NotificationService: notificationService,
		CompanyRepo:         companyRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
