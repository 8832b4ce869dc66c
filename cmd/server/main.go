package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	httpapi "renthub-backend/internal/api/http"
	"renthub-backend/internal/clock"
	"renthub-backend/internal/config"
	"renthub-backend/internal/gateway"
	"renthub-backend/internal/jobs"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/repository/postgres"
	"renthub-backend/internal/scheduler"
	"renthub-backend/internal/security"
	"renthub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runScheduler := flag.Bool("scheduler", true, "Run the background job scheduler in-process")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Payment Gateway client
	gw := gateway.NewHTTPClient(
		cfg.Gateway.BaseURL,
		cfg.Gateway.KeyID,
		cfg.Gateway.KeySecret,
		time.Duration(cfg.Gateway.TimeoutSeconds)*time.Second,
	)

	clk := clock.System()

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	catalogSvc := service.NewCatalogService(store.ProductRepository, store.UserRepository)
	inventorySvc := service.NewInventoryService(store.InventoryLockRepository, store.ProductRepository)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.RefundRepository,
		store.InterventionRepository,
		store.UserRepository,
		gw,
		clk,
	)
	lifecycleSvc := service.NewOrderLifecycleService(
		store.OrderRepository,
		store.InventoryLockRepository,
		store.PeriodRepository,
		store.PaymentRepository,
		store.UserRepository,
		paymentSvc,
		noteSvc,
		emailSvc,
		clk,
		cfg.Rental,
	)
	checkoutSvc := service.NewCheckoutService(
		store.OrderRepository,
		store.PaymentRepository,
		store.InventoryLockRepository,
		store.PeriodRepository,
		store.ProductRepository,
		store.UserRepository,
		store.InterventionRepository,
		gw,
		noteSvc,
		emailSvc,
		clk,
		cfg.Rental,
	)

	// Background jobs run in-process by default; pass -scheduler=false when
	// the cronjob binary owns them instead.
	if *runScheduler {
		jobRunner := jobs.NewJobRunner(store, &jobs.Services{
			Lifecycle:    lifecycleSvc,
			Notification: noteSvc,
			Email:        emailSvc,
		}, clk, cfg)
		sched := scheduler.NewScheduler(jobRunner)
		sched.Start()
		defer sched.Stop()
	}

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:          authSvc,
		Catalog:       catalogSvc,
		Inventory:     inventorySvc,
		Checkout:      checkoutSvc,
		Lifecycle:     lifecycleSvc,
		Payments:      paymentSvc,
		Notifications: noteSvc,
	}, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
