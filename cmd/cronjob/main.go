package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"renthub-backend/internal/clock"
	"renthub-backend/internal/config"
	"renthub-backend/internal/gateway"
	"renthub-backend/internal/jobs"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/repository/postgres"
	"renthub-backend/internal/scheduler"
	"renthub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-stale-approvals', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentHub Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	clk := clock.System()

	gw := gateway.NewHTTPClient(
		cfg.Gateway.BaseURL,
		cfg.Gateway.KeyID,
		cfg.Gateway.KeySecret,
		time.Duration(cfg.Gateway.TimeoutSeconds)*time.Second,
	)

	// Initialize Services. The lifecycle service carries the refund path so
	// that expiring a stale approval refunds the customer like a manual
	// rejection would.
	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	notificationService := service.NewNotificationService(store.NotificationRepository)
	paymentService := service.NewPaymentService(
		store.PaymentRepository,
		store.RefundRepository,
		store.InterventionRepository,
		store.UserRepository,
		gw,
		clk,
	)
	lifecycleService := service.NewOrderLifecycleService(
		store.OrderRepository,
		store.InventoryLockRepository,
		store.PeriodRepository,
		store.PaymentRepository,
		store.UserRepository,
		paymentService,
		notificationService,
		emailService,
		clk,
		cfg.Rental,
	)

	jobServices := &jobs.Services{
		Lifecycle:    lifecycleService,
		Notification: notificationService,
		Email:        emailService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, jobServices, clk, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "expire-stale-approvals":
		jobRunner.ExpireStaleApprovals()
	case "send-approval-reminders":
		jobRunner.SendApprovalReminders()
	case "activate-due-rentals":
		jobRunner.ActivateDueRentals()
	case "detect-late-returns":
		jobRunner.DetectLateReturns()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - expire-stale-approvals\n")
		fmt.Printf("  - send-approval-reminders\n")
		fmt.Printf("  - activate-due-rentals\n")
		fmt.Printf("  - detect-late-returns\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
