package jobs

import (
	"renthub-backend/internal/clock"
	"renthub-backend/internal/config"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/repository/postgres"
	"renthub-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	services *Services
	clk      clock.Clock
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Lifecycle    service.OrderLifecycleService
	Notification service.NotificationService
	Email        service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, services *Services, clk clock.Clock, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		services: services,
		clk:      clk,
		config:   cfg,
	}
}

// Config exposes the configuration for the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution via the cronjob binary)
func (jr *JobRunner) RunAll() {
	jr.ExpireStaleApprovals()
	jr.SendApprovalReminders()
	jr.ActivateDueRentals()
	jr.DetectLateReturns()
}
