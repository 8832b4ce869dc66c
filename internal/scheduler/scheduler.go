package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"renthub-backend/internal/jobs"
	"renthub-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	// Reject orders whose approval window lapsed
	_, err := s.cron.AddFunc(cfg.ExpireStaleApprovals, s.jobs.ExpireStaleApprovals)
	if err != nil {
		logger.Error("Failed to register ExpireStaleApprovals job", "error", err)
	}

	// Remind vendors nearing the approval deadline
	_, err = s.cron.AddFunc(cfg.SendApprovalReminders, s.jobs.SendApprovalReminders)
	if err != nil {
		logger.Error("Failed to register SendApprovalReminders job", "error", err)
	}

	// Move approved orders into their active rental window
	_, err = s.cron.AddFunc(cfg.ActivateDueRentals, s.jobs.ActivateDueRentals)
	if err != nil {
		logger.Error("Failed to register ActivateDueRentals job", "error", err)
	}

	// Flag rentals past their end without a confirmed return
	_, err = s.cron.AddFunc(cfg.DetectLateReturns, s.jobs.DetectLateReturns)
	if err != nil {
		logger.Error("Failed to register DetectLateReturns job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
