package jobs

import (
	"context"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/logger"
)

// ExpireStaleApprovals rejects orders whose vendor never acted within the
// approval window. Each rejection releases the inventory locks and initiates
// a full refund through the lifecycle service.
func (jr *JobRunner) ExpireStaleApprovals() {
	jr.runWithRecovery("ExpireStaleApprovals", func() {
		ctx := context.Background()
		cutoff := jr.clk.Now().Add(-time.Duration(jr.config.Rental.ApprovalTimeoutHours) * time.Hour)

		stale, err := jr.store.OrderRepository.ListStale(ctx, domain.OrderStatusPendingVendorApproval, cutoff)
		if err != nil {
			logger.Error("Failed to list stale approvals", "error", err)
			return
		}

		expired := 0
		for _, o := range stale {
			if _, err := jr.services.Lifecycle.ExpireApproval(ctx, o.ID); err != nil {
				// A concurrent vendor action may have already moved the
				// order; log and keep going.
				logger.Error("Failed to expire approval", "order_id", o.ID, "error", err)
				continue
			}
			expired++
		}
		logger.Info("Expired stale approvals", "candidates", len(stale), "expired", expired)
	})
}

// SendApprovalReminders nudges vendors whose pending orders are nearing the
// rejection deadline.
func (jr *JobRunner) SendApprovalReminders() {
	jr.runWithRecovery("SendApprovalReminders", func() {
		ctx := context.Background()
		timeout := time.Duration(jr.config.Rental.ApprovalTimeoutHours) * time.Hour
		remind := time.Duration(jr.config.Rental.ApprovalReminderHours) * time.Hour
		// Orders older than timeout-remind are inside the reminder window.
		cutoff := jr.clk.Now().Add(-(timeout - remind))

		pending, err := jr.store.OrderRepository.ListStale(ctx, domain.OrderStatusPendingVendorApproval, cutoff)
		if err != nil {
			logger.Error("Failed to list pending approvals", "error", err)
			return
		}

		sent := 0
		for _, o := range pending {
			// The job runs far more often than the reminder window is
			// wide; one reminder per order is enough.
			if done, err := jr.services.Notification.AlreadySent(ctx, "APPROVAL_REMINDER", o.ID); err != nil {
				logger.Error("Failed to check reminder state", "order_id", o.ID, "error", err)
				continue
			} else if done {
				continue
			}
			if err := jr.services.Notification.Dispatch(ctx, "APPROVAL_REMINDER", o.VendorID,
				"Approval Reminder", "Order "+o.OrderNumber+" still needs your decision",
				map[string]string{"type": "APPROVAL_REMINDER", "order_id": o.ID}); err != nil {
				logger.Error("Failed to create reminder notification", "order_id", o.ID, "error", err)
				continue
			}
			hoursLeft := int(timeout.Hours()) - int(jr.clk.Now().Sub(o.CreatedAt).Hours())
			if hoursLeft < 0 {
				hoursLeft = 0
			}
			if vendor, err := jr.store.UserRepository.GetByID(ctx, o.VendorID); err == nil {
				if err := jr.services.Email.SendApprovalReminderNotification(ctx, vendor.Email, o.OrderNumber, hoursLeft); err != nil {
					logger.Error("Failed to send approval reminder", "order_id", o.ID, "error", err)
				}
			}
			sent++
		}
		logger.Info("Sent approval reminders", "candidates", len(pending), "sent", sent)
	})
}

// ActivateDueRentals moves approved orders into ACTIVE_RENTAL once their
// rental window has opened.
func (jr *JobRunner) ActivateDueRentals() {
	jr.runWithRecovery("ActivateDueRentals", func() {
		ctx := context.Background()

		due, err := jr.store.OrderRepository.ListDueForActivation(ctx, jr.clk.Now())
		if err != nil {
			logger.Error("Failed to list due rentals", "error", err)
			return
		}

		activated := 0
		for _, o := range due {
			if _, err := jr.services.Lifecycle.ActivateRental(ctx, o.ID); err != nil {
				logger.Error("Failed to activate rental", "order_id", o.ID, "error", err)
				continue
			}
			activated++
		}
		logger.Info("Activated due rentals", "candidates", len(due), "activated", activated)
	})
}

// DetectLateReturns notifies both parties about active rentals past their
// period end. Completion itself stays with the vendor confirming the return;
// the late fee is computed at that point.
func (jr *JobRunner) DetectLateReturns() {
	jr.runWithRecovery("DetectLateReturns", func() {
		ctx := context.Background()

		overdue, err := jr.store.OrderRepository.ListOverdue(ctx, jr.clk.Now())
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		noticed := 0
		for _, o := range overdue {
			if done, err := jr.services.Notification.AlreadySent(ctx, "LATE_RETURN_DETECTED", o.ID); err != nil {
				logger.Error("Failed to check late notice state", "order_id", o.ID, "error", err)
				continue
			} else if done {
				continue
			}
			for _, userID := range []string{o.CustomerID, o.VendorID} {
				if err := jr.services.Notification.Dispatch(ctx, "LATE_RETURN_DETECTED", userID,
					"Rental Overdue", "Order "+o.OrderNumber+" is past its rental period and has not been returned",
					map[string]string{"type": "LATE_RETURN_DETECTED", "order_id": o.ID}); err != nil {
					logger.Error("Failed to create overdue notification", "order_id", o.ID, "error", err)
				}
			}
			logger.Debug("Detected late return", "order_id", o.ID, "order_number", o.OrderNumber)
			noticed++
		}
		logger.Info("Detected late returns", "candidates", len(overdue), "noticed", noticed)
	})
}
