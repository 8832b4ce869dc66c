package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendOrderPlacedNotification(ctx context.Context, vendorEmail, customerName, orderNumber string) error {
	body := fmt.Sprintf("Hello,\n\n%s placed rental order %s. Review it in your vendor dashboard.\n\nThe RentHub Team", customerName, orderNumber)
	return s.send(vendorEmail, fmt.Sprintf("New Rental Order %s", orderNumber), body)
}

func (s *emailService) SendOrderApprovedNotification(ctx context.Context, customerEmail, orderNumber string) error {
	body := fmt.Sprintf("Hello,\n\nYour rental order %s was approved by the vendor.\n\nThe RentHub Team", orderNumber)
	return s.send(customerEmail, fmt.Sprintf("Order %s Approved", orderNumber), body)
}

func (s *emailService) SendOrderRejectedNotification(ctx context.Context, customerEmail, orderNumber, reason string) error {
	body := fmt.Sprintf("Hello,\n\nYour rental order %s was rejected.", orderNumber)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nA full refund has been initiated.\n\nThe RentHub Team"
	return s.send(customerEmail, fmt.Sprintf("Order %s Rejected", orderNumber), body)
}

func (s *emailService) SendRefundInitiatedNotification(ctx context.Context, customerEmail, orderNumber string, amountCents int64) error {
	body := fmt.Sprintf("Hello,\n\nA refund of %.2f for order %s has been initiated. It may take a few business days to reach your account.\n\nThe RentHub Team",
		float64(amountCents)/100, orderNumber)
	return s.send(customerEmail, fmt.Sprintf("Refund Initiated for Order %s", orderNumber), body)
}

func (s *emailService) SendApprovalReminderNotification(ctx context.Context, vendorEmail, orderNumber string, hoursLeft int) error {
	body := fmt.Sprintf("Hello,\n\nOrder %s is still waiting for your approval. It will be rejected automatically in about %d hours.\n\nThe RentHub Team", orderNumber, hoursLeft)
	return s.send(vendorEmail, fmt.Sprintf("Action Needed: Order %s", orderNumber), body)
}

func (s *emailService) SendLateReturnNotification(ctx context.Context, email, orderNumber string, lateFeeCents int64) error {
	body := fmt.Sprintf("Hello,\n\nOrder %s was returned after its rental period. A late fee of %.2f applies.\n\nThe RentHub Team",
		orderNumber, float64(lateFeeCents)/100)
	return s.send(email, fmt.Sprintf("Late Return on Order %s", orderNumber), body)
}

func (s *emailService) SendAdminAlert(ctx context.Context, adminEmail, subject, message string) error {
	return s.send(adminEmail, subject, message)
}
