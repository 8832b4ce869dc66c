package service

import (
	"context"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"

	"github.com/google/uuid"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) Dispatch(ctx context.Context, eventType, userID, title, message string, attrs map[string]string) error {
	if attrs == nil {
		attrs = map[string]string{"type": eventType}
	}
	note := &domain.Notification{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Message:    message,
		Attributes: attrs,
	}
	return s.noteRepo.Create(ctx, note)
}

func (s *notificationService) AlreadySent(ctx context.Context, eventType, orderID string) (bool, error) {
	return s.noteRepo.ExistsByTypeAndOrder(ctx, eventType, orderID)
}

func (s *notificationService) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
