package services

import (
	"errors"
	"fmt"

	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
	"gorm.io/gorm"
)

// NotificationService produces and tracks read/unread notifications.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify appends a notification for the recipient. Delivery is best-effort:
// a failed write is logged and swallowed so it never fails the task
// mutation that triggered it.
func (s *NotificationService) Notify(recipientID uint64, title, message string) {
	n := &models.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logging.Logger.WithError(err).
			WithField("recipient_id", recipientID).
			Warn("failed to deliver notification")
	}
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(recipientID uint64) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount counts the recipient's unread notifications.
func (s *NotificationService) UnreadCount(recipientID uint64) (int64, error) {
	count, err := s.notificationRepo.CountUnread(recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips a notification to read. Only the recipient may do it;
// marking an already-read notification is a no-op.
func (s *NotificationService) MarkRead(id, actorID uint64) error {
	n, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to find notification: %w", err)
	}

	if n.RecipientID != actorID {
		return ErrNotPermitted
	}

	if n.Read {
		return nil
	}

	if err := s.notificationRepo.MarkRead(id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
