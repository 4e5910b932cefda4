package repository

import (
	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create appends a notification
func (r *GormNotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByRecipient returns a recipient's notifications, newest first
func (r *GormNotificationRepository) ListByRecipient(recipientID uint64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("recipient_id = ?", recipientID).
		Order("timestamp DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread counts a recipient's unread notifications. Derived from the
// same table as ListByRecipient so the count and the list cannot diverge.
func (r *GormNotificationRepository) CountUnread(recipientID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips a notification to read
func (r *GormNotificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}
