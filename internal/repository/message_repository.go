package repository

import (
	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create appends a chat message
func (r *GormMessageRepository) Create(msg *models.ChatMessage) error {
	return r.db.Create(msg).Error
}

// ListForUser returns messages sent or received by the user, oldest first
func (r *GormMessageRepository) ListForUser(userID uint64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("timestamp ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
