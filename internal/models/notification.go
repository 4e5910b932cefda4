package models

import "time"

// Notification is append-only; the only mutation is flipping Read to true.
type Notification struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	RecipientID uint64    `gorm:"not null;index" json:"recipientId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Read        bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`

	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
