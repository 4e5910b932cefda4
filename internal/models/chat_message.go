package models

import "time"

type MessageType string

const (
	MessageSent     MessageType = "sent"
	MessageReceived MessageType = "received"
)

// ChatMessage is one entry of the per-user support log. SenderID is nil for
// bot replies.
type ChatMessage struct {
	ID         uint64      `gorm:"primarykey" json:"id"`
	SenderID   *uint64     `gorm:"index" json:"senderId"`
	ReceiverID *uint64     `gorm:"index" json:"receiverId"`
	Content    string      `gorm:"type:text;not null" json:"content"`
	Type       MessageType `gorm:"type:varchar(20);not null" json:"type"`
	Timestamp  time.Time   `gorm:"autoCreateTime" json:"timestamp"`
}
