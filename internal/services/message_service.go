package services

import (
	"fmt"
	"strings"

	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
)

// MessageService is the append-only support channel between a user and the
// support bot. No state machine lives here.
type MessageService struct {
	messageRepo repository.MessageRepository
	notifier    *NotificationService
	bot         *SupportBot
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo repository.MessageRepository, notifier *NotificationService, bot *SupportBot) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		notifier:    notifier,
		bot:         bot,
	}
}

// List returns the user's full support log, oldest first.
func (s *MessageService) List(userID uint64) ([]models.ChatMessage, error) {
	messages, err := s.messageRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// Send appends the user's message and the bot reply, and raises a
// notification about the reply.
func (s *MessageService) Send(userID uint64, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationErrorf("message content is required")
	}

	msg := &models.ChatMessage{
		SenderID: &userID,
		Content:  content,
		Type:     models.MessageSent,
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	reply := &models.ChatMessage{
		ReceiverID: &userID,
		Content:    s.bot.Reply(content),
		Type:       models.MessageReceived,
	}
	if err := s.messageRepo.Create(reply); err != nil {
		return nil, fmt.Errorf("failed to save bot reply: %w", err)
	}

	s.notifier.Notify(userID, "New Support Message", "The Support Bot has replied to your query.")

	return msg, nil
}
