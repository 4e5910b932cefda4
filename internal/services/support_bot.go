package services

import (
	"fmt"
	"strings"
)

// SupportBot is the canned keyword responder behind the support channel.
// It never calls out anywhere; replies are instant and deterministic.
type SupportBot struct{}

// NewSupportBot creates a new SupportBot
func NewSupportBot() *SupportBot {
	return &SupportBot{}
}

// Reply picks a canned response for the user's message.
func (b *SupportBot) Reply(message string) string {
	if strings.TrimSpace(message) == "" {
		return "I'm here to help! Please type your question or issue."
	}

	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "hello", "hi", "hey"):
		return "Hello! I'm the TaskBridge Support AI. How can I assist you with your missions today?"
	case containsAny(lower, "password", "reset", "forgot"):
		return "To reset your password, go to the Login page and click 'Forgot Password'. You'll receive a secure 6-digit code directly on the screen to use for the reset. No email wait required!"
	case containsAny(lower, "task", "mission", "create"):
		return "You can create a new mission by clicking the 'My Requests' tab and filling out the 'Create New Request' form. Make sure to set a priority and a deadline!"
	case containsAny(lower, "status", "progress", "track"):
		return "You can track your mission progress in the 'Request History' section. Look for the live tracker bars: Pending (0%), In Progress (50%), and Verified (100%)."
	case containsAny(lower, "who are you", "bot", "ai"):
		return "I am the TaskBridge Intelligence Unit, designed to provide instant support for field operatives. I can help with account access, mission creation, and platform navigation."
	case containsAny(lower, "priority", "urgent"):
		return "We offer four priority levels: Low, Medium, High, and Urgent. High priority tasks are prioritized by managers for faster assignment."
	}

	return fmt.Sprintf("I've logged your query about %q. While I'm looking into the specifics, you can check the 'My Requests' tab for quick actions or wait for a human manager to chime in. Ticket status: Processing.", message)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
