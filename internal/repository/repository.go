package repository

import (
	"time"

	"github.com/taskbridge/taskbridge-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Claim atomically assigns a pending, unassigned task to a manager.
	// Returns ErrNotClaimable when another manager got there first or the
	// task is no longer pending.
	Claim(taskID, managerID uint64, toDoPlan string, at time.Time) error

	// ListByAssignee returns all tasks currently assigned to a manager
	ListByAssignee(managerID uint64) ([]models.Task, error)

	// CompletedSince returns completed tasks with completedAt >= since
	CompletedSince(since time.Time) ([]models.Task, error)

	// CountByStatus returns the number of tasks per status
	CountByStatus() (map[models.TaskStatus]int64, error)

	// ArchiveCompletedBefore soft-deletes completed tasks whose completedAt
	// is older than the cutoff; returns the number archived
	ArchiveCompletedBefore(cutoff time.Time) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status       *models.TaskStatus
	CreatedByID  *uint64
	AssignedToID *uint64
	Unassigned   bool
	Page         int
	PageSize     int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// List returns all users, optionally restricted to one role
	List(role *models.Role) ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error

	// CountByRole returns the number of users per role
	CountByRole() (map[models.Role]int64, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create appends a notification
	Create(n *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// ListByRecipient returns a recipient's notifications, newest first
	ListByRecipient(recipientID uint64) ([]models.Notification, error)

	// CountUnread counts a recipient's unread notifications
	CountUnread(recipientID uint64) (int64, error)

	// MarkRead flips a notification to read
	MarkRead(id uint64) error
}

// SettingRepository defines the interface for settings data access
type SettingRepository interface {
	// Upsert creates or updates a setting by key
	Upsert(setting *models.Setting) error

	// FindByKey finds a setting by key
	FindByKey(key string) (*models.Setting, error)

	// List returns all settings
	List() ([]models.Setting, error)

	// ListPublic returns only PUBLIC settings
	ListPublic() ([]models.Setting, error)
}

// AuditLogRepository defines the interface for the append-only audit log
type AuditLogRepository interface {
	// Append writes an entry; entries are never mutated afterwards
	Append(entry *models.AuditLogEntry) error

	// List returns entries, newest first
	List() ([]models.AuditLogEntry, error)
}

// MessageRepository defines the interface for support chat data access
type MessageRepository interface {
	// Create appends a chat message
	Create(msg *models.ChatMessage) error

	// ListForUser returns messages sent or received by the user, oldest first
	ListForUser(userID uint64) ([]models.ChatMessage, error)
}
