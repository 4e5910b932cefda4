package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusRejected   TaskStatus = "REJECTED"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(255);not null" json:"title"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Category    string       `gorm:"type:varchar(100)" json:"category"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Deadline    string       `gorm:"type:varchar(50);not null" json:"deadline"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	// Execution artifacts, each written by a specific transition
	ToDoPlan        string `gorm:"type:text" json:"toDoPlan"`
	Feedback        string `gorm:"type:text" json:"feedback"`
	CompletionProof string `gorm:"type:text" json:"completionProof"`
	RejectionReason string `gorm:"type:text" json:"rejectionReason"`

	// Write-once, only after completion
	QualityScore *int `json:"qualityScore"`

	CreatedByID      uint64  `gorm:"not null;index" json:"createdById"`
	AssignedToID     *uint64 `gorm:"index" json:"assignedToId"`
	BackupAssigneeID *uint64 `json:"backupAssigneeId"`

	CreatedAt   time.Time      `json:"createdAt"`
	AssignedAt  *time.Time     `json:"assignedAt"`
	StartedAt   *time.Time     `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy      User  `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	AssignedTo     *User `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	BackupAssignee *User `gorm:"foreignKey:BackupAssigneeID" json:"backupAssignee,omitempty"`
}
