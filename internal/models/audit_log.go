package models

import "time"

// AuditLogEntry records a privileged mutation. Entries are immutable once
// written; there is no update or delete path.
type AuditLogEntry struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
	Action      string    `gorm:"type:varchar(50);not null" json:"action"`
	PerformedBy string    `gorm:"type:varchar(255);not null" json:"performedBy"`
	Details     string    `gorm:"type:text" json:"details"`
}

// Audit actions
const (
	AuditUpdateRole    = "UPDATE_ROLE"
	AuditSuspendUser   = "SUSPEND_USER"
	AuditActivateUser  = "ACTIVATE_USER"
	AuditDeleteUser    = "DELETE_USER"
	AuditUpdateSetting = "UPDATE_SETTING"
	AuditReassignTask  = "REASSIGN_TASK"
	AuditResolveTask   = "RESOLVE_TASK"
)
