package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Suspended    bool           `gorm:"not null;default:false" json:"suspended"`

	// Availability is meaningful for managers only
	Available          bool   `gorm:"not null;default:true" json:"available"`
	AvailabilityStatus string `gorm:"type:varchar(100)" json:"availabilityStatus"`

	// Password reset one-time code; delivery happens outside the core
	OTP       string     `gorm:"type:varchar(10)" json:"-"`
	OTPExpiry *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks  []Task `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTasks []Task `gorm:"foreignKey:AssignedToID" json:"-"`
}
