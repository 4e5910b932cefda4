package models

import "time"

type SettingVisibility string

const (
	VisibilityPublic  SettingVisibility = "PUBLIC"
	VisibilityPrivate SettingVisibility = "PRIVATE"
)

type Setting struct {
	Key        string            `gorm:"primarykey;type:varchar(100)" json:"key"`
	Value      string            `gorm:"type:varchar(255);not null" json:"value"`
	Visibility SettingVisibility `gorm:"type:varchar(20);not null;default:'PRIVATE'" json:"visibility"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
