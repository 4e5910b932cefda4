package services

import (
	"fmt"

	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
)

// SettingType is the declared value type of a setting key.
type SettingType string

const (
	SettingBool     SettingType = "bool"
	SettingString   SettingType = "string"
	SettingPriority SettingType = "priority"
)

// settingSchema enumerates every legal key with its type and visibility.
// Values are validated here, at the store boundary, instead of being
// coerced ad hoc by each reader.
var settingSchema = map[string]struct {
	Type       SettingType
	Visibility models.SettingVisibility
}{
	"platformName":    {SettingString, models.VisibilityPublic},
	"maintenanceMode": {SettingBool, models.VisibilityPublic},
	"defaultPriority": {SettingPriority, models.VisibilityPrivate},
	"mfaRequired":     {SettingBool, models.VisibilityPrivate},
	"autoArchive":     {SettingBool, models.VisibilityPrivate},
}

// SettingsService validates and stores typed platform configuration.
type SettingsService struct {
	settingRepo repository.SettingRepository
	auditRepo   repository.AuditLogRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingRepo repository.SettingRepository, auditRepo repository.AuditLogRepository) *SettingsService {
	return &SettingsService{settingRepo: settingRepo, auditRepo: auditRepo}
}

// Set validates key and value against the schema, persists, and audits.
func (s *SettingsService) Set(performedBy, key, value string) (*models.Setting, error) {
	schema, ok := settingSchema[key]
	if !ok {
		return nil, validationErrorf("unknown setting %q", key)
	}

	switch schema.Type {
	case SettingBool:
		if value != "true" && value != "false" {
			return nil, validationErrorf("setting %q must be \"true\" or \"false\"", key)
		}
	case SettingPriority:
		if !models.TaskPriority(value).Valid() {
			return nil, validationErrorf("setting %q must be a valid priority", key)
		}
	}

	setting := &models.Setting{
		Key:        key,
		Value:      value,
		Visibility: schema.Visibility,
	}
	if err := s.settingRepo.Upsert(setting); err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}

	entry := &models.AuditLogEntry{
		Action:      models.AuditUpdateSetting,
		PerformedBy: performedBy,
		Details:     fmt.Sprintf("Updated system setting: %s to %s", key, value),
	}
	if err := s.auditRepo.Append(entry); err != nil {
		return nil, fmt.Errorf("failed to audit setting change: %w", err)
	}

	return setting, nil
}

// All returns every setting; requires authentication at the handler.
func (s *SettingsService) All() ([]models.Setting, error) {
	settings, err := s.settingRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Public returns only the PUBLIC-visibility settings as a key/value map.
func (s *SettingsService) Public() (map[string]string, error) {
	settings, err := s.settingRepo.ListPublic()
	if err != nil {
		return nil, fmt.Errorf("failed to list public settings: %w", err)
	}

	public := make(map[string]string, len(settings))
	for _, setting := range settings {
		public[setting.Key] = setting.Value
	}
	return public, nil
}

// Bool reads a bool-typed setting; missing keys default to false.
func (s *SettingsService) Bool(key string) bool {
	setting, err := s.settingRepo.FindByKey(key)
	if err != nil {
		return false
	}
	return setting.Value == "true"
}

// DefaultPriority reads the defaultPriority setting, falling back to MEDIUM.
func (s *SettingsService) DefaultPriority() models.TaskPriority {
	setting, err := s.settingRepo.FindByKey("defaultPriority")
	if err != nil {
		return models.PriorityMedium
	}

	priority := models.TaskPriority(setting.Value)
	if !priority.Valid() {
		return models.PriorityMedium
	}
	return priority
}
