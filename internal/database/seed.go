package database

import (
	"errors"

	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts the base accounts and default settings if they are missing.
// Safe to run on every boot.
func Seed(db *gorm.DB) error {
	seedUsers := []struct {
		email string
		name  string
		role  models.Role
	}{
		{"admin@test.com", "System Admin", models.RoleAdmin},
		{"manager@test.com", "Lead Manager", models.RoleManager},
		{"user@test.com", "Standard Employee", models.RoleUser},
	}

	for _, s := range seedUsers {
		var existing models.User
		err := db.Where("email = ?", s.email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:         s.name,
			Email:        s.email,
			PasswordHash: string(hash),
			Role:         s.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		logging.Logger.WithField("email", s.email).Info("Seeded user")
	}

	defaults := []models.Setting{
		{Key: "platformName", Value: "TaskBridge", Visibility: models.VisibilityPublic},
		{Key: "maintenanceMode", Value: "false", Visibility: models.VisibilityPublic},
		{Key: "defaultPriority", Value: string(models.PriorityMedium), Visibility: models.VisibilityPrivate},
		{Key: "mfaRequired", Value: "false", Visibility: models.VisibilityPrivate},
		{Key: "autoArchive", Value: "false", Visibility: models.VisibilityPrivate},
	}

	for _, setting := range defaults {
		var existing models.Setting
		err := db.Where(map[string]interface{}{"key": setting.Key}).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&setting).Error; err != nil {
			return err
		}
	}

	return nil
}
