package database

import (
	"fmt"

	"github.com/taskbridge/taskbridge-api/internal/config"
	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialector = mysql.Open(dsn)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Logger.WithField("driver", cfg.DBDriver).Info("Database connection established")
	return nil
}

func Migrate() error {
	logging.Logger.Info("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Notification{},
		&models.Setting{},
		&models.AuditLogEntry{},
		&models.ChatMessage{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logging.Logger.Info("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
