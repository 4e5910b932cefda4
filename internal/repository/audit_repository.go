package repository

import (
	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository is a GORM implementation of AuditLogRepository
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Append writes an entry
func (r *GormAuditLogRepository) Append(entry *models.AuditLogEntry) error {
	return r.db.Create(entry).Error
}

// List returns entries, newest first
func (r *GormAuditLogRepository) List() ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	if err := r.db.Order("timestamp DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
