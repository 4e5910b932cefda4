package repository

import (
	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository is a GORM implementation of SettingRepository
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &GormSettingRepository{db: db}
}

// Upsert creates or updates a setting by key
func (r *GormSettingRepository) Upsert(setting *models.Setting) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "visibility", "updated_at"}),
		}).
		Create(setting).Error
}

// FindByKey finds a setting by key
func (r *GormSettingRepository) FindByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where(map[string]interface{}{"key": key}).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// List returns all settings
func (r *GormSettingRepository) List() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Order(settingKeyOrder()).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ListPublic returns only PUBLIC settings
func (r *GormSettingRepository) ListPublic() ([]models.Setting, error) {
	var settings []models.Setting
	err := r.db.
		Where("visibility = ?", models.VisibilityPublic).
		Order(settingKeyOrder()).
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// settingKeyOrder orders by the key column with proper quoting; "key" is
// reserved in MySQL.
func settingKeyOrder() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: "key"}}
}
