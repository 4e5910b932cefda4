package repository

import (
	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users, optionally restricted to one role
func (r *GormUserRepository) List(role *models.Role) ([]models.User, error) {
	var users []models.User
	query := r.db.Order("id ASC")
	if role != nil {
		query = query.Where("role = ?", *role)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft deletes a user
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Delete(&models.User{}, id).Error
}

// CountByRole returns the number of users per role
func (r *GormUserRepository) CountByRole() (map[models.Role]int64, error) {
	type roleCount struct {
		Role  models.Role
		Count int64
	}

	var rows []roleCount
	err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
