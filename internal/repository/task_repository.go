package repository

import (
	"errors"
	"time"

	"github.com/taskbridge/taskbridge-api/internal/models"
	"gorm.io/gorm"
)

// ErrNotClaimable is returned when the conditional claim update matched no
// row: the task was already assigned or left PENDING.
var ErrNotClaimable = errors.New("task repository: task is not claimable")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.CreatedByID != nil {
		query = query.Where("tasks.created_by_id = ?", *filter.CreatedByID)
	}
	if filter.AssignedToID != nil {
		query = query.Where("tasks.assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.Unassigned {
		query = query.Where("tasks.assigned_to_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("CreatedBy").Preload("AssignedTo").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Claim performs the compare-and-set that resolves the double-claim race:
// a single conditional UPDATE guarded by status and the unassigned check.
func (r *GormTaskRepository) Claim(taskID, managerID uint64, toDoPlan string, at time.Time) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ? AND assigned_to_id IS NULL", taskID, models.TaskStatusPending).
		Updates(map[string]interface{}{
			"assigned_to_id": managerID,
			"to_do_plan":     toDoPlan,
			"assigned_at":    at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotClaimable
	}
	return nil
}

// ListByAssignee returns all tasks currently assigned to a manager
func (r *GormTaskRepository) ListByAssignee(managerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Where("assigned_to_id = ?", managerID).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompletedSince returns completed tasks with completedAt >= since
func (r *GormTaskRepository) CompletedSince(since time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("status = ? AND completed_at IS NOT NULL AND completed_at >= ?", models.TaskStatusCompleted, since).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus returns the number of tasks per status
func (r *GormTaskRepository) CountByStatus() (map[models.TaskStatus]int64, error) {
	type statusCount struct {
		Status models.TaskStatus
		Count  int64
	}

	var rows []statusCount
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// ArchiveCompletedBefore soft-deletes completed tasks older than the cutoff
func (r *GormTaskRepository) ArchiveCompletedBefore(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("status = ? AND completed_at IS NOT NULL AND completed_at < ?", models.TaskStatusCompleted, cutoff).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
