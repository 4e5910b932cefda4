package services

import (
	"fmt"
	"math"
	"time"

	"github.com/taskbridge/taskbridge-api/internal/constants"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
)

// heatmapKeys in render order; every key is always present in the output.
var heatmapKeys = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

var weekdayKey = map[time.Weekday]string{
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
	time.Sunday:    "SUN",
}

// Dashboard aggregates the admin overview.
type Dashboard struct {
	CompletionRate   int                    `json:"completionRate"`
	TotalTasks       int64                  `json:"totalTasks"`
	CompletedTasks   int64                  `json:"completedTasks"`
	RoleDistribution map[models.Role]int64  `json:"roleDistribution"`
	Heatmap          map[string]int         `json:"heatmap"`
}

// FinanceStats summarizes one manager's completed work.
type FinanceStats struct {
	TotalEarnings  float64  `json:"totalEarnings"`
	Efficiency     int      `json:"efficiency"`
	CompletedCount int64    `json:"completedCount"`
	// AvgHours is null when no completed task has both timestamps.
	AvgHours *float64 `json:"avgHours"`
}

// AnalyticsService derives dashboards by reducing over the task and user
// stores. It holds no state and recomputes on every request.
type AnalyticsService struct {
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	ratePerTask float64
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, ratePerTask float64) *AnalyticsService {
	return &AnalyticsService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		ratePerTask: ratePerTask,
	}
}

// Dashboard computes the platform-wide aggregations.
func (s *AnalyticsService) Dashboard() (*Dashboard, error) {
	statusCounts, err := s.taskRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	var total int64
	for _, count := range statusCounts {
		total += count
	}
	completed := statusCounts[models.TaskStatusCompleted]

	roles, err := s.userRepo.CountByRole()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	distribution := map[models.Role]int64{
		models.RoleAdmin:   roles[models.RoleAdmin],
		models.RoleManager: roles[models.RoleManager],
		models.RoleUser:    roles[models.RoleUser],
	}

	heatmap, err := s.heatmap()
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		CompletionRate:   completionPercent(completed, total),
		TotalTasks:       total,
		CompletedTasks:   completed,
		RoleDistribution: distribution,
		Heatmap:          heatmap,
	}, nil
}

// heatmap buckets the trailing window of completions by weekday; days with
// no completions are 0, never absent.
func (s *AnalyticsService) heatmap() (map[string]int, error) {
	since := time.Now().Add(-constants.HeatmapWindow)
	tasks, err := s.taskRepo.CompletedSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed tasks: %w", err)
	}

	heatmap := make(map[string]int, len(heatmapKeys))
	for _, key := range heatmapKeys {
		heatmap[key] = 0
	}
	for _, task := range tasks {
		if task.CompletedAt == nil {
			continue
		}
		heatmap[weekdayKey[task.CompletedAt.Weekday()]]++
	}

	return heatmap, nil
}

// Finance computes a manager's earnings and efficiency from the tasks
// assigned to them.
func (s *AnalyticsService) Finance(managerID uint64) (*FinanceStats, error) {
	tasks, err := s.taskRepo.ListByAssignee(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load manager tasks: %w", err)
	}

	var completed int64
	var totalHours float64
	var timed int64
	for _, task := range tasks {
		if task.Status != models.TaskStatusCompleted {
			continue
		}
		completed++
		if task.StartedAt != nil && task.CompletedAt != nil {
			totalHours += task.CompletedAt.Sub(*task.StartedAt).Hours()
			timed++
		}
	}

	stats := &FinanceStats{
		TotalEarnings:  float64(completed) * s.ratePerTask,
		Efficiency:     completionPercent(completed, int64(len(tasks))),
		CompletedCount: completed,
	}
	if timed > 0 {
		avg := totalHours / float64(timed)
		stats.AvgHours = &avg
	}

	return stats, nil
}

// completionPercent rounds completed/total to the nearest integer percent;
// an empty denominator yields 0.
func completionPercent(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
