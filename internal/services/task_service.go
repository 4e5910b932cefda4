package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskbridge/taskbridge-api/internal/constants"
	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService owns the task lifecycle state machine. Every operation checks
// the actor and the status precondition before writing; a failed mutation
// leaves the task untouched.
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
	notifier  *NotificationService
	settings  *SettingsService
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	notifier *NotificationService,
	settings *SettingsService,
) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
		settings:  settings,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID     uint64
	Title       string
	Description string
	Category    string
	Priority    models.TaskPriority
	Deadline    string
}

// CreateTask creates a new request in PENDING with no assignee.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, validationErrorf("title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, validationErrorf("description is required")
	}
	if strings.TrimSpace(input.Deadline) == "" {
		return nil, validationErrorf("deadline is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = s.settings.DefaultPriority()
	}
	if !priority.Valid() {
		return nil, validationErrorf("invalid priority %q", priority)
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    priority,
		Deadline:    input.Deadline,
		Status:      models.TaskStatusPending,
		CreatedByID: input.OwnerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifier.Notify(input.OwnerID, "Task Created",
		fmt.Sprintf("Your request %q has been submitted successfully.", task.Title))

	return s.taskRepo.FindByID(task.ID, "CreatedBy")
}

// GetTask returns a task with related users loaded.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "CreatedBy", "AssignedTo", "BackupAssignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks visible to the actor: owners see their own
// requests, managers and admins see everything.
func (s *TaskService) ListTasks(actor *models.User, page, pageSize int) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{Page: page, PageSize: pageSize}
	if actor.Role == models.RoleUser {
		filter.CreatedByID = &actor.ID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Claim assigns a pending, unassigned task to a manager. The write is a
// single compare-and-set so two racing managers cannot both win.
func (s *TaskService) Claim(taskID, actorID uint64, toDoPlan string) (*models.Task, error) {
	actor, err := s.loadUser(actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleManager || actor.Suspended {
		return nil, ErrNotPermitted
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPending {
		return nil, invalidTransition("claim", task.Status)
	}
	if task.AssignedToID != nil {
		return nil, ErrTaskAlreadyClaimed
	}

	if err := s.taskRepo.Claim(taskID, actorID, toDoPlan, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotClaimable) {
			return nil, ErrTaskAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	s.notifier.Notify(task.CreatedByID, "Assigned to Agent",
		fmt.Sprintf("%s has accepted your request: %s", actor.Name, task.Title))

	return s.GetTask(taskID)
}

// Start moves a claimed task into IN_PROGRESS.
func (s *TaskService) Start(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPending {
		return nil, invalidTransition("start", task.Status)
	}
	if task.AssignedToID == nil || *task.AssignedToID != actorID {
		return nil, ErrNotPermitted
	}

	now := time.Now()
	task.Status = models.TaskStatusInProgress
	task.StartedAt = &now
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to start task: %w", err)
	}

	actor, err := s.loadUser(actorID)
	if err == nil {
		s.notifier.Notify(task.CreatedByID, "Operation Started",
			fmt.Sprintf("%s has started %q.", actor.Name, task.Title))
	}

	return s.GetTask(taskID)
}

// Reject declines a pending task. A manager may reject an unclaimed task or
// one they claimed themselves; a rejected task becomes a dispute awaiting
// admin arbitration.
func (s *TaskService) Reject(taskID, actorID uint64, reason string) (*models.Task, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, validationErrorf("rejection reason is required")
	}

	actor, err := s.loadUser(actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleManager {
		return nil, ErrNotPermitted
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusPending {
		return nil, invalidTransition("reject", task.Status)
	}
	if task.AssignedToID != nil && *task.AssignedToID != actorID {
		return nil, ErrNotPermitted
	}

	task.Status = models.TaskStatusRejected
	task.RejectionReason = reason
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to reject task: %w", err)
	}

	s.notifier.Notify(task.CreatedByID, "Task Rejected",
		fmt.Sprintf("Your request %q was rejected. Reason: %s", task.Title, reason))

	return s.GetTask(taskID)
}

// Complete finishes a task. The assignee completes work in progress; the
// owner may also close their own request while it is still pending (field
// confirmation), which is a deliberately separate authorization path.
func (s *TaskService) Complete(taskID, actorID uint64, feedback, proof string) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}

	switch task.Status {
	case models.TaskStatusInProgress:
		if task.AssignedToID == nil || *task.AssignedToID != actorID {
			return nil, ErrNotPermitted
		}
	case models.TaskStatusPending:
		if task.CreatedByID != actorID {
			return nil, ErrNotPermitted
		}
	default:
		return nil, invalidTransition("complete", task.Status)
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now
	task.Feedback = feedback
	task.CompletionProof = proof
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	s.notifier.Notify(task.CreatedByID, "Task Complete",
		fmt.Sprintf("Your request %q has been finalized and verified.", task.Title))

	return s.GetTask(taskID)
}

// ReRequest reopens a completed task; it returns to the open queue with no
// assignee and the prior completion artifacts cleared.
func (s *TaskService) ReRequest(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedByID != actorID {
		return nil, ErrNotPermitted
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, invalidTransition("re-request", task.Status)
	}

	task.Status = models.TaskStatusPending
	task.AssignedToID = nil
	task.AssignedTo = nil
	task.AssignedAt = nil
	task.StartedAt = nil
	task.CompletedAt = nil
	task.Feedback = ""
	task.ToDoPlan = ""
	task.CompletionProof = ""
	task.QualityScore = nil
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to re-request task: %w", err)
	}

	s.notifier.Notify(task.CreatedByID, "Task Re-opened",
		fmt.Sprintf("Your request %q is back in the open queue.", task.Title))

	return s.GetTask(taskID)
}

// Reassign is the admin's dispute arbitration: hand a rejected task to a
// new manager and return it to PENDING.
func (s *TaskService) Reassign(taskID, adminID, newAssigneeID uint64) (*models.Task, error) {
	admin, err := s.loadUser(adminID)
	if err != nil {
		return nil, err
	}
	if admin.Role != models.RoleAdmin {
		return nil, ErrNotPermitted
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusRejected {
		return nil, invalidTransition("reassign", task.Status)
	}

	assignee, err := s.userRepo.FindByID(newAssigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}

	oldAssignee := "none"
	if task.AssignedToID != nil {
		if prev, err := s.userRepo.FindByID(*task.AssignedToID); err == nil {
			oldAssignee = prev.Email
		}
	}

	task.Status = models.TaskStatusPending
	task.AssignedToID = &assignee.ID
	task.AssignedTo = nil
	task.RejectionReason = ""
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to reassign task: %w", err)
	}

	s.appendAudit(models.AuditReassignTask, admin.Email,
		fmt.Sprintf("Reassigned task '%s' from %s to %s", task.Title, oldAssignee, assignee.Email))
	s.notifier.Notify(assignee.ID, "Task Reassigned",
		fmt.Sprintf("An administrator assigned the disputed request %q to you.", task.Title))

	return s.GetTask(taskID)
}

// Resolve closes a dispute in favor of the original work.
func (s *TaskService) Resolve(taskID, adminID uint64) (*models.Task, error) {
	admin, err := s.loadUser(adminID)
	if err != nil {
		return nil, err
	}
	if admin.Role != models.RoleAdmin {
		return nil, ErrNotPermitted
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusRejected {
		return nil, invalidTransition("resolve", task.Status)
	}

	task.Status = models.TaskStatusCompleted
	if task.CompletedAt == nil {
		now := time.Now()
		task.CompletedAt = &now
	}
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to resolve task: %w", err)
	}

	s.appendAudit(models.AuditResolveTask, admin.Email,
		fmt.Sprintf("Administratively resolved task '%s'", task.Title))
	s.notifier.Notify(task.CreatedByID, "Dispute Resolved",
		fmt.Sprintf("Your request %q was resolved by an administrator.", task.Title))

	return s.GetTask(taskID)
}

// SetBackupAssignee records an advisory secondary manager on an in-progress
// task. It carries no transition rights.
func (s *TaskService) SetBackupAssignee(taskID, actorID, backupID uint64) (*models.Task, error) {
	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusInProgress {
		return nil, invalidTransition("set a backup assignee on", task.Status)
	}
	if task.AssignedToID == nil || *task.AssignedToID != actorID {
		return nil, ErrNotPermitted
	}

	backup, err := s.userRepo.FindByID(backupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find backup user: %w", err)
	}

	task.BackupAssigneeID = &backup.ID
	task.BackupAssignee = nil
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to set backup assignee: %w", err)
	}

	s.notifier.Notify(backup.ID, "Backup Assignment",
		fmt.Sprintf("You have been set as the backup assignee for task %q.", task.Title))

	return s.GetTask(taskID)
}

// SetQualityScore records the requester's one-time 1-5 rating of completed
// work. Only the task owner may score, and only once.
func (s *TaskService) SetQualityScore(taskID, actorID uint64, score int) (*models.Task, error) {
	if score < constants.MinQualityScore || score > constants.MaxQualityScore {
		return nil, validationErrorf("score must be between %d and %d",
			constants.MinQualityScore, constants.MaxQualityScore)
	}

	task, err := s.loadTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, invalidTransition("score", task.Status)
	}
	if task.CreatedByID != actorID {
		return nil, ErrNotPermitted
	}
	if task.QualityScore != nil {
		return nil, invalidTransition("re-score", task.Status)
	}

	task.QualityScore = &score
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to set quality score: %w", err)
	}

	if task.AssignedToID != nil {
		s.notifier.Notify(*task.AssignedToID, "Quality Review",
			fmt.Sprintf("Task %q received a quality score of %d/5.", task.Title, score))
	}

	return s.GetTask(taskID)
}

// Board returns the manager-scoped board columns, derived fresh on every
// read; nothing about columns is stored.
func (s *TaskService) Board(actorID uint64) (*BoardView, error) {
	actor, err := s.loadUser(actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleManager {
		return nil, ErrNotPermitted
	}

	tasks, _, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for board: %w", err)
	}

	board := BuildBoard(tasks, actorID)
	return &board, nil
}

func (s *TaskService) loadTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) loadUser(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *TaskService) appendAudit(action, performedBy, details string) {
	entry := &models.AuditLogEntry{
		Action:      action,
		PerformedBy: performedBy,
		Details:     details,
	}
	if err := s.auditRepo.Append(entry); err != nil {
		logging.Logger.WithError(err).WithField("action", action).Error("audit append failed")
	}
}
