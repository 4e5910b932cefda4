package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService

	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditLogRepository
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// A fresh connection to ":memory:" opens a fresh database, so keep the
	// pool at a single connection.
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Notification{},
		&models.Setting{},
		&models.AuditLogEntry{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.notificationRepo = repository.NewNotificationRepository(suite.db)
	settingRepo := repository.NewSettingRepository(suite.db)
	suite.auditRepo = repository.NewAuditLogRepository(suite.db)

	notifier := NewNotificationService(suite.notificationRepo)
	settings := NewSettingsService(settingRepo, suite.auditRepo)
	suite.service = NewTaskService(taskRepo, userRepo, suite.auditRepo, notifier, settings)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test users
func (suite *TaskServiceTestSuite) createUser(email string, role models.Role) *models.User {
	user := &models.User{
		Name:         "Test " + email,
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createTask(ownerID uint64) *models.Task {
	task := &models.Task{
		Title:       "Fix the printer",
		Description: "Third floor printer is jammed",
		Priority:    models.PriorityMedium,
		Deadline:    "2026-09-30",
		Status:      models.TaskStatusPending,
		CreatedByID: ownerID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TaskServiceTestSuite) reload(id uint64) *models.Task {
	var task models.Task
	suite.Require().NoError(suite.db.First(&task, id).Error)
	return &task
}

// TestCreateTask_Success tests creating a request
func (suite *TaskServiceTestSuite) TestCreateTask_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)

	task, err := suite.service.CreateTask(CreateTaskInput{
		OwnerID:     owner.ID,
		Title:       "Replace badge",
		Description: "Lost my badge yesterday",
		Deadline:    "2026-10-01",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.Nil(suite.T(), task.AssignedToID)
	// Default priority comes from settings, falling back to MEDIUM
	assert.Equal(suite.T(), models.PriorityMedium, task.Priority)

	// Submission notifies the owner
	count, err := suite.notificationRepo.CountUnread(owner.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), count)
}

// TestCreateTask_MissingFields tests field validation
func (suite *TaskServiceTestSuite) TestCreateTask_MissingFields() {
	owner := suite.createUser("owner@example.com", models.RoleUser)

	_, err := suite.service.CreateTask(CreateTaskInput{
		OwnerID:  owner.ID,
		Title:    "No description",
		Deadline: "2026-10-01",
	})

	var verr *ValidationError
	assert.ErrorAs(suite.T(), err, &verr)
}

// TestClaim_Success tests a manager claiming a pending task
func (suite *TaskServiceTestSuite) TestClaim_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	claimed, err := suite.service.Claim(task.ID, manager.ID, "1. inspect 2. fix")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, claimed.Status)
	suite.Require().NotNil(claimed.AssignedToID)
	assert.Equal(suite.T(), manager.ID, *claimed.AssignedToID)
	assert.Equal(suite.T(), "1. inspect 2. fix", claimed.ToDoPlan)
	assert.NotNil(suite.T(), claimed.AssignedAt)
}

// TestClaim_UserForbidden tests that plain users cannot claim
func (suite *TaskServiceTestSuite) TestClaim_UserForbidden() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	task := suite.createTask(owner.ID)

	_, err := suite.service.Claim(task.ID, owner.ID, "")

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestClaim_SuspendedManager tests that suspended managers cannot claim
func (suite *TaskServiceTestSuite) TestClaim_SuspendedManager() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	suite.Require().NoError(suite.db.Model(manager).Update("suspended", true).Error)
	task := suite.createTask(owner.ID)

	_, err := suite.service.Claim(task.ID, manager.ID, "")

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestClaim_AlreadyClaimed tests the second claimer losing
func (suite *TaskServiceTestSuite) TestClaim_AlreadyClaimed() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	first := suite.createUser("first@example.com", models.RoleManager)
	second := suite.createUser("second@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	_, err := suite.service.Claim(task.ID, first.ID, "")
	suite.Require().NoError(err)

	_, err = suite.service.Claim(task.ID, second.ID, "")
	assert.ErrorIs(suite.T(), err, ErrTaskAlreadyClaimed)

	// The winner's assignment stands
	suite.Require().NotNil(suite.reload(task.ID).AssignedToID)
	assert.Equal(suite.T(), first.ID, *suite.reload(task.ID).AssignedToID)
}

// TestClaim_Concurrent tests that racing managers cannot both win
func (suite *TaskServiceTestSuite) TestClaim_Concurrent() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	first := suite.createUser("first@example.com", models.RoleManager)
	second := suite.createUser("second@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, managerID := range []uint64{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, managerID uint64) {
			defer wg.Done()
			_, errs[i] = suite.service.Claim(task.ID, managerID, "")
		}(i, managerID)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(suite.T(), err, ErrTaskAlreadyClaimed)
		}
	}
	assert.Equal(suite.T(), 1, wins)
}

// TestStart_Success tests the assignee starting work
func (suite *TaskServiceTestSuite) TestStart_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)

	started, err := suite.service.Start(task.ID, manager.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, started.Status)
	assert.NotNil(suite.T(), started.StartedAt)
}

// TestStart_NotAssignee tests another manager starting someone else's task
func (suite *TaskServiceTestSuite) TestStart_NotAssignee() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	other := suite.createUser("other@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)

	_, err = suite.service.Start(task.ID, other.ID)

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestStart_Unclaimed tests starting a task nobody claimed
func (suite *TaskServiceTestSuite) TestStart_Unclaimed() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	_, err := suite.service.Start(task.ID, manager.ID)

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestComplete_ByAssignee tests the normal completion path
func (suite *TaskServiceTestSuite) TestComplete_ByAssignee() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)

	done, err := suite.service.Complete(task.ID, manager.ID, "replaced fuser", "photo.jpg")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, done.Status)
	assert.NotNil(suite.T(), done.CompletedAt)
	assert.Equal(suite.T(), "replaced fuser", done.Feedback)
	assert.Equal(suite.T(), "photo.jpg", done.CompletionProof)
}

// TestComplete_ByOwnerWhilePending tests the owner closing their own request
func (suite *TaskServiceTestSuite) TestComplete_ByOwnerWhilePending() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	task := suite.createTask(owner.ID)

	done, err := suite.service.Complete(task.ID, owner.ID, "", "")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, done.Status)
}

// TestComplete_OwnerCannotCompleteInProgress tests that once a manager is
// working, only the manager can finish
func (suite *TaskServiceTestSuite) TestComplete_OwnerCannotCompleteInProgress() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)

	_, err = suite.service.Complete(task.ID, owner.ID, "", "")

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestReject_Success tests a manager rejecting an unclaimed task
func (suite *TaskServiceTestSuite) TestReject_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	rejected, err := suite.service.Reject(task.ID, manager.ID, "out of scope")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusRejected, rejected.Status)
	assert.Equal(suite.T(), "out of scope", rejected.RejectionReason)
}

// TestReject_RequiresReason tests that an empty reason is invalid
func (suite *TaskServiceTestSuite) TestReject_RequiresReason() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	_, err := suite.service.Reject(task.ID, manager.ID, "   ")

	var verr *ValidationError
	assert.ErrorAs(suite.T(), err, &verr)
}

// TestReject_InProgressIllegal tests that work in progress cannot be rejected
func (suite *TaskServiceTestSuite) TestReject_InProgressIllegal() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)

	_, err = suite.service.Reject(task.ID, manager.ID, "changed my mind")

	var terr *InvalidTransitionError
	suite.Require().ErrorAs(err, &terr)
	assert.Equal(suite.T(), models.TaskStatusInProgress, terr.Status)
}

// TestReject_OtherManagersClaim tests rejecting a task claimed by someone else
func (suite *TaskServiceTestSuite) TestReject_OtherManagersClaim() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	other := suite.createUser("other@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)

	_, err = suite.service.Reject(task.ID, other.ID, "not mine")

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestReRequest_ResetsLifecycleFields tests reopening a completed task
func (suite *TaskServiceTestSuite) TestReRequest_ResetsLifecycleFields() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "plan")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Complete(task.ID, manager.ID, "done", "proof.png")
	suite.Require().NoError(err)
	_, err = suite.service.SetQualityScore(task.ID, owner.ID, 4)
	suite.Require().NoError(err)

	reopened, err := suite.service.ReRequest(task.ID, owner.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, reopened.Status)
	assert.Nil(suite.T(), reopened.AssignedToID)
	assert.Nil(suite.T(), reopened.AssignedAt)
	assert.Nil(suite.T(), reopened.StartedAt)
	assert.Nil(suite.T(), reopened.CompletedAt)
	assert.Empty(suite.T(), reopened.Feedback)
	assert.Empty(suite.T(), reopened.ToDoPlan)
	assert.Empty(suite.T(), reopened.CompletionProof)
	assert.Nil(suite.T(), reopened.QualityScore)
}

// TestReRequest_AllowsScoringSecondCompletion tests that the write-once
// score guard starts over after a task is reopened and redone
func (suite *TaskServiceTestSuite) TestReRequest_AllowsScoringSecondCompletion() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "plan")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Complete(task.ID, manager.ID, "done", "")
	suite.Require().NoError(err)
	_, err = suite.service.SetQualityScore(task.ID, owner.ID, 2)
	suite.Require().NoError(err)
	_, err = suite.service.ReRequest(task.ID, owner.ID)
	suite.Require().NoError(err)

	// Second pass through the lifecycle
	_, err = suite.service.Claim(task.ID, manager.ID, "second plan")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Complete(task.ID, manager.ID, "redone", "")
	suite.Require().NoError(err)

	scored, err := suite.service.SetQualityScore(task.ID, owner.ID, 5)

	suite.Require().NoError(err)
	suite.Require().NotNil(scored.QualityScore)
	assert.Equal(suite.T(), 5, *scored.QualityScore)
}

// TestReRequest_OnlyOwner tests that only the requester can reopen
func (suite *TaskServiceTestSuite) TestReRequest_OnlyOwner() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	other := suite.createUser("other@example.com", models.RoleUser)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Complete(task.ID, owner.ID, "", "")
	suite.Require().NoError(err)

	_, err = suite.service.ReRequest(task.ID, other.ID)

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestReassign_Success tests admin arbitration back into PENDING
func (suite *TaskServiceTestSuite) TestReassign_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	fresh := suite.createUser("fresh@example.com", models.RoleManager)
	admin := suite.createUser("admin@example.com", models.RoleAdmin)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Reject(task.ID, manager.ID, "cannot do")
	suite.Require().NoError(err)

	reassigned, err := suite.service.Reassign(task.ID, admin.ID, fresh.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusPending, reassigned.Status)
	suite.Require().NotNil(reassigned.AssignedToID)
	assert.Equal(suite.T(), fresh.ID, *reassigned.AssignedToID)
	assert.Empty(suite.T(), reassigned.RejectionReason, "reason belongs to the rejected state only")

	// Arbitration is audited
	logs, err := suite.auditRepo.List()
	suite.Require().NoError(err)
	suite.Require().Len(logs, 1)
	assert.Equal(suite.T(), models.AuditReassignTask, logs[0].Action)
}

// TestReassign_NonAdmin tests that managers cannot arbitrate
func (suite *TaskServiceTestSuite) TestReassign_NonAdmin() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Reject(task.ID, manager.ID, "cannot do")
	suite.Require().NoError(err)

	_, err = suite.service.Reassign(task.ID, manager.ID, manager.ID)

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestResolve_Success tests admin closing a dispute
func (suite *TaskServiceTestSuite) TestResolve_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	admin := suite.createUser("admin@example.com", models.RoleAdmin)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Reject(task.ID, manager.ID, "disputed")
	suite.Require().NoError(err)

	resolved, err := suite.service.Resolve(task.ID, admin.ID)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, resolved.Status)
	assert.NotNil(suite.T(), resolved.CompletedAt)
}

// TestResolve_Twice tests that a resolved dispute cannot be resolved again
func (suite *TaskServiceTestSuite) TestResolve_Twice() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	admin := suite.createUser("admin@example.com", models.RoleAdmin)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Reject(task.ID, manager.ID, "disputed")
	suite.Require().NoError(err)
	_, err = suite.service.Resolve(task.ID, admin.ID)
	suite.Require().NoError(err)

	_, err = suite.service.Resolve(task.ID, admin.ID)

	var terr *InvalidTransitionError
	suite.Require().ErrorAs(err, &terr)
	assert.Equal(suite.T(), models.TaskStatusCompleted, terr.Status)
}

// TestSetQualityScore_Success tests the owner's one-time rating
func (suite *TaskServiceTestSuite) TestSetQualityScore_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Complete(task.ID, manager.ID, "", "")
	suite.Require().NoError(err)

	scored, err := suite.service.SetQualityScore(task.ID, owner.ID, 4)

	suite.Require().NoError(err)
	suite.Require().NotNil(scored.QualityScore)
	assert.Equal(suite.T(), 4, *scored.QualityScore)
}

// TestSetQualityScore_WriteOnce tests that a score cannot be overwritten
func (suite *TaskServiceTestSuite) TestSetQualityScore_WriteOnce() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Complete(task.ID, owner.ID, "", "")
	suite.Require().NoError(err)
	_, err = suite.service.SetQualityScore(task.ID, owner.ID, 5)
	suite.Require().NoError(err)

	_, err = suite.service.SetQualityScore(task.ID, owner.ID, 1)

	var terr *InvalidTransitionError
	assert.ErrorAs(suite.T(), err, &terr)
}

// TestSetQualityScore_Bounds tests score validation
func (suite *TaskServiceTestSuite) TestSetQualityScore_Bounds() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Complete(task.ID, owner.ID, "", "")
	suite.Require().NoError(err)

	for _, score := range []int{0, 6, -1} {
		_, err := suite.service.SetQualityScore(task.ID, owner.ID, score)
		var verr *ValidationError
		assert.ErrorAs(suite.T(), err, &verr)
	}
}

// TestSetQualityScore_OnlyOwner tests that the assignee cannot self-rate
func (suite *TaskServiceTestSuite) TestSetQualityScore_OnlyOwner() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Complete(task.ID, manager.ID, "", "")
	suite.Require().NoError(err)

	_, err = suite.service.SetQualityScore(task.ID, manager.ID, 5)

	assert.ErrorIs(suite.T(), err, ErrNotPermitted)
}

// TestSetBackupAssignee_Success tests recording a backup on in-progress work
func (suite *TaskServiceTestSuite) TestSetBackupAssignee_Success() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	backup := suite.createUser("backup@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)

	updated, err := suite.service.SetBackupAssignee(task.ID, manager.ID, backup.ID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated.BackupAssigneeID)
	assert.Equal(suite.T(), backup.ID, *updated.BackupAssigneeID)
}

// TestSetBackupAssignee_RequiresInProgress tests status gating
func (suite *TaskServiceTestSuite) TestSetBackupAssignee_RequiresInProgress() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	backup := suite.createUser("backup@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)
	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)

	_, err = suite.service.SetBackupAssignee(task.ID, manager.ID, backup.ID)

	var terr *InvalidTransitionError
	assert.ErrorAs(suite.T(), err, &terr)
}

// TestListTasks_OwnerScope tests that plain users only see their own requests
func (suite *TaskServiceTestSuite) TestListTasks_OwnerScope() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	other := suite.createUser("other@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	suite.createTask(owner.ID)
	suite.createTask(owner.ID)
	suite.createTask(other.ID)

	tasks, total, err := suite.service.ListTasks(owner, 1, 20)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), tasks, 2)

	tasks, total, err = suite.service.ListTasks(manager, 1, 20)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), total)
	assert.Len(suite.T(), tasks, 3)
}

// TestStatusTimestamps tests that lifecycle timestamps are ordered
func (suite *TaskServiceTestSuite) TestStatusTimestamps() {
	owner := suite.createUser("owner@example.com", models.RoleUser)
	manager := suite.createUser("manager@example.com", models.RoleManager)
	task := suite.createTask(owner.ID)

	_, err := suite.service.Claim(task.ID, manager.ID, "")
	suite.Require().NoError(err)
	_, err = suite.service.Start(task.ID, manager.ID)
	suite.Require().NoError(err)
	done, err := suite.service.Complete(task.ID, manager.ID, "", "")
	suite.Require().NoError(err)

	suite.Require().NotNil(done.AssignedAt)
	suite.Require().NotNil(done.StartedAt)
	suite.Require().NotNil(done.CompletedAt)
	assert.False(suite.T(), done.StartedAt.Before(done.AssignedAt.Add(-time.Second)))
	assert.False(suite.T(), done.CompletedAt.Before(done.StartedAt.Add(-time.Second)))
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
