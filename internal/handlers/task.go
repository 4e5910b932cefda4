package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskbridge/taskbridge-api/internal/errors"
	"github.com/taskbridge/taskbridge-api/internal/middleware"
	"github.com/taskbridge/taskbridge-api/internal/models"
	"github.com/taskbridge/taskbridge-api/internal/services"
	"github.com/taskbridge/taskbridge-api/internal/utils"
)

// TaskHandler exposes the task lifecycle over HTTP. All state legality
// lives in the service; handlers only parse, dispatch, and render.
type TaskHandler struct {
	taskService *services.TaskService
	authService *services.AuthService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, authService *services.AuthService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		authService: authService,
	}
}

// ListTasks returns the tasks visible to the caller, paginated.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	actor, err := h.authService.GetUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListTasks(actor, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns one task if the caller may see it.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, role, ok := h.identity(c)
	if !ok {
		return
	}

	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Plain users only see their own requests; a 404 avoids leaking that
	// the task exists at all.
	if role == models.RoleUser && task.CreatedByID != userID {
		apierrors.NotFound(c, "task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask submits a new request.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description" binding:"required"`
		Category    string              `json:"category"`
		Priority    models.TaskPriority `json:"priority"`
		Deadline    string              `json:"deadline" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ClaimTask assigns a pending task to the calling manager.
func (h *TaskHandler) ClaimTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	type ClaimRequest struct {
		ToDoPlan string `json:"toDoPlan"`
	}
	var req ClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	task, err := h.taskService.Claim(taskID, userID, req.ToDoPlan)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// StartTask moves a claimed task into IN_PROGRESS.
func (h *TaskHandler) StartTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Start(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// RejectTask declines a pending task with a reason.
func (h *TaskHandler) RejectTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	type RejectRequest struct {
		Reason string `json:"reason" binding:"required"`
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Reject(taskID, userID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CompleteTask finishes a task with optional feedback and proof.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	type CompleteRequest struct {
		Feedback string `json:"feedback"`
		Proof    string `json:"proof"`
	}
	var req CompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
	}

	task, err := h.taskService.Complete(taskID, userID, req.Feedback, req.Proof)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ReRequestTask reopens a completed task into the open queue.
func (h *TaskHandler) ReRequestTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.ReRequest(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ReassignTask hands a disputed task to a new manager (admin only).
func (h *TaskHandler) ReassignTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	type ReassignRequest struct {
		NewAssigneeID uint64 `json:"newAssigneeId" binding:"required"`
	}
	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Reassign(taskID, userID, req.NewAssigneeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ResolveTask closes a dispute in favor of the original work (admin only).
func (h *TaskHandler) ResolveTask(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.Resolve(taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// SetQualityScore records the requester's one-time rating.
func (h *TaskHandler) SetQualityScore(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	type ScoreRequest struct {
		Score int `json:"score" binding:"required"`
	}
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SetQualityScore(taskID, userID, req.Score)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// SetBackupAssignee records an advisory backup manager.
func (h *TaskHandler) SetBackupAssignee(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	type BackupRequest struct {
		BackupUserID uint64 `json:"backupUserId" binding:"required"`
	}
	var req BackupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SetBackupAssignee(taskID, userID, req.BackupUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetBoard returns the calling manager's board columns.
func (h *TaskHandler) GetBoard(c *gin.Context) {
	userID, _, ok := h.identity(c)
	if !ok {
		return
	}

	board, err := h.taskService.Board(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *TaskHandler) identity(c *gin.Context) (uint64, models.Role, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, "", false
	}
	role, _ := middleware.GetUserRole(c)
	return userID, role, true
}

func (h *TaskHandler) taskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}
