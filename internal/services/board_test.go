package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskbridge/taskbridge-api/internal/models"
)

func taskWith(status models.TaskStatus, assignedTo *uint64) models.Task {
	return models.Task{Status: status, AssignedToID: assignedTo}
}

func uintPtr(v uint64) *uint64 { return &v }

func TestColumnFor(t *testing.T) {
	const viewer = uint64(7)
	const other = uint64(9)

	tests := []struct {
		name     string
		task     models.Task
		wantCol  BoardColumn
		wantShow bool
	}{
		{"pending unassigned is the shared queue", taskWith(models.TaskStatusPending, nil), ColumnQueue, true},
		{"pending mine is todo", taskWith(models.TaskStatusPending, uintPtr(viewer)), ColumnTodo, true},
		{"pending someone else's is hidden", taskWith(models.TaskStatusPending, uintPtr(other)), "", false},
		{"in-progress mine", taskWith(models.TaskStatusInProgress, uintPtr(viewer)), ColumnInProgress, true},
		{"in-progress someone else's is hidden", taskWith(models.TaskStatusInProgress, uintPtr(other)), "", false},
		{"completed mine", taskWith(models.TaskStatusCompleted, uintPtr(viewer)), ColumnCompleted, true},
		{"completed someone else's is hidden", taskWith(models.TaskStatusCompleted, uintPtr(other)), "", false},
		{"rejected is never on the board", taskWith(models.TaskStatusRejected, uintPtr(viewer)), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := ColumnFor(tt.task, viewer)
			assert.Equal(t, tt.wantShow, ok)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestBuildBoard(t *testing.T) {
	const viewer = uint64(7)
	const other = uint64(9)

	tasks := []models.Task{
		taskWith(models.TaskStatusPending, nil),
		taskWith(models.TaskStatusPending, nil),
		taskWith(models.TaskStatusPending, uintPtr(viewer)),
		taskWith(models.TaskStatusInProgress, uintPtr(viewer)),
		taskWith(models.TaskStatusInProgress, uintPtr(other)),
		taskWith(models.TaskStatusCompleted, uintPtr(viewer)),
		taskWith(models.TaskStatusRejected, uintPtr(viewer)),
	}

	board := BuildBoard(tasks, viewer)

	assert.Len(t, board.Queue, 2)
	assert.Len(t, board.Todo, 1)
	assert.Len(t, board.InProgress, 1)
	assert.Len(t, board.Completed, 1)
}

// Two viewers see the same queue but disjoint personal columns.
func TestBuildBoard_ViewerScoped(t *testing.T) {
	tasks := []models.Task{
		taskWith(models.TaskStatusPending, nil),
		taskWith(models.TaskStatusInProgress, uintPtr(7)),
		taskWith(models.TaskStatusInProgress, uintPtr(9)),
	}

	first := BuildBoard(tasks, 7)
	second := BuildBoard(tasks, 9)

	assert.Len(t, first.Queue, 1)
	assert.Len(t, second.Queue, 1)
	assert.Len(t, first.InProgress, 1)
	assert.Len(t, second.InProgress, 1)
}
