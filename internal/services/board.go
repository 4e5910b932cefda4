package services

import "github.com/taskbridge/taskbridge-api/internal/models"

// BoardColumn identifies one column of a manager's board.
type BoardColumn string

const (
	ColumnQueue      BoardColumn = "queue"
	ColumnTodo       BoardColumn = "todo"
	ColumnInProgress BoardColumn = "inProgress"
	ColumnCompleted  BoardColumn = "completed"
)

// BoardView is a viewer-scoped projection of {status, assignedTo}. The same
// task lands in different columns for different viewers, so this is always
// recomputed on read and never stored.
type BoardView struct {
	Queue      []models.Task `json:"queue"`
	Todo       []models.Task `json:"todo"`
	InProgress []models.Task `json:"inProgress"`
	Completed  []models.Task `json:"completed"`
}

// ColumnFor derives the board column of a task for one viewer. The queue is
// global (pending and unassigned); todo, in-progress and completed are
// scoped to the viewer's own assignments. Rejected tasks and other
// managers' work are not on the board.
func ColumnFor(task models.Task, viewerID uint64) (BoardColumn, bool) {
	mine := task.AssignedToID != nil && *task.AssignedToID == viewerID

	switch task.Status {
	case models.TaskStatusPending:
		if task.AssignedToID == nil {
			return ColumnQueue, true
		}
		if mine {
			return ColumnTodo, true
		}
	case models.TaskStatusInProgress:
		if mine {
			return ColumnInProgress, true
		}
	case models.TaskStatusCompleted:
		if mine {
			return ColumnCompleted, true
		}
	}

	return "", false
}

// BuildBoard buckets tasks into the viewer's board columns.
func BuildBoard(tasks []models.Task, viewerID uint64) BoardView {
	board := BoardView{
		Queue:      []models.Task{},
		Todo:       []models.Task{},
		InProgress: []models.Task{},
		Completed:  []models.Task{},
	}

	for _, task := range tasks {
		column, ok := ColumnFor(task, viewerID)
		if !ok {
			continue
		}
		switch column {
		case ColumnQueue:
			board.Queue = append(board.Queue, task)
		case ColumnTodo:
			board.Todo = append(board.Todo, task)
		case ColumnInProgress:
			board.InProgress = append(board.InProgress, task)
		case ColumnCompleted:
			board.Completed = append(board.Completed, task)
		}
	}

	return board
}
