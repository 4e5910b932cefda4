package services

import (
	"time"

	"github.com/taskbridge/taskbridge-api/internal/constants"
	"github.com/taskbridge/taskbridge-api/internal/logging"
	"github.com/taskbridge/taskbridge-api/internal/repository"
)

// Archiver is the daily sweep behind the autoArchive setting: old completed
// tasks are soft-deleted so they stop crowding active views while staying
// recoverable in the database.
type Archiver struct {
	taskRepo repository.TaskRepository
	settings *SettingsService
}

// NewArchiver creates a new Archiver
func NewArchiver(taskRepo repository.TaskRepository, settings *SettingsService) *Archiver {
	return &Archiver{taskRepo: taskRepo, settings: settings}
}

// Run performs one sweep. A disabled autoArchive setting makes it a no-op.
func (a *Archiver) Run() {
	if !a.settings.Bool("autoArchive") {
		return
	}

	cutoff := time.Now().Add(-constants.ArchiveAfter)
	archived, err := a.taskRepo.ArchiveCompletedBefore(cutoff)
	if err != nil {
		logging.Logger.WithError(err).Error("auto-archive sweep failed")
		return
	}
	if archived > 0 {
		logging.Logger.WithField("archived", archived).Info("auto-archive sweep completed")
	}
}
