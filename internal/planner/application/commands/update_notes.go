package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
)

// UpdateNotesCommand replaces a task's notes. TaskID may be a prefix of the
// full ID.
type UpdateNotesCommand struct {
	TaskID string
	Notes  string
}

// UpdateNotesHandler handles the UpdateNotesCommand.
type UpdateNotesHandler struct {
	taskRepo task.Repository
	uow      sharedApplication.UnitOfWork
	logger   *slog.Logger
}

// NewUpdateNotesHandler creates a new UpdateNotesHandler.
func NewUpdateNotesHandler(taskRepo task.Repository, uow sharedApplication.UnitOfWork, logger *slog.Logger) *UpdateNotesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateNotesHandler{taskRepo: taskRepo, uow: uow, logger: logger}
}

// Handle executes the UpdateNotesCommand. Slots are left as they are.
func (h *UpdateNotesHandler) Handle(ctx context.Context, cmd UpdateNotesCommand) (*task.Task, error) {
	var updated *task.Task
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.taskRepo.LoadTasks(txCtx)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		t, err := task.FindByShortID(tasks, cmd.TaskID)
		if err != nil {
			return err
		}
		t.SetNotes(cmd.Notes)
		if err := h.taskRepo.SaveTasks(txCtx, tasks); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "task notes updated", "task_id", updated.ID())
	return updated, nil
}
