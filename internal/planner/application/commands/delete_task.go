package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/settings"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
)

// DeleteTaskCommand removes one task. TaskID may be a prefix of the full ID.
type DeleteTaskCommand struct {
	TaskID string
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	settingsRepo settings.Repository
	uow          sharedApplication.UnitOfWork
	scheduler    scheduler
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(
	taskRepo task.Repository,
	settingsRepo settings.Repository,
	calculator *services.ScheduleCalculator,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		settingsRepo: settingsRepo,
		uow:          uow,
		scheduler:    newScheduler(taskRepo, calculator, publisher, logger),
	}
}

// Handle removes the task and closes the gap it leaves by recalculating the
// remaining tasks.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) (*ScheduleResult, error) {
	start, err := h.settingsRepo.LoadStartTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("load start time: %w", err)
	}

	var (
		result  *ScheduleResult
		removed *task.Task
	)
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.scheduler.taskRepo.LoadTasks(txCtx)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		removed, err = task.FindByShortID(tasks, cmd.TaskID)
		if err != nil {
			return err
		}
		remaining, err := task.Remove(tasks, removed.ID())
		if err != nil {
			return err
		}
		result, err = h.scheduler.apply(txCtx, remaining, start)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.scheduler.logger.InfoContext(ctx, "task deleted",
		"task_id", removed.ID(),
		"remaining", len(result.Tasks),
	)
	h.scheduler.announce(ctx, ReasonDelete, result)
	return result, nil
}
