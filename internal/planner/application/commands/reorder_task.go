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

// ReorderTaskCommand moves the task at From to To. Positions are zero-based.
type ReorderTaskCommand struct {
	From int
	To   int
}

// ReorderTaskHandler handles the ReorderTaskCommand.
type ReorderTaskHandler struct {
	settingsRepo settings.Repository
	uow          sharedApplication.UnitOfWork
	scheduler    scheduler
}

// NewReorderTaskHandler creates a new ReorderTaskHandler.
func NewReorderTaskHandler(
	taskRepo task.Repository,
	settingsRepo settings.Repository,
	calculator *services.ScheduleCalculator,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *ReorderTaskHandler {
	return &ReorderTaskHandler{
		settingsRepo: settingsRepo,
		uow:          uow,
		scheduler:    newScheduler(taskRepo, calculator, publisher, logger),
	}
}

// Handle executes the ReorderTaskCommand and recalculates the whole list.
func (h *ReorderTaskHandler) Handle(ctx context.Context, cmd ReorderTaskCommand) (*ScheduleResult, error) {
	start, err := h.settingsRepo.LoadStartTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("load start time: %w", err)
	}

	var result *ScheduleResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.scheduler.taskRepo.LoadTasks(txCtx)
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		moved, err := task.Move(tasks, cmd.From, cmd.To)
		if err != nil {
			return err
		}
		result, err = h.scheduler.apply(txCtx, moved, start)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.scheduler.logger.InfoContext(ctx, "task moved",
		"from", cmd.From,
		"to", cmd.To,
		"end_time", result.EndTime,
	)
	h.scheduler.announce(ctx, ReasonReorder, result)
	return result, nil
}
