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

// RecalculateScheduleCommand rebuilds every slot from the saved start time.
type RecalculateScheduleCommand struct{}

// RecalculateScheduleHandler handles the RecalculateScheduleCommand.
type RecalculateScheduleHandler struct {
	settingsRepo settings.Repository
	uow          sharedApplication.UnitOfWork
	scheduler    scheduler
}

// NewRecalculateScheduleHandler creates a new RecalculateScheduleHandler.
func NewRecalculateScheduleHandler(
	taskRepo task.Repository,
	settingsRepo settings.Repository,
	calculator *services.ScheduleCalculator,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *RecalculateScheduleHandler {
	return &RecalculateScheduleHandler{
		settingsRepo: settingsRepo,
		uow:          uow,
		scheduler:    newScheduler(taskRepo, calculator, publisher, logger),
	}
}

// Handle executes the RecalculateScheduleCommand. Only scheduled start and
// end change; names, durations, notes and order are kept.
func (h *RecalculateScheduleHandler) Handle(ctx context.Context, _ RecalculateScheduleCommand) (*ScheduleResult, error) {
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
		result, err = h.scheduler.apply(txCtx, tasks, start)
		return err
	})
	if err != nil {
		return nil, err
	}

	h.scheduler.logger.InfoContext(ctx, "schedule recalculated",
		"tasks", len(result.Tasks),
		"start_time", result.StartTime,
		"end_time", result.EndTime,
	)
	h.scheduler.announce(ctx, ReasonManual, result)
	return result, nil
}
