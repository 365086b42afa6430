package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/clock"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/settings"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayline/internal/shared/domain"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
)

// SetStartTimeCommand changes the time the day starts. UseNow takes the
// current local time, truncated to the minute, and ignores StartTime.
type SetStartTimeCommand struct {
	StartTime string
	UseNow    bool
}

// SetStartTimeHandler handles the SetStartTimeCommand.
type SetStartTimeHandler struct {
	settingsRepo settings.Repository
	uow          sharedApplication.UnitOfWork
	now          sharedDomain.TimeSource
	scheduler    scheduler
}

// NewSetStartTimeHandler creates a new SetStartTimeHandler. A nil time
// source reads the system clock.
func NewSetStartTimeHandler(
	taskRepo task.Repository,
	settingsRepo settings.Repository,
	calculator *services.ScheduleCalculator,
	uow sharedApplication.UnitOfWork,
	now sharedDomain.TimeSource,
	publisher eventbus.Publisher,
	logger *slog.Logger,
) *SetStartTimeHandler {
	if now == nil {
		now = sharedDomain.SystemTime{}
	}
	return &SetStartTimeHandler{
		settingsRepo: settingsRepo,
		uow:          uow,
		now:          now,
		scheduler:    newScheduler(taskRepo, calculator, publisher, logger),
	}
}

// Handle saves the canonical start time and reschedules every task from it.
func (h *SetStartTimeHandler) Handle(ctx context.Context, cmd SetStartTimeCommand) (*ScheduleResult, error) {
	start, err := h.resolve(cmd)
	if err != nil {
		return nil, err
	}
	if err := h.settingsRepo.SaveStartTime(ctx, start); err != nil {
		return nil, fmt.Errorf("save start time: %w", err)
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

	h.scheduler.logger.InfoContext(ctx, "start time changed",
		"start_time", start,
		"end_time", result.EndTime,
	)
	h.scheduler.announce(ctx, ReasonStartTime, result)
	return result, nil
}

func (h *SetStartTimeHandler) resolve(cmd SetStartTimeCommand) (string, error) {
	if cmd.UseNow {
		now := h.now.Now()
		return clock.Format(now.Hour()*clock.MinutesPerHour + now.Minute()), nil
	}
	minutes, err := clock.ParseWithin(cmd.StartTime, clock.MaxHour)
	if err != nil {
		return "", fmt.Errorf("%w: %w", settings.ErrInvalidStartTime, err)
	}
	return clock.Format(minutes), nil
}
