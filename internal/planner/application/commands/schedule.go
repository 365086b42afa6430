package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
)

// Reasons carried by ScheduleRecalculated events.
const (
	ReasonImport    = "import"
	ReasonManual    = "recalculate"
	ReasonReorder   = "reorder"
	ReasonStartTime = "start_time"
	ReasonDelete    = "delete"
)

// ScheduleResult is the schedule a command left behind.
type ScheduleResult struct {
	Tasks        []*task.Task
	StartTime    string
	EndTime      string
	TotalMinutes int
}

// scheduler recalculates a task list from scratch, stores it and announces it.
type scheduler struct {
	taskRepo   task.Repository
	calculator *services.ScheduleCalculator
	publisher  eventbus.Publisher
	logger     *slog.Logger
}

func newScheduler(taskRepo task.Repository, calculator *services.ScheduleCalculator, publisher eventbus.Publisher, logger *slog.Logger) scheduler {
	if calculator == nil {
		calculator = services.NewScheduleCalculator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return scheduler{taskRepo: taskRepo, calculator: calculator, publisher: publisher, logger: logger}
}

// apply schedules tasks from start and replaces the stored list.
func (s scheduler) apply(ctx context.Context, tasks []*task.Task, start string) (*ScheduleResult, error) {
	scheduled, err := s.calculator.Calculate(tasks, start)
	if err != nil {
		return nil, err
	}
	end, err := s.calculator.ProjectedEnd(scheduled, start)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.SaveTasks(ctx, scheduled); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}
	return &ScheduleResult{
		Tasks:        scheduled,
		StartTime:    start,
		EndTime:      end,
		TotalMinutes: task.TotalMinutes(scheduled),
	}, nil
}

func (s scheduler) announce(ctx context.Context, reason string, res *ScheduleResult) {
	publish(ctx, s.publisher, s.logger, task.RoutingKeyScheduleRecalculated, task.ScheduleRecalculated{
		Reason:       reason,
		StartTime:    res.StartTime,
		EndTime:      res.EndTime,
		TaskCount:    len(res.Tasks),
		TotalMinutes: res.TotalMinutes,
	})
}

// publish is best effort: events go out after the data is committed, so a
// broker failure is logged and the command still succeeds.
func publish(ctx context.Context, p eventbus.Publisher, logger *slog.Logger, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := eventbus.PublishJSON(ctx, p, routingKey, payload); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			"routing_key", routingKey,
			"error", err,
		)
	}
}
