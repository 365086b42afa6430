package queries

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/settings"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a read-only view of one planned task.
type TaskDTO struct {
	ID              uuid.UUID `json:"id"`
	Position        int       `json:"position"`
	OrderKey        string    `json:"order_key,omitempty"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	Start           string    `json:"start,omitempty"`
	End             string    `json:"end,omitempty"`
}

// ScheduleDTO is the stored day plan.
type ScheduleDTO struct {
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	TotalMinutes int       `json:"total_minutes"`
	Tasks        []TaskDTO `json:"tasks"`
	// Stale is set when the stored slots do not follow from the current
	// start time, for example after the start time was saved elsewhere.
	Stale bool `json:"stale"`
}

// GetScheduleQuery asks for the stored schedule.
type GetScheduleQuery struct{}

// GetScheduleHandler handles the GetScheduleQuery.
type GetScheduleHandler struct {
	taskRepo     task.Repository
	settingsRepo settings.Repository
	calculator   *services.ScheduleCalculator
}

// NewGetScheduleHandler creates a new GetScheduleHandler.
func NewGetScheduleHandler(taskRepo task.Repository, settingsRepo settings.Repository, calculator *services.ScheduleCalculator) *GetScheduleHandler {
	if calculator == nil {
		calculator = services.NewScheduleCalculator()
	}
	return &GetScheduleHandler{taskRepo: taskRepo, settingsRepo: settingsRepo, calculator: calculator}
}

// Handle executes the GetScheduleQuery. It never writes.
func (h *GetScheduleHandler) Handle(ctx context.Context, _ GetScheduleQuery) (*ScheduleDTO, error) {
	tasks, err := h.taskRepo.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	start, err := h.settingsRepo.LoadStartTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("load start time: %w", err)
	}
	end, err := h.calculator.ProjectedEnd(tasks, start)
	if err != nil {
		return nil, err
	}

	dto := ScheduleFromTasks(tasks, start, end)
	dto.Stale = h.isStale(tasks, start)
	return dto, nil
}

// ScheduleFromTasks builds the read model for an already scheduled list.
func ScheduleFromTasks(tasks []*task.Task, start, end string) *ScheduleDTO {
	dto := &ScheduleDTO{
		StartTime:    start,
		EndTime:      end,
		TotalMinutes: task.TotalMinutes(tasks),
		Tasks:        make([]TaskDTO, 0, len(tasks)),
	}
	for i, t := range tasks {
		dto.Tasks = append(dto.Tasks, TaskDTO{
			ID:              t.ID(),
			Position:        i,
			OrderKey:        t.OrderKey(),
			Name:            t.Name(),
			DurationMinutes: t.DurationMinutes(),
			Notes:           t.Notes(),
			Start:           t.ScheduledStart(),
			End:             t.ScheduledEnd(),
		})
	}
	return dto
}

func (h *GetScheduleHandler) isStale(tasks []*task.Task, start string) bool {
	expected, err := h.calculator.Calculate(tasks, start)
	if err != nil {
		return true
	}
	for i, t := range tasks {
		if t.ScheduledStart() != expected[i].ScheduledStart() || t.ScheduledEnd() != expected[i].ScheduledEnd() {
			return true
		}
	}
	return false
}
