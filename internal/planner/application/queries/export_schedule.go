package queries

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
)

// ScheduleEncoder writes a task list in some file format.
type ScheduleEncoder interface {
	Encode(w io.Writer, tasks []*task.Task) error
}

// ExportScheduleQuery writes the stored schedule to Output.
type ExportScheduleQuery struct {
	Output io.Writer
}

// ExportScheduleHandler handles the ExportScheduleQuery.
type ExportScheduleHandler struct {
	taskRepo task.Repository
	encoder  ScheduleEncoder
}

// NewExportScheduleHandler creates a new ExportScheduleHandler.
func NewExportScheduleHandler(taskRepo task.Repository, encoder ScheduleEncoder) *ExportScheduleHandler {
	return &ExportScheduleHandler{taskRepo: taskRepo, encoder: encoder}
}

// Handle encodes the stored tasks as they are, without recalculating, and
// returns how many were written.
func (h *ExportScheduleHandler) Handle(ctx context.Context, q ExportScheduleQuery) (int, error) {
	if q.Output == nil {
		return 0, errors.New("export needs an output")
	}
	tasks, err := h.taskRepo.LoadTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("load tasks: %w", err)
	}
	if err := h.encoder.Encode(q.Output, tasks); err != nil {
		return 0, fmt.Errorf("encode schedule: %w", err)
	}
	return len(tasks), nil
}
