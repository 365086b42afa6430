package services

import (
	"fmt"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/clock"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
)

// ScheduleCalculator lays tasks end to end from a start time. It keeps no
// state and is safe for concurrent use.
type ScheduleCalculator struct{}

// NewScheduleCalculator creates a new calculator.
func NewScheduleCalculator() *ScheduleCalculator {
	return &ScheduleCalculator{}
}

// Calculate returns copies of tasks, in slice order, each starting where the
// previous one ended. The first starts at start, which must be a time of
// day (hour at most 23). A malformed start fails the whole call; a nil or
// empty list yields an empty result.
func (c *ScheduleCalculator) Calculate(tasks []*task.Task, start string) ([]*task.Task, error) {
	if _, err := clock.ParseWithin(start, clock.MaxHour); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}

	out := make([]*task.Task, 0, len(tasks))
	cursor := start
	for _, t := range tasks {
		scheduled, err := t.ScheduleAt(cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, scheduled)
		cursor = scheduled.ScheduledEnd()
	}
	return out, nil
}

// ProjectedEnd is the time the last task would finish when started at start.
func (c *ScheduleCalculator) ProjectedEnd(tasks []*task.Task, start string) (string, error) {
	if _, err := clock.ParseWithin(start, clock.MaxHour); err != nil {
		return "", fmt.Errorf("start time: %w", err)
	}
	end, err := clock.AddMinutes(start, task.TotalMinutes(tasks))
	if err != nil {
		return "", fmt.Errorf("start time: %w", err)
	}
	return end, nil
}
