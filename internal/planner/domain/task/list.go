package task

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("task not found")
	ErrPositionOutOfRange = errors.New("task position out of range")
)

// Move returns a new list with the task at from relocated to to. Both
// positions are zero-based. The input slice is not modified.
func Move(tasks []*Task, from, to int) ([]*Task, error) {
	if from < 0 || from >= len(tasks) {
		return nil, fmt.Errorf("%w: from=%d len=%d", ErrPositionOutOfRange, from, len(tasks))
	}
	if to < 0 || to >= len(tasks) {
		return nil, fmt.Errorf("%w: to=%d len=%d", ErrPositionOutOfRange, to, len(tasks))
	}

	moved := tasks[from]
	out := make([]*Task, 0, len(tasks))
	out = append(out, tasks[:from]...)
	out = append(out, tasks[from+1:]...)

	out = append(out, nil)
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// Remove returns a new list without the task with the given ID.
func Remove(tasks []*Task, id uuid.UUID) ([]*Task, error) {
	idx := IndexOf(tasks, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	out := make([]*Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	out = append(out, tasks[idx+1:]...)
	return out, nil
}

// IndexOf returns the position of the task with the given ID, or -1.
func IndexOf(tasks []*Task, id uuid.UUID) int {
	for i, t := range tasks {
		if t.ID() == id {
			return i
		}
	}
	return -1
}

// FindByShortID resolves a full or prefix task ID, as printed by the CLI.
func FindByShortID(tasks []*Task, prefix string) (*Task, error) {
	if prefix == "" {
		return nil, ErrNotFound
	}
	var match *Task
	for _, t := range tasks {
		id := t.ID().String()
		if len(prefix) > len(id) || id[:len(prefix)] != prefix {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("ambiguous task id %q", prefix)
		}
		match = t
	}
	if match == nil {
		return nil, ErrNotFound
	}
	return match, nil
}

// TotalMinutes sums the durations of all tasks.
func TotalMinutes(tasks []*Task) int {
	total := 0
	for _, t := range tasks {
		total += t.DurationMinutes()
	}
	return total
}
