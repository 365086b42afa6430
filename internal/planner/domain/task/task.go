package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/clock"
	sharedDomain "github.com/felixgeelhaar/dayline/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyName       = errors.New("task name cannot be empty")
	ErrInvalidDuration = errors.New("task duration must be positive")
	ErrInvalidSlot     = errors.New("scheduled start and end must both be set or both be empty")
)

// Slot is the time of day a task occupies. End is always Start plus the
// task duration on the 24-hour wheel, so End may read earlier than Start.
type Slot struct {
	Start string
	End   string
}

// Task is one entry of the day plan. Its position in the plan is the order
// of the slice it lives in; orderKey only records where it came from.
type Task struct {
	sharedDomain.BaseEntity
	orderKey        string
	name            string
	durationMinutes int
	notes           string
	slot            *Slot
}

// NewTask creates an unscheduled task.
func NewTask(orderKey, name string, durationMinutes int) (*Task, error) {
	return NewTaskAt(orderKey, name, durationMinutes, "", time.Now())
}

// NewTaskAt creates an unscheduled task with notes, stamped at the given time.
func NewTaskAt(orderKey, name string, durationMinutes int, notes string, at time.Time) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	return &Task{
		BaseEntity:      sharedDomain.NewBaseEntityAt(at),
		orderKey:        strings.TrimSpace(orderKey),
		name:            name,
		durationMinutes: durationMinutes,
		notes:           strings.TrimSpace(notes),
	}, nil
}

// Rehydrate recreates a task from persisted state.
func Rehydrate(
	id uuid.UUID,
	orderKey, name string,
	durationMinutes int,
	notes string,
	slot *Slot,
	createdAt, updatedAt time.Time,
) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if slot != nil && (slot.Start == "" || slot.End == "") {
		return nil, ErrInvalidSlot
	}

	t := &Task{
		BaseEntity:      sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		orderKey:        orderKey,
		name:            name,
		durationMinutes: durationMinutes,
		notes:           notes,
	}
	if slot != nil {
		s := *slot
		t.slot = &s
	}
	return t, nil
}

// Getters

func (t *Task) OrderKey() string     { return t.orderKey }
func (t *Task) Name() string         { return t.name }
func (t *Task) DurationMinutes() int { return t.durationMinutes }
func (t *Task) Notes() string        { return t.notes }
func (t *Task) IsScheduled() bool    { return t.slot != nil }

// Slot returns a copy of the scheduled slot, or nil when unscheduled.
func (t *Task) Slot() *Slot {
	if t.slot == nil {
		return nil
	}
	s := *t.slot
	return &s
}

// ScheduledStart returns the scheduled start or "" when unscheduled. Times
// past midnight may carry a padded hour ("00:30"), so compare them with
// clock.Parse rather than as strings.
func (t *Task) ScheduledStart() string {
	if t.slot == nil {
		return ""
	}
	return t.slot.Start
}

// ScheduledEnd returns the scheduled end or "" when unscheduled.
func (t *Task) ScheduledEnd() string {
	if t.slot == nil {
		return ""
	}
	return t.slot.End
}

// SetNotes replaces the free-form notes. Scheduling is not affected.
func (t *Task) SetNotes(notes string) {
	t.notes = strings.TrimSpace(notes)
	t.Touch()
}

// ScheduleAt returns a copy of the task placed at start. The receiver is
// left untouched.
func (t *Task) ScheduleAt(start string) (*Task, error) {
	end, err := clock.AddMinutes(start, t.durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("schedule %q: %w", t.name, err)
	}
	c := t.Clone()
	c.slot = &Slot{Start: start, End: end}
	return c, nil
}

// Unscheduled returns a copy of the task without a slot.
func (t *Task) Unscheduled() *Task {
	c := t.Clone()
	c.slot = nil
	return c
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	c := *t
	if t.slot != nil {
		s := *t.slot
		c.slot = &s
	}
	return &c
}
