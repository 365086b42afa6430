package task_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/clock"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	tsk, err := task.NewTask(" A-1 ", "  Write report ", 45)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tsk.ID())
	assert.Equal(t, "A-1", tsk.OrderKey())
	assert.Equal(t, "Write report", tsk.Name())
	assert.Equal(t, 45, tsk.DurationMinutes())
	assert.Empty(t, tsk.Notes())
	assert.False(t, tsk.IsScheduled())
	assert.Nil(t, tsk.Slot())
	assert.Empty(t, tsk.ScheduledStart())
	assert.Empty(t, tsk.ScheduledEnd())
}

func TestNewTask_EmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		t.Run(name, func(t *testing.T) {
			_, err := task.NewTask("1", name, 10)
			assert.ErrorIs(t, err, task.ErrEmptyName)
		})
	}
}

func TestNewTask_InvalidDuration(t *testing.T) {
	for _, d := range []int{0, -5} {
		_, err := task.NewTask("1", "x", d)
		assert.ErrorIs(t, err, task.ErrInvalidDuration)
	}
}

func TestNewTaskAt_UsesGivenTime(t *testing.T) {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tsk, err := task.NewTaskAt("1", "x", 5, " call back ", at)

	require.NoError(t, err)
	assert.Equal(t, at, tsk.CreatedAt())
	assert.Equal(t, at, tsk.UpdatedAt())
	assert.Equal(t, "call back", tsk.Notes())
}

func TestTask_ScheduleAt(t *testing.T) {
	tsk, _ := task.NewTask("1", "Standup", 90)

	scheduled, err := tsk.ScheduleAt("23:00")

	require.NoError(t, err)
	assert.Equal(t, "23:00", scheduled.ScheduledStart())
	assert.Equal(t, "00:30", scheduled.ScheduledEnd())
	assert.Equal(t, tsk.ID(), scheduled.ID())
	assert.False(t, tsk.IsScheduled(), "receiver must not be modified")
}

func TestTask_ScheduleAt_MalformedStart(t *testing.T) {
	tsk, _ := task.NewTask("1", "Standup", 15)

	_, err := tsk.ScheduleAt("nine")

	assert.ErrorIs(t, err, clock.ErrFormat)
}

func TestTask_Unscheduled(t *testing.T) {
	tsk, _ := task.NewTask("1", "Standup", 15)
	scheduled, _ := tsk.ScheduleAt("9:00")

	cleared := scheduled.Unscheduled()

	assert.False(t, cleared.IsScheduled())
	assert.True(t, scheduled.IsScheduled())
}

func TestTask_SlotIsCopy(t *testing.T) {
	tsk, _ := task.NewTask("1", "Standup", 15)
	scheduled, _ := tsk.ScheduleAt("9:00")

	slot := scheduled.Slot()
	slot.Start = "10:00"

	assert.Equal(t, "9:00", scheduled.ScheduledStart())
}

func TestTask_SetNotes(t *testing.T) {
	tsk, _ := task.NewTask("1", "Standup", 15)
	scheduled, _ := tsk.ScheduleAt("9:00")
	before := scheduled.UpdatedAt()

	time.Sleep(time.Millisecond)
	scheduled.SetNotes("  bring coffee ")

	assert.Equal(t, "bring coffee", scheduled.Notes())
	assert.Equal(t, "9:00", scheduled.ScheduledStart())
	assert.Equal(t, "9:15", scheduled.ScheduledEnd())
	assert.True(t, scheduled.UpdatedAt().After(before))
}

func TestRehydrate(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	tsk, err := task.Rehydrate(id, "7", "Review", 30, "n", &task.Slot{Start: "9:00", End: "9:30"}, now, now)

	require.NoError(t, err)
	assert.Equal(t, id, tsk.ID())
	assert.Equal(t, "n", tsk.Notes())
	assert.Equal(t, "9:30", tsk.ScheduledEnd())
}

func TestRehydrate_RejectsHalfSlot(t *testing.T) {
	now := time.Now()

	_, err := task.Rehydrate(uuid.New(), "7", "Review", 30, "", &task.Slot{Start: "9:00"}, now, now)

	assert.ErrorIs(t, err, task.ErrInvalidSlot)
}
