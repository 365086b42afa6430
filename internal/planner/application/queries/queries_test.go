package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) LoadTasks(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *mockTaskRepo) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	return m.Called(ctx, tasks).Error(0)
}

func (m *mockTaskRepo) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) LoadStartTime(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockSettingsRepo) SaveStartTime(ctx context.Context, start string) error {
	return m.Called(ctx, start).Error(0)
}

func (m *mockSettingsRepo) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockSummaryRepo struct {
	mock.Mock
}

func (m *mockSummaryRepo) Save(ctx context.Context, s importing.Summary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSummaryRepo) Latest(ctx context.Context) (importing.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(importing.Summary), args.Error(1)
}

func (m *mockSummaryRepo) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func scheduledAt(t *testing.T, name string, minutes int, start string) *task.Task {
	t.Helper()
	raw, err := task.NewTask("", name, minutes)
	require.NoError(t, err)
	scheduled, err := raw.ScheduleAt(start)
	require.NoError(t, err)
	return scheduled
}

func TestGetScheduleHandler_Handle(t *testing.T) {
	taskRepo := &mockTaskRepo{}
	settingsRepo := &mockSettingsRepo{}

	tasks := []*task.Task{
		scheduledAt(t, "Email", 30, "9:00"),
		scheduledAt(t, "Review", 45, "9:30"),
	}
	taskRepo.On("LoadTasks", mock.Anything).Return(tasks, nil)
	settingsRepo.On("LoadStartTime", mock.Anything).Return("9:00", nil)

	dto, err := NewGetScheduleHandler(taskRepo, settingsRepo, nil).Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)

	assert.Equal(t, "9:00", dto.StartTime)
	assert.Equal(t, "10:15", dto.EndTime)
	assert.Equal(t, 75, dto.TotalMinutes)
	assert.False(t, dto.Stale)
	require.Len(t, dto.Tasks, 2)
	assert.Equal(t, 1, dto.Tasks[1].Position)
	assert.Equal(t, "9:30", dto.Tasks[1].Start)
	assert.Equal(t, "10:15", dto.Tasks[1].End)
	taskRepo.AssertNotCalled(t, "SaveTasks", mock.Anything, mock.Anything)
}

func TestGetScheduleHandler_StaleAfterStartChange(t *testing.T) {
	taskRepo := &mockTaskRepo{}
	settingsRepo := &mockSettingsRepo{}

	taskRepo.On("LoadTasks", mock.Anything).Return([]*task.Task{scheduledAt(t, "Email", 30, "9:00")}, nil)
	settingsRepo.On("LoadStartTime", mock.Anything).Return("8:00", nil)

	dto, err := NewGetScheduleHandler(taskRepo, settingsRepo, nil).Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)
	assert.True(t, dto.Stale)
	assert.Equal(t, "8:30", dto.EndTime)
	assert.Equal(t, "9:00", dto.Tasks[0].Start)
}

func TestGetScheduleHandler_Empty(t *testing.T) {
	taskRepo := &mockTaskRepo{}
	settingsRepo := &mockSettingsRepo{}
	taskRepo.On("LoadTasks", mock.Anything).Return([]*task.Task{}, nil)
	settingsRepo.On("LoadStartTime", mock.Anything).Return("9:00", nil)

	dto, err := NewGetScheduleHandler(taskRepo, settingsRepo, nil).Handle(context.Background(), GetScheduleQuery{})
	require.NoError(t, err)
	assert.Empty(t, dto.Tasks)
	assert.NotNil(t, dto.Tasks)
	assert.Equal(t, "9:00", dto.EndTime)
	assert.False(t, dto.Stale)
}

func TestGetScheduleHandler_LoadFailure(t *testing.T) {
	taskRepo := &mockTaskRepo{}
	taskRepo.On("LoadTasks", mock.Anything).Return(nil, errors.New("db closed"))

	_, err := NewGetScheduleHandler(taskRepo, &mockSettingsRepo{}, nil).Handle(context.Background(), GetScheduleQuery{})
	assert.ErrorContains(t, err, "load tasks")
}

func TestGetImportSummaryHandler_Handle(t *testing.T) {
	t.Run("latest summary", func(t *testing.T) {
		repo := &mockSummaryRepo{}
		want := importing.Summary{ID: uuid.New(), SourceName: "plan.xlsx", ValidRows: 4}
		repo.On("Latest", mock.Anything).Return(want, nil)

		got, err := NewGetImportSummaryHandler(repo).Handle(context.Background(), GetImportSummaryQuery{})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("nothing imported", func(t *testing.T) {
		repo := &mockSummaryRepo{}
		repo.On("Latest", mock.Anything).Return(importing.Summary{}, importing.ErrNoSummary)

		got, err := NewGetImportSummaryHandler(repo).Handle(context.Background(), GetImportSummaryQuery{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := &mockSummaryRepo{}
		repo.On("Latest", mock.Anything).Return(importing.Summary{}, errors.New("db closed"))

		_, err := NewGetImportSummaryHandler(repo).Handle(context.Background(), GetImportSummaryQuery{})
		assert.Error(t, err)
	})
}
