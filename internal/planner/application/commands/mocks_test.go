package commands

import (
	"context"
	"encoding/json"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
	"github.com/stretchr/testify/mock"
)

// mockTaskRepo is a mock implementation of task.Repository.
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
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *mockTaskRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mockSummaryRepo is a mock implementation of importing.SummaryRepository.
type mockSummaryRepo struct {
	mock.Mock
}

func (m *mockSummaryRepo) Save(ctx context.Context, s importing.Summary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSummaryRepo) Latest(ctx context.Context) (importing.Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).(importing.Summary), args.Error(1)
}

func (m *mockSummaryRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mockSettingsRepo is a mock implementation of settings.Repository.
type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) LoadStartTime(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockSettingsRepo) SaveStartTime(ctx context.Context, start string) error {
	args := m.Called(ctx, start)
	return args.Error(0)
}

func (m *mockSettingsRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func passThroughUoW() *mockUnitOfWork {
	uow := &mockUnitOfWork{}
	uow.On("Begin", mock.Anything).Return(context.Background(), nil)
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

// recordingPublisher keeps every envelope it is handed.
type recordingPublisher struct {
	events []eventbus.Envelope
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, payload []byte) error {
	var env eventbus.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return err
	}
	p.events = append(p.events, env)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) keys() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.RoutingKey)
	}
	return out
}

func mustTask(name string, minutes int) *task.Task {
	t, err := task.NewTask("", name, minutes)
	if err != nil {
		panic(err)
	}
	return t
}

func names(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Name())
	}
	return out
}

func slots(tasks []*task.Task) [][2]string {
	out := make([][2]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, [2]string{t.ScheduledStart(), t.ScheduledEnd()})
	}
	return out
}
