package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database"
)

func TestSQLTaskRepository_LoadEmpty(t *testing.T) {
	repo := NewSQLTaskRepository(setupTestDB(t))

	tasks, err := repo.LoadTasks(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestSQLTaskRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(setupTestDB(t))

	first, err := mustTask(t, "9", "Deep work", 90).ScheduleAt("23:00")
	require.NoError(t, err)
	first.SetNotes("phone off")
	second := mustTask(t, "1", "Email", 15)

	require.NoError(t, repo.SaveTasks(ctx, []*task.Task{first, second}))

	loaded, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, first.ID(), loaded[0].ID())
	assert.Equal(t, "9", loaded[0].OrderKey())
	assert.Equal(t, "Deep work", loaded[0].Name())
	assert.Equal(t, 90, loaded[0].DurationMinutes())
	assert.Equal(t, "phone off", loaded[0].Notes())
	assert.Equal(t, "23:00", loaded[0].ScheduledStart())
	assert.Equal(t, "00:30", loaded[0].ScheduledEnd())
	assert.True(t, first.CreatedAt().Equal(loaded[0].CreatedAt()))

	assert.Equal(t, second.ID(), loaded[1].ID())
	assert.False(t, loaded[1].IsScheduled())
}

func TestSQLTaskRepository_SaveReplacesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(setupTestDB(t))
	a, b, c := mustTask(t, "1", "A", 10), mustTask(t, "2", "B", 10), mustTask(t, "3", "C", 10)

	require.NoError(t, repo.SaveTasks(ctx, []*task.Task{a, b, c}))
	require.NoError(t, repo.SaveTasks(ctx, []*task.Task{c, a}))

	loaded, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "C", loaded[0].Name())
	assert.Equal(t, "A", loaded[1].Name())
}

func TestSQLTaskRepository_SaveJoinsCallerTransaction(t *testing.T) {
	ctx := context.Background()
	conn := setupTestDB(t)
	repo := NewSQLTaskRepository(conn)
	require.NoError(t, repo.SaveTasks(ctx, []*task.Task{mustTask(t, "1", "Keep", 10)}))

	boom := errors.New("boom")
	err := sharedApplication.WithUnitOfWork(ctx, database.NewUnitOfWork(conn), func(txCtx context.Context) error {
		if err := repo.SaveTasks(txCtx, []*task.Task{mustTask(t, "2", "Discard", 10)}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	loaded, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Keep", loaded[0].Name())
}

func TestSQLTaskRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLTaskRepository(setupTestDB(t))
	require.NoError(t, repo.SaveTasks(ctx, []*task.Task{mustTask(t, "1", "A", 10)}))

	require.NoError(t, repo.Clear(ctx))

	loaded, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
