package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/migrations"
)

// setupTestDB opens an in-memory SQLite database with the schema applied.
func setupTestDB(t *testing.T) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func mustTask(t *testing.T, key, name string, minutes int) *task.Task {
	t.Helper()
	tsk, err := task.NewTask(key, name, minutes)
	require.NoError(t, err)
	return tsk
}
