package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// SQLTaskRepository stores the ordered task list in planner_tasks. It works
// against SQLite and PostgreSQL alike.
type SQLTaskRepository struct {
	conn database.Connection
	uow  *database.GenericUnitOfWork
}

// NewSQLTaskRepository creates a new SQLTaskRepository.
func NewSQLTaskRepository(conn database.Connection) *SQLTaskRepository {
	return &SQLTaskRepository{conn: conn, uow: database.NewUnitOfWork(conn)}
}

func (r *SQLTaskRepository) executor(ctx context.Context) database.Executor {
	return database.ExecutorFromContext(ctx, r.conn)
}

// LoadTasks returns the task list in schedule order.
func (r *SQLTaskRepository) LoadTasks(ctx context.Context) ([]*task.Task, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, order_key, name, duration_minutes, notes,
		       scheduled_start, scheduled_end, created_at, updated_at
		FROM planner_tasks
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// SaveTasks replaces the stored list with tasks. The replacement happens in
// one transaction, joining the caller's when there is one.
func (r *SQLTaskRepository) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	return sharedApplication.WithUnitOfWork(ctx, r.uow, func(txCtx context.Context) error {
		exec := r.executor(txCtx)
		if _, err := exec.Exec(txCtx, `DELETE FROM planner_tasks`); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}

		insert := `
			INSERT INTO planner_tasks (
				id, position, order_key, name, duration_minutes, notes,
				scheduled_start, scheduled_end, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		for i, t := range tasks {
			var start, end *string
			if slot := t.Slot(); slot != nil {
				start, end = &slot.Start, &slot.End
			}
			_, err := exec.Exec(txCtx, insert,
				t.ID().String(), i, t.OrderKey(), t.Name(), t.DurationMinutes(), t.Notes(),
				start, end, formatTime(t.CreatedAt()), formatTime(t.UpdatedAt()),
			)
			if err != nil {
				return fmt.Errorf("save task %d: %w", i, err)
			}
		}
		return nil
	})
}

// Clear removes every task.
func (r *SQLTaskRepository) Clear(ctx context.Context) error {
	if _, err := r.executor(ctx).Exec(ctx, `DELETE FROM planner_tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

func scanTask(row database.Row) (*task.Task, error) {
	var (
		id, orderKey, name, notes string
		duration                  int
		start, end                *string
		createdAt, updatedAt      string
	)
	if err := row.Scan(&id, &orderKey, &name, &duration, &notes, &start, &end, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("task id %q: %w", id, err)
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("task %s created_at: %w", id, err)
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("task %s updated_at: %w", id, err)
	}

	var slot *task.Slot
	if start != nil && end != nil {
		slot = &task.Slot{Start: *start, End: *end}
	}
	return task.Rehydrate(taskID, orderKey, name, duration, notes, slot, created, updated)
}

var _ task.Repository = (*SQLTaskRepository)(nil)
