package task

import "context"

// Repository persists the ordered task list as a whole. Order of the slice
// is the schedule order.
type Repository interface {
	LoadTasks(ctx context.Context) ([]*Task, error)
	SaveTasks(ctx context.Context, tasks []*Task) error
	Clear(ctx context.Context) error
}
