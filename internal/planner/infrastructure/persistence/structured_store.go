package persistence

import (
	"context"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
)

// StructuredStoreName identifies the SQL backend in reset results.
const StructuredStoreName = "structured-store"

// StructuredStore groups the SQL repositories so they can be wiped together.
type StructuredStore struct {
	Tasks     task.Repository
	Summaries importing.SummaryRepository
	UoW       sharedApplication.UnitOfWork
}

// Name implements services.ResetBackend.
func (s *StructuredStore) Name() string { return StructuredStoreName }

// Clear removes tasks and summaries in one transaction.
func (s *StructuredStore) Clear(ctx context.Context) error {
	return sharedApplication.WithUnitOfWork(ctx, s.UoW, func(txCtx context.Context) error {
		if err := s.Tasks.Clear(txCtx); err != nil {
			return err
		}
		return s.Summaries.Clear(txCtx)
	})
}
