package services

import (
	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayline/internal/shared/domain"
	"github.com/google/uuid"
)

// ImportResult is the outcome of one batch.
type ImportResult struct {
	// Tasks are the accepted rows in input order, not yet scheduled.
	Tasks   []*task.Task
	Summary importing.Summary
}

// BatchImporter validates every decoded row and splits the batch into
// accepted tasks and rejected rows.
type BatchImporter struct {
	validator *importing.Validator
	now       sharedDomain.TimeSource
}

// NewBatchImporter creates an importer. A nil time source reads the system
// clock.
func NewBatchImporter(validator *importing.Validator, now sharedDomain.TimeSource) *BatchImporter {
	if validator == nil {
		validator = importing.NewValidator(importing.DefaultColumns())
	}
	if now == nil {
		now = sharedDomain.SystemTime{}
	}
	return &BatchImporter{validator: validator, now: now}
}

type accepted struct {
	task       *task.Task
	fractional bool
}

// Import never fails as a whole. Each rejected row is recorded with its
// 1-based index and the batch carries on.
func (b *BatchImporter) Import(rows []importing.Row, source string) ImportResult {
	importedAt := b.now.Now().UTC()

	outcomes := sharedApplication.MapCollectingFailures(rows, func(_ int, row importing.Row) (accepted, error) {
		draft, err := b.validator.Validate(row)
		if err != nil {
			return accepted{}, err
		}
		t, err := task.NewTaskAt(draft.OrderKey, draft.Name, draft.DurationMinutes, draft.Notes, importedAt)
		if err != nil {
			return accepted{}, err
		}
		return accepted{task: t, fractional: draft.FromDayFraction}, nil
	})

	summary := importing.Summary{
		ID:             uuid.New(),
		SourceName:     source,
		ImportedAt:     importedAt,
		StartTime:      b.startTime(rows),
		InvalidDetails: []importing.ValidationFailure{},
	}
	tasks := make([]*task.Task, 0, len(rows))

	succeeded, failed := sharedApplication.Partition(outcomes)
	for _, o := range succeeded {
		tasks = append(tasks, o.Value.task)
		if o.Value.fractional {
			summary.FractionalRows++
		}
	}
	for _, o := range failed {
		summary.InvalidDetails = append(summary.InvalidDetails, importing.ValidationFailure{
			RowIndex: o.Index + 1,
			Reason:   o.Err.Error(),
			RawData:  rows[o.Index].Raw(),
		})
	}
	summary.ValidRows = len(succeeded)
	summary.InvalidRows = len(failed)

	return ImportResult{Tasks: tasks, Summary: summary}
}

// startTime returns the first well-formed value of the start-time column.
// Malformed values are skipped; they do not reject the row they sit in.
func (b *BatchImporter) startTime(rows []importing.Row) string {
	for _, row := range rows {
		start, ok, err := b.validator.StartTime(row)
		if err == nil && ok {
			return start
		}
	}
	return ""
}
