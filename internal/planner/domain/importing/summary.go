package importing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoSummary = errors.New("no import summary recorded")

// ValidationFailure is one rejected input row.
type ValidationFailure struct {
	// RowIndex is the 1-based position of the row within the batch.
	RowIndex int            `json:"row_index"`
	Reason   string         `json:"reason"`
	RawData  map[string]any `json:"raw_data,omitempty"`
}

// Summary records the outcome of one import run. It is never modified after
// it is produced.
type Summary struct {
	ID             uuid.UUID           `json:"id"`
	SourceName     string              `json:"source_name"`
	ImportedAt     time.Time           `json:"imported_at"`
	ValidRows      int                 `json:"valid_rows"`
	InvalidRows    int                 `json:"invalid_rows"`
	FractionalRows int                 `json:"fractional_rows"`
	StartTime      string              `json:"start_time,omitempty"`
	InvalidDetails []ValidationFailure `json:"invalid_details"`
}

// TotalRows is the number of rows the run looked at.
func (s Summary) TotalRows() int {
	return s.ValidRows + s.InvalidRows
}

// HasFailures reports whether any row was rejected.
func (s Summary) HasFailures() bool {
	return s.InvalidRows > 0
}

// SummaryRepository keeps the provenance of the most recent import.
type SummaryRepository interface {
	Save(ctx context.Context, summary Summary) error
	// Latest returns ErrNoSummary when nothing has been imported.
	Latest(ctx context.Context) (Summary, error)
	Clear(ctx context.Context) error
}
