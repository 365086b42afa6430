package importing

import "github.com/google/uuid"

// RoutingKeyImportCompleted is published after an import batch is stored.
const RoutingKeyImportCompleted = "planner.import.completed"

// ImportCompleted announces a stored import.
type ImportCompleted struct {
	SummaryID   uuid.UUID `json:"summary_id"`
	SourceName  string    `json:"source_name"`
	ValidRows   int       `json:"valid_rows"`
	InvalidRows int       `json:"invalid_rows"`
}
