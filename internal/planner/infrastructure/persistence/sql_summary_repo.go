package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// SQLSummaryRepository stores import summaries in planner_import_summaries.
// Failure details are kept as a JSON document.
type SQLSummaryRepository struct {
	conn database.Connection
}

// NewSQLSummaryRepository creates a new SQLSummaryRepository.
func NewSQLSummaryRepository(conn database.Connection) *SQLSummaryRepository {
	return &SQLSummaryRepository{conn: conn}
}

// Save records a summary.
func (r *SQLSummaryRepository) Save(ctx context.Context, s importing.Summary) error {
	details := s.InvalidDetails
	if details == nil {
		details = []importing.ValidationFailure{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode invalid details: %w", err)
	}

	exec := database.ExecutorFromContext(ctx, r.conn)
	_, err = exec.Exec(ctx, `
		INSERT INTO planner_import_summaries (
			id, source_name, imported_at, valid_rows, invalid_rows,
			fractional_rows, start_time, invalid_details
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID.String(), s.SourceName, formatTime(s.ImportedAt), s.ValidRows, s.InvalidRows,
		s.FractionalRows, s.StartTime, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save import summary: %w", err)
	}
	return nil
}

// Latest returns the most recent summary, or importing.ErrNoSummary.
func (r *SQLSummaryRepository) Latest(ctx context.Context) (importing.Summary, error) {
	exec := database.ExecutorFromContext(ctx, r.conn)
	row := exec.QueryRow(ctx, `
		SELECT id, source_name, imported_at, valid_rows, invalid_rows,
		       fractional_rows, start_time, invalid_details
		FROM planner_import_summaries
		ORDER BY imported_at DESC, id DESC
		LIMIT 1`)

	var (
		s                   importing.Summary
		id, importedAt, raw string
	)
	err := row.Scan(&id, &s.SourceName, &importedAt, &s.ValidRows, &s.InvalidRows,
		&s.FractionalRows, &s.StartTime, &raw)
	if err != nil {
		if database.IsNoRows(err) {
			return importing.Summary{}, importing.ErrNoSummary
		}
		return importing.Summary{}, fmt.Errorf("load import summary: %w", err)
	}

	if s.ID, err = uuid.Parse(id); err != nil {
		return importing.Summary{}, fmt.Errorf("import summary id %q: %w", id, err)
	}
	if s.ImportedAt, err = parseTime(importedAt); err != nil {
		return importing.Summary{}, fmt.Errorf("import summary %s imported_at: %w", id, err)
	}
	if err := json.Unmarshal([]byte(raw), &s.InvalidDetails); err != nil {
		return importing.Summary{}, fmt.Errorf("decode invalid details: %w", err)
	}
	return s, nil
}

// Clear removes every summary.
func (r *SQLSummaryRepository) Clear(ctx context.Context) error {
	exec := database.ExecutorFromContext(ctx, r.conn)
	if _, err := exec.Exec(ctx, `DELETE FROM planner_import_summaries`); err != nil {
		return fmt.Errorf("clear import summaries: %w", err)
	}
	return nil
}

var _ importing.SummaryRepository = (*SQLSummaryRepository)(nil)
