package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayline/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/pkg/observability"
)

// shortIDLen is how many leading characters of a task ID are shown and
// accepted on the command line.
const shortIDLen = 8

// ShortID abbreviates a task ID.
func ShortID(id uuid.UUID) string {
	return id.String()[:shortIDLen]
}

// Timed runs fn as a named operation, logging and recording its duration.
func Timed[T any](cmd *cobra.Command, a *App, operation string, fn func() (T, error)) (T, error) {
	var metrics observability.Metrics = observability.NoopMetrics{}
	if a != nil && a.Metrics != nil {
		metrics = a.Metrics
	}
	return observability.TimeOperationResult(Context(cmd), Logger(), metrics, operation, fn)
}

// PrintSchedule writes the schedule as a table.
func PrintSchedule(w io.Writer, s *queries.ScheduleDTO) {
	fmt.Fprintf(w, "Schedule starting %s\n", s.StartTime)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if len(s.Tasks) == 0 {
		fmt.Fprintln(w, "\n  No tasks yet.")
		fmt.Fprintln(w, "\n  Use 'dayline import <file.xlsx>' to load a task sheet")
		return
	}

	for _, t := range s.Tasks {
		fmt.Fprintf(w, "%2d. %5s - %5s  %s (%dm)  [%s]\n",
			t.Position+1, t.Start, t.End, t.Name, t.DurationMinutes, ShortID(t.ID))
		if t.Notes != "" {
			fmt.Fprintf(w, "      %s\n", t.Notes)
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Total: %d tasks, %dm scheduled, ends at %s\n", len(s.Tasks), s.TotalMinutes, s.EndTime)
	if s.Stale {
		fmt.Fprintln(w, "Stored times are out of date; run 'dayline schedule recalc'.")
	}
}

// PrintResult writes the schedule a command produced.
func PrintResult(w io.Writer, r *commands.ScheduleResult) {
	PrintSchedule(w, queries.ScheduleFromTasks(r.Tasks, r.StartTime, r.EndTime))
}

// PrintSummary writes an import summary and its rejected rows.
func PrintSummary(w io.Writer, s *importing.Summary) {
	fmt.Fprintf(w, "Import of %s at %s\n", s.SourceName, s.ImportedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "  valid: %d  invalid: %d\n", s.ValidRows, s.InvalidRows)
	if s.StartTime != "" {
		fmt.Fprintf(w, "  start time from sheet: %s\n", s.StartTime)
	}
	if s.FractionalRows > 0 {
		fmt.Fprintf(w, "  %d duration(s) below 1 were read as fractions of a day\n", s.FractionalRows)
	}
	for _, f := range s.InvalidDetails {
		fmt.Fprintf(w, "  row %d: %s\n", f.RowIndex, f.Reason)
	}
}

// counterSource is implemented by metrics sinks that can list their counters.
type counterSource interface {
	CounterSnapshot() []observability.CounterValue
}

// PrintStats writes the counters a run recorded. Sinks that keep nothing
// print nothing.
func PrintStats(w io.Writer, a *App) {
	if a == nil {
		return
	}
	source, ok := a.Metrics.(counterSource)
	if !ok {
		return
	}
	counters := source.CounterSnapshot()
	if len(counters) == 0 {
		return
	}
	fmt.Fprintln(w, "Stats:")
	for _, c := range counters {
		fmt.Fprintf(w, "  %-60s %d\n", c.Key, c.Value)
	}
}
