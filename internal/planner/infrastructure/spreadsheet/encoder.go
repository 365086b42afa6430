package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
)

// ExportSheet is the sheet name written by XLSXEncoder.
const ExportSheet = "Schedule"

// XLSXEncoder writes a schedule back out in the layout the decoder reads,
// plus start and end columns.
type XLSXEncoder struct {
	columns importing.Columns
}

// NewXLSXEncoder creates an encoder using the given header names.
func NewXLSXEncoder(columns importing.Columns) *XLSXEncoder {
	return &XLSXEncoder{columns: columns.WithDefaults()}
}

// Encode writes tasks to w. Durations are written as whole minutes so the
// file imports back to the same list.
func (e *XLSXEncoder) Encode(w io.Writer, tasks []*task.Task) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := []any{e.columns.OrderKey, e.columns.Name, e.columns.Duration, e.columns.Notes, "start", "end"}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range tasks {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{t.OrderKey(), t.Name(), t.DurationMinutes(), t.Notes(), t.ScheduledStart(), t.ScheduledEnd()}
		if err := f.SetSheetRow(ExportSheet, ref, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
