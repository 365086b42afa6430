// Package spreadsheet reads task rows from and writes schedules to .xlsx
// workbooks.
package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/security"
)

var ErrSheetNotFound = errors.New("sheet not found")

// XLSXDecoder turns the first row of a sheet into column names and every
// following non-blank row into an importing.Row.
type XLSXDecoder struct {
	sheet string
}

// NewXLSXDecoder reads the named sheet, or the first one when sheet is empty.
func NewXLSXDecoder(sheet string) *XLSXDecoder {
	return &XLSXDecoder{sheet: sheet}
}

// DecodeFile validates and opens path, then decodes it.
func (d *XLSXDecoder) DecodeFile(ctx context.Context, path string) ([]importing.Row, error) {
	f, err := security.OpenWorkbook(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return d.Decode(ctx, f)
}

// Decode reads a workbook. A sheet with no rows, or only a header, yields no
// rows and no error.
func (d *XLSXDecoder) Decode(ctx context.Context, r io.Reader) ([]importing.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()

	sheet, err := d.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	// Raw values keep time cells as day fractions instead of formatted text.
	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(grid) < 2 {
		return []importing.Row{}, nil
	}

	header := make([]string, len(grid[0]))
	seen := make(map[string]bool, len(grid[0]))
	for i, name := range grid[0] {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		header[i] = name
	}

	rows := make([]importing.Row, 0, len(grid)-1)
	for i, values := range grid[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if blank(values) {
			continue
		}

		rowNum := i + 2
		row := make(importing.Row, len(header))
		for col, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if col < len(values) {
				value = values[col]
			}
			cell, err := readCell(f, sheet, col+1, rowNum, value)
			if err != nil {
				return nil, err
			}
			row[name] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (d *XLSXDecoder) resolveSheet(f *excelize.File) (string, error) {
	if d.sheet != "" {
		idx, err := f.GetSheetIndex(d.sheet)
		if err != nil || idx < 0 {
			return "", fmt.Errorf("%w: %q", ErrSheetNotFound, d.sheet)
		}
		return d.sheet, nil
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrSheetNotFound
	}
	return sheets[0], nil
}

func readCell(f *excelize.File, sheet string, col, row int, value string) (importing.Cell, error) {
	if value == "" {
		return importing.EmptyCell(), nil
	}

	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return importing.Cell{}, err
	}
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		return importing.Cell{}, fmt.Errorf("cell %s: %w", ref, err)
	}

	switch typ {
	case excelize.CellTypeBool:
		return importing.BoolCell(value == "1" || strings.EqualFold(value, "true")), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return importing.TextCell(value), nil
	default:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return importing.NumberCell(v), nil
		}
		return importing.TextCell(value), nil
	}
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
