package importing

import (
	"strconv"
)

// CellKind tags the shape of a decoded spreadsheet value.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
	CellBool
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellNumber:
		return "number"
	case CellText:
		return "text"
	case CellBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Cell is one decoded spreadsheet value. Exactly one payload is meaningful,
// selected by Kind.
type Cell struct {
	kind    CellKind
	number  float64
	text    string
	boolean bool
}

// EmptyCell is an absent or blank value.
func EmptyCell() Cell { return Cell{kind: CellEmpty} }

// NumberCell wraps a numeric value.
func NumberCell(v float64) Cell { return Cell{kind: CellNumber, number: v} }

// TextCell wraps a string value as-is, without trimming.
func TextCell(s string) Cell { return Cell{kind: CellText, text: s} }

// BoolCell wraps a boolean value.
func BoolCell(b bool) Cell { return Cell{kind: CellBool, boolean: b} }

func (c Cell) Kind() CellKind { return c.kind }

// Number returns the numeric payload and whether the cell is a number.
func (c Cell) Number() (float64, bool) { return c.number, c.kind == CellNumber }

// Text returns the string payload and whether the cell is text.
func (c Cell) Text() (string, bool) { return c.text, c.kind == CellText }

// Bool returns the boolean payload and whether the cell is a boolean.
func (c Cell) Bool() (bool, bool) { return c.boolean, c.kind == CellBool }

// Raw returns the payload as a plain Go value: nil, float64, string or bool.
func (c Cell) Raw() any {
	switch c.kind {
	case CellNumber:
		return c.number
	case CellText:
		return c.text
	case CellBool:
		return c.boolean
	default:
		return nil
	}
}

func (c Cell) String() string {
	switch c.kind {
	case CellNumber:
		return strconv.FormatFloat(c.number, 'g', -1, 64)
	case CellText:
		return strconv.Quote(c.text)
	case CellBool:
		return strconv.FormatBool(c.boolean)
	default:
		return "<empty>"
	}
}

// Row maps a header name to its cell.
type Row map[string]Cell

// Get returns the named cell, or an empty cell when the column is absent.
func (r Row) Get(field string) Cell {
	if c, ok := r[field]; ok {
		return c
	}
	return EmptyCell()
}

// Raw flattens the row for diagnostics.
func (r Row) Raw() map[string]any {
	out := make(map[string]any, len(r))
	for k, c := range r {
		out[k] = c.Raw()
	}
	return out
}
