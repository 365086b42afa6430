package importing

import (
	"strings"

	"github.com/spf13/cast"
)

// Draft is an accepted row before any schedule times are assigned.
type Draft struct {
	OrderKey        string
	Name            string
	DurationMinutes int
	Notes           string
	// FromDayFraction marks a duration that arrived as a fraction of a day,
	// e.g. 0.0625 read as 90 minutes.
	FromDayFraction bool
}

// Validator turns raw rows into drafts. It holds no state between calls.
type Validator struct {
	columns Columns
}

// NewValidator creates a validator reading the given columns. Blank column
// names fall back to DefaultColumns.
func NewValidator(columns Columns) *Validator {
	return &Validator{columns: columns.WithDefaults()}
}

// Columns returns the header names the validator reads.
func (v *Validator) Columns() Columns { return v.columns }

// Validate normalizes one row. Any failure is a *ValidationError.
func (v *Validator) Validate(row Row) (Draft, error) {
	orderKey, err := requireText(v.columns.OrderKey, row.Get(v.columns.OrderKey))
	if err != nil {
		return Draft{}, err
	}
	name, err := requireText(v.columns.Name, row.Get(v.columns.Name))
	if err != nil {
		return Draft{}, err
	}

	duration, err := ResolveField(v.columns.Duration, row.Get(v.columns.Duration), FieldDuration)
	if err != nil {
		return Draft{}, err
	}

	return Draft{
		OrderKey:        orderKey,
		Name:            name,
		DurationMinutes: duration.Minutes,
		Notes:           optionalText(row.Get(v.columns.Notes)),
		FromDayFraction: duration.FromDayFraction,
	}, nil
}

// StartTime reads the optional start-time column. ok is false when the
// column is absent or blank.
func (v *Validator) StartTime(row Row) (start string, ok bool, err error) {
	cell := row.Get(v.columns.StartTime)
	if cell.Kind() == CellEmpty {
		return "", false, nil
	}
	if s, isText := cell.Text(); isText && strings.TrimSpace(s) == "" {
		return "", false, nil
	}

	resolved, err := ResolveField(v.columns.StartTime, cell, FieldClockTime)
	if err != nil {
		return "", false, err
	}
	return resolved.Canonical, true, nil
}

func requireText(field string, cell Cell) (string, error) {
	s, err := cast.ToStringE(cell.Raw())
	if err != nil {
		return "", newValidationError(ErrTypeMismatch, field, err.Error())
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", newValidationError(ErrMissingField, field, "required value is empty")
	}
	return s, nil
}

func optionalText(cell Cell) string {
	return strings.TrimSpace(cast.ToString(cell.Raw()))
}
