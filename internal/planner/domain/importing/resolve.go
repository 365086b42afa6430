package importing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/clock"
)

// FieldKind tells ResolveField how the column is meant to be read. The same
// fractional-day encoding shows up in both kinds of column, so the caller
// decides, never the value.
type FieldKind int

const (
	// FieldDuration reads elapsed minutes.
	FieldDuration FieldKind = iota
	// FieldClockTime reads a time of day.
	FieldClockTime
)

// Resolved is a normalized duration or time-of-day value.
type Resolved struct {
	// Minutes is the duration, or minutes since midnight for a clock time.
	Minutes int
	// Canonical is Minutes rendered as H:MM.
	Canonical string
	// FromDayFraction is set when the value arrived as a number in (0,1).
	FromDayFraction bool
}

// MaxDurationMinutes caps numeric durations so rounding stays within int
// range on every platform.
const MaxDurationMinutes = math.MaxInt32

// ResolveField normalizes one duration-or-time cell. Numbers strictly
// between 0 and 1 are always fractions of a day, whatever the kind.
func ResolveField(field string, cell Cell, kind FieldKind) (Resolved, error) {
	switch cell.Kind() {
	case CellNumber:
		v, _ := cell.Number()
		return resolveNumber(field, v, kind)
	case CellText:
		s, _ := cell.Text()
		return resolveText(field, s, kind)
	case CellBool:
		return Resolved{}, newValidationError(ErrTypeMismatch, field, "boolean is not a duration or time")
	default:
		return Resolved{}, newValidationError(ErrTypeMismatch, field, "value is empty")
	}
}

func resolveNumber(field string, v float64, kind FieldKind) (Resolved, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Resolved{}, newValidationError(ErrTypeMismatch, field, "not a finite number")
	}

	if v > 0 && v < 1 {
		minutes, err := clock.FractionToMinutes(v)
		if err != nil {
			return Resolved{}, fromClockError(field, err)
		}
		if kind == FieldClockTime {
			minutes = clock.Wrap(minutes)
		}
		return finish(field, minutes, kind, true)
	}

	if kind == FieldClockTime {
		return Resolved{}, newValidationError(ErrInvalidRange, field,
			fmt.Sprintf("numeric time of day must be a fraction between 0 and 1, got %v", v))
	}
	if v <= 0 {
		return Resolved{}, newValidationError(ErrInvalidRange, field,
			fmt.Sprintf("duration must be positive, got %v", v))
	}
	if v > MaxDurationMinutes {
		return Resolved{}, newValidationError(ErrInvalidRange, field,
			fmt.Sprintf("duration must be at most %d minutes, got %v", MaxDurationMinutes, v))
	}
	return finish(field, int(math.Floor(v+0.5)), kind, false)
}

func resolveText(field, s string, kind FieldKind) (Resolved, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Resolved{}, newValidationError(ErrMissingField, field, "value is blank")
	}

	if strings.Contains(s, ":") {
		var (
			minutes int
			err     error
		)
		if kind == FieldClockTime {
			minutes, err = clock.ParseWithin(s, clock.MaxHour)
		} else {
			minutes, err = clock.Parse(s)
		}
		if err != nil {
			return Resolved{}, fromClockError(field, err)
		}
		return finish(field, minutes, kind, false)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Resolved{}, newValidationError(ErrTypeMismatch, field,
			fmt.Sprintf("%q is neither a number nor H:MM", s))
	}
	return resolveNumber(field, v, kind)
}

func finish(field string, minutes int, kind FieldKind, fraction bool) (Resolved, error) {
	if kind == FieldDuration && minutes <= 0 {
		return Resolved{}, newValidationError(ErrInvalidRange, field, "duration rounds to zero minutes")
	}
	return Resolved{
		Minutes:         minutes,
		Canonical:       clock.Format(minutes),
		FromDayFraction: fraction,
	}, nil
}

func fromClockError(field string, err error) error {
	var ce *clock.Error
	if errors.As(err, &ce) {
		return newValidationError(ce.Kind, field, ce.Msg+" ("+strconv.Quote(ce.Input)+")")
	}
	return newValidationError(ErrTypeMismatch, field, err.Error())
}
