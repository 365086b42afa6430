// Package clock converts between canonical times of day ("H:MM", unpadded
// hour, two-digit minute) and minute counts on a 24-hour wheel.
//
// All day-rollover arithmetic lives in AddMinutes. Callers that need to move
// a time of day forward or backward go through it instead of doing their own
// modulo math.
package clock

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinutesPerHour is the number of minutes in an hour.
	MinutesPerHour = 60
	// MinutesPerDay is the size of the wheel every time of day lives on.
	MinutesPerDay = 24 * MinutesPerHour
	// MaxHour is the largest hour of a time of day.
	MaxHour = 23
)

// Zero is returned by Format for inputs it cannot represent.
const Zero = "0:00"

var timePattern = regexp.MustCompile(`^(-?\d{1,2}):(\d{2})$`)

// Parse converts "H:MM" or "HH:MM" text into minutes since midnight.
// The hour is not bounded above; use ParseWithin when it must be.
func Parse(text string) (int, error) {
	return parse(text, -1)
}

// ParseWithin is Parse with an inclusive upper bound on the hour.
func ParseWithin(text string, maxHour int) (int, error) {
	return parse(text, maxHour)
}

func parse(text string, maxHour int) (int, error) {
	match := timePattern.FindStringSubmatch(text)
	if match == nil {
		if !strings.Contains(text, ":") {
			return 0, formatError(text, "missing ':' separator")
		}
		return 0, formatError(text, "expected H:MM with a two-digit minute")
	}

	if strings.HasPrefix(match[1], "-") {
		return 0, rangeError(text, "hour cannot be negative")
	}
	hour, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, formatError(text, err.Error())
	}
	minute, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, formatError(text, err.Error())
	}

	if maxHour >= 0 && hour > maxHour {
		return 0, rangeError(text, fmt.Sprintf("hour must be at most %d", maxHour))
	}
	if minute >= MinutesPerHour {
		return 0, rangeError(text, "minute must be below 60")
	}

	return hour*MinutesPerHour + minute, nil
}

// Format renders a minute count as canonical "H:MM" text. Formatting never
// fails: negative counts come back as Zero.
func Format(minutes int) string {
	if minutes < 0 {
		return Zero
	}
	return fmt.Sprintf("%d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// AddMinutes moves a time of day by delta minutes, wrapping around midnight
// in either direction. The result is canonical H:MM except for hour zero
// reached from a two-digit hour, which keeps the padding: "23:00" + 90 is
// "00:30", "23:30" + 90 is "1:00" and "09:00" + 30 is "9:30". Compare
// results with Parse, not as text.
func AddMinutes(text string, delta int) (string, error) {
	minutes, err := Parse(text)
	if err != nil {
		return "", err
	}

	wrapped := ((minutes+delta)%MinutesPerDay + MinutesPerDay) % MinutesPerDay
	out := Format(wrapped)
	if hasPaddedHour(text) && wrapped < MinutesPerHour {
		out = "0" + out
	}
	return out, nil
}

// Wrap reduces any minute count onto the 24-hour wheel.
func Wrap(minutes int) int {
	return ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
}

// FractionToMinutes converts a fractional-day value (0 < f < 1) into whole
// minutes, rounding half up. The result is in [0, MinutesPerDay].
func FractionToMinutes(f float64) (int, error) {
	input := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, formatError(input, "not a finite number")
	}
	if f <= 0 || f >= 1 {
		return 0, rangeError(input, "fraction of a day must be between 0 and 1")
	}
	return int(math.Floor(f*MinutesPerDay + 0.5)), nil
}

// FromDayFraction converts a fractional-day value into a canonical time of
// day: 0.5 is "12:00" and 0.0625 is "1:30".
func FromDayFraction(f float64) (string, error) {
	minutes, err := FractionToMinutes(f)
	if err != nil {
		return "", err
	}
	return Format(Wrap(minutes)), nil
}

// IsValid reports whether text is a well-formed time of day.
func IsValid(text string) bool {
	_, err := ParseWithin(text, MaxHour)
	return err == nil
}

func hasPaddedHour(text string) bool {
	idx := strings.IndexByte(text, ':')
	return idx == 2
}
