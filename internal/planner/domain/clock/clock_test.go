package clock

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		kind     error
	}{
		{name: "single digit hour", input: "9:05", expected: 545},
		{name: "two digit hour", input: "09:05", expected: 545},
		{name: "midnight", input: "0:00", expected: 0},
		{name: "last minute of day", input: "23:59", expected: 1439},
		{name: "hour above 23 is permitted", input: "25:30", expected: 1530},
		{name: "missing separator", input: "930", kind: ErrFormat},
		{name: "one digit minute", input: "9:5", kind: ErrFormat},
		{name: "three digit minute", input: "9:050", kind: ErrFormat},
		{name: "three digit hour", input: "100:00", kind: ErrFormat},
		{name: "empty", input: "", kind: ErrFormat},
		{name: "surrounding whitespace", input: " 9:00", kind: ErrFormat},
		{name: "letters", input: "ab:cd", kind: ErrFormat},
		{name: "minute out of range", input: "9:60", kind: ErrRange},
		{name: "negative hour", input: "-1:00", kind: ErrRange},
		{name: "negative zero hour", input: "-0:30", kind: ErrRange},
		{name: "negative zero hour padded", input: "-00:30", kind: ErrRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.kind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseWithin(t *testing.T) {
	_, err := ParseWithin("24:00", MaxHour)
	assert.ErrorIs(t, err, ErrRange)

	got, err := ParseWithin("23:00", MaxHour)
	require.NoError(t, err)
	assert.Equal(t, 1380, got)
}

func TestParse_ErrorMessageCarriesInput(t *testing.T) {
	_, err := Parse("9:75")
	require.Error(t, err)

	var clockErr *Error
	require.True(t, errors.As(err, &clockErr))
	assert.Equal(t, "9:75", clockErr.Input)
	assert.Contains(t, err.Error(), "9:75")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0:00", Format(0))
	assert.Equal(t, "9:05", Format(545))
	assert.Equal(t, "12:00", Format(720))
	assert.Equal(t, "23:59", Format(1439))
	assert.Equal(t, "25:00", Format(1500))

	t.Run("negative input is lenient", func(t *testing.T) {
		assert.Equal(t, Zero, Format(-1))
		assert.Equal(t, Zero, Format(math.MinInt))
	})
}

func TestParseFormat_RoundTrip(t *testing.T) {
	for hour := 0; hour < 48; hour++ {
		for minute := 0; minute < 60; minute++ {
			total := hour*60 + minute
			got, err := Parse(Format(total))
			require.NoError(t, err)
			require.Equal(t, total, got, "round trip of %d", total)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		input    string
		delta    int
		expected string
	}{
		{"23:00", 90, "00:30"},
		{"9:00", 30, "9:30"},
		{"9:30", 45, "10:15"},
		{"22:30", 120, "00:30"},
		{"0:15", -30, "23:45"},
		{"10:00", -1440 * 3, "10:00"},
		{"23:59", 1, "00:00"},
		{"22:00", 150, "00:30"},
		{"22:30", 185, "1:35"},
		{"23:30", 90, "1:00"},
		{"09:00", 30, "9:30"},
		{"00:30", 60, "1:30"},
		{"8:00", 30, "8:30"},
		{"12:00", 0, "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := AddMinutes(tt.input, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("malformed input", func(t *testing.T) {
		_, err := AddMinutes("noon", 10)
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestAddMinutes_FullDayIsNoop(t *testing.T) {
	for m := 0; m < 3*MinutesPerDay; m += 7 {
		text := Format(m)
		got, err := AddMinutes(text, MinutesPerDay)
		require.NoError(t, err)

		if m < MinutesPerDay {
			assert.Equal(t, text, got)
		}
		wrapped, err := Parse(got)
		require.NoError(t, err)
		assert.Equal(t, m%MinutesPerDay, wrapped)
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 0, Wrap(1440))
	assert.Equal(t, 10, Wrap(1450))
	assert.Equal(t, 1430, Wrap(-10))
}

func TestFromDayFraction(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0.0625, "1:30"},
		{0.5, "12:00"},
		{0.25, "6:00"},
		{0.375, "9:00"},
		{0.75, "18:00"},
		{15.0 / 1440.0, "0:15"},
		{0.99999, "0:00"},
	}

	for _, tt := range tests {
		got, err := FromDayFraction(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "fraction %v", tt.input)
	}

	for _, bad := range []float64{0, 1, -0.5, 1.5, math.NaN(), math.Inf(1)} {
		_, err := FromDayFraction(bad)
		assert.Error(t, err, "fraction %v", bad)
	}
}

func TestFractionToMinutes(t *testing.T) {
	got, err := FractionToMinutes(0.0625)
	require.NoError(t, err)
	assert.Equal(t, 90, got)

	got, err = FractionToMinutes(0.99999)
	require.NoError(t, err)
	assert.Equal(t, MinutesPerDay, got)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("9:00"))
	assert.True(t, IsValid("23:59"))
	assert.False(t, IsValid("24:00"))
	assert.False(t, IsValid("nine"))
}
