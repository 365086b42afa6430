package importing_test

import (
	"testing"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() importing.Row {
	return importing.Row{
		"orderId":  importing.NumberCell(3),
		"name":     importing.TextCell("  Inbox zero "),
		"duration": importing.NumberCell(30),
		"notes":    importing.TextCell(" after lunch "),
	}
}

func TestValidator_Validate(t *testing.T) {
	v := importing.NewValidator(importing.DefaultColumns())

	draft, err := v.Validate(validRow())

	require.NoError(t, err)
	assert.Equal(t, importing.Draft{
		OrderKey:        "3",
		Name:            "Inbox zero",
		DurationMinutes: 30,
		Notes:           "after lunch",
	}, draft)
}

func TestValidator_FractionalDuration(t *testing.T) {
	v := importing.NewValidator(importing.DefaultColumns())
	row := validRow()
	row["duration"] = importing.NumberCell(0.0625)

	draft, err := v.Validate(row)

	require.NoError(t, err)
	assert.Equal(t, 90, draft.DurationMinutes)
	assert.True(t, draft.FromDayFraction)
}

func TestValidator_Failures(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(importing.Row)
		kind  error
		field string
	}{
		{"empty order key", func(r importing.Row) { r["orderId"] = importing.TextCell("") }, importing.ErrMissingField, "orderId"},
		{"missing order key", func(r importing.Row) { delete(r, "orderId") }, importing.ErrMissingField, "orderId"},
		{"blank name", func(r importing.Row) { r["name"] = importing.TextCell("  ") }, importing.ErrMissingField, "name"},
		{"boolean duration", func(r importing.Row) { r["duration"] = importing.BoolCell(false) }, importing.ErrTypeMismatch, "duration"},
		{"missing duration", func(r importing.Row) { delete(r, "duration") }, importing.ErrTypeMismatch, "duration"},
		{"zero duration", func(r importing.Row) { r["duration"] = importing.NumberCell(0) }, importing.ErrInvalidRange, "duration"},
	}

	v := importing.NewValidator(importing.DefaultColumns())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.edit(row)

			_, err := v.Validate(row)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidator_OrderKeyBeforeName(t *testing.T) {
	v := importing.NewValidator(importing.DefaultColumns())

	_, err := v.Validate(importing.Row{})

	assert.ErrorIs(t, err, importing.ErrMissingField)
	assert.Contains(t, err.Error(), "orderId")
}

func TestValidator_CustomColumns(t *testing.T) {
	v := importing.NewValidator(importing.Columns{Name: "Title", Duration: "Minutes"})
	row := importing.Row{
		"orderId": importing.TextCell("x"),
		"Title":   importing.TextCell("Call"),
		"Minutes": importing.TextCell("15"),
	}

	draft, err := v.Validate(row)

	require.NoError(t, err)
	assert.Equal(t, "Call", draft.Name)
	assert.Equal(t, 15, draft.DurationMinutes)
	assert.Equal(t, "Minutes", v.Columns().Duration)
}

func TestValidator_StartTime(t *testing.T) {
	v := importing.NewValidator(importing.DefaultColumns())

	_, ok, err := v.StartTime(validRow())
	require.NoError(t, err)
	assert.False(t, ok)

	row := validRow()
	row["startTime"] = importing.TextCell(" ")
	_, ok, err = v.StartTime(row)
	require.NoError(t, err)
	assert.False(t, ok)

	row["startTime"] = importing.NumberCell(0.5)
	start, ok, err := v.StartTime(row)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "12:00", start)

	row["startTime"] = importing.TextCell("25:00")
	_, _, err = v.StartTime(row)
	assert.Error(t, err)
}

func TestSummary_Totals(t *testing.T) {
	s := importing.Summary{ValidRows: 2, InvalidRows: 1}

	assert.Equal(t, 3, s.TotalRows())
	assert.True(t, s.HasFailures())
	assert.False(t, importing.Summary{}.HasFailures())
}
