package importing_test

import (
	"testing"

	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/stretchr/testify/assert"
)

func TestCell_Kinds(t *testing.T) {
	n := importing.NumberCell(0.5)
	v, ok := n.Number()
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
	assert.Equal(t, importing.CellNumber, n.Kind())
	_, ok = n.Text()
	assert.False(t, ok)

	s := importing.TextCell(" 9:00 ")
	text, ok := s.Text()
	assert.True(t, ok)
	assert.Equal(t, " 9:00 ", text, "text is kept verbatim")

	b := importing.BoolCell(true)
	bv, ok := b.Bool()
	assert.True(t, ok)
	assert.True(t, bv)

	assert.Equal(t, importing.CellEmpty, importing.EmptyCell().Kind())
}

func TestCell_Raw(t *testing.T) {
	assert.Nil(t, importing.EmptyCell().Raw())
	assert.Equal(t, 3.0, importing.NumberCell(3).Raw())
	assert.Equal(t, "x", importing.TextCell("x").Raw())
	assert.Equal(t, false, importing.BoolCell(false).Raw())
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "0.0625", importing.NumberCell(0.0625).String())
	assert.Equal(t, `"a"`, importing.TextCell("a").String())
	assert.Equal(t, "true", importing.BoolCell(true).String())
	assert.Equal(t, "<empty>", importing.EmptyCell().String())
	assert.Equal(t, "text", importing.CellText.String())
}

func TestRow_Get(t *testing.T) {
	row := importing.Row{"name": importing.TextCell("Plan")}

	assert.Equal(t, importing.CellText, row.Get("name").Kind())
	assert.Equal(t, importing.CellEmpty, row.Get("missing").Kind())
	assert.Equal(t, map[string]any{"name": "Plan"}, row.Raw())
}

func TestColumns_WithDefaults(t *testing.T) {
	c := importing.Columns{Name: "Title"}.WithDefaults()

	assert.Equal(t, "Title", c.Name)
	assert.Equal(t, "orderId", c.OrderKey)
	assert.Equal(t, "duration", c.Duration)
	assert.Equal(t, "notes", c.Notes)
	assert.Equal(t, "startTime", c.StartTime)
}
