package importing

// Columns names the header of each field a row is read from. StartTime is
// optional; when set, the first row carrying a value there supplies the
// schedule start.
type Columns struct {
	OrderKey  string
	Name      string
	Duration  string
	Notes     string
	StartTime string
}

// DefaultColumns returns the header names used by exported task sheets.
func DefaultColumns() Columns {
	return Columns{
		OrderKey:  "orderId",
		Name:      "name",
		Duration:  "duration",
		Notes:     "notes",
		StartTime: "startTime",
	}
}

// WithDefaults fills blank names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.OrderKey == "" {
		c.OrderKey = d.OrderKey
	}
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Duration == "" {
		c.Duration = d.Duration
	}
	if c.Notes == "" {
		c.Notes = d.Notes
	}
	if c.StartTime == "" {
		c.StartTime = d.StartTime
	}
	return c
}
