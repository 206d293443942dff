package table

// ColumnType is the resolved storage type of a whole column
type ColumnType string

const (
	TypeText    ColumnType = "text"
	TypeNumeric ColumnType = "numeric"
)

// Column holds one named, uniformly typed column of cells
type Column struct {
	Name  string     `json:"name"`
	Type  ColumnType `json:"type"`
	Cells []Value    `json:"cells"`
}

// Floats returns the non-missing numeric payloads of a numeric column
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, v := range c.Cells {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// MissingCount returns how many cells are missing
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Cells {
		if v.IsMissing {
			n++
		}
	}
	return n
}

// FirstNonMissing returns the first present cell, if any
func (c *Column) FirstNonMissing() (Value, bool) {
	for _, v := range c.Cells {
		if !v.IsMissing {
			return v, true
		}
	}
	return Value{}, false
}

// Table is an ordered collection of typed columns of equal length
type Table struct {
	cols []Column
	rows int
}

// New creates an empty table with the given column names, all text-typed
func New(names []string) *Table {
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Type: TypeText}
	}
	return &Table{cols: cols}
}

// AppendTextRow adds one row of raw string cells. Rows shorter than the
// header are padded with missing values; excess cells are dropped.
func (t *Table) AppendTextRow(cells []string) {
	for i := range t.cols {
		if i < len(cells) {
			t.cols[i].Cells = append(t.cols[i].Cells, NewTextValue(cells[i]))
		} else {
			t.cols[i].Cells = append(t.cols[i].Cells, NewMissingValue())
		}
	}
	t.rows++
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.cols)
}

// ColumnNames returns column names in declared order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i := range t.cols {
		names[i] = t.cols[i].Name
	}
	return names
}

// ColumnAt returns the i-th column
func (t *Table) ColumnAt(i int) *Column {
	return &t.cols[i]
}

// Column returns the first column with the given name
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], true
		}
	}
	return nil, false
}

// NumericColumns returns all numeric columns in declared order
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for i := range t.cols {
		if t.cols[i].Type == TypeNumeric {
			out = append(out, &t.cols[i])
		}
	}
	return out
}
