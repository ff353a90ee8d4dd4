package dataset

import (
	"math"
	"strconv"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
)

// Kind is the inferred type of a column.
type Kind int

const (
	// KindString is a text column.
	KindString Kind = iota
	// KindFloat is a numeric column stored as float64.
	KindFloat
)

// String returns the name of the kind as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindFloat:
		return "f64"
	default:
		return "unknown"
	}
}

// Column is a named, homogeneous sequence of values backed by an Arrow array.
// Exactly one of floats or strings is set, depending on the kind.
type Column struct {
	name    string
	kind    Kind
	floats  *array.Float64
	strings *array.String
}

// Name returns the header name of the column.
func (c *Column) Name() string { return c.name }

// Kind returns the inferred kind of the column.
func (c *Column) Kind() Kind { return c.kind }

// Array returns the underlying Arrow array.
func (c *Column) Array() arrow.Array {
	if c.kind == KindFloat {
		return c.floats
	}
	return c.strings
}

// Len returns the number of cells in the column, nulls included.
func (c *Column) Len() int { return c.Array().Len() }

// NullCount returns the number of null cells.
func (c *Column) NullCount() int { return c.Array().NullN() }

// IsNull reports whether the cell at row i is null.
func (c *Column) IsNull(i int) bool { return c.Array().IsNull(i) }

// Float returns the numeric value at row i. The second result is false when
// the cell is null or the column is not numeric.
func (c *Column) Float(i int) (float64, bool) {
	if c.kind != KindFloat || c.floats.IsNull(i) {
		return 0, false
	}
	return c.floats.Value(i), true
}

// Text returns the cell at row i as text. Numeric cells are formatted with
// the shortest representation that round-trips. The second result is false
// for null cells.
func (c *Column) Text(i int) (string, bool) {
	if c.IsNull(i) {
		return "", false
	}
	if c.kind == KindFloat {
		return strconv.FormatFloat(c.floats.Value(i), 'f', -1, 64), true
	}
	return c.strings.Value(i), true
}

// Floats returns the non-null, finite values of a numeric column in row
// order. NaN and infinities are skipped. It returns nil for string columns.
func (c *Column) Floats() []float64 {
	if c.kind != KindFloat {
		return nil
	}
	out := make([]float64, 0, c.floats.Len()-c.floats.NullN())
	for i := 0; i < c.floats.Len(); i++ {
		if c.floats.IsNull(i) {
			continue
		}
		v := c.floats.Value(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Texts returns the non-null cells of the column as text, in row order.
func (c *Column) Texts() []string {
	out := make([]string, 0, c.Len()-c.NullCount())
	for i := 0; i < c.Len(); i++ {
		if s, ok := c.Text(i); ok {
			out = append(out, s)
		}
	}
	return out
}

func (c *Column) release() {
	if c.floats != nil {
		c.floats.Release()
	}
	if c.strings != nil {
		c.strings.Release()
	}
}

// Table is an ordered collection of named columns that share a row count.
// A Table is read-only once loaded; callers share it by reference.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.columns) }

// Columns returns the columns in header order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the header names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// Column looks up a column by its header name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Release frees the Arrow buffers held by the table. The table must not be
// used afterwards.
func (t *Table) Release() {
	for _, c := range t.columns {
		c.release()
	}
}
