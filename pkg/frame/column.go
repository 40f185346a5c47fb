package frame

import (
	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Col is a read-only view of one Table column.
type Col struct {
	s    dataframe.Series
	kind Kind
}

// Name returns the column name.
func (c Col) Name() string {
	return c.s.Name()
}

// Len returns the number of values.
func (c Col) Len() int {
	if c.s == nil {
		return 0
	}
	return c.s.NRows()
}

// Kind returns the declared or inferred kind.
func (c Col) Kind() Kind {
	return c.kind
}

// Numeric reports whether the column is stored as int64 or float64.
func (c Col) Numeric() bool {
	return isNumericSeries(c.s)
}

// Integer reports whether the column is stored as int64.
func (c Col) Integer() bool {
	_, ok := c.s.(*dataframe.SeriesInt64)
	return ok
}

// Value returns the value at row i, or nil.
func (c Col) Value(i int) interface{} {
	if c.s == nil || i < 0 || i >= c.s.NRows() {
		return nil
	}
	return c.s.Value(i)
}

// Float returns the value at row i as float64.
// Returns (value, ok) where ok is false if nil or not numeric.
func (c Col) Float(i int) (float64, bool) {
	return ToFloat(c.Value(i))
}

// String returns the value at row i rendered as text.
func (c Col) String(i int) string {
	return formatValue(c.Value(i))
}

// Floats returns the non-nil numeric values in row order.
func (c Col) Floats() []float64 {
	n := c.Len()
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if v, ok := c.Float(i); ok {
			out = append(out, v)
		}
	}
	return out
}

// Values returns all values in row order, nil included.
func (c Col) Values() []interface{} {
	n := c.Len()
	out := make([]interface{}, n)
	for i := 0; i < n; i++ {
		out[i] = c.s.Value(i)
	}
	return out
}

// Like returns a new series with the column's storage type holding vals
// under the given name.
func (c Col) Like(name string, vals []interface{}) dataframe.Series {
	return seriesLike(c.s, name, vals)
}

// Row is a view of a single Table row.
type Row struct {
	t *Table
	i int
}

// Index returns the row's position in its Table.
func (r Row) Index() int {
	return r.i
}

// Get returns the value of the named column, or nil when the column does
// not exist.
func (r Row) Get(name string) interface{} {
	c, ok := r.t.index[name]
	if !ok {
		return nil
	}
	return r.t.df.Series[c].Value(r.i)
}

// Float returns the named column's value as float64.
func (r Row) Float(name string) (float64, bool) {
	return ToFloat(r.Get(name))
}

// String returns the named column's value rendered as text.
func (r Row) String(name string) string {
	return formatValue(r.Get(name))
}

// Values returns the row's values in column order.
func (r Row) Values() []interface{} {
	out := make([]interface{}, len(r.t.df.Series))
	for c, s := range r.t.df.Series {
		out[c] = s.Value(r.i)
	}
	return out
}
