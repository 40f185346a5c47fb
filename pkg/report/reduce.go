package report

import (
	"math"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// ColumnValue is a per-column scalar result.
type ColumnValue struct {
	Column string
	Value  interface{}
}

// Reduce applies fn to every column of t, in column order. Max and min
// also apply to categorical columns, comparing lexically. Count applies to
// every column. Columns fn cannot aggregate are skipped.
func Reduce(t *frame.Table, fn AggFunc) ([]ColumnValue, error) {
	const op = "reduce"
	if !fn.Valid() {
		return nil, &QueryError{Op: op, Err: unknownAgg(string(fn))}
	}

	rows := allRows(t)
	var out []ColumnValue
	for _, name := range t.Names() {
		c, _ := t.Col(name)
		switch {
		case fn == AggCount || c.Numeric():
			v, err := aggregate(op, fn, c, rows)
			if err != nil {
				return nil, err
			}
			out = append(out, ColumnValue{Column: name, Value: v})
		case fn == AggMax || fn == AggMin:
			if v, ok := extremeString(c, fn == AggMax); ok {
				out = append(out, ColumnValue{Column: name, Value: v})
			}
		}
	}
	return out, nil
}

func extremeString(c frame.Col, largest bool) (string, bool) {
	var best string
	found := false
	for i := 0; i < c.Len(); i++ {
		if c.Value(i) == nil {
			continue
		}
		s := c.String(i)
		if !found || (largest && s > best) || (!largest && s < best) {
			best = s
			found = true
		}
	}
	return best, found
}

// Mean returns the arithmetic mean of a numeric column. An empty column
// yields NaN.
func Mean(t *frame.Table, name string) (float64, error) {
	c, err := numericColumn(t, "mean", name)
	if err != nil {
		return math.NaN(), err
	}
	return reduceFloats(AggMean, c.Floats()), nil
}

// ColumnMeans returns the mean of every numeric column of t.
func ColumnMeans(t *frame.Table) []ColumnValue {
	var out []ColumnValue
	for _, info := range t.Schema() {
		if !info.Numeric {
			continue
		}
		c, _ := t.Col(info.Name)
		out = append(out, ColumnValue{Column: info.Name, Value: reduceFloats(AggMean, c.Floats())})
	}
	return out
}

// Head returns the first n rows of t.
func Head(t *frame.Table, n int) *frame.Table {
	return t.Head(n)
}

// Select returns the named columns of t, in the given order.
func Select(t *frame.Table, names ...string) (*frame.Table, error) {
	for _, name := range names {
		if _, err := column(t, "select", name); err != nil {
			return nil, err
		}
	}
	return t.Select(names...)
}

func allRows(t *frame.Table) []int {
	rows := make([]int, t.NRows())
	for i := range rows {
		rows[i] = i
	}
	return rows
}
