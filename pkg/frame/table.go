package frame

import (
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Table is an immutable, ordered set of equally long named columns.
type Table struct {
	df    *dataframe.DataFrame
	index map[string]int
	kinds []Kind
	nrows int
}

// New builds a Table from series. All series must have the same length and
// distinct names. The Table takes ownership of the series; callers must not
// modify them afterwards.
func New(series ...dataframe.Series) (*Table, error) {
	return build(series, nil)
}

// NewWithKinds is New with declared kinds overriding inference for the
// named columns.
func NewWithKinds(kinds map[string]Kind, series ...dataframe.Series) (*Table, error) {
	return build(series, kinds)
}

// FromDataFrame copies df into a new Table. Series types other than int64,
// float64 and string are converted to string.
func FromDataFrame(df *dataframe.DataFrame, kinds map[string]Kind) (*Table, error) {
	if df == nil {
		return build(nil, kinds)
	}
	series := make([]dataframe.Series, len(df.Series))
	for i, s := range df.Series {
		series[i] = s.Copy()
	}
	return build(series, kinds)
}

func build(series []dataframe.Series, declared map[string]Kind) (*Table, error) {
	t := &Table{
		index: make(map[string]int, len(series)),
		kinds: make([]Kind, len(series)),
	}
	normalized := make([]dataframe.Series, len(series))
	for i, s := range series {
		name := s.Name()
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		if i == 0 {
			t.nrows = s.NRows()
		} else if s.NRows() != t.nrows {
			return nil, fmt.Errorf("%w: %s has %d rows, expected %d", ErrLengthMismatch, name, s.NRows(), t.nrows)
		}
		t.index[name] = i
		normalized[i] = normalizeSeries(s)
		if k, ok := declared[name]; ok && k != KindUnknown {
			t.kinds[i] = k
		} else {
			t.kinds[i] = inferKind(normalized[i])
		}
	}
	t.df = dataframe.NewDataFrame(normalized...)
	return t, nil
}

// NRows returns the number of rows.
func (t *Table) NRows() int {
	return t.nrows
}

// NCols returns the number of columns.
func (t *Table) NCols() int {
	return len(t.df.Series)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.df.Series))
	for i, s := range t.df.Series {
		names[i] = s.Name()
	}
	return names
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Schema returns the column descriptions in order.
func (t *Table) Schema() []ColumnInfo {
	out := make([]ColumnInfo, len(t.df.Series))
	for i, s := range t.df.Series {
		out[i] = ColumnInfo{Name: s.Name(), Kind: t.kinds[i], Numeric: isNumericSeries(s)}
	}
	return out
}

// Col returns a read-only accessor for the named column.
func (t *Table) Col(name string) (Col, error) {
	i, ok := t.index[name]
	if !ok {
		return Col{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return Col{s: t.df.Series[i], kind: t.kinds[i]}, nil
}

// Column returns a copy of the named column's series.
func (t *Table) Column(name string) (dataframe.Series, error) {
	c, err := t.Col(name)
	if err != nil {
		return nil, err
	}
	return c.s.Copy(), nil
}

// Row returns a view of row i.
func (t *Table) Row(i int) Row {
	return Row{t: t, i: i}
}

// DataFrame returns a copy of the underlying dataframe.
func (t *Table) DataFrame() *dataframe.DataFrame {
	series := make([]dataframe.Series, len(t.df.Series))
	for i, s := range t.df.Series {
		series[i] = s.Copy()
	}
	return dataframe.NewDataFrame(series...)
}

// Take returns a new Table holding the rows at the given positions, in
// that order. Positions may repeat.
func (t *Table) Take(rows []int) *Table {
	out := &Table{
		index: t.index,
		kinds: t.kinds,
		nrows: len(rows),
	}
	series := make([]dataframe.Series, len(t.df.Series))
	for c, s := range t.df.Series {
		vals := make([]interface{}, len(rows))
		for i, r := range rows {
			vals[i] = s.Value(r)
		}
		series[c] = seriesLike(s, s.Name(), vals)
	}
	out.df = dataframe.NewDataFrame(series...)
	return out
}

// Filter returns a new Table holding the rows selected by mask, in their
// original order.
func (t *Table) Filter(mask *Mask) *Table {
	return t.Take(mask.Indices())
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	if n > t.nrows {
		n = t.nrows
	}
	if n < 0 {
		n = 0
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return t.Take(rows)
}

// Select returns a new Table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	series := make([]dataframe.Series, 0, len(names))
	kinds := make(map[string]Kind, len(names))
	for _, name := range names {
		i, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		series = append(series, t.df.Series[i])
		kinds[name] = t.kinds[i]
	}
	return build(series, kinds)
}

// WithColumn returns a new Table in which s replaces the column of the same
// name, or is appended when no such column exists. The column kind is
// inferred from s.
func (t *Table) WithColumn(s dataframe.Series) (*Table, error) {
	series := make([]dataframe.Series, 0, len(t.df.Series)+1)
	kinds := make(map[string]Kind, len(t.df.Series))
	replaced := false
	for i, existing := range t.df.Series {
		if existing.Name() == s.Name() {
			series = append(series, s)
			replaced = true
			continue
		}
		series = append(series, existing)
		kinds[existing.Name()] = t.kinds[i]
	}
	if !replaced {
		series = append(series, s)
	}
	return build(series, kinds)
}
