package report

import (
	"fmt"
	"sort"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Group is one partition of a table by a key tuple.
type Group struct {
	Keys []interface{} // one value per key column
	Rows []int         // row positions, ascending
}

// Label joins the key values with ", ", e.g. "married, yes".
func (g Group) Label() string {
	parts := make([]string, len(g.Keys))
	for i, k := range g.Keys {
		parts[i] = frame.FormatValue(k)
	}
	return strings.Join(parts, ", ")
}

// GroupBy partitions the rows of t by the tuple of values in keys. Groups
// are ordered by ascending key tuple.
func GroupBy(t *frame.Table, keys ...string) ([]Group, error) {
	cols, err := keyColumns(t, "group_by", keys, nil)
	if err != nil {
		return nil, err
	}
	return partition(t, cols), nil
}

func partition(t *frame.Table, cols []frame.Col) []Group {
	index := make(map[string]int)
	var groups []Group
	var sb strings.Builder
	for row := 0; row < t.NRows(); row++ {
		sb.Reset()
		keys := make([]interface{}, len(cols))
		for i, c := range cols {
			keys[i] = c.Value(row)
			sb.WriteString(frame.FormatValue(keys[i]))
			sb.WriteByte(0x1f)
		}
		id := sb.String()
		at, ok := index[id]
		if !ok {
			at = len(groups)
			index[id] = at
			groups = append(groups, Group{Keys: keys})
		}
		groups[at].Rows = append(groups[at].Rows, row)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return frame.CompareTuples(groups[i].Keys, groups[j].Keys) < 0
	})
	return groups
}

// keyColumns resolves and validates grouping keys. Keys must be non-empty
// and distinct, and none may appear among values.
func keyColumns(t *frame.Table, op string, keys, values []string) ([]frame.Col, error) {
	if len(keys) == 0 {
		return nil, &QueryError{Op: op, Err: fmt.Errorf("%w: no keys", ErrInvalidGroupKeys)}
	}
	seen := make(map[string]bool, len(keys))
	cols := make([]frame.Col, len(keys))
	for i, k := range keys {
		if seen[k] {
			return nil, &QueryError{Op: op, Column: k, Err: fmt.Errorf("%w: duplicate key", ErrInvalidGroupKeys)}
		}
		seen[k] = true
		c, err := column(t, op, k)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	for _, v := range values {
		if seen[v] {
			return nil, &QueryError{Op: op, Column: v, Err: fmt.Errorf("%w: key used as value", ErrInvalidGroupKeys)}
		}
	}
	return cols, nil
}

// valueColumns resolves the columns to aggregate. With none named, every
// non-key column fn can aggregate is used.
func valueColumns(t *frame.Table, op string, names, keys []string, fns []AggFunc) ([]frame.Col, error) {
	if len(names) == 0 {
		isKey := make(map[string]bool, len(keys))
		for _, k := range keys {
			isKey[k] = true
		}
		countOnly := true
		for _, f := range fns {
			if f != AggCount {
				countOnly = false
			}
		}
		for _, info := range t.Schema() {
			if !isKey[info.Name] && (info.Numeric || countOnly) {
				names = append(names, info.Name)
			}
		}
	}

	cols := make([]frame.Col, len(names))
	for i, name := range names {
		c, err := column(t, op, name)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

// GroupAggregate partitions t by keys and applies fn to each value column
// within each partition. The result has one row per distinct key tuple in
// ascending key order, key columns first. Value columns keep their names;
// count yields int64 columns and every other function float64.
// With no value columns named, every non-key numeric column is used
// (every non-key column for count).
func GroupAggregate(t *frame.Table, keys, values []string, fn AggFunc) (*frame.Table, error) {
	const op = "group_aggregate"
	if !fn.Valid() {
		return nil, &QueryError{Op: op, Err: unknownAgg(string(fn))}
	}
	kcols, err := keyColumns(t, op, keys, values)
	if err != nil {
		return nil, err
	}
	vcols, err := valueColumns(t, op, values, keys, []AggFunc{fn})
	if err != nil {
		return nil, err
	}

	groups := partition(t, kcols)
	series, kinds := keySeries(kcols, groups)
	for _, c := range vcols {
		s, err := aggSeries(op, fn, c, c.Name(), groups)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return frame.NewWithKinds(kinds, series...)
}

// keySeries builds one series per key column holding each group's key
// value, preserving the key columns' storage types and kinds.
func keySeries(kcols []frame.Col, groups []Group) ([]dataframe.Series, map[string]frame.Kind) {
	series := make([]dataframe.Series, len(kcols))
	kinds := make(map[string]frame.Kind, len(kcols))
	for i, c := range kcols {
		vals := make([]interface{}, len(groups))
		for g := range groups {
			vals[g] = groups[g].Keys[i]
		}
		series[i] = c.Like(c.Name(), vals)
		kinds[c.Name()] = c.Kind()
	}
	return series, kinds
}

func aggSeries(op string, fn AggFunc, c frame.Col, name string, groups []Group) (dataframe.Series, error) {
	vals := make([]interface{}, len(groups))
	for g := range groups {
		v, err := aggregate(op, fn, c, groups[g].Rows)
		if err != nil {
			return nil, err
		}
		vals[g] = v
	}
	if fn == AggCount {
		return dataframe.NewSeriesInt64(name, nil, vals...), nil
	}
	return dataframe.NewSeriesFloat64(name, nil, vals...), nil
}
