package report

import (
	"fmt"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// PivotColumn labels one aggregated column of a PivotTable.
type PivotColumn struct {
	Agg   AggFunc
	Value string
}

// Name is the series name used for the column, e.g. "mean(age)".
func (c PivotColumn) Name() string {
	return fmt.Sprintf("%s(%s)", c.Agg, c.Value)
}

// PivotTable is a grouped table with one column per (aggregation, value)
// pair. Table holds the index key columns first, then the aggregated
// columns in the order of Columns.
type PivotTable struct {
	Table   *frame.Table
	Index   []string
	Columns []PivotColumn
}

// Column returns the aggregated column for agg over value.
func (p *PivotTable) Column(agg AggFunc, value string) (frame.Col, error) {
	return p.Table.Col(PivotColumn{Agg: agg, Value: value}.Name())
}

// Pivot groups t by indexKeys and applies each of aggFns to each of values.
// Columns are ordered aggregation first:
// mean(age), mean(campaign), count(age), count(campaign).
// With no values named, every non-key column the functions can aggregate
// is used.
func Pivot(t *frame.Table, values, indexKeys []string, aggFns []AggFunc) (*PivotTable, error) {
	const op = "pivot"
	if len(aggFns) == 0 {
		return nil, &QueryError{Op: op, Err: fmt.Errorf("%w: none given", ErrUnknownAggFunc)}
	}
	for _, fn := range aggFns {
		if !fn.Valid() {
			return nil, &QueryError{Op: op, Err: unknownAgg(string(fn))}
		}
	}
	kcols, err := keyColumns(t, op, indexKeys, values)
	if err != nil {
		return nil, err
	}
	vcols, err := valueColumns(t, op, values, indexKeys, aggFns)
	if err != nil {
		return nil, err
	}

	groups := partition(t, kcols)
	series, kinds := keySeries(kcols, groups)
	out := &PivotTable{Index: append([]string(nil), indexKeys...)}
	for _, fn := range aggFns {
		for _, c := range vcols {
			pc := PivotColumn{Agg: fn, Value: c.Name()}
			s, err := aggSeries(op, fn, c, pc.Name(), groups)
			if err != nil {
				return nil, err
			}
			series = append(series, s)
			out.Columns = append(out.Columns, pc)
		}
	}

	out.Table, err = frame.NewWithKinds(kinds, series...)
	if err != nil {
		return nil, &QueryError{Op: op, Err: err}
	}
	return out, nil
}
