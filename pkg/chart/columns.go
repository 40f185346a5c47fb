package chart

import (
	"gonum.org/v1/plot/plotter"

	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/report"
)

// numeric returns the non-nil values of a numeric column.
func numeric(t *frame.Table, op, name string) (plotter.Values, error) {
	c, err := t.Col(name)
	if err != nil {
		return nil, &report.QueryError{Op: op, Column: name, Err: frame.ErrColumnNotFound}
	}
	if !c.Numeric() {
		return nil, &report.QueryError{Op: op, Column: name, Err: report.ErrNotNumeric}
	}
	return plotter.Values(c.Floats()), nil
}

// numericColumns resolves names, or every numeric column when names is
// empty.
func numericColumns(t *frame.Table, op string, names []string) ([]string, error) {
	if len(names) == 0 {
		for _, info := range t.Schema() {
			if info.Numeric {
				names = append(names, info.Name)
			}
		}
		return names, nil
	}
	for _, name := range names {
		if _, err := numeric(t, op, name); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// pairs returns the (x, y) points of the rows where both columns are
// non-nil.
func pairs(t *frame.Table, xName, yName string) plotter.XYs {
	xc, _ := t.Col(xName)
	yc, _ := t.Col(yName)
	pts := make(plotter.XYs, 0, t.NRows())
	for i := 0; i < t.NRows(); i++ {
		x, okx := xc.Float(i)
		y, oky := yc.Float(i)
		if okx && oky {
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
	}
	return pts
}
