package chart

import (
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/report"
)

// BoxOptions controls BoxPlot.
type BoxOptions struct {
	Title string    // defaults to the column name
	Width vg.Length // box width; defaults to 20pt
}

// BoxPlot draws the distribution of a numeric column, one box per
// distinct combination of the by columns in ascending order, labelled like
// "married, yes". With no by columns it draws a single box.
func BoxPlot(t *frame.Table, column string, by []string, opt BoxOptions) (*Figure, error) {
	const op = "boxplot"
	if _, err := numeric(t, op, column); err != nil {
		return nil, err
	}
	c, _ := t.Col(column)

	var groups []report.Group
	if len(by) == 0 {
		groups = []report.Group{{Keys: []interface{}{column}, Rows: allRows(t)}}
	} else {
		var err error
		groups, err = report.GroupBy(t, by...)
		if err != nil {
			return nil, err
		}
	}

	width := opt.Width
	if width <= 0 {
		width = vg.Points(20)
	}

	p := plot.New()
	p.Title.Text = opt.Title
	if p.Title.Text == "" {
		p.Title.Text = column
	}
	p.Y.Label.Text = column
	p.X.Label.Text = strings.Join(by, ", ")

	var labels []string
	for _, g := range groups {
		vals := make(plotter.Values, 0, len(g.Rows))
		for _, r := range g.Rows {
			if v, ok := c.Float(r); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(width, float64(len(labels)), vals)
		if err != nil {
			return nil, err
		}
		box.FillColor = plotutil.Color(len(labels))
		p.Add(box)
		labels = append(labels, g.Label())
	}
	if len(labels) > 0 {
		p.NominalX(labels...)
	}

	f := newFigure(1, 1)
	f.Plots[0][0] = p
	return f, nil
}

func allRows(t *frame.Table) []int {
	rows := make([]int, t.NRows())
	for i := range rows {
		rows[i] = i
	}
	return rows
}
