package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// DefaultBins is the histogram bin count used when HistOptions.Bins is
// not positive.
const DefaultBins = 10

// HistOptions controls Histogram and HistogramGrid.
// Title defaults to the column name and Color to the first plotutil color.
type HistOptions struct {
	Bins   int
	Title  string
	XLabel string
	Color  color.Color
}

func (o HistOptions) bins() int {
	if o.Bins <= 0 {
		return DefaultBins
	}
	return o.Bins
}

func (o HistOptions) fill() color.Color {
	if o.Color == nil {
		return plotutil.Color(0)
	}
	return o.Color
}

// Histogram plots the distribution of one numeric column.
func Histogram(t *frame.Table, column string, opt HistOptions) (*Figure, error) {
	vals, err := numeric(t, "histogram", column)
	if err != nil {
		return nil, err
	}
	if opt.Title == "" {
		opt.Title = column
	}
	p, err := histPlot(vals, opt)
	if err != nil {
		return nil, err
	}
	f := newFigure(1, 1)
	f.Plots[0][0] = p
	return f, nil
}

// HistogramGrid plots one histogram per column in a near-square grid.
// With no columns named, every numeric column is plotted.
func HistogramGrid(t *frame.Table, columns []string, opt HistOptions) (*Figure, error) {
	names, err := numericColumns(t, "histogram", columns)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return newFigure(1, 1), nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(names)))))
	rows := (len(names) + cols - 1) / cols
	f := newFigure(rows, cols)
	for i, name := range names {
		vals, _ := numeric(t, "histogram", name)
		cell := opt
		cell.Title = name
		cell.XLabel = ""
		p, err := histPlot(vals, cell)
		if err != nil {
			return nil, err
		}
		f.Plots[i/cols][i%cols] = p
	}
	return f, nil
}

func histPlot(vals plotter.Values, opt HistOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = opt.XLabel
	p.Y.Label.Text = "count"
	if len(vals) == 0 {
		return p, nil
	}

	h, err := plotter.NewHist(vals, opt.bins())
	if err != nil {
		return nil, err
	}
	h.FillColor = opt.fill()
	p.Add(h)
	return p, nil
}
