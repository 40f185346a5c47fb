package bank

import (
	"github.com/akhildatla/bankeda/pkg/chart"
	"github.com/akhildatla/bankeda/pkg/frame"
)

// NamedFigure is a chart with the file stem it is saved under.
type NamedFigure struct {
	Name   string
	Figure *chart.Figure
}

// FigureOptions sizes the standard figures.
type FigureOptions struct {
	Width, Height float64 // inches; zero keeps the chart default
	Bins          int     // bins of the all-columns histogram grid
	KDEPoints     int
}

// Figures renders the standard set of charts: the scatter matrix of age,
// duration and campaign, the age histogram, a histogram of every numeric
// column, and age box plots by marital status, by marital status and
// housing loan, and by education.
func Figures(t *frame.Table, opt FigureOptions) ([]NamedFigure, error) {
	steps := []struct {
		name string
		fn   func() (*chart.Figure, error)
	}{
		{"scatter_matrix", func() (*chart.Figure, error) {
			return chart.ScatterMatrix(t, []string{"age", "duration", "campaign"}, chart.ScatterOptions{
				Diagonal:  chart.DiagonalKDE,
				KDEPoints: opt.KDEPoints,
			})
		}},
		{"age_hist", func() (*chart.Figure, error) {
			return chart.Histogram(t, "age", chart.HistOptions{Title: "Age distribution", XLabel: "Age"})
		}},
		{"hist_grid", func() (*chart.Figure, error) {
			return chart.HistogramGrid(t, nil, chart.HistOptions{Bins: opt.Bins})
		}},
		{"age_by_marital", func() (*chart.Figure, error) {
			return chart.BoxPlot(t, "age", []string{"marital"}, chart.BoxOptions{})
		}},
		{"age_by_marital_housing", func() (*chart.Figure, error) {
			return chart.BoxPlot(t, "age", []string{"marital", "housing"}, chart.BoxOptions{})
		}},
		{"age_by_education", func() (*chart.Figure, error) {
			return chart.BoxPlot(t, "age", []string{"education"}, chart.BoxOptions{})
		}},
	}

	out := make([]NamedFigure, 0, len(steps))
	for _, s := range steps {
		fig, err := s.fn()
		if err != nil {
			return nil, err
		}
		fig.SetSize(opt.Width, opt.Height)
		out = append(out, NamedFigure{Name: s.name, Figure: fig})
	}
	return out, nil
}
