package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Diagonal panels of a scatter matrix.
const (
	DiagonalKDE  = "kde"
	DiagonalHist = "hist"
)

// DefaultKDEPoints is the number of points a density curve is evaluated at.
const DefaultKDEPoints = 100

// ScatterOptions controls ScatterMatrix.
type ScatterOptions struct {
	Diagonal  string // DiagonalKDE (default) or DiagonalHist
	KDEPoints int
	Bins      int // histogram bins on the diagonal
}

// ScatterMatrix draws an n x n grid for n numeric columns. Cell (i, j)
// plots column j against column i; the diagonal shows each column's
// Gaussian kernel density estimate or histogram. With no columns named,
// every numeric column is used.
func ScatterMatrix(t *frame.Table, columns []string, opt ScatterOptions) (*Figure, error) {
	const op = "scatter_matrix"
	names, err := numericColumns(t, op, columns)
	if err != nil {
		return nil, err
	}
	switch opt.Diagonal {
	case "":
		opt.Diagonal = DiagonalKDE
	case DiagonalKDE, DiagonalHist:
	default:
		return nil, fmt.Errorf("%s: unknown diagonal %q", op, opt.Diagonal)
	}
	if len(names) == 0 {
		return newFigure(1, 1), nil
	}

	n := len(names)
	f := newFigure(n, n)
	for i, yName := range names {
		for j, xName := range names {
			p := plot.New()
			if i == n-1 {
				p.X.Label.Text = xName
			}
			if j == 0 {
				p.Y.Label.Text = yName
			}

			if i == j {
				vals, _ := numeric(t, op, xName)
				if err := addDiagonal(p, vals, opt); err != nil {
					return nil, err
				}
			} else if pts := pairs(t, xName, yName); len(pts) > 0 {
				s, err := plotter.NewScatter(pts)
				if err != nil {
					return nil, err
				}
				s.GlyphStyle.Radius = vg.Points(1.5)
				s.GlyphStyle.Shape = draw.CircleGlyph{}
				s.GlyphStyle.Color = plotutil.Color(0)
				p.Add(s)
			}
			f.Plots[i][j] = p
		}
	}
	return f, nil
}

func addDiagonal(p *plot.Plot, vals plotter.Values, opt ScatterOptions) error {
	if len(vals) == 0 {
		return nil
	}
	if opt.Diagonal == DiagonalHist {
		bins := opt.Bins
		if bins <= 0 {
			bins = DefaultBins
		}
		h, err := plotter.NewHist(vals, bins)
		if err != nil {
			return err
		}
		h.FillColor = plotutil.Color(0)
		p.Add(h)
		return nil
	}

	l, err := plotter.NewLine(KDE(vals, opt.KDEPoints))
	if err != nil {
		return err
	}
	l.LineStyle.Color = plotutil.Color(0)
	l.LineStyle.Width = vg.Points(1)
	p.Add(l)
	return nil
}

// KDE evaluates a Gaussian kernel density estimate of x at points evenly
// spaced from min(x) to max(x). The bandwidth follows Scott's rule,
// std(x) * n^(-1/5); a zero spread falls back to a bandwidth of 1 and a
// range of min-1 to max+1.
func KDE(x []float64, points int) plotter.XYs {
	if len(x) == 0 {
		return nil
	}
	if points < 2 {
		points = DefaultKDEPoints
	}

	lo, hi := floats.Min(x), floats.Max(x)
	bw := 0.0
	if len(x) > 1 {
		bw = stat.StdDev(x, nil) * math.Pow(float64(len(x)), -0.2)
	}
	if bw == 0 || math.IsNaN(bw) {
		bw = 1
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	grid := floats.Span(make([]float64, points), lo, hi)
	pts := make(plotter.XYs, points)
	kernel := distuv.Normal{Mu: 0, Sigma: bw}
	for i, at := range grid {
		sum := 0.0
		for _, xi := range x {
			sum += kernel.Prob(at - xi)
		}
		pts[i] = plotter.XY{X: at, Y: sum / float64(len(x))}
	}
	return pts
}
