package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// AggFunc names an aggregation applied to the values of one column.
type AggFunc string

const (
	AggMean   AggFunc = "mean"
	AggCount  AggFunc = "count"
	AggMax    AggFunc = "max"
	AggMin    AggFunc = "min"
	AggSum    AggFunc = "sum"
	AggMedian AggFunc = "median"
	AggStd    AggFunc = "std"
)

// AggFuncs lists every supported aggregation function.
var AggFuncs = []AggFunc{AggMean, AggCount, AggMax, AggMin, AggSum, AggMedian, AggStd}

// ParseAggFunc resolves a function name, case-insensitively. "avg" is
// accepted for mean.
func ParseAggFunc(s string) (AggFunc, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "avg" {
		return AggMean, nil
	}
	f := AggFunc(name)
	if !f.Valid() {
		return "", &QueryError{Op: "aggregate", Err: unknownAgg(s)}
	}
	return f, nil
}

// Valid reports whether f is a supported function.
func (f AggFunc) Valid() bool {
	for _, g := range AggFuncs {
		if f == g {
			return true
		}
	}
	return false
}

func unknownAgg(name string) error {
	return fmt.Errorf("%w %q", ErrUnknownAggFunc, name)
}

// aggregate applies f to the values of c at rows. Count yields int64, every
// other function float64. Only count accepts a non-numeric column.
func aggregate(op string, f AggFunc, c frame.Col, rows []int) (interface{}, error) {
	if f == AggCount {
		var n int64
		for _, r := range rows {
			if c.Value(r) != nil {
				n++
			}
		}
		return n, nil
	}
	if !c.Numeric() {
		return nil, &QueryError{Op: op, Column: c.Name(), Err: ErrNotNumeric}
	}
	x := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := c.Float(r); ok {
			x = append(x, v)
		}
	}
	return reduceFloats(f, x), nil
}

// reduceFloats applies a numeric aggregation to x. Empty input yields NaN,
// except sum which yields 0.
func reduceFloats(f AggFunc, x []float64) float64 {
	if len(x) == 0 {
		if f == AggSum {
			return 0
		}
		return math.NaN()
	}
	switch f {
	case AggMean:
		return stat.Mean(x, nil)
	case AggSum:
		return floats.Sum(x)
	case AggMax:
		return floats.Max(x)
	case AggMin:
		return floats.Min(x)
	case AggStd:
		if len(x) < 2 {
			return math.NaN()
		}
		return stat.StdDev(x, nil)
	case AggMedian:
		sorted := append([]float64(nil), x...)
		sort.Float64s(sorted)
		return quantile(sorted, 0.5)
	case AggCount:
		return float64(len(x))
	}
	return math.NaN()
}

// quantile returns the p-quantile of sorted data, interpolating linearly
// between the closest ranks: position (n-1)*p.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
