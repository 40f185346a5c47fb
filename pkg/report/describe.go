package report

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Include selects which columns Describe summarizes when no columns are
// named explicitly.
type Include uint8

const (
	IncludeNumeric Include = iota
	IncludeCategorical
	IncludeAll
)

// DescribeOptions controls Describe.
type DescribeOptions struct {
	// Columns to summarize, in order. Empty means every column matching
	// Include. A named column is always summarized according to its
	// storage type.
	Columns []string
	Include Include
}

// NumericStats summarizes a numeric column. Std is the sample standard
// deviation (n-1). Quartiles interpolate linearly between closest ranks.
type NumericStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategoricalStats summarizes a categorical column: the number of non-nil
// values, the number of distinct values, and the most frequent value with
// its count. Ties go to the value seen first.
type CategoricalStats struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
}

// Summary is the result of Describe.
type Summary struct {
	Numeric     []NumericStats
	Categorical []CategoricalStats
}

// NumericFor returns the stats of the named numeric column.
func (s *Summary) NumericFor(column string) (NumericStats, bool) {
	for _, n := range s.Numeric {
		if n.Column == column {
			return n, true
		}
	}
	return NumericStats{}, false
}

// CategoricalFor returns the stats of the named categorical column.
func (s *Summary) CategoricalFor(column string) (CategoricalStats, bool) {
	for _, c := range s.Categorical {
		if c.Column == column {
			return c, true
		}
	}
	return CategoricalStats{}, false
}

// Describe computes descriptive statistics for the columns of t.
func Describe(t *frame.Table, opt DescribeOptions) (*Summary, error) {
	names := opt.Columns
	explicit := len(names) > 0
	if !explicit {
		names = t.Names()
	}

	out := &Summary{}
	for _, name := range names {
		c, err := column(t, "describe", name)
		if err != nil {
			return nil, err
		}
		switch {
		case c.Numeric() && (explicit || opt.Include != IncludeCategorical):
			out.Numeric = append(out.Numeric, describeNumeric(c))
		case !c.Numeric() && (explicit || opt.Include != IncludeNumeric):
			out.Categorical = append(out.Categorical, describeCategorical(c))
		}
	}
	return out, nil
}

func describeNumeric(c frame.Col) NumericStats {
	x := c.Floats()
	s := NumericStats{Column: c.Name(), Count: len(x)}
	if len(x) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	sort.Float64s(x)
	s.Mean = stat.Mean(x, nil)
	if len(x) > 1 {
		s.Std = stat.StdDev(x, nil)
	} else {
		s.Std = math.NaN()
	}
	s.Min = x[0]
	s.Max = x[len(x)-1]
	s.Q25 = quantile(x, 0.25)
	s.Q50 = quantile(x, 0.50)
	s.Q75 = quantile(x, 0.75)
	return s
}

func describeCategorical(c frame.Col) CategoricalStats {
	counts := ValueCounts(c, false)
	s := CategoricalStats{Column: c.Name(), Count: counts.Total(), Unique: len(counts)}
	if len(counts) > 0 {
		s.Top = frame.FormatValue(counts[0].Value)
		s.Freq = counts[0].Count
	}
	return s
}
