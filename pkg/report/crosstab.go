package report

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Normalize selects how CrossTab scales its counts.
type Normalize string

const (
	NormalizeNone    Normalize = ""
	NormalizeIndex   Normalize = "index"   // each row sums to 1
	NormalizeColumns Normalize = "columns" // each column sums to 1
	NormalizeAll     Normalize = "all"     // all cells sum to 1
)

// ParseNormalize accepts "", "none", "index", "columns" and "all".
func ParseNormalize(s string) (Normalize, error) {
	switch n := Normalize(strings.ToLower(s)); n {
	case "none":
		return NormalizeNone, nil
	case NormalizeNone, NormalizeIndex, NormalizeColumns, NormalizeAll:
		return n, nil
	}
	return "", &QueryError{Op: "crosstab", Err: fmt.Errorf("%w %q", ErrInvalidNormalize, s)}
}

// MarginLabel names the totals row and column added by Margins.
const MarginLabel = "All"

// Matrix is a cross tabulation: Data.At(i, j) holds the count (or share)
// of rows with RowLabels[i] in RowName and ColLabels[j] in ColName.
// Labels are in ascending value order. Data is nil when either dimension
// is empty.
type Matrix struct {
	RowName   string
	ColName   string
	RowLabels []string
	ColLabels []string
	Data      *mat.Dense
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (int, int) {
	return len(m.RowLabels), len(m.ColLabels)
}

// At returns the cell at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.Data.At(i, j)
}

// Value returns the cell for the given labels, or 0 when either label is
// absent.
func (m *Matrix) Value(row, col string) float64 {
	i, j := indexOf(m.RowLabels, row), indexOf(m.ColLabels, col)
	if i < 0 || j < 0 {
		return 0
	}
	return m.Data.At(i, j)
}

// RowSum returns the sum of row i.
func (m *Matrix) RowSum(i int) float64 {
	return mat.Sum(m.Data.RowView(i))
}

// ColSum returns the sum of column j.
func (m *Matrix) ColSum(j int) float64 {
	return mat.Sum(m.Data.ColView(j))
}

// Total returns the sum of every cell.
func (m *Matrix) Total() float64 {
	if m.Data == nil {
		return 0
	}
	return mat.Sum(m.Data)
}

// Margins returns a copy of m with a totals row and column labelled
// MarginLabel appended.
func (m *Matrix) Margins() *Matrix {
	r, c := m.Dims()
	out := &Matrix{
		RowName:   m.RowName,
		ColName:   m.ColName,
		RowLabels: append(append([]string(nil), m.RowLabels...), MarginLabel),
		ColLabels: append(append([]string(nil), m.ColLabels...), MarginLabel),
		Data:      mat.NewDense(r+1, c+1, nil),
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.Data.At(i, j)
			out.Data.Set(i, j, v)
			out.Data.Set(i, c, out.Data.At(i, c)+v)
			out.Data.Set(r, j, out.Data.At(r, j)+v)
		}
	}
	out.Data.Set(r, c, m.Total())
	return out
}

// CrossTab counts co-occurrences of the values of rowColumn and colColumn.
// Rows with a nil value in either column are skipped.
func CrossTab(t *frame.Table, rowColumn, colColumn string, norm Normalize) (*Matrix, error) {
	const op = "crosstab"
	switch norm {
	case NormalizeNone, NormalizeIndex, NormalizeColumns, NormalizeAll:
	default:
		return nil, &QueryError{Op: op, Err: fmt.Errorf("%w %q", ErrInvalidNormalize, string(norm))}
	}
	rc, err := column(t, op, rowColumn)
	if err != nil {
		return nil, err
	}
	cc, err := column(t, op, colColumn)
	if err != nil {
		return nil, err
	}

	rowVals := distinctSorted(rc)
	colVals := distinctSorted(cc)
	m := &Matrix{
		RowName:   rowColumn,
		ColName:   colColumn,
		RowLabels: labels(rowVals),
		ColLabels: labels(colVals),
	}
	if len(rowVals) == 0 || len(colVals) == 0 {
		m.RowLabels, m.ColLabels = nil, nil
		return m, nil
	}

	ri := positions(m.RowLabels)
	ci := positions(m.ColLabels)
	m.Data = mat.NewDense(len(rowVals), len(colVals), nil)
	for row := 0; row < t.NRows(); row++ {
		a, b := rc.Value(row), cc.Value(row)
		if a == nil || b == nil {
			continue
		}
		i, j := ri[frame.FormatValue(a)], ci[frame.FormatValue(b)]
		m.Data.Set(i, j, m.Data.At(i, j)+1)
	}

	normalize(m, norm)
	return m, nil
}

func normalize(m *Matrix, norm Normalize) {
	r, c := m.Dims()
	switch norm {
	case NormalizeIndex:
		for i := 0; i < r; i++ {
			if s := m.RowSum(i); s != 0 {
				row := m.Data.RowView(i).(*mat.VecDense)
				row.ScaleVec(1/s, row)
			}
		}
	case NormalizeColumns:
		for j := 0; j < c; j++ {
			if s := m.ColSum(j); s != 0 {
				col := m.Data.ColView(j).(*mat.VecDense)
				col.ScaleVec(1/s, col)
			}
		}
	case NormalizeAll:
		if s := m.Total(); s != 0 {
			m.Data.Scale(1/s, m.Data)
		}
	}
}

func distinctSorted(c frame.Col) []interface{} {
	counts := ValueCounts(c, false)
	vals := make([]interface{}, len(counts))
	for i, cnt := range counts {
		vals[i] = cnt.Value
	}
	sort.SliceStable(vals, func(i, j int) bool {
		return frame.Compare(vals[i], vals[j]) < 0
	})
	return vals
}

func labels(vals []interface{}) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = frame.FormatValue(v)
	}
	return out
}

func positions(labels []string) map[string]int {
	out := make(map[string]int, len(labels))
	for i, l := range labels {
		out[l] = i
	}
	return out
}

func indexOf(labels []string, s string) int {
	for i, l := range labels {
		if l == s {
			return i
		}
	}
	return -1
}
