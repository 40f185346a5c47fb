package report

import (
	"sort"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Count is one entry of a value count.
type Count struct {
	Value interface{}
	Count int
	Freq  float64 // Count / total; only set when normalized
}

// Counts is an ordered value count: descending by count, ties in the order
// the values first appear in the column.
type Counts []Count

// Total returns the sum of all counts.
func (cs Counts) Total() int {
	n := 0
	for _, c := range cs {
		n += c.Count
	}
	return n
}

// Lookup finds the entry whose value renders as v.
func (cs Counts) Lookup(v string) (Count, bool) {
	for _, c := range cs {
		if frame.FormatValue(c.Value) == v {
			return c, true
		}
	}
	return Count{}, false
}

// ValueCounts counts the distinct non-nil values of c. With normalize set
// each entry also carries its share of the total, and the shares of a
// non-empty column sum to 1.
func ValueCounts(c frame.Col, normalize bool) Counts {
	index := make(map[interface{}]int)
	var out Counts
	for i := 0; i < c.Len(); i++ {
		v := c.Value(i)
		if v == nil {
			continue
		}
		if at, ok := index[v]; ok {
			out[at].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if normalize {
		total := float64(out.Total())
		for i := range out {
			out[i].Freq = float64(out[i].Count) / total
		}
	}
	return out
}

// CountColumn is ValueCounts over the named column of t.
func CountColumn(t *frame.Table, name string, normalize bool) (Counts, error) {
	c, err := column(t, "value_counts", name)
	if err != nil {
		return nil, err
	}
	return ValueCounts(c, normalize), nil
}
