package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// SortKey orders rows by one column.
type SortKey struct {
	Column string
	Desc   bool
}

// Asc and Desc build sort keys.
func Asc(column string) SortKey  { return SortKey{Column: column} }
func Desc(column string) SortKey { return SortKey{Column: column, Desc: true} }

// ParseSortKey parses "column", "column:asc" or "column:desc".
func ParseSortKey(s string) (SortKey, error) {
	name, dir, found := strings.Cut(s, ":")
	if !found {
		return SortKey{Column: s}, nil
	}
	switch strings.ToLower(dir) {
	case "asc", "":
		return SortKey{Column: name}, nil
	case "desc":
		return SortKey{Column: name, Desc: true}, nil
	}
	return SortKey{}, &QueryError{Op: "sort", Column: name, Err: fmt.Errorf("invalid sort direction %q", dir)}
}

// SortBy orders the rows of t by keys, first key most significant.
// The sort is stable: rows with equal keys keep their original order.
// Numbers compare numerically and strings lexically.
func SortBy(t *frame.Table, keys ...SortKey) (*frame.Table, error) {
	cols := make([]frame.Col, len(keys))
	for i, k := range keys {
		c, err := column(t, "sort", k.Column)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	rows := make([]int, t.NRows())
	for i := range rows {
		rows[i] = i
	}
	sort.SliceStable(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		for i, c := range cols {
			cmp := frame.Compare(c.Value(ra), c.Value(rb))
			if cmp == 0 {
				continue
			}
			if keys[i].Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return t.Take(rows), nil
}
