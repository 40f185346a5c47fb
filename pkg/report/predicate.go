package report

import (
	"github.com/akhildatla/bankeda/pkg/frame"
)

// Matcher reports whether the row at a position satisfies a predicate.
type Matcher func(row int) bool

// Predicate selects rows. Bind resolves column references against t and
// fails with a QueryError when a column does not exist.
type Predicate interface {
	Bind(t *frame.Table) (Matcher, error)
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc func(t *frame.Table) (Matcher, error)

// Bind calls f(t).
func (f PredicateFunc) Bind(t *frame.Table) (Matcher, error) {
	return f(t)
}

// compareWith builds a predicate over one column that keeps rows whose
// non-nil value compared with v satisfies ok.
func compareWith(name string, v interface{}, ok func(cmp int) bool) Predicate {
	return PredicateFunc(func(t *frame.Table) (Matcher, error) {
		c, err := column(t, "filter", name)
		if err != nil {
			return nil, err
		}
		return func(row int) bool {
			cell := c.Value(row)
			if cell == nil {
				return false
			}
			return ok(frame.Compare(cell, normalizeLiteral(v)))
		}, nil
	})
}

// normalizeLiteral widens Go literals to the cell types a Table stores.
func normalizeLiteral(v interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

// Eq keeps rows where column equals v.
func Eq(column string, v interface{}) Predicate {
	return compareWith(column, v, func(c int) bool { return c == 0 })
}

// Ne keeps rows where column differs from v.
func Ne(column string, v interface{}) Predicate {
	return compareWith(column, v, func(c int) bool { return c != 0 })
}

// Lt keeps rows where column is less than v.
func Lt(column string, v interface{}) Predicate {
	return compareWith(column, v, func(c int) bool { return c < 0 })
}

// Le keeps rows where column is at most v.
func Le(column string, v interface{}) Predicate {
	return compareWith(column, v, func(c int) bool { return c <= 0 })
}

// Gt keeps rows where column is greater than v.
func Gt(column string, v interface{}) Predicate {
	return compareWith(column, v, func(c int) bool { return c > 0 })
}

// Ge keeps rows where column is at least v.
func Ge(column string, v interface{}) Predicate {
	return compareWith(column, v, func(c int) bool { return c >= 0 })
}

// In keeps rows where column equals any of vs.
func In(name string, vs ...interface{}) Predicate {
	return PredicateFunc(func(t *frame.Table) (Matcher, error) {
		c, err := column(t, "filter", name)
		if err != nil {
			return nil, err
		}
		return func(row int) bool {
			cell := c.Value(row)
			for _, v := range vs {
				if cell != nil && frame.Equal(cell, normalizeLiteral(v)) {
					return true
				}
			}
			return false
		}, nil
	})
}

// And keeps rows matched by every p. And() matches all rows.
func And(ps ...Predicate) Predicate {
	return PredicateFunc(func(t *frame.Table) (Matcher, error) {
		ms, err := bindAll(t, ps)
		if err != nil {
			return nil, err
		}
		return func(row int) bool {
			for _, m := range ms {
				if !m(row) {
					return false
				}
			}
			return true
		}, nil
	})
}

// Or keeps rows matched by any p. Or() matches no rows.
func Or(ps ...Predicate) Predicate {
	return PredicateFunc(func(t *frame.Table) (Matcher, error) {
		ms, err := bindAll(t, ps)
		if err != nil {
			return nil, err
		}
		return func(row int) bool {
			for _, m := range ms {
				if m(row) {
					return true
				}
			}
			return false
		}, nil
	})
}

// Not keeps rows p does not match.
func Not(p Predicate) Predicate {
	return PredicateFunc(func(t *frame.Table) (Matcher, error) {
		m, err := p.Bind(t)
		if err != nil {
			return nil, err
		}
		return func(row int) bool { return !m(row) }, nil
	})
}

// Where keeps rows for which fn returns true.
func Where(fn func(r frame.Row) bool) Predicate {
	return PredicateFunc(func(t *frame.Table) (Matcher, error) {
		return func(row int) bool { return fn(t.Row(row)) }, nil
	})
}

// All matches every row.
func All() Predicate {
	return And()
}

func bindAll(t *frame.Table, ps []Predicate) ([]Matcher, error) {
	ms := make([]Matcher, len(ps))
	for i, p := range ps {
		m, err := p.Bind(t)
		if err != nil {
			return nil, err
		}
		ms[i] = m
	}
	return ms, nil
}
