package report

import (
	"github.com/akhildatla/bankeda/pkg/frame"
)

// Filter returns the rows of t matched by p, in their original order.
func Filter(t *frame.Table, p Predicate) (*frame.Table, error) {
	mask, err := Mask(t, p)
	if err != nil {
		return nil, err
	}
	return t.Filter(mask), nil
}

// Mask evaluates p over every row of t.
func Mask(t *frame.Table, p Predicate) (*frame.Mask, error) {
	m, err := p.Bind(t)
	if err != nil {
		return nil, err
	}
	mask := frame.NewMask(t.NRows())
	for i := 0; i < t.NRows(); i++ {
		if m(i) {
			mask.Set(i)
		}
	}
	return mask, nil
}
