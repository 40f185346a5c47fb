// Package report implements the descriptive queries run against a
// frame.Table: summaries, value counts, sorting, filtering, recoding,
// grouped aggregation, cross tabulation and pivot tables.
//
// Every function is pure. Inputs are never modified and each result is a
// new Table, Matrix or value. A query that selects no rows returns an
// empty result, not an error.
package report

import (
	"errors"
	"fmt"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Error definitions
var (
	ErrUnknownAggFunc   = errors.New("unknown aggregation function")
	ErrNotNumeric       = errors.New("column is not numeric")
	ErrInvalidGroupKeys = errors.New("invalid group keys")
	ErrInvalidNormalize = errors.New("invalid normalize option")
	ErrMixedMapping     = errors.New("mapping values have mixed types")
	ErrUnmappedValue    = errors.New("value has no mapping")
)

// QueryError reports a query that cannot be answered: a reference to a
// missing column, an unknown aggregation function or an invalid grouping.
type QueryError struct {
	Op     string
	Column string
	Err    error
}

func (e *QueryError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: column %q: %v", e.Op, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// RecodeError reports a value with no entry in a recode mapping.
type RecodeError struct {
	Column string
	Row    int
	Value  string
}

func (e *RecodeError) Error() string {
	return fmt.Sprintf("recode %s: row %d: no mapping for %q", e.Column, e.Row, e.Value)
}

func (e *RecodeError) Unwrap() error {
	return ErrUnmappedValue
}

// column looks up name in t, reporting a QueryError for op when missing.
func column(t *frame.Table, op, name string) (frame.Col, error) {
	c, err := t.Col(name)
	if err != nil {
		return frame.Col{}, &QueryError{Op: op, Column: name, Err: frame.ErrColumnNotFound}
	}
	return c, nil
}

// numericColumn is column restricted to int64 and float64 storage.
func numericColumn(t *frame.Table, op, name string) (frame.Col, error) {
	c, err := column(t, op, name)
	if err != nil {
		return c, err
	}
	if !c.Numeric() {
		return frame.Col{}, &QueryError{Op: op, Column: name, Err: ErrNotNumeric}
	}
	return c, nil
}
