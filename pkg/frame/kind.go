// Package frame provides the immutable columnar Table used throughout bankeda.
//
// A Table wraps a dataframe-go DataFrame and never hands the underlying
// series out without copying them first. Every operation that changes
// shape or content returns a new Table.
//
//	t, err := frame.New(
//	    frame.NewInt("age", []int64{30, 41}),
//	    frame.NewCategorical("marital", []string{"single", "married"}),
//	)
//	ages, _ := t.Col("age")
//	fmt.Println(ages.Floats())
package frame

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrColumnNotFound = errors.New("column not found")
	ErrDuplicateName  = errors.New("duplicate column name")
	ErrLengthMismatch = errors.New("column length mismatch")
)

// Kind is the declared type of a column.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInt
	KindReal
	KindCategorical
	KindBinary
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindCategorical:
		return "categorical"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// ParseKind parses the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "int", "integer", "int64":
		return KindInt, nil
	case "real", "float", "float64":
		return KindReal, nil
	case "categorical", "string", "category":
		return KindCategorical, nil
	case "binary", "bool":
		return KindBinary, nil
	}
	return KindUnknown, fmt.Errorf("unknown column kind %q", s)
}

// ColumnInfo describes one column of a Table.
type ColumnInfo struct {
	Name    string
	Kind    Kind
	Numeric bool // stored as int64 or float64
}
