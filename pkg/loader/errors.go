// Package loader reads delimited text, JSON and Parquet files into a
// frame.Table.
//
// Column types are inferred from content by dataframe-go unless an explicit
// schema is supplied through Options.Schema.
package loader

import (
	"errors"
	"fmt"
)

// Error definitions
var (
	ErrMissingFile   = errors.New("file not found")
	ErrEmptyFile     = errors.New("empty file")
	ErrMalformedRow  = errors.New("malformed row")
	ErrFieldCount    = errors.New("inconsistent field count")
	ErrDelimiter     = errors.New("delimiter mismatch")
	ErrSchema        = errors.New("schema mismatch")
	ErrUnknownFormat = errors.New("unknown file format")
)

// LoadError reports a failure to load a file. Err is one of the sentinel
// errors above, possibly wrapping the underlying cause.
type LoadError struct {
	Path string
	Line int // 1-based; 0 when not tied to a line
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadErr(path string, line int, kind error, cause error) *LoadError {
	if cause == nil {
		return &LoadError{Path: path, Line: line, Err: kind}
	}
	return &LoadError{Path: path, Line: line, Err: fmt.Errorf("%w: %v", kind, cause)}
}
