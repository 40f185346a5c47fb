package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// DefaultDelimiter is used when Options.Delimiter is zero.
const DefaultDelimiter = ','

// Options controls how a file is loaded.
type Options struct {
	// Delimiter separates fields in delimited text. Zero means ','.
	Delimiter rune

	// Format is "csv", "json" or "parquet". Empty or "auto" picks by
	// file extension, falling back to csv.
	Format string

	// Schema declares column kinds. Columns it names are parsed as that
	// kind instead of being inferred; every named column must exist.
	Schema map[string]frame.Kind
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// LoadCSV reads a delimited text file into a Table.
//   - First row is the header (column names)
//   - Every data row must have as many fields as the header
//   - Column types are inferred (int64, float64, otherwise string) unless
//     declared in opt.Schema
func LoadCSV(path string, opt Options) (*frame.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, loadErr(path, 0, ErrMissingFile, nil)
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, loadErr(path, 0, ErrEmptyFile, nil)
	}

	delim := opt.delimiter()
	header, rows, err := scanDelimited(path, data, delim)
	if err != nil {
		return nil, err
	}
	if err := checkSchema(path, header, opt.Schema); err != nil {
		return nil, err
	}
	if rows == 0 {
		return headerOnly(path, header, opt.Schema)
	}

	ctx := context.Background()
	df, err := imports.LoadFromCSV(ctx, bytes.NewReader(data), imports.CSVLoadOptions{
		Comma:           delim,
		InferDataTypes:  true,
		DictateDataType: dictate(opt.Schema),
	})
	if err != nil {
		return nil, loadErr(path, 0, ErrMalformedRow, err)
	}
	if df == nil || len(df.Series) == 0 {
		return nil, loadErr(path, 0, ErrEmptyFile, nil)
	}

	t, err := frame.FromDataFrame(df, opt.Schema)
	if err != nil {
		return nil, loadErr(path, 0, ErrMalformedRow, err)
	}
	return t, nil
}

// scanDelimited validates the record structure of data and returns the
// header and the number of data rows. dataframe-go does not report line
// numbers, so structural errors are caught here first.
func scanDelimited(path string, data []byte, delim rune) ([]string, int, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.ReuseRecord = true

	first, err := r.Read()
	if err != nil {
		line, _, _ := bytes.Cut(data, []byte("\n"))
		if otherDelimiter(string(line), delim) && !strings.ContainsRune(string(line), delim) {
			return nil, 0, loadErr(path, 1, ErrDelimiter, nil)
		}
		return nil, 0, recordErr(path, err)
	}
	header := append([]string(nil), first...)
	if len(header) == 1 && otherDelimiter(header[0], delim) {
		return nil, 0, loadErr(path, 1, ErrDelimiter, nil)
	}

	rows := 0
	for {
		_, err := r.Read()
		if err == io.EOF {
			return header, rows, nil
		}
		if err != nil {
			return nil, 0, recordErr(path, err)
		}
		rows++
	}
}

// headerOnly builds an empty Table for a file that has a header but no
// data rows. Undeclared columns are stored as text.
func headerOnly(path string, header []string, schema map[string]frame.Kind) (*frame.Table, error) {
	series := make([]dataframe.Series, len(header))
	for i, name := range header {
		switch schema[name] {
		case frame.KindInt:
			series[i] = frame.NewInt(name, nil)
		case frame.KindReal:
			series[i] = frame.NewReal(name, nil)
		default:
			series[i] = frame.NewCategorical(name, nil)
		}
	}
	t, err := frame.NewWithKinds(schema, series...)
	if err != nil {
		return nil, loadErr(path, 1, ErrMalformedRow, err)
	}
	return t, nil
}

func recordErr(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		if errors.Is(pe.Err, csv.ErrFieldCount) {
			return loadErr(path, pe.Line, ErrFieldCount, nil)
		}
		return loadErr(path, pe.Line, ErrMalformedRow, pe.Err)
	}
	if err == io.EOF {
		return loadErr(path, 0, ErrEmptyFile, nil)
	}
	return loadErr(path, 0, ErrMalformedRow, err)
}

// otherDelimiter reports whether a single header field looks like it was
// split with the wrong delimiter.
func otherDelimiter(field string, delim rune) bool {
	for _, d := range []rune{',', ';', '\t', '|'} {
		if d != delim && strings.ContainsRune(field, d) {
			return true
		}
	}
	return false
}

func checkSchema(path string, header []string, schema map[string]frame.Kind) error {
	if len(schema) == 0 {
		return nil
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for name := range schema {
		if !present[name] {
			return loadErr(path, 1, ErrSchema, errors.New("missing column "+name))
		}
	}
	return nil
}

// dictate maps declared kinds onto dataframe-go's DictateDataType values.
func dictate(schema map[string]frame.Kind) map[string]interface{} {
	if len(schema) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(schema))
	for name, k := range schema {
		switch k {
		case frame.KindInt:
			out[name] = int64(0)
		case frame.KindReal:
			out[name] = float64(0)
		case frame.KindCategorical, frame.KindBinary:
			out[name] = ""
		}
	}
	return out
}
