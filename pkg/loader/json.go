package loader

import (
	"bytes"
	"context"
	"errors"
	"os"

	"github.com/rocketlaunchr/dataframe-go/imports"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// LoadJSON reads a JSON Lines file, one object per line, into a Table:
//
//	{"age": 56, "marital": "married", "y": "no"}
//	{"age": 31, "marital": "single", "y": "yes"}
func LoadJSON(path string) (*frame.Table, error) {
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

	ctx := context.Background()
	df, err := imports.LoadFromJSON(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, loadErr(path, 0, ErrMalformedRow, err)
	}
	if df == nil || len(df.Series) == 0 {
		return nil, loadErr(path, 0, ErrEmptyFile, nil)
	}

	t, err := frame.FromDataFrame(df, nil)
	if err != nil {
		return nil, loadErr(path, 0, ErrMalformedRow, err)
	}
	return t, nil
}
