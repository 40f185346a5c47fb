package loader

import (
	"context"
	"errors"
	"os"

	"github.com/rocketlaunchr/dataframe-go/imports"
	"github.com/xitongsys/parquet-go-source/local"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// LoadParquet reads a Parquet file into a Table.
// Uses the dataframe-go imports package with the parquet-go backend.
func LoadParquet(path string) (*frame.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, loadErr(path, 0, ErrMissingFile, nil)
	}

	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer fr.Close()

	ctx := context.Background()
	df, err := imports.LoadFromParquet(ctx, fr)
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
