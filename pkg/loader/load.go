package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// Load reads path into a Table, choosing the reader from opt.Format or the
// file extension.
func Load(path string, opt Options) (*frame.Table, error) {
	format := strings.ToLower(opt.Format)
	if format == "" || format == "auto" {
		format = formatFromExt(path)
	}

	switch format {
	case "csv", "tsv", "txt":
		return LoadCSV(path, opt)
	case "json":
		return LoadJSON(path)
	case "parquet":
		return LoadParquet(path)
	default:
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnknownFormat, opt.Format)}
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".parquet", ".pq":
		return "parquet"
	default:
		return "csv"
	}
}

// ParseDelimiter turns a configuration string into a delimiter rune.
// Accepts a single character or one of the names "comma", "semicolon",
// "tab", "pipe" and the escape "\t".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "tab", `\t`:
		return '\t', nil
	case "pipe":
		return '|', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r[0], nil
}
