package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketlaunchr/dataframe-go/exports"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// WriteCSV writes t as delimited text with a header row. Nil cells are
// written empty. A zero delim means ','.
func WriteCSV(w io.Writer, t *frame.Table, delim rune) error {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	null := ""
	return exports.ExportToCSV(context.Background(), w, t.DataFrame(), exports.CSVExportOptions{
		NullString: &null,
		Separator:  delim,
	})
}

// WriteJSON writes t as JSON Lines, the format LoadJSON reads.
func WriteJSON(w io.Writer, t *frame.Table) error {
	return exports.ExportToJSON(context.Background(), w, t.DataFrame())
}

// Save writes t to path, as JSON Lines for a .json extension and as
// delimited text otherwise.
func Save(path string, t *frame.Table, delim rune) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return WriteJSON(out, t)
	}
	return WriteCSV(out, t, delim)
}
