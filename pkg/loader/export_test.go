package loader

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akhildatla/bankeda/pkg/frame"
)

func exportTable(t *testing.T) *frame.Table {
	t.Helper()
	tbl, err := frame.New(
		frame.NewInt("age", []int64{56, 31}),
		frame.NewCategorical("marital", []string{"married", "single"}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tbl
}

func TestWriteCSV_Separator(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportTable(t), ';'); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", buf.String())
	}
	if lines[0] != "age;marital" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "31;single" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestSave_ReloadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Save(path, exportTable(t), ';'); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tbl, err := LoadCSV(path, Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	age, _ := tbl.Col("age")
	marital, _ := tbl.Col("marital")
	if tbl.NRows() != 2 || age.Value(0) != int64(56) || marital.String(1) != "single" {
		t.Errorf("unexpected reloaded table: %v %v", age.Values(), marital.Values())
	}
}

func TestSave_JSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := Save(path, exportTable(t), 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tbl, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if tbl.NRows() != 2 || !tbl.Has("marital") {
		t.Errorf("unexpected reloaded table: %d rows, columns %v", tbl.NRows(), tbl.Names())
	}
}
