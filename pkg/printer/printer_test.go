package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akhildatla/bankeda/internal/testutil"
	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/report"
)

func lineWith(out, substr string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}

func TestPrinter_Table(t *testing.T) {
	tbl, err := frame.New(
		frame.NewInt("age", []int64{56, 31}),
		frame.NewReal("euribor3m", []float64{4.857, 0.869}),
		frame.NewCategorical("marital", []string{"married", "single"}),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var out bytes.Buffer
	New(&out).Table(tbl)
	s := out.String()

	for _, want := range []string{"age", "euribor3m", "marital", "56", "4.86", "0.87", "single"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in output:\n%s", want, s)
		}
	}
	if strings.Contains(s, "4.857") {
		t.Errorf("expected two decimals, got:\n%s", s)
	}
}

func TestPrinter_Precision(t *testing.T) {
	tbl, _ := frame.New(frame.NewReal("x", []float64{1.23456}))

	var out bytes.Buffer
	p := New(&out)
	p.Precision = 4
	p.Table(tbl)
	if !strings.Contains(out.String(), "1.2346") {
		t.Errorf("expected four decimals, got:\n%s", out.String())
	}
}

func TestPrinter_Summary(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	sum, err := report.Describe(tbl, report.DescribeOptions{
		Columns: []string{"age", "marital"},
	})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	var out bytes.Buffer
	New(&out).Summary(sum)
	s := out.String()

	tests := []struct {
		label string
		value string
	}{
		{"mean", "43.20"},
		{"25%", "32.50"},
		{"max", "61.00"},
		{"unique", "3"},
		{"top", "married"},
		{"freq", "6"},
	}
	for _, tt := range tests {
		line := lineWith(s, " "+tt.label+" ")
		if !strings.Contains(line, tt.value) {
			t.Errorf("%s: expected %s in %q", tt.label, tt.value, line)
		}
	}
}

func TestPrinter_Counts(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	cs, err := report.CountColumn(tbl, "marital", true)
	if err != nil {
		t.Fatalf("CountColumn failed: %v", err)
	}
	var out bytes.Buffer
	New(&out).Counts("marital", cs, true)
	s := out.String()

	if !strings.Contains(s, "proportion") {
		t.Errorf("expected proportion header, got:\n%s", s)
	}
	if line := lineWith(s, "married"); !strings.Contains(line, "0.60") {
		t.Errorf("expected married share 0.60, got %q", line)
	}
	if strings.Index(s, "married") > strings.Index(s, "single") {
		t.Errorf("expected most frequent value first:\n%s", s)
	}
}

func TestPrinter_Matrix(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	m, err := report.CrossTab(tbl, "y", "marital", report.NormalizeNone)
	if err != nil {
		t.Fatalf("CrossTab failed: %v", err)
	}
	var out bytes.Buffer
	New(&out).Matrix(m.Margins())
	s := out.String()

	if !strings.Contains(s, `y \ marital`) {
		t.Errorf("expected corner label, got:\n%s", s)
	}
	line := lineWith(s, " yes ")
	for _, want := range []string{"2", "4"} {
		if !strings.Contains(line, want) {
			t.Errorf("expected %s in yes row %q", want, line)
		}
	}
	if strings.Contains(line, ".") {
		t.Errorf("expected whole counts, got %q", line)
	}
	if lineWith(s, " All ") == "" {
		t.Errorf("expected margins row, got:\n%s", s)
	}
}

func TestPrinter_MatrixNormalized(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	m, err := report.CrossTab(tbl, "y", "marital", report.NormalizeIndex)
	if err != nil {
		t.Fatalf("CrossTab failed: %v", err)
	}
	var out bytes.Buffer
	New(&out).Matrix(m)
	if line := lineWith(out.String(), " yes "); !strings.Contains(line, "0.50") {
		t.Errorf("expected married share 0.50 among yes, got %q", line)
	}
}

func TestPrinter_Values(t *testing.T) {
	var out bytes.Buffer
	New(&out).Values([]report.ColumnValue{
		{Column: "age", Value: 61.0},
		{Column: "job", Value: "technician"},
	})
	s := out.String()
	if line := lineWith(s, "age"); !strings.Contains(line, "61.00") {
		t.Errorf("expected 61.00, got %q", line)
	}
	if line := lineWith(s, "job"); !strings.Contains(line, "technician") {
		t.Errorf("expected technician, got %q", line)
	}
}
