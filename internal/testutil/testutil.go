// Package testutil provides testing utilities for bankeda tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/akhildatla/bankeda/pkg/frame"
)

// TempCSV creates a temporary delimited file and returns its path.
// The file is automatically cleaned up when the test finishes.
func TempCSV(t *testing.T, content string) string {
	t.Helper()
	return TempFile(t, content, ".csv")
}

// TempFile creates a temporary file with the given content and extension.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// BankCSV returns ten rows in the layout of bank-additional-full.csv
// (semicolon separated, quoted header).
//
// Facts the tests rely on: 4 of 10 clients have y=yes; their mean age is
// 43.25 and mean duration 734.75; the two single attracted clients are 31
// and 29; marital counts are married 6, single 3, divorced 1; married&yes 2.
func BankCSV() string {
	return `"age";"job";"marital";"education";"default";"housing";"loan";"contact";"month";"day_of_week";"duration";"campaign";"pdays";"previous";"poutcome";"emp.var.rate";"cons.price.idx";"cons.conf.idx";"euribor3m";"nr.employed";"y"
56;"housemaid";"married";"basic.4y";"no";"no";"no";"telephone";"may";"mon";261;1;999;0;"nonexistent";1.1;93.994;-36.4;4.857;5191.0;"no"
57;"services";"married";"high.school";"unknown";"no";"no";"telephone";"may";"mon";149;1;999;0;"nonexistent";1.1;93.994;-36.4;4.857;5191.0;"no"
37;"services";"married";"high.school";"no";"yes";"no";"telephone";"may";"mon";226;1;999;0;"nonexistent";1.1;93.994;-36.4;4.857;5191.0;"no"
40;"admin.";"married";"basic.6y";"no";"no";"no";"telephone";"may";"mon";151;1;999;0;"nonexistent";1.1;93.994;-36.4;4.857;5191.0;"no"
31;"admin.";"single";"university.degree";"no";"yes";"no";"cellular";"aug";"thu";638;2;999;0;"nonexistent";1.4;93.444;-36.1;4.964;5228.1;"yes"
29;"technician";"single";"professional.course";"no";"yes";"no";"cellular";"nov";"wed";1034;3;6;1;"success";-0.1;93.2;-42.0;4.12;5195.8;"yes"
45;"blue-collar";"divorced";"basic.9y";"unknown";"yes";"yes";"cellular";"jul";"tue";87;4;999;0;"nonexistent";1.4;93.918;-42.7;4.961;5228.1;"no"
52;"management";"married";"university.degree";"no";"no";"no";"cellular";"aug";"fri";812;1;3;2;"success";-2.9;92.201;-31.4;0.869;5076.2;"yes"
24;"student";"single";"high.school";"no";"yes";"no";"cellular";"jul";"mon";302;2;999;0;"nonexistent";1.4;93.918;-42.7;4.962;5228.1;"no"
61;"retired";"married";"basic.4y";"no";"no";"no";"cellular";"oct";"thu";455;1;999;1;"failure";-3.4;92.431;-26.9;0.754;5017.5;"yes"
`
}

// MakeBankTable builds the rows of BankCSV directly, without the loader.
func MakeBankTable(t *testing.T) *frame.Table {
	t.Helper()
	tbl, err := frame.New(
		frame.NewInt("age", []int64{56, 57, 37, 40, 31, 29, 45, 52, 24, 61}),
		frame.NewCategorical("job", []string{"housemaid", "services", "services", "admin.", "admin.", "technician", "blue-collar", "management", "student", "retired"}),
		frame.NewCategorical("marital", []string{"married", "married", "married", "married", "single", "single", "divorced", "married", "single", "married"}),
		frame.NewCategorical("education", []string{"basic.4y", "high.school", "high.school", "basic.6y", "university.degree", "professional.course", "basic.9y", "university.degree", "high.school", "basic.4y"}),
		frame.NewCategorical("default", []string{"no", "unknown", "no", "no", "no", "no", "unknown", "no", "no", "no"}),
		frame.NewCategorical("housing", []string{"no", "no", "yes", "no", "yes", "yes", "yes", "no", "yes", "no"}),
		frame.NewCategorical("loan", []string{"no", "no", "no", "no", "no", "no", "yes", "no", "no", "no"}),
		frame.NewCategorical("contact", []string{"telephone", "telephone", "telephone", "telephone", "cellular", "cellular", "cellular", "cellular", "cellular", "cellular"}),
		frame.NewCategorical("month", []string{"may", "may", "may", "may", "aug", "nov", "jul", "aug", "jul", "oct"}),
		frame.NewCategorical("day_of_week", []string{"mon", "mon", "mon", "mon", "thu", "wed", "tue", "fri", "mon", "thu"}),
		frame.NewInt("duration", []int64{261, 149, 226, 151, 638, 1034, 87, 812, 302, 455}),
		frame.NewInt("campaign", []int64{1, 1, 1, 1, 2, 3, 4, 1, 2, 1}),
		frame.NewInt("pdays", []int64{999, 999, 999, 999, 999, 6, 999, 3, 999, 999}),
		frame.NewInt("previous", []int64{0, 0, 0, 0, 0, 1, 0, 2, 0, 1}),
		frame.NewCategorical("poutcome", []string{"nonexistent", "nonexistent", "nonexistent", "nonexistent", "nonexistent", "success", "nonexistent", "success", "nonexistent", "failure"}),
		frame.NewReal("emp.var.rate", []float64{1.1, 1.1, 1.1, 1.1, 1.4, -0.1, 1.4, -2.9, 1.4, -3.4}),
		frame.NewReal("cons.price.idx", []float64{93.994, 93.994, 93.994, 93.994, 93.444, 93.2, 93.918, 92.201, 93.918, 92.431}),
		frame.NewReal("cons.conf.idx", []float64{-36.4, -36.4, -36.4, -36.4, -36.1, -42.0, -42.7, -31.4, -42.7, -26.9}),
		frame.NewReal("euribor3m", []float64{4.857, 4.857, 4.857, 4.857, 4.964, 4.12, 4.961, 0.869, 4.962, 0.754}),
		frame.NewReal("nr.employed", []float64{5191.0, 5191.0, 5191.0, 5191.0, 5228.1, 5195.8, 5228.1, 5076.2, 5228.1, 5017.5}),
		frame.NewCategorical("y", []string{"no", "no", "no", "no", "yes", "yes", "no", "yes", "no", "yes"}),
	)
	if err != nil {
		t.Fatalf("failed to build bank table: %v", err)
	}
	return tbl
}

// AssertFloat64Near checks if two float64 values are approximately equal.
func AssertFloat64Near(t *testing.T, expected, actual, tolerance float64) {
	t.Helper()
	if actual < expected-tolerance || actual > expected+tolerance {
		t.Errorf("expected %.6f, got %.6f (tolerance: %.6f)", expected, actual, tolerance)
	}
}
