package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bankeda.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	// Run from an empty directory so no bankeda.yaml is picked up.
	chdir(t, t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *s != *Default() {
		t.Errorf("expected defaults, got %+v", *s)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_path: data/bank.csv
schema: bank
figure_width: 13
hist_bins: 30
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.DataPath != "data/bank.csv" || s.Schema != "bank" {
		t.Errorf("unexpected values: %+v", *s)
	}
	if s.FigureWidth != 13 || s.FigureHeight != 6 {
		t.Errorf("expected 13x6 figure, got %gx%g", s.FigureWidth, s.FigureHeight)
	}
	if s.HistBins != 30 || s.KDEPoints != 100 {
		t.Errorf("expected hist_bins 30 and default kde_points, got %d and %d", s.HistBins, s.KDEPoints)
	}
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultFile), []byte("head_rows: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.HeadRows != 3 {
		t.Errorf("expected head_rows 3, got %d", s.HeadRows)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad schema", "schema: guess\n", "invalid schema"},
		{"bad bins", "hist_bins: 0\n", "invalid hist_bins"},
		{"bad size", "figure_height: -1\n", "invalid figure size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q error, got %v", tt.want, err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}

func TestSet(t *testing.T) {
	s := Default()

	if err := s.Set("kde_points", "200"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if s.KDEPoints != 200 {
		t.Errorf("expected 200, got %d", s.KDEPoints)
	}
	if err := s.Set("figure_width", "12.5"); err != nil || s.FigureWidth != 12.5 {
		t.Errorf("expected width 12.5, got %g (%v)", s.FigureWidth, err)
	}

	for _, tc := range [][2]string{
		{"hist_bins", "many"},
		{"schema", "guess"},
		{"colour", "red"},
	} {
		if err := s.Set(tc[0], tc[1]); err == nil {
			t.Errorf("Set(%s, %s): expected error", tc[0], tc[1])
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s := Default()
	s.OutputDir = "out"
	s.PercentDecimals = 2

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := Save(s, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "output_dir: out") {
		t.Errorf("expected yaml keys, got:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *s {
		t.Errorf("expected %+v, got %+v", *s, *loaded)
	}
}
