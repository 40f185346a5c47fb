package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akhildatla/bankeda/internal/config"
	"github.com/akhildatla/bankeda/internal/testutil"
	"github.com/akhildatla/bankeda/pkg/loader"
)

// execute runs the CLI in-process with args and optional stdin.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newApp(&out, &errOut).root()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// bankArgs points the CLI at the sample data.
func bankArgs(t *testing.T, args ...string) []string {
	t.Helper()
	path := testutil.TempCSV(t, testutil.BankCSV())
	return append([]string{"--data", path, "--delimiter", ";"}, args...)
}

func TestCLI_Version(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "bankeda version") {
		t.Errorf("expected version output, got: %s", out)
	}
}

func TestCLI_Help(t *testing.T) {
	out, _, err := execute(t, "", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, cmd := range []string{"describe", "counts", "crosstab", "pivot", "chart", "questions", "repl"} {
		if !strings.Contains(out, cmd) {
			t.Errorf("help output should list %s", cmd)
		}
	}
}

func TestCLI_Queries(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"describe", []string{"describe", "age"}, []string{"43.20", "12.99"}, nil},
		{"describe all", []string{"describe", "--all"}, []string{"unique", "married"}, nil},
		{"counts normalized", []string{"counts", "y", "--normalize"}, []string{"proportion", "0.60", "0.40"}, nil},
		{"where and sort", []string{"--where", `y == "yes"`, "sort", "duration:desc", "--head", "2"}, []string{"1034", "812"}, []string{"638"}},
		{"crosstab margins", []string{"crosstab", "y", "marital", "--margins"}, []string{"All", "married"}, nil},
		{"crosstab normalized", []string{"crosstab", "y", "marital", "--normalize", "index"}, []string{"0.50"}, nil},
		{"pivot", []string{"pivot", "--index", "job", "--values", "age,duration", "--agg", "mean,count"}, []string{"mean(age)", "count(duration)", "394.50"}, nil},
		{"reduce", []string{"reduce", "max"}, []string{"technician", "61.00"}, nil},
		{"recode y", []string{"--recode-y", "describe", "y"}, []string{"0.40"}, nil},
		{"questions", []string{"questions"}, []string{"Share of attracted clients = 40.0%", "12 min 14 sec"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", bankArgs(t, tt.args...)...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("did not expect %q in output:\n%s", w, out)
				}
			}
		})
	}
}

func TestCLI_SortCSV(t *testing.T) {
	out, _, err := execute(t, "", bankArgs(t, "sort", "age", "--head", "3", "--csv")...)
	if err != nil {
		t.Fatalf("sort failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "age;job;") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "24;student;") {
		t.Errorf("expected youngest client first, got %q", lines[1])
	}
}

func TestCLI_Errors(t *testing.T) {
	_, _, err := execute(t, "", "--data", "/nonexistent/bank.csv", "describe")
	if !errors.Is(err, loader.ErrMissingFile) {
		t.Errorf("expected ErrMissingFile, got %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad where", []string{"--where", "age >", "describe"}, "--where"},
		{"bad schema", []string{"--schema", "guess", "describe"}, "invalid schema"},
		{"missing index", []string{"pivot", "--values", "age"}, "index"},
		{"bad agg", []string{"pivot", "--index", "job", "--agg", "mode"}, "unknown aggregation"},
		{"bad normalize", []string{"crosstab", "y", "marital", "--normalize", "rows"}, "invalid normalize"},
		{"unknown column", []string{"counts", "salary"}, "salary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", bankArgs(t, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCLI_Verbose(t *testing.T) {
	_, errOut, err := execute(t, "", bankArgs(t, "-v", "counts", "marital")...)
	if err != nil {
		t.Fatalf("counts failed: %v", err)
	}
	if !strings.Contains(errOut, "bankeda: loaded") || !strings.Contains(errOut, "10 rows, 21 columns") {
		t.Errorf("expected load log line, got: %s", errOut)
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("%s is not a PNG", path)
	}
}

func TestCLI_Charts(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bankeda.yaml")
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(dir, "figures")
	cfg.FigureWidth, cfg.FigureHeight = 3, 2
	if err := config.Save(cfg, cfgPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tests := []struct {
		args []string
		file string
	}{
		{[]string{"chart", "hist", "age", "--bins", "5"}, "age_hist.png"},
		{[]string{"chart", "hist", "age", "duration"}, "hist_grid.png"},
		{[]string{"chart", "box", "age", "--by", "marital,housing"}, "age_box_marital_housing.png"},
		{[]string{"chart", "scatter", "age", "duration", "campaign", "--diagonal", "hist"}, "scatter_matrix.png"},
	}
	for _, tt := range tests {
		args := append([]string{"--config", cfgPath}, tt.args...)
		if _, _, err := execute(t, "", bankArgs(t, args...)...); err != nil {
			t.Fatalf("%v failed: %v", tt.args, err)
		}
		assertPNG(t, filepath.Join(cfg.OutputDir, tt.file))
	}

	out := filepath.Join(dir, "custom.png")
	if _, _, err := execute(t, "", bankArgs(t, "--config", cfgPath, "chart", "box", "duration", "-o", out)...); err != nil {
		t.Fatalf("chart box -o failed: %v", err)
	}
	assertPNG(t, out)

	if _, _, err := execute(t, "", bankArgs(t, "--config", cfgPath, "chart", "all")...); err != nil {
		t.Fatalf("chart all failed: %v", err)
	}
	for _, name := range []string{"scatter_matrix", "age_hist", "hist_grid", "age_by_marital", "age_by_marital_housing", "age_by_education"} {
		assertPNG(t, filepath.Join(cfg.OutputDir, name+".png"))
	}

	if _, _, err := execute(t, "", bankArgs(t, "--config", cfgPath, "chart", "hist", "job")...); err == nil {
		t.Error("expected error for a text column")
	}
}

func TestCLI_Config(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.yaml")

	out, _, err := execute(t, "", "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Saved config") {
		t.Errorf("expected confirmation, got: %s", out)
	}

	if _, _, err := execute(t, "", "--config", path, "config", "set", "hist_bins", "30"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	out, _, err = execute(t, "", "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "hist_bins: 30") || !strings.Contains(out, "data_path:") {
		t.Errorf("unexpected config:\n%s", out)
	}

	if _, _, err := execute(t, "", "--config", path, "config", "set", "colour", "red"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestCLI_REPL(t *testing.T) {
	out, _, err := execute(t, "mean age\nquit\n", bankArgs(t, "repl")...)
	if err != nil {
		t.Fatalf("repl failed: %v", err)
	}
	if !strings.Contains(out, "=> 43.20") {
		t.Errorf("expected mean age, got: %s", out)
	}
}
