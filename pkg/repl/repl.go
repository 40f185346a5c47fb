// Package repl provides an interactive query shell over a loaded table.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/akhildatla/bankeda/pkg/bank"
	"github.com/akhildatla/bankeda/pkg/expr"
	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/loader"
	"github.com/akhildatla/bankeda/pkg/printer"
	"github.com/akhildatla/bankeda/pkg/report"
)

const (
	prompt     = "bankeda> "
	promptCont = "...> "
)

// DefaultHeadRows is the number of rows shown by head and sort.
const DefaultHeadRows = 10

// REPL provides an interactive Read-Eval-Print Loop. Commands act on the
// current view, which starts as the loaded table and is narrowed by where
// and replaced by recode.
type REPL struct {
	base        *frame.Table
	current     *frame.Table
	source      string
	frames      map[string]*frame.Table
	variables   map[string]any
	history     []string
	multiline   strings.Builder
	inMultiline bool
	done        bool

	loadOpts  loader.Options
	headRows  int
	decimals  int
	precision int
}

// New creates a new REPL instance.
func New() *REPL {
	return &REPL{
		frames:    make(map[string]*frame.Table),
		variables: make(map[string]any),
		history:   []string{},
		headRows:  DefaultHeadRows,
		decimals:  1,
		precision: printer.DefaultPrecision,
	}
}

// SetTable makes t the loaded table and the current view.
func (r *REPL) SetTable(t *frame.Table, source string) {
	r.base, r.current, r.source = t, t, source
}

// SetLoadOptions sets the options used by the load command.
func (r *REPL) SetLoadOptions(opt loader.Options) {
	r.loadOpts = opt
}

// SetHeadRows sets how many rows head and sort print.
func (r *REPL) SetHeadRows(n int) {
	if n > 0 {
		r.headRows = n
	}
}

// SetPercentDecimals sets the decimals of printed percentages.
func (r *REPL) SetPercentDecimals(n int) {
	if n >= 0 {
		r.decimals = n
	}
}

// Start starts the REPL loop. It returns on quit or at the end of in.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "bankeda query shell")
	fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(out)

	for !r.done {
		if r.inMultiline {
			fmt.Fprint(out, promptCont)
		} else {
			fmt.Fprint(out, prompt)
		}

		if !scanner.Scan() {
			break
		}

		line := scanner.Text()

		if r.inMultiline {
			if line == "" {
				r.inMultiline = false
				input := r.multiline.String()
				r.multiline.Reset()
				r.dispatch(input, out)
			} else {
				r.multiline.WriteString(line)
				r.multiline.WriteString(" ")
			}
			continue
		}

		// A trailing \ continues the input on the next line.
		if strings.HasSuffix(line, "\\") {
			r.inMultiline = true
			r.multiline.WriteString(strings.TrimSuffix(line, "\\"))
			r.multiline.WriteString(" ")
			continue
		}

		r.dispatch(line, out)
	}
}

func (r *REPL) dispatch(line string, out io.Writer) {
	if handled := r.handleCommand(line, out); handled {
		return
	}
	r.eval(line, out)
}

func (r *REPL) handleCommand(line string, out io.Writer) bool {
	trimmed := strings.TrimSpace(line)
	parts := strings.Fields(trimmed)

	if len(parts) == 0 {
		return true
	}

	cmd, args := parts[0], parts[1:]
	switch cmd {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		r.done = true
		return true

	case "help", "h", "?":
		r.printHelp(out)
		return true

	case "history":
		for i, c := range r.history {
			fmt.Fprintf(out, "%3d: %s\n", i+1, c)
		}
		return true

	case "load":
		if len(args) < 1 {
			fmt.Fprintln(out, "Usage: load <path> [delimiter]")
			return true
		}
		r.record(trimmed)
		r.load(args, out)
		return true

	case "frames":
		r.listFrames(out)
		return true

	case "vars":
		r.listVariables(out)
		return true

	case "clear":
		r.variables = make(map[string]any)
		fmt.Fprintln(out, "Variables cleared")
		return true
	}

	run, ok := r.commands()[cmd]
	if !ok {
		return false
	}
	r.record(trimmed)
	if r.current == nil {
		fmt.Fprintln(out, "No table loaded. Use: load <path>")
		return true
	}
	if err := run(args, out); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return true
}

// commands returns the commands that need a loaded table.
func (r *REPL) commands() map[string]func(args []string, out io.Writer) error {
	return map[string]func([]string, io.Writer) error{
		"columns":   r.columns,
		"head":      r.head,
		"describe":  r.describe,
		"counts":    r.counts,
		"sort":      r.sortRows,
		"where":     r.where,
		"reset":     r.reset,
		"recode":    r.recode,
		"crosstab":  r.crosstab,
		"pivot":     r.pivot,
		"mean":      r.mean,
		"reduce":    r.reduce,
		"questions": r.questions,
		"save":      r.save,
		"use":       r.use,
		"export":    r.export,
	}
}

func (r *REPL) record(input string) {
	r.history = append(r.history, input)
}

// eval treats input as a filter expression and previews the matching rows
// of the current view without changing it.
func (r *REPL) eval(input string, out io.Writer) {
	if strings.TrimSpace(input) == "" {
		return
	}

	r.record(strings.TrimSpace(input))

	if r.current == nil {
		fmt.Fprintln(out, "No table loaded. Use: load <path>")
		return
	}

	matched, err := r.filter(input)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(out, "=> %d of %d rows\n", matched.NRows(), r.current.NRows())
	r.printer(out).Table(matched.Head(r.headRows))
}

func (r *REPL) filter(src string) (*frame.Table, error) {
	p, err := expr.Compile(src)
	if err != nil {
		return nil, err
	}
	return report.Filter(r.current, p)
}

func (r *REPL) printer(out io.Writer) *printer.Printer {
	p := printer.New(out)
	p.Precision = r.precision
	return p
}

func (r *REPL) load(args []string, out io.Writer) {
	opt := r.loadOpts
	if len(args) > 1 {
		d, err := loader.ParseDelimiter(args[1])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return
		}
		opt.Delimiter = d
	}

	t, err := loader.Load(args[0], opt)
	if err != nil {
		fmt.Fprintf(out, "Error loading %s: %v\n", args[0], err)
		return
	}
	r.SetTable(t, args[0])
	fmt.Fprintf(out, "Loaded %s (%d rows, %d columns)\n", args[0], t.NRows(), t.NCols())
}

func (r *REPL) columns(_ []string, out io.Writer) error {
	for _, info := range r.current.Schema() {
		fmt.Fprintf(out, "  %-16s %s\n", info.Name, info.Kind)
	}
	return nil
}

func (r *REPL) head(args []string, out io.Writer) error {
	n := r.headRows
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid row count %q", args[0])
		}
		n = v
	}
	r.printer(out).Table(r.current.Head(n))
	return nil
}

func (r *REPL) describe(args []string, out io.Writer) error {
	opt := report.DescribeOptions{}
	for _, a := range args {
		switch a {
		case "all", "--all":
			opt.Include = report.IncludeAll
		case "categorical", "--categorical":
			opt.Include = report.IncludeCategorical
		default:
			opt.Columns = append(opt.Columns, a)
		}
	}
	s, err := report.Describe(r.current, opt)
	if err != nil {
		return err
	}
	r.printer(out).Summary(s)
	return nil
}

func (r *REPL) counts(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: counts <column> [normalize]")
	}
	normalize := len(args) > 1 && (args[1] == "normalize" || args[1] == "--normalize")
	cs, err := report.CountColumn(r.current, args[0], normalize)
	if err != nil {
		return err
	}
	r.printer(out).Counts(args[0], cs, normalize)
	return nil
}

func (r *REPL) sortRows(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: sort <column[:desc]>...")
	}
	keys := make([]report.SortKey, len(args))
	for i, a := range args {
		k, err := report.ParseSortKey(a)
		if err != nil {
			return err
		}
		keys[i] = k
	}
	sorted, err := report.SortBy(r.current, keys...)
	if err != nil {
		return err
	}
	r.printer(out).Table(sorted.Head(r.headRows))
	return nil
}

func (r *REPL) where(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: where <expression>")
	}
	matched, err := r.filter(strings.Join(args, " "))
	if err != nil {
		return err
	}
	r.current = matched
	fmt.Fprintf(out, "%d rows selected\n", matched.NRows())
	return nil
}

func (r *REPL) reset(_ []string, out io.Writer) error {
	r.current = r.base
	fmt.Fprintf(out, "View reset to %s (%d rows)\n", r.source, r.base.NRows())
	return nil
}

// recode y no=0 yes=1
func (r *REPL) recode(args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: recode <column> <from>=<to>...")
	}
	m := report.Mapping{}
	for _, pair := range args[1:] {
		from, to, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid mapping %q, want from=to", pair)
		}
		m[from] = literal(to)
	}
	t, err := report.Recode(r.current, args[0], m)
	if err != nil {
		return err
	}
	r.current = t
	fmt.Fprintf(out, "Recoded %s\n", args[0])
	return nil
}

func literal(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func (r *REPL) crosstab(args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: crosstab <row> <column> [index|columns|all] [margins]")
	}
	norm := report.NormalizeNone
	margins := false
	for _, a := range args[2:] {
		if a == "margins" || a == "--margins" {
			margins = true
			continue
		}
		n, err := report.ParseNormalize(a)
		if err != nil {
			return err
		}
		norm = n
	}
	m, err := report.CrossTab(r.current, args[0], args[1], norm)
	if err != nil {
		return err
	}
	if margins {
		m = m.Margins()
	}
	r.printer(out).Matrix(m)
	return nil
}

// pivot job age,duration mean,count
func (r *REPL) pivot(args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: pivot <index,...> <values,...> [agg,...]")
	}
	aggs := []report.AggFunc{report.AggMean}
	if len(args) > 2 {
		aggs = aggs[:0]
		for _, name := range splitList(args[2]) {
			f, err := report.ParseAggFunc(name)
			if err != nil {
				return err
			}
			aggs = append(aggs, f)
		}
	}
	pt, err := report.Pivot(r.current, splitList(args[1]), splitList(args[0]), aggs)
	if err != nil {
		return err
	}
	r.printer(out).Pivot(pt)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (r *REPL) mean(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: mean <column>")
	}
	v, err := report.Mean(r.current, args[0])
	if err != nil {
		return err
	}
	r.variables["mean("+args[0]+")"] = v
	fmt.Fprintf(out, "=> %s\n", strconv.FormatFloat(v, 'f', r.precision, 64))
	return nil
}

func (r *REPL) reduce(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: reduce <mean|count|max|min|sum|median|std>")
	}
	f, err := report.ParseAggFunc(args[0])
	if err != nil {
		return err
	}
	vals, err := report.Reduce(r.current, f)
	if err != nil {
		return err
	}
	r.printer(out).Values(vals)
	return nil
}

func (r *REPL) questions(_ []string, out io.Writer) error {
	f, err := bank.Analyze(r.current)
	if err != nil {
		return err
	}
	f.Report(out, r.decimals)
	return nil
}

func (r *REPL) save(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: save <name>")
	}
	r.frames[args[0]] = r.current
	fmt.Fprintf(out, "Saved view '%s' (%d rows)\n", args[0], r.current.NRows())
	return nil
}

func (r *REPL) use(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: use <name>")
	}
	t, ok := r.frames[args[0]]
	if !ok {
		return fmt.Errorf("no saved view %q", args[0])
	}
	r.current = t
	fmt.Fprintf(out, "Using view '%s' (%d rows)\n", args[0], t.NRows())
	return nil
}

func (r *REPL) export(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: export <path.csv|path.json>")
	}
	delim := r.loadOpts.Delimiter
	if err := loader.Save(args[0], r.current, delim); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d rows to %s\n", r.current.NRows(), args[0])
	return nil
}

func (r *REPL) listFrames(out io.Writer) {
	if len(r.frames) == 0 {
		fmt.Fprintln(out, "No saved views")
		return
	}

	names := make([]string, 0, len(r.frames))
	for name := range r.frames {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Saved views:")
	for _, name := range names {
		t := r.frames[name]
		fmt.Fprintf(out, "  %s: %d rows, %d columns\n", name, t.NRows(), t.NCols())
	}
}

func (r *REPL) listVariables(out io.Writer) {
	if len(r.variables) == 0 {
		fmt.Fprintln(out, "No variables defined")
		return
	}

	names := make([]string, 0, len(r.variables))
	for name := range r.variables {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(out, "Variables:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %v\n", name, r.variables[name])
	}
}

func (r *REPL) printHelp(out io.Writer) {
	help := `
bankeda Commands:
  help, h, ?                    Show this help message
  quit, exit, q                 Exit the shell
  load <path> [delim]           Load a csv, json or parquet file
  columns                       List columns and kinds
  head [n]                      Show the first rows of the view
  describe [all|cols...]        Summary statistics
  counts <col> [normalize]      Value counts
  sort <col[:desc]>...          Sort the view and show the first rows
  where <expr>                  Narrow the view to matching rows
  reset                         Return to the loaded table
  recode <col> <from>=<to>...   Replace values of a column
  crosstab <row> <col> [index|columns|all] [margins]
  pivot <index> <values> [aggs] Grouped aggregates, comma separated lists
  mean <col>                    Mean of a numeric column
  reduce <func>                 Apply a function to every column
  questions                     Answer the standard bank questions
  save <name>, use <name>       Save and restore views
  frames                        List saved views
  vars                          List computed values
  clear                         Clear computed values
  export <path>                 Write the view as csv or json
  history                       Show command history

Any other input is a filter expression previewed against the view:
  y == "yes" and marital == "single"
  age >= 60 or job in ("retired", "student")

Tips:
  - End a line with \ for multiline input
  - Press Enter twice to execute multiline input
`
	fmt.Fprint(out, help)
}
