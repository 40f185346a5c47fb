// Package printer renders tables, summaries, value counts and cross
// tabulations as aligned text tables.
package printer

import (
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/report"
)

// DefaultPrecision is the number of decimals printed for real values.
const DefaultPrecision = 2

// Printer writes text tables to an io.Writer.
type Printer struct {
	w         io.Writer
	Precision int
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, Precision: DefaultPrecision}
}

func (p *Printer) writer(header []string, numeric []bool) *tablewriter.Table {
	tw := tablewriter.NewWriter(p.w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	align := make([]int, len(numeric))
	for i, n := range numeric {
		if n {
			align[i] = tablewriter.ALIGN_RIGHT
		} else {
			align[i] = tablewriter.ALIGN_LEFT
		}
	}
	tw.SetColumnAlignment(align)
	return tw
}

// Table prints every row of t.
func (p *Printer) Table(t *frame.Table) {
	schema := t.Schema()
	header := make([]string, len(schema))
	numeric := make([]bool, len(schema))
	cols := make([]frame.Col, len(schema))
	for i, info := range schema {
		header[i] = info.Name
		numeric[i] = info.Numeric
		cols[i], _ = t.Col(info.Name)
	}

	tw := p.writer(header, numeric)
	row := make([]string, len(cols))
	for r := 0; r < t.NRows(); r++ {
		for i, c := range cols {
			row[i] = p.value(c.Value(r))
		}
		tw.Append(row)
	}
	tw.Render()
}

// Summary prints the numeric statistics of s, one column per summarized
// column, followed by the categorical statistics.
func (p *Printer) Summary(s *report.Summary) {
	if len(s.Numeric) > 0 {
		header := []string{""}
		for _, ns := range s.Numeric {
			header = append(header, ns.Column)
		}
		tw := p.writer(header, allNumeric(len(header)))
		stats := []struct {
			label string
			get   func(report.NumericStats) float64
		}{
			{"mean", func(n report.NumericStats) float64 { return n.Mean }},
			{"std", func(n report.NumericStats) float64 { return n.Std }},
			{"min", func(n report.NumericStats) float64 { return n.Min }},
			{"25%", func(n report.NumericStats) float64 { return n.Q25 }},
			{"50%", func(n report.NumericStats) float64 { return n.Q50 }},
			{"75%", func(n report.NumericStats) float64 { return n.Q75 }},
			{"max", func(n report.NumericStats) float64 { return n.Max }},
		}

		count := []string{"count"}
		for _, ns := range s.Numeric {
			count = append(count, strconv.Itoa(ns.Count))
		}
		tw.Append(count)
		for _, st := range stats {
			row := []string{st.label}
			for _, ns := range s.Numeric {
				row = append(row, p.float(st.get(ns)))
			}
			tw.Append(row)
		}
		tw.Render()
	}

	if len(s.Categorical) > 0 {
		if len(s.Numeric) > 0 {
			io.WriteString(p.w, "\n")
		}
		header := []string{""}
		for _, cs := range s.Categorical {
			header = append(header, cs.Column)
		}
		tw := p.writer(header, allNumeric(len(header)))
		rows := [][]string{{"count"}, {"unique"}, {"top"}, {"freq"}}
		for _, cs := range s.Categorical {
			rows[0] = append(rows[0], strconv.Itoa(cs.Count))
			rows[1] = append(rows[1], strconv.Itoa(cs.Unique))
			rows[2] = append(rows[2], cs.Top)
			rows[3] = append(rows[3], strconv.Itoa(cs.Freq))
		}
		tw.AppendBulk(rows)
		tw.Render()
	}
}

// Counts prints a value count. Normalized counts print the share instead
// of the count.
func (p *Printer) Counts(column string, cs report.Counts, normalized bool) {
	label := "count"
	if normalized {
		label = "proportion"
	}
	tw := p.writer([]string{column, label}, []bool{false, true})
	for _, c := range cs {
		v := strconv.Itoa(c.Count)
		if normalized {
			v = p.float(c.Freq)
		}
		tw.Append([]string{frame.FormatValue(c.Value), v})
	}
	tw.Render()
}

// Matrix prints a cross tabulation with the row labels in the first
// column. Whole numbers print without decimals.
func (p *Printer) Matrix(m *report.Matrix) {
	header := append([]string{m.RowName + " \\ " + m.ColName}, m.ColLabels...)
	numeric := allNumeric(len(header))
	numeric[0] = false

	tw := p.writer(header, numeric)
	for i, label := range m.RowLabels {
		row := []string{label}
		for j := range m.ColLabels {
			row = append(row, p.cell(m.At(i, j)))
		}
		tw.Append(row)
	}
	tw.Render()
}

// Pivot prints a pivot table.
func (p *Printer) Pivot(pt *report.PivotTable) {
	p.Table(pt.Table)
}

// Values prints one line per column result, as from report.Reduce.
func (p *Printer) Values(vals []report.ColumnValue) {
	tw := p.writer([]string{"column", "value"}, []bool{false, true})
	for _, v := range vals {
		tw.Append([]string{v.Column, p.value(v.Value)})
	}
	tw.Render()
}

func (p *Printer) value(v interface{}) string {
	if f, ok := v.(float64); ok {
		return p.float(f)
	}
	return frame.FormatValue(v)
}

func (p *Printer) float(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	prec := p.Precision
	if prec < 0 {
		prec = DefaultPrecision
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func (p *Printer) cell(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return p.float(v)
}

func allNumeric(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}
