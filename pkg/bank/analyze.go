package bank

import (
	"fmt"
	"io"
	"math"

	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/printer"
	"github.com/akhildatla/bankeda/pkg/report"
)

// Findings answers the exploratory questions asked of the dataset.
type Findings struct {
	Rows int

	// AttractedShare is the share of clients with y == 1.
	AttractedShare float64

	// AttractedMeans holds the mean of every numeric column among
	// attracted clients.
	AttractedMeans []report.ColumnValue

	// CallDuration is the mean call duration in seconds among attracted
	// clients.
	CallDuration float64

	// SingleAge is the mean age of attracted single clients.
	SingleAge float64

	Marital      *report.Matrix // y by marital, counts
	MaritalShare *report.Matrix // y by marital, each row sums to 1

	Maxima        []report.ColumnValue
	LongestCalls  *frame.Table
	Youngest      *frame.Table
	JobMeans      *report.PivotTable // mean age and duration by job
	MostContacted *frame.Table       // ten clients with most campaign contacts
	Education     *report.PivotTable // mean and count of age and campaign by education
}

// Analyze computes Findings. The outcome column is recoded to 0/1 first
// when it still holds yes/no labels.
func Analyze(t *frame.Table) (*Findings, error) {
	t, err := RecodeTarget(t)
	if err != nil {
		return nil, err
	}

	f := &Findings{Rows: t.NRows()}
	if f.AttractedShare, err = report.Mean(t, Target); err != nil {
		return nil, err
	}

	attracted, err := report.Filter(t, Attracted())
	if err != nil {
		return nil, err
	}
	f.AttractedMeans = report.ColumnMeans(attracted)
	if f.CallDuration, err = report.Mean(attracted, "duration"); err != nil {
		return nil, err
	}

	single, err := report.Filter(attracted, report.Eq("marital", "single"))
	if err != nil {
		return nil, err
	}
	if f.SingleAge, err = report.Mean(single, "age"); err != nil {
		return nil, err
	}

	if f.Marital, err = report.CrossTab(t, Target, "marital", report.NormalizeNone); err != nil {
		return nil, err
	}
	if f.MaritalShare, err = report.CrossTab(t, Target, "marital", report.NormalizeIndex); err != nil {
		return nil, err
	}

	if f.Maxima, err = report.Reduce(t, report.AggMax); err != nil {
		return nil, err
	}

	sorted, err := report.SortBy(t, report.Desc("duration"))
	if err != nil {
		return nil, err
	}
	f.LongestCalls = sorted.Head(5)

	sorted, err = report.SortBy(t, report.Asc("age"), report.Desc("duration"))
	if err != nil {
		return nil, err
	}
	f.Youngest = sorted.Head(5)

	f.JobMeans, err = report.Pivot(t, []string{"age", "duration"}, []string{"job"}, []report.AggFunc{report.AggMean})
	if err != nil {
		return nil, err
	}

	sorted, err = report.SortBy(t, report.Desc("campaign"))
	if err != nil {
		return nil, err
	}
	f.MostContacted = sorted.Head(10)

	f.Education, err = report.Pivot(t, []string{"age", "campaign"}, []string{"education"},
		[]report.AggFunc{report.AggMean, report.AggCount})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Report writes the findings as text. Shares print with the given number
// of decimals.
func (f *Findings) Report(w io.Writer, decimals int) {
	p := printer.New(w)

	section := func(title string) {
		fmt.Fprintf(w, "\n== %s ==\n", title)
	}

	fmt.Fprintf(w, "Clients: %d\n", f.Rows)
	fmt.Fprintf(w, "Share of attracted clients = %s\n", report.FormatPercent(f.AttractedShare, decimals))
	fmt.Fprintf(w, "Average call duration for attracted clients = %s\n", report.FormatMinSec(f.CallDuration))
	fmt.Fprintf(w, "Average age of attracted single clients = %s\n", years(f.SingleAge))

	section("Mean values among attracted clients")
	p.Values(f.AttractedMeans)

	section("Maximum per column")
	p.Values(f.Maxima)

	section("Longest calls")
	p.Table(f.LongestCalls)

	section("Youngest clients, longest calls first")
	p.Table(f.Youngest)

	section("Clients by outcome and marital status")
	p.Matrix(f.Marital)
	p.Matrix(f.MaritalShare)

	section("Mean age and call duration by job")
	p.Pivot(f.JobMeans)

	section("Ten most contacted clients")
	p.Table(f.MostContacted)

	section("Age and contacts by education")
	p.Pivot(f.Education)
}

func years(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%d years", int(v))
}
