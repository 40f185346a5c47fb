package report

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/akhildatla/bankeda/internal/testutil"
	"github.com/akhildatla/bankeda/pkg/frame"
)

func TestGroupAggregate_MeanByMarital(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	out, err := GroupAggregate(tbl, []string{"marital"}, []string{"age"}, AggMean)
	if err != nil {
		t.Fatalf("GroupAggregate failed: %v", err)
	}

	if names := out.Names(); !reflect.DeepEqual(names, []string{"marital", "age"}) {
		t.Fatalf("expected [marital age], got %v", names)
	}
	keys := columnValues(t, out, "marital")
	if !reflect.DeepEqual(keys, []interface{}{"divorced", "married", "single"}) {
		t.Errorf("expected ascending keys, got %v", keys)
	}
	age, _ := out.Col("age")
	for i, want := range []float64{45, 50.5, 28} {
		got, _ := age.Float(i)
		testutil.AssertFloat64Near(t, want, got, 1e-9)
	}
}

func TestGroupAggregate_AttractedClients(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	attracted, err := Filter(tbl, Eq("y", "yes"))
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	out, err := GroupAggregate(attracted, []string{"y"}, []string{"age", "duration"}, AggMean)
	if err != nil {
		t.Fatalf("GroupAggregate failed: %v", err)
	}
	if out.NRows() != 1 {
		t.Fatalf("expected one group, got %d", out.NRows())
	}
	r := out.Row(0)
	age, _ := r.Float("age")
	duration, _ := r.Float("duration")
	testutil.AssertFloat64Near(t, 43.25, age, 1e-9)
	testutil.AssertFloat64Near(t, 734.75, duration, 1e-9)
}

func TestGroupAggregate_CountIsInt(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	out, err := GroupAggregate(tbl, []string{"marital", "y"}, []string{"age"}, AggCount)
	if err != nil {
		t.Fatalf("GroupAggregate failed: %v", err)
	}
	c, _ := out.Col("age")
	if !c.Integer() {
		t.Fatal("expected count column stored as int64")
	}

	// (divorced,no) (married,no) (married,yes) (single,no) (single,yes)
	want := []interface{}{int64(1), int64(4), int64(2), int64(1), int64(2)}
	if got := c.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	y, _ := out.Col("y")
	if y.String(2) != "yes" {
		t.Errorf("expected (married, yes) third, got %s", y.String(2))
	}
}

func TestGroupAggregate_AllFunctions(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	tests := []struct {
		fn   AggFunc
		want float64 // campaign among single clients: 2, 3, 2
	}{
		{AggMean, 7.0 / 3},
		{AggSum, 7},
		{AggMax, 3},
		{AggMin, 2},
		{AggMedian, 2},
		{AggStd, math.Sqrt(1.0 / 3)},
		{AggCount, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.fn), func(t *testing.T) {
			out, err := GroupAggregate(tbl, []string{"marital"}, []string{"campaign"}, tt.fn)
			if err != nil {
				t.Fatalf("GroupAggregate failed: %v", err)
			}
			got, ok := out.Row(2).Float("campaign")
			if !ok {
				t.Fatal("expected a numeric result")
			}
			testutil.AssertFloat64Near(t, tt.want, got, 1e-9)
		})
	}
}

func TestGroupAggregate_DefaultValueColumns(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	out, err := GroupAggregate(tbl, []string{"y"}, nil, AggMean)
	if err != nil {
		t.Fatalf("GroupAggregate failed: %v", err)
	}
	if out.NCols() != 11 {
		t.Errorf("expected key plus 10 numeric columns, got %v", out.Names())
	}
}

func TestGroupAggregate_Errors(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	tests := []struct {
		name   string
		keys   []string
		values []string
		fn     AggFunc
		want   error
	}{
		{"no keys", nil, []string{"age"}, AggMean, ErrInvalidGroupKeys},
		{"duplicate keys", []string{"y", "y"}, []string{"age"}, AggMean, ErrInvalidGroupKeys},
		{"key as value", []string{"y"}, []string{"y"}, AggCount, ErrInvalidGroupKeys},
		{"unknown key", []string{"salary"}, []string{"age"}, AggMean, frame.ErrColumnNotFound},
		{"unknown value", []string{"y"}, []string{"salary"}, AggMean, frame.ErrColumnNotFound},
		{"unknown function", []string{"y"}, []string{"age"}, AggFunc("mode"), ErrUnknownAggFunc},
		{"mean of text", []string{"y"}, []string{"job"}, AggMean, ErrNotNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GroupAggregate(tbl, tt.keys, tt.values, tt.fn)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			var qe *QueryError
			if !errors.As(err, &qe) {
				t.Errorf("expected *QueryError, got %T", err)
			}
		})
	}
}

func TestGroupAggregate_Empty(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	none, _ := Filter(tbl, Eq("marital", "widowed"))

	out, err := GroupAggregate(none, []string{"marital"}, []string{"age"}, AggMean)
	if err != nil {
		t.Fatalf("GroupAggregate failed: %v", err)
	}
	if out.NRows() != 0 || out.NCols() != 2 {
		t.Errorf("expected empty 2-column table, got %dx%d", out.NRows(), out.NCols())
	}
}

func TestGroupBy_Labels(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	groups, err := GroupBy(tbl, "marital", "y")
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Label())
	}
	want := []string{"divorced, no", "married, no", "married, yes", "single, no", "single, yes"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("expected %v, got %v", want, labels)
	}
	if !reflect.DeepEqual(groups[2].Rows, []int{7, 9}) {
		t.Errorf("expected rows [7 9], got %v", groups[2].Rows)
	}
}

func TestParseAggFunc(t *testing.T) {
	for _, fn := range AggFuncs {
		got, err := ParseAggFunc(string(fn))
		if err != nil || got != fn {
			t.Errorf("ParseAggFunc(%s) = %s, %v", fn, got, err)
		}
	}
	if got, _ := ParseAggFunc(" AVG "); got != AggMean {
		t.Errorf("expected avg to mean mean, got %s", got)
	}
	if _, err := ParseAggFunc("mode"); !errors.Is(err, ErrUnknownAggFunc) {
		t.Errorf("expected ErrUnknownAggFunc, got %v", err)
	}
}

func TestCrossTab_Counts(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	m, err := CrossTab(tbl, "marital", "y", NormalizeNone)
	if err != nil {
		t.Fatalf("CrossTab failed: %v", err)
	}
	if !reflect.DeepEqual(m.RowLabels, []string{"divorced", "married", "single"}) {
		t.Errorf("unexpected row labels %v", m.RowLabels)
	}
	if !reflect.DeepEqual(m.ColLabels, []string{"no", "yes"}) {
		t.Errorf("unexpected column labels %v", m.ColLabels)
	}

	tests := []struct {
		row, col string
		want     float64
	}{
		{"married", "yes", 2},
		{"married", "no", 4},
		{"single", "yes", 2},
		{"single", "no", 1},
		{"divorced", "no", 1},
		{"divorced", "yes", 0},
		{"widowed", "yes", 0},
	}
	for _, tt := range tests {
		if got := m.Value(tt.row, tt.col); got != tt.want {
			t.Errorf("(%s, %s): expected %v, got %v", tt.row, tt.col, tt.want, got)
		}
	}
	if m.Total() != 10 {
		t.Errorf("expected total 10, got %v", m.Total())
	}
}

func TestCrossTab_TargetByMarital(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	recoded, err := Recode(tbl, "y", Mapping{"no": 0, "yes": 1})
	if err != nil {
		t.Fatalf("Recode failed: %v", err)
	}

	m, err := CrossTab(recoded, "y", "marital", NormalizeNone)
	if err != nil {
		t.Fatalf("CrossTab failed: %v", err)
	}
	if got := m.Value("1", "married"); got != 2 {
		t.Errorf("expected 2 married attracted clients, got %v", got)
	}
}

func TestCrossTab_Normalize(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	idx, err := CrossTab(tbl, "marital", "y", NormalizeIndex)
	if err != nil {
		t.Fatalf("CrossTab failed: %v", err)
	}
	r, c := idx.Dims()
	for i := 0; i < r; i++ {
		testutil.AssertFloat64Near(t, 1, idx.RowSum(i), 1e-12)
	}
	testutil.AssertFloat64Near(t, 2.0/3, idx.Value("married", "no"), 1e-12)

	cols, _ := CrossTab(tbl, "marital", "y", NormalizeColumns)
	for j := 0; j < c; j++ {
		testutil.AssertFloat64Near(t, 1, cols.ColSum(j), 1e-12)
	}
	testutil.AssertFloat64Near(t, 0.5, cols.Value("single", "yes"), 1e-12)

	all, _ := CrossTab(tbl, "marital", "y", NormalizeAll)
	testutil.AssertFloat64Near(t, 1, all.Total(), 1e-12)
	testutil.AssertFloat64Near(t, 0.4, all.Value("married", "no"), 1e-12)
}

func TestCrossTab_IndexRowsSumToOne(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	pairs := [][2]string{{"job", "y"}, {"education", "marital"}, {"campaign", "contact"}, {"y", "month"}}

	for _, p := range pairs {
		m, err := CrossTab(tbl, p[0], p[1], NormalizeIndex)
		if err != nil {
			t.Fatalf("CrossTab(%s, %s) failed: %v", p[0], p[1], err)
		}
		r, _ := m.Dims()
		for i := 0; i < r; i++ {
			testutil.AssertFloat64Near(t, 1, m.RowSum(i), 1e-12)
		}
	}
}

func TestCrossTab_Margins(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	m, _ := CrossTab(tbl, "marital", "y", NormalizeNone)

	mm := m.Margins()
	if r, c := mm.Dims(); r != 4 || c != 3 {
		t.Fatalf("expected 4x3, got %dx%d", r, c)
	}
	if got := mm.Value("married", MarginLabel); got != 6 {
		t.Errorf("expected married total 6, got %v", got)
	}
	if got := mm.Value(MarginLabel, "yes"); got != 4 {
		t.Errorf("expected yes total 4, got %v", got)
	}
	if got := mm.Value(MarginLabel, MarginLabel); got != 10 {
		t.Errorf("expected grand total 10, got %v", got)
	}
	if r, _ := m.Dims(); r != 3 {
		t.Error("source matrix changed")
	}
}

func TestCrossTab_Errors(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	if _, err := CrossTab(tbl, "marital", "salary", NormalizeNone); !errors.Is(err, frame.ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
	if _, err := CrossTab(tbl, "marital", "y", Normalize("rows")); !errors.Is(err, ErrInvalidNormalize) {
		t.Errorf("expected ErrInvalidNormalize, got %v", err)
	}
	if _, err := ParseNormalize("rows"); !errors.Is(err, ErrInvalidNormalize) {
		t.Errorf("expected ErrInvalidNormalize, got %v", err)
	}
	if n, err := ParseNormalize("Index"); err != nil || n != NormalizeIndex {
		t.Errorf("ParseNormalize(Index) = %q, %v", n, err)
	}
}

func TestCrossTab_Empty(t *testing.T) {
	tbl := testutil.MakeBankTable(t).Head(0)

	m, err := CrossTab(tbl, "marital", "y", NormalizeIndex)
	if err != nil {
		t.Fatalf("CrossTab failed: %v", err)
	}
	if r, c := m.Dims(); r != 0 || c != 0 || m.Total() != 0 {
		t.Errorf("expected empty matrix, got %dx%d", r, c)
	}
}

func TestPivot_ColumnOrder(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	p, err := Pivot(tbl, []string{"age", "campaign"}, []string{"marital"}, []AggFunc{AggMean, AggCount})
	if err != nil {
		t.Fatalf("Pivot failed: %v", err)
	}

	want := []string{"marital", "mean(age)", "mean(campaign)", "count(age)", "count(campaign)"}
	if got := p.Table.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if len(p.Columns) != 4 || p.Columns[2] != (PivotColumn{Agg: AggCount, Value: "age"}) {
		t.Errorf("unexpected pivot columns %v", p.Columns)
	}

	mc, err := p.Column(AggMean, "campaign")
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	single, _ := mc.Float(2)
	testutil.AssertFloat64Near(t, 7.0/3, single, 1e-9)

	cnt, _ := p.Column(AggCount, "age")
	if cnt.Value(1) != int64(6) {
		t.Errorf("expected 6 married clients, got %v", cnt.Value(1))
	}
}

func TestPivot_SingleAggMatchesGroupAggregate(t *testing.T) {
	tbl := testutil.MakeBankTable(t)
	values := []string{"age", "duration", "campaign"}
	keys := []string{"education", "y"}

	for _, fn := range AggFuncs {
		t.Run(string(fn), func(t *testing.T) {
			p, err := Pivot(tbl, values, keys, []AggFunc{fn})
			if err != nil {
				t.Fatalf("Pivot failed: %v", err)
			}
			g, err := GroupAggregate(tbl, keys, values, fn)
			if err != nil {
				t.Fatalf("GroupAggregate failed: %v", err)
			}
			if p.Table.NRows() != g.NRows() {
				t.Fatalf("row counts differ: %d vs %d", p.Table.NRows(), g.NRows())
			}
			for _, k := range keys {
				if !reflect.DeepEqual(columnValues(t, p.Table, k), columnValues(t, g, k)) {
					t.Errorf("key column %s differs", k)
				}
			}
			for _, v := range values {
				pc, _ := p.Column(fn, v)
				if !reflect.DeepEqual(formatted(pc.Values()), formatted(columnValues(t, g, v))) {
					t.Errorf("value column %s differs", v)
				}
			}
		})
	}
}

// formatted renders values as text so NaN results compare equal.
func formatted(vals []interface{}) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = frame.FormatValue(v)
	}
	return out
}

func TestPivot_Errors(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	if _, err := Pivot(tbl, []string{"age"}, []string{"marital"}, nil); !errors.Is(err, ErrUnknownAggFunc) {
		t.Errorf("expected ErrUnknownAggFunc for empty list, got %v", err)
	}
	if _, err := Pivot(tbl, []string{"age"}, nil, []AggFunc{AggMean}); !errors.Is(err, ErrInvalidGroupKeys) {
		t.Errorf("expected ErrInvalidGroupKeys, got %v", err)
	}
	if _, err := Pivot(tbl, []string{"age"}, []string{"marital"}, []AggFunc{"mode"}); !errors.Is(err, ErrUnknownAggFunc) {
		t.Errorf("expected ErrUnknownAggFunc, got %v", err)
	}
}

func TestReduce_Max(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	vals, err := Reduce(tbl, AggMax)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if len(vals) != tbl.NCols() {
		t.Fatalf("expected one value per column, got %d", len(vals))
	}

	got := make(map[string]interface{}, len(vals))
	for _, v := range vals {
		got[v.Column] = v.Value
	}
	if got["age"] != 61.0 {
		t.Errorf("expected max age 61, got %v", got["age"])
	}
	if got["job"] != "technician" {
		t.Errorf("expected lexical max technician, got %v", got["job"])
	}
	if got["education"] != "university.degree" {
		t.Errorf("expected university.degree, got %v", got["education"])
	}
}

func TestReduce_NumericOnlySkipsText(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	vals, err := Reduce(tbl, AggMean)
	if err != nil {
		t.Fatalf("Reduce failed: %v", err)
	}
	if len(vals) != 10 {
		t.Errorf("expected 10 numeric columns, got %d", len(vals))
	}
	if _, err := Reduce(tbl, "mode"); !errors.Is(err, ErrUnknownAggFunc) {
		t.Errorf("expected ErrUnknownAggFunc, got %v", err)
	}
}

func TestMean(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	v, err := Mean(tbl, "age")
	if err != nil {
		t.Fatalf("Mean failed: %v", err)
	}
	testutil.AssertFloat64Near(t, 43.2, v, 1e-9)

	if _, err := Mean(tbl, "job"); !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}

	means := ColumnMeans(tbl)
	if len(means) != 10 || means[0].Column != "age" {
		t.Errorf("unexpected column means %v", means)
	}
}

func TestSelect(t *testing.T) {
	tbl := testutil.MakeBankTable(t)

	out, err := Select(tbl, "age", "y")
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if out.NCols() != 2 {
		t.Errorf("expected 2 columns, got %d", out.NCols())
	}
	var qe *QueryError
	if _, err := Select(tbl, "salary"); !errors.As(err, &qe) {
		t.Errorf("expected *QueryError, got %v", err)
	}
	if Head(tbl, 3).NRows() != 3 {
		t.Error("expected 3 rows from Head")
	}
}
