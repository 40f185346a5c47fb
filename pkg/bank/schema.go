// Package bank knows the layout of the UCI bank marketing dataset
// (bank-additional-full.csv) and answers the standard set of exploratory
// questions about it.
package bank

import (
	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/loader"
	"github.com/akhildatla/bankeda/pkg/report"
)

// Delimiter separates fields in bank-additional-full.csv.
const Delimiter = ';'

// Target is the outcome column: did the client subscribe a term deposit.
const Target = "y"

// Schema declares the kind of every column of the dataset.
var Schema = map[string]frame.Kind{
	"age":            frame.KindInt,
	"job":            frame.KindCategorical,
	"marital":        frame.KindCategorical,
	"education":      frame.KindCategorical,
	"default":        frame.KindCategorical,
	"housing":        frame.KindCategorical,
	"loan":           frame.KindCategorical,
	"contact":        frame.KindCategorical,
	"month":          frame.KindCategorical,
	"day_of_week":    frame.KindCategorical,
	"duration":       frame.KindInt,
	"campaign":       frame.KindInt,
	"pdays":          frame.KindInt,
	"previous":       frame.KindInt,
	"poutcome":       frame.KindCategorical,
	"emp.var.rate":   frame.KindReal,
	"cons.price.idx": frame.KindReal,
	"cons.conf.idx":  frame.KindReal,
	"euribor3m":      frame.KindReal,
	"nr.employed":    frame.KindReal,
	"y":              frame.KindBinary,
}

// Columns lists the dataset columns in file order.
var Columns = []string{
	"age", "job", "marital", "education", "default", "housing", "loan",
	"contact", "month", "day_of_week", "duration", "campaign", "pdays",
	"previous", "poutcome", "emp.var.rate", "cons.price.idx",
	"cons.conf.idx", "euribor3m", "nr.employed", "y",
}

// TargetMapping recodes the outcome to 0/1.
var TargetMapping = report.Mapping{"no": int64(0), "yes": int64(1)}

// Load reads a file in the dataset layout with the reference schema.
func Load(path string) (*frame.Table, error) {
	return loader.Load(path, loader.Options{Delimiter: Delimiter, Schema: Schema})
}

// RecodeTarget returns a copy of t with y mapped no→0, yes→1. A table whose
// y is already stored as integers is returned unchanged.
func RecodeTarget(t *frame.Table) (*frame.Table, error) {
	c, err := t.Col(Target)
	if err != nil {
		return nil, &report.QueryError{Op: "recode", Column: Target, Err: err}
	}
	if c.Integer() {
		return t, nil
	}
	return report.Recode(t, Target, TargetMapping)
}

// Attracted matches clients with y == 1.
func Attracted() report.Predicate {
	return report.Eq(Target, int64(1))
}
