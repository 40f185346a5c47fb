package main

import (
	"github.com/spf13/cobra"

	"github.com/akhildatla/bankeda/pkg/loader"
	"github.com/akhildatla/bankeda/pkg/report"
)

func (a *app) describeCmd() *cobra.Command {
	var all, categorical bool
	cmd := &cobra.Command{
		Use:   "describe [columns...]",
		Short: "Summary statistics of numeric (or all) columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			opt := report.DescribeOptions{Columns: args}
			switch {
			case all:
				opt.Include = report.IncludeAll
			case categorical:
				opt.Include = report.IncludeCategorical
			}
			s, err := report.Describe(t, opt)
			if err != nil {
				return err
			}
			a.printer().Summary(s)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include categorical columns")
	cmd.Flags().BoolVar(&categorical, "categorical", false, "only categorical columns")
	return cmd
}

func (a *app) countsCmd() *cobra.Command {
	var normalize bool
	cmd := &cobra.Command{
		Use:   "counts <column>",
		Short: "Count the distinct values of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			cs, err := report.CountColumn(t, args[0], normalize)
			if err != nil {
				return err
			}
			a.printer().Counts(args[0], cs, normalize)
			return nil
		},
	}
	cmd.Flags().BoolVar(&normalize, "normalize", false, "print shares instead of counts")
	return cmd
}

func (a *app) sortCmd() *cobra.Command {
	var head int
	var csv bool
	cmd := &cobra.Command{
		Use:   "sort <column[:desc]>...",
		Short: "Sort rows by one or more columns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			keys := make([]report.SortKey, len(args))
			for i, arg := range args {
				if keys[i], err = report.ParseSortKey(arg); err != nil {
					return err
				}
			}
			sorted, err := report.SortBy(t, keys...)
			if err != nil {
				return err
			}

			n := a.cfg.HeadRows
			if cmd.Flags().Changed("head") {
				n = head
			}
			if n > 0 {
				sorted = sorted.Head(n)
			}
			if csv {
				opt, err := a.loadOptions()
				if err != nil {
					return err
				}
				return loader.WriteCSV(a.out, sorted, opt.Delimiter)
			}
			a.printer().Table(sorted)
			return nil
		},
	}
	cmd.Flags().IntVar(&head, "head", 0, "rows to print, 0 for all (default head_rows)")
	cmd.Flags().BoolVar(&csv, "csv", false, "write delimited text instead of a table")
	return cmd
}

func (a *app) crosstabCmd() *cobra.Command {
	var normalize string
	var margins bool
	cmd := &cobra.Command{
		Use:   "crosstab <row> <column>",
		Short: "Cross tabulate two columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			norm, err := report.ParseNormalize(normalize)
			if err != nil {
				return err
			}
			t, err := a.table()
			if err != nil {
				return err
			}
			m, err := report.CrossTab(t, args[0], args[1], norm)
			if err != nil {
				return err
			}
			if margins {
				m = m.Margins()
			}
			a.printer().Matrix(m)
			return nil
		},
	}
	cmd.Flags().StringVar(&normalize, "normalize", "", "index, columns or all")
	cmd.Flags().BoolVar(&margins, "margins", false, "add row and column totals")
	return cmd
}

func (a *app) pivotCmd() *cobra.Command {
	var index, values, aggs []string
	cmd := &cobra.Command{
		Use:   "pivot --index <cols> [--values <cols>] [--agg <funcs>]",
		Short: "Aggregate value columns grouped by index columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fns := make([]report.AggFunc, len(aggs))
			for i, name := range aggs {
				f, err := report.ParseAggFunc(name)
				if err != nil {
					return err
				}
				fns[i] = f
			}
			t, err := a.table()
			if err != nil {
				return err
			}
			pt, err := report.Pivot(t, values, index, fns)
			if err != nil {
				return err
			}
			a.printer().Pivot(pt)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&index, "index", nil, "group key columns")
	cmd.Flags().StringSliceVar(&values, "values", nil, "columns to aggregate (default all numeric)")
	cmd.Flags().StringSliceVar(&aggs, "agg", []string{"mean"}, "aggregations: mean, count, max, min, sum, median, std")
	_ = cmd.MarkFlagRequired("index")
	return cmd
}

func (a *app) reduceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reduce <func>",
		Short: "Apply an aggregation to every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := report.ParseAggFunc(args[0])
			if err != nil {
				return err
			}
			t, err := a.table()
			if err != nil {
				return err
			}
			vals, err := report.Reduce(t, fn)
			if err != nil {
				return err
			}
			a.printer().Values(vals)
			return nil
		},
	}
}
