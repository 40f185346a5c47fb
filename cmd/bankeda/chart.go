package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akhildatla/bankeda/pkg/bank"
	"github.com/akhildatla/bankeda/pkg/chart"
)

func (a *app) chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render histograms, box plots and scatter matrices",
	}
	cmd.PersistentFlags().StringP("out", "o", "", "output file (default <output_dir>/<name>.png)")
	cmd.AddCommand(a.histCmd(), a.boxCmd(), a.scatterCmd(), a.allChartsCmd())
	return cmd
}

// save writes fig to --out, or to the output directory under name.
func (a *app) save(cmd *cobra.Command, fig *chart.Figure, name string) error {
	fig.SetSize(a.cfg.FigureWidth, a.cfg.FigureHeight)
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		if err := a.createOutputDir(); err != nil {
			return err
		}
		path = filepath.Join(a.cfg.OutputDir, name+".png")
	}
	if err := fig.Save(path); err != nil {
		return err
	}
	a.log.Printf("wrote %s", path)
	return nil
}

func (a *app) histCmd() *cobra.Command {
	var bins int
	var title, xlabel string
	cmd := &cobra.Command{
		Use:   "hist [columns...]",
		Short: "Histogram of one column, or a grid of several (all numeric by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			opt := chart.HistOptions{Bins: a.cfg.HistBins, Title: title, XLabel: xlabel}
			if cmd.Flags().Changed("bins") {
				opt.Bins = bins
			}

			var fig *chart.Figure
			name := "hist_grid"
			if len(args) == 1 {
				fig, err = chart.Histogram(t, args[0], opt)
				name = args[0] + "_hist"
			} else {
				fig, err = chart.HistogramGrid(t, args, opt)
			}
			if err != nil {
				return err
			}
			return a.save(cmd, fig, name)
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 0, "number of bins (default hist_bins)")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	cmd.Flags().StringVar(&xlabel, "xlabel", "", "x axis label")
	return cmd
}

func (a *app) boxCmd() *cobra.Command {
	var by []string
	var title string
	cmd := &cobra.Command{
		Use:   "box <column>",
		Short: "Box plot of a column, one box per group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			fig, err := chart.BoxPlot(t, args[0], by, chart.BoxOptions{Title: title})
			if err != nil {
				return err
			}
			name := args[0] + "_box"
			for _, b := range by {
				name += "_" + b
			}
			return a.save(cmd, fig, name)
		},
	}
	cmd.Flags().StringSliceVar(&by, "by", nil, "group key columns")
	cmd.Flags().StringVar(&title, "title", "", "plot title")
	return cmd
}

func (a *app) scatterCmd() *cobra.Command {
	var diagonal string
	cmd := &cobra.Command{
		Use:   "scatter [columns...]",
		Short: "Scatter matrix of numeric columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			fig, err := chart.ScatterMatrix(t, args, chart.ScatterOptions{
				Diagonal:  diagonal,
				KDEPoints: a.cfg.KDEPoints,
				Bins:      a.cfg.HistBins,
			})
			if err != nil {
				return err
			}
			return a.save(cmd, fig, "scatter_matrix")
		},
	}
	cmd.Flags().StringVar(&diagonal, "diagonal", chart.DiagonalKDE, "diagonal panels: kde or hist")
	return cmd
}

func (a *app) allChartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Render the standard set of figures into output_dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			figs, err := bank.Figures(t, bank.FigureOptions{
				Width:     a.cfg.FigureWidth,
				Height:    a.cfg.FigureHeight,
				Bins:      a.cfg.HistBins,
				KDEPoints: a.cfg.KDEPoints,
			})
			if err != nil {
				return err
			}
			if err := a.createOutputDir(); err != nil {
				return err
			}
			for _, f := range figs {
				path := filepath.Join(a.cfg.OutputDir, f.Name+".png")
				if err := f.Figure.Save(path); err != nil {
					return err
				}
				a.log.Printf("wrote %s", path)
			}
			return nil
		},
	}
}
