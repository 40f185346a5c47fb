package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/akhildatla/bankeda/internal/config"
	"github.com/akhildatla/bankeda/pkg/bank"
	"github.com/akhildatla/bankeda/pkg/expr"
	"github.com/akhildatla/bankeda/pkg/frame"
	"github.com/akhildatla/bankeda/pkg/loader"
	"github.com/akhildatla/bankeda/pkg/printer"
	"github.com/akhildatla/bankeda/pkg/report"
)

// app holds the flags and configuration shared by every command.
type app struct {
	out    io.Writer
	errOut io.Writer
	log    *log.Logger

	cfgFile   string
	dataPath  string
	delimiter string
	schema    string
	where     string
	recodeY   bool
	verbose   bool

	cfg *config.Settings
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, log: log.New(io.Discard, "", 0)}
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "bankeda",
		Short:         "Exploratory data analysis of the bank marketing dataset",
		Long:          `bankeda loads bank-additional-full.csv (or any delimited, JSON Lines or Parquet file) and answers descriptive queries: summary statistics, value counts, sorts, filters, group aggregates, cross tabulations, pivot tables and charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, false)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.DefaultFile+")")
	f.StringVar(&a.dataPath, "data", "", "data file (overrides data_path)")
	f.StringVar(&a.delimiter, "delimiter", "", `field delimiter, e.g. ";" or "tab" (overrides delimiter)`)
	f.StringVar(&a.schema, "schema", "", "column kinds: infer or bank (overrides schema)")
	f.StringVar(&a.where, "where", "", `filter rows first, e.g. 'y == "yes" and marital == "single"'`)
	f.BoolVar(&a.recodeY, "recode-y", false, "map y no/yes to 0/1 after loading")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(
		a.describeCmd(),
		a.countsCmd(),
		a.sortCmd(),
		a.crosstabCmd(),
		a.pivotCmd(),
		a.reduceCmd(),
		a.chartCmd(),
		a.questionsCmd(),
		a.replCmd(),
		a.configCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the configuration and applies flag overrides. With
// allowMissing, a --config file that does not exist yet yields the
// defaults.
func (a *app) setup(cmd *cobra.Command, allowMissing bool) error {
	if a.verbose {
		a.log = log.New(a.errOut, "bankeda: ", 0)
	}

	var cfg *config.Settings
	if _, err := os.Stat(a.cfgFile); allowMissing && a.cfgFile != "" && errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if cfg, err = config.Load(a.cfgFile); err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("data") {
		cfg.DataPath = a.dataPath
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = a.delimiter
	}
	if f.Changed("schema") {
		cfg.Schema = a.schema
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) loadOptions() (loader.Options, error) {
	delim, err := loader.ParseDelimiter(a.cfg.Delimiter)
	if err != nil {
		return loader.Options{}, err
	}
	opt := loader.Options{Delimiter: delim}
	if a.cfg.Schema == "bank" {
		opt.Schema = bank.Schema
	}
	return opt, nil
}

// table loads the data file and applies --recode-y and --where.
func (a *app) table() (*frame.Table, error) {
	opt, err := a.loadOptions()
	if err != nil {
		return nil, err
	}
	t, err := loader.Load(a.cfg.DataPath, opt)
	if err != nil {
		return nil, err
	}
	a.log.Printf("loaded %s: %d rows, %d columns", a.cfg.DataPath, t.NRows(), t.NCols())

	if a.recodeY {
		if t, err = bank.RecodeTarget(t); err != nil {
			return nil, err
		}
	}
	if a.where != "" {
		p, err := expr.Compile(a.where)
		if err != nil {
			return nil, fmt.Errorf("--where: %w", err)
		}
		if t, err = report.Filter(t, p); err != nil {
			return nil, err
		}
		a.log.Printf("where %s: %d rows", a.where, t.NRows())
	}
	return t, nil
}

func (a *app) printer() *printer.Printer {
	return printer.New(a.out)
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "bankeda version %s\n", version)
			if commit != "none" {
				fmt.Fprintf(a.out, "  commit: %s\n", commit)
			}
			if date != "unknown" {
				fmt.Fprintf(a.out, "  built:  %s\n", date)
			}
		},
	}
}

// createOutputDir makes sure the figure directory exists.
func (a *app) createOutputDir() error {
	if a.cfg.OutputDir == "" {
		return nil
	}
	return os.MkdirAll(a.cfg.OutputDir, 0o755)
}
