package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/akhildatla/bankeda/internal/config"
	"github.com/akhildatla/bankeda/pkg/bank"
	"github.com/akhildatla/bankeda/pkg/repl"
)

func (a *app) questionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Answer the standard questions about the bank dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.table()
			if err != nil {
				return err
			}
			f, err := bank.Analyze(t)
			if err != nil {
				return err
			}
			f.Report(a.out, a.cfg.PercentDecimals)
			return nil
		},
	}
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive query shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := a.loadOptions()
			if err != nil {
				return err
			}
			r := repl.New()
			r.SetLoadOptions(opt)
			r.SetHeadRows(a.cfg.HeadRows)
			r.SetPercentDecimals(a.cfg.PercentDecimals)

			// The shell starts empty when the data file is absent.
			if _, err := os.Stat(a.cfg.DataPath); err == nil {
				t, err := a.table()
				if err != nil {
					return err
				}
				r.SetTable(t, a.cfg.DataPath)
			}
			r.Start(cmd.InOrStdin(), a.out)
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or write bankeda configuration",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, true)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
			_, err = a.out.Write(b)
			return err
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(a.cfg, a.cfgFile); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Saved config")
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and save to disk",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.Save(a.cfg, a.cfgFile); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Saved config")
			return nil
		},
	}

	cmd.AddCommand(show, initCmd, set)
	return cmd
}
