// Package config loads bankeda settings from defaults and an optional YAML
// file. Command-line flags override the loaded values in cmd/bankeda.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when
// no path is given.
const DefaultFile = "bankeda.yaml"

// Settings holds every configurable value.
type Settings struct {
	DataPath        string  `mapstructure:"data_path" yaml:"data_path"`
	Delimiter       string  `mapstructure:"delimiter" yaml:"delimiter"`
	Schema          string  `mapstructure:"schema" yaml:"schema"` // "infer" or "bank"
	OutputDir       string  `mapstructure:"output_dir" yaml:"output_dir"`
	FigureWidth     float64 `mapstructure:"figure_width" yaml:"figure_width"`   // inches
	FigureHeight    float64 `mapstructure:"figure_height" yaml:"figure_height"` // inches
	HistBins        int     `mapstructure:"hist_bins" yaml:"hist_bins"`
	KDEPoints       int     `mapstructure:"kde_points" yaml:"kde_points"`
	PercentDecimals int     `mapstructure:"percent_decimals" yaml:"percent_decimals"`
	HeadRows        int     `mapstructure:"head_rows" yaml:"head_rows"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		DataPath:        "bank-additional-full.csv",
		Delimiter:       ";",
		Schema:          "infer",
		OutputDir:       "figures",
		FigureWidth:     8,
		FigureHeight:    6,
		HistBins:        10,
		KDEPoints:       100,
		PercentDecimals: 1,
		HeadRows:        10,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("schema", d.Schema)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("figure_width", d.FigureWidth)
	v.SetDefault("figure_height", d.FigureHeight)
	v.SetDefault("hist_bins", d.HistBins)
	v.SetDefault("kde_points", d.KDEPoints)
	v.SetDefault("percent_decimals", d.PercentDecimals)
	v.SetDefault("head_rows", d.HeadRows)
}

// Load merges the defaults with the YAML file at cfgFile. With an empty
// cfgFile, DefaultFile in the working directory is read if it exists.
// Environment variables are not consulted.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("bankeda")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate rejects settings the commands cannot run with.
func (s *Settings) Validate() error {
	switch s.Schema {
	case "infer", "bank":
	default:
		return fmt.Errorf("invalid schema %q (use infer or bank)", s.Schema)
	}
	if s.FigureWidth <= 0 || s.FigureHeight <= 0 {
		return fmt.Errorf("invalid figure size %gx%g", s.FigureWidth, s.FigureHeight)
	}
	if s.HistBins <= 0 {
		return fmt.Errorf("invalid hist_bins %d", s.HistBins)
	}
	if s.KDEPoints < 2 {
		return fmt.Errorf("invalid kde_points %d", s.KDEPoints)
	}
	if s.PercentDecimals < 0 {
		return fmt.Errorf("invalid percent_decimals %d", s.PercentDecimals)
	}
	return nil
}

// Set assigns one setting by its YAML key.
func (s *Settings) Set(key, val string) error {
	atoi := func() (int, error) {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("invalid int for %s: %v", key, val)
		}
		return i, nil
	}
	atof := func() (float64, error) {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid float for %s: %v", key, val)
		}
		return f, nil
	}

	var err error
	switch key {
	case "data_path":
		s.DataPath = val
	case "delimiter":
		s.Delimiter = val
	case "schema":
		s.Schema = val
	case "output_dir":
		s.OutputDir = val
	case "figure_width":
		s.FigureWidth, err = atof()
	case "figure_height":
		s.FigureHeight, err = atof()
	case "hist_bins":
		s.HistBins, err = atoi()
	case "kde_points":
		s.KDEPoints, err = atoi()
	case "percent_decimals":
		s.PercentDecimals, err = atoi()
	case "head_rows":
		s.HeadRows, err = atoi()
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	if err != nil {
		return err
	}
	return s.Validate()
}

// Save writes s as YAML to path, or to DefaultFile when path is empty.
func Save(s *Settings, path string) error {
	if path == "" {
		path = DefaultFile
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
