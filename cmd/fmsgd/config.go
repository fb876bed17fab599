// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the fmsgd configuration file (~/.config/fmsgd/config.yaml).
// Pointer fields separate "not set" from zero values.
type Config struct {
	DataDir string `yaml:"data_dir"`

	// Update parameters
	LearningRate *float64 `yaml:"learning_rate"`
	MR           *float64 `yaml:"m_r"`
	ML           *float64 `yaml:"m_l"`
	K            *int64   `yaml:"k"`

	// Dataset layout overrides
	Label      *int64 `yaml:"label"`
	Attributes *int64 `yaml:"attributes"`

	// Check
	Workers *int64   `yaml:"workers"`
	Trials  *int64   `yaml:"trials"`
	Expect  *float64 `yaml:"expect"`
	RelTol  *float64 `yaml:"rel_tol"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "fmsgd", "config.yaml")
}

// LoadConfig reads the config file at path. An empty path means the
// default location, which may be absent (zero Config). An explicit path
// must exist.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if path = configPath(); path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// flagSetter reports whether a flag was given on the command line.
// *cli.Command satisfies it.
type flagSetter interface {
	IsSet(name string) bool
}

// updateSettings are the resolved values of the update command.
type updateSettings struct {
	dataDir      string
	learningRate float64
	mr, ml       float64
	k            int64
	label        int64
	attributes   int64
	workers      int64
	trials       int64
	expect       float64
	hasExpect    bool
	relTol       float64
	logLevel     string
	logFormat    string
}

// applyUpdateConfig copies config values into s for every flag that was
// not set explicitly.
func applyUpdateConfig(c flagSetter, cfg Config, s *updateSettings) {
	if cfg.DataDir != "" && !c.IsSet("data") {
		s.dataDir = cfg.DataDir
	}
	if cfg.LearningRate != nil && !c.IsSet("lr") {
		s.learningRate = *cfg.LearningRate
	}
	if cfg.MR != nil && !c.IsSet("mr") {
		s.mr = *cfg.MR
	}
	if cfg.ML != nil && !c.IsSet("ml") {
		s.ml = *cfg.ML
	}
	if cfg.K != nil && !c.IsSet("k") {
		s.k = *cfg.K
	}
	if cfg.Label != nil && !c.IsSet("label") {
		s.label = *cfg.Label
	}
	if cfg.Attributes != nil && !c.IsSet("attributes") {
		s.attributes = *cfg.Attributes
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		s.workers = *cfg.Workers
	}
	if cfg.Trials != nil && !c.IsSet("trials") {
		s.trials = *cfg.Trials
	}
	if cfg.Expect != nil && !c.IsSet("expect") && !c.IsSet("reference") {
		s.expect, s.hasExpect = *cfg.Expect, true
	}
	if cfg.RelTol != nil && !c.IsSet("rel-tol") {
		s.relTol = *cfg.RelTol
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		s.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		s.logFormat = cfg.LogFormat
	}
}
