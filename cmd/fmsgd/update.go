// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/fmsgd/dataset"
	"github.com/katalvlaran/fmsgd/fm"
	"github.com/katalvlaran/fmsgd/internal/logger"
	"github.com/katalvlaran/fmsgd/sparse"
)

// runReport is the JSON document written by the update command.
type runReport struct {
	RunID      string        `json:"run_id"`
	DataDir    string        `json:"data_dir"`
	Params     fm.Params     `json:"params"`
	Samples    int           `json:"samples"`
	Attributes int           `json:"attributes"`
	NNZ        int           `json:"nnz"`
	Workers    int64         `json:"workers"`
	Trials     []trialReport `json:"trials"`
	Passed     bool          `json:"passed"`
}

type trialReport struct {
	Index     int        `json:"index"`
	ElapsedMS float64    `json:"elapsed_ms"`
	Error     string     `json:"error,omitempty"`
	Check     *fm.Report `json:"check,omitempty"`
}

func updateCmd() *cli.Command {
	var (
		configFile string
		reference  bool
		s          = updateSettings{
			learningRate: fm.DefaultLearningRate,
			mr:           fm.DefaultMR,
			ml:           fm.DefaultML,
			k:            fm.DefaultK,
			label:        dataset.DefaultLabelColumn,
			attributes:   dataset.DefaultAttributes,
			trials:       1,
			relTol:       fm.DefaultRelTol,
			logLevel:     "info",
			logFormat:    logger.FormatText,
		}
	)

	return &cli.Command{
		Name:  "update",
		Usage: "Load the reference dataset, run the update step and check determinism",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "dataset directory", Destination: &s.dataDir},
			&cli.StringFlag{Name: "config", Usage: "YAML config file (default: user config dir)", Destination: &configFile},
			&cli.Float64Flag{Name: "lr", Usage: "learning rate", Value: s.learningRate, Destination: &s.learningRate},
			&cli.Float64Flag{Name: "mr", Usage: "momentum regularization", Value: s.mr, Destination: &s.mr},
			&cli.Float64Flag{Name: "ml", Usage: "weight decay", Value: s.ml, Destination: &s.ml},
			&cli.Int64Flag{Name: "k", Usage: "factor count", Value: s.k, Destination: &s.k},
			&cli.Int64Flag{Name: "label", Usage: "label column of the raw matrix", Value: s.label, Destination: &s.label},
			&cli.Int64Flag{Name: "attributes", Usage: "expected attribute count (0 skips the check)", Value: s.attributes, Destination: &s.attributes},
			&cli.Int64Flag{Name: "workers", Usage: "kernel goroutines (0 = GOMAXPROCS)", Value: 0, Destination: &s.workers},
			&cli.Int64Flag{Name: "trials", Usage: "number of determinism checks", Value: s.trials, Destination: &s.trials},
			&cli.Float64Flag{Name: "expect", Usage: "expected deltaV_out[0,0]", Destination: &s.expect},
			&cli.BoolFlag{Name: "reference", Usage: "expect the published reference deltaV_out[0,0]", Destination: &reference},
			&cli.Float64Flag{Name: "rel-tol", Usage: "relative tolerance", Value: s.relTol, Destination: &s.relTol},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: s.logLevel, Destination: &s.logLevel},
			&cli.StringFlag{Name: "log-format", Usage: "text or json", Value: s.logFormat, Destination: &s.logFormat},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			switch {
			case cmd.IsSet("expect"):
				s.hasExpect = true
			case reference:
				s.expect, s.hasExpect = dataset.ReferenceDeltaV00, true
			}
			applyUpdateConfig(cmd, cfg, &s)

			if err := runUpdate(ctx, s, cmd.Root().Writer, cmd.Root().ErrWriter); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

// runUpdate loads the dataset, runs the requested trials and writes the
// JSON report to out. Logs go to logs.
func runUpdate(ctx context.Context, s updateSettings, out, logs io.Writer) error {
	if s.dataDir == "" {
		return errors.New("--data is required")
	}
	if s.trials < 1 {
		return fmt.Errorf("--trials must be >= 1, got %d", s.trials)
	}
	if s.workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", s.workers)
	}
	if s.relTol < 0 || math.IsNaN(s.relTol) || math.IsInf(s.relTol, 0) {
		return fmt.Errorf("--rel-tol must be finite and >= 0, got %v", s.relTol)
	}
	if s.k < 1 {
		return fmt.Errorf("--k must be >= 1 (the factor files hold attributes*k values), got %d", s.k)
	}
	if s.label < 0 || s.attributes < 0 {
		return fmt.Errorf("--label and --attributes must be >= 0, got %d and %d", s.label, s.attributes)
	}

	log, err := logger.ForFormat(s.logFormat, logs, logger.ParseLevel(s.logLevel))
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log = log.With("run", runID)
	ctx = logger.WithContext(ctx, log)

	layout := dataset.DefaultLayout()
	layout.Label = int(s.label)
	layout.Attributes = int(s.attributes)
	layout.K = int(s.k)
	sparseOpts := []sparse.Option{sparse.WithWorkers(int(s.workers))}

	ref, err := dataset.LoadReference(ctx, s.dataDir, layout, sparseOpts...)
	if err != nil {
		return err
	}

	params := fm.Params{K: int(s.k), LearningRate: s.learningRate, MR: s.mr, ML: s.ml}
	checkOpts := []fm.CheckOption{fm.WithRelTol(s.relTol), fm.WithSparseOptions(sparseOpts...)}
	if s.hasExpect {
		checkOpts = append(checkOpts, fm.WithExpected(s.expect))
	}

	rep := runReport{
		RunID:      runID,
		DataDir:    s.dataDir,
		Params:     params,
		Samples:    ref.X.Rows(),
		Attributes: ref.X.Cols(),
		NNZ:        ref.X.NNZ(),
		Workers:    s.workers,
		Passed:     true,
	}
	var failure error
	for i := 0; i < int(s.trials); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		check, err := fm.CheckDeterminism(ref.Inputs(), params, checkOpts...)
		tr := trialReport{
			Index:     i,
			ElapsedMS: float64(time.Since(start).Microseconds()) / 1e3,
			Check:     check,
		}
		if err != nil {
			if !errors.Is(err, fm.ErrIntegrityViolation) {
				return err
			}
			tr.Error = err.Error()
			rep.Passed = false
			failure = err
			log.Error("determinism check failed", "trial", i, "err", err)
		} else {
			log.Info("determinism check passed", "trial", i, "value", check.First, "elapsed_ms", tr.ElapsedMS)
		}
		rep.Trials = append(rep.Trials, tr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return failure
}
