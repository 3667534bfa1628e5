// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/blssim/blssim/cfg"
	"github.com/blssim/blssim/clock"
	"github.com/blssim/blssim/internal/logger"
	"github.com/blssim/blssim/internal/record"
	"github.com/blssim/blssim/internal/util"
	"github.com/blssim/blssim/metrics"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const banner = `
  ____  _      _____
 |  _ \| |    / ____|
 | |_) | |   | (___
 |  _ <| |    \___ \
 | |_) | |____ ____) |
 |____/|______|_____/

             BLS ALGERIA BOOKING SIMULATOR
`

const (
	inputNotFoundMessage = "Input file not found. Generate records first or provide a file path."
	genericErrorMessage  = "An error occurred. See log file for details."
)

var (
	// ErrInputNotFound reports a missing record list.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInvalidConfig wraps errors reading or validating configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage wraps command-line parsing errors.
	ErrUsage = errors.New("invalid usage")
)

// app carries the state shared by the subcommands of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	config  cfg.Config
	clock   clock.Clock
	rand    *rand.Rand

	metricHandle metrics.MetricHandle
	summary      *metrics.Summary
	closeMetrics func()
}

// NewRootCmd builds the command tree on a fresh viper instance.
func NewRootCmd() (*cobra.Command, error) {
	a := &app{
		v:     viper.New(),
		clock: clock.RealClock{},
	}

	rootCmd := &cobra.Command{
		Use:   "blssim",
		Short: "BLS Algeria booking simulator",
		Long: `blssim generates synthetic records, checks them concurrently against a
simulated acceptance rule and simulates booking attempts. The real booking
integration is disabled unless explicitly enabled, and is not implemented.`,
		Version:           getVersion(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setUp,
	}
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w\n%s", ErrUsage, err, c.UsageString())
	})
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config-file", "", "Path to a YAML config file. Flags override its values.")
	if err := cfg.BindFlags(a.v, rootCmd.PersistentFlags()); err != nil {
		return nil, fmt.Errorf("error while binding flags: %w", err)
	}

	for _, newCmd := range []func(*app) (*cobra.Command, error){newGenerateCmd, newCheckCmd, newBookCmd} {
		c, err := newCmd(a)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(c)
	}
	return rootCmd, nil
}

// setUp resolves the effective configuration and initializes logging and
// metrics before any subcommand runs.
func (a *app) setUp(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: error while reading the config file: %w", ErrInvalidConfig, err)
		}
	}
	err := a.v.Unmarshal(&a.config, viper.DecodeHook(cfg.DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
	})
	if err != nil {
		return fmt.Errorf("%w: error while unmarshaling the config: %w", ErrInvalidConfig, err)
	}
	if err = cfg.ValidateConfig(&a.config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err = logger.InitLogFile(a.config.Logging); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if dump, err := cfg.DumpAsYAML(&a.config); err == nil {
		logger.Debugf("Effective config:\n%s", dump)
	}

	seed := uint64(a.config.Random.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	a.rand = rand.New(rand.NewPCG(seed, seed))

	a.metricHandle = metrics.NewNoopMetrics()
	a.closeMetrics = func() {}
	if a.config.Metrics.Summary {
		a.summary = metrics.NewSummary()
		h, err := metrics.NewOTelMetrics(cmd.Context(), 1, 1024)
		if err != nil {
			return fmt.Errorf("error while creating metrics: %w", err)
		}
		a.metricHandle = h
		a.closeMetrics = h.Close
	}

	fmt.Fprintln(cmd.OutOrStdout(), util.Info(banner))
	return nil
}

// runE adapts a subcommand body to cobra. The body's panics are recovered
// into errors and metrics and logging are flushed once it returns.
func (a *app) runE(body func(ctx context.Context, out io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) (err error) {
		defer a.tearDown(cmd.Context())
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v\n%s", p, debug.Stack())
			}
		}()
		return body(cmd.Context(), cmd.OutOrStdout())
	}
}

func (a *app) tearDown(ctx context.Context) {
	a.closeMetrics()
	if a.summary != nil {
		// The command context may already be cancelled.
		ctx = context.WithoutCancel(ctx)
		if err := a.summary.Log(ctx); err != nil {
			logger.Warnf("Failed to log metrics summary: %v", err)
		}
		if err := a.summary.Shutdown(ctx); err != nil {
			logger.Warnf("Failed to shut down metrics: %v", err)
		}
	}
	logger.Close()
}

// inputPath returns override when set and the shared records file otherwise.
func (a *app) inputPath(override cfg.ResolvedPath) string {
	if override != "" {
		return string(override)
	}
	return string(a.config.Files.RecordsFile)
}

// loadRecords reads the record list at path, mapping a missing file to
// ErrInputNotFound.
func loadRecords(path string) ([]record.Record, error) {
	recs, err := record.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	return recs, err
}

// ExecuteContext runs root and reports any error on its error stream.
func ExecuteContext(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		reportError(root.ErrOrStderr(), err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	switch {
	case errors.Is(err, ErrInputNotFound):
		logger.Warnf("%v", err)
		fmt.Fprintln(w, util.Failure(inputNotFoundMessage))
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUsage):
		fmt.Fprintln(w, util.Failure(err.Error()))
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, util.Warning("Interrupted."))
	default:
		logger.Errorf("Unhandled error: %v", err)
		fmt.Fprintln(w, util.Failure(genericErrorMessage))
	}
}

// Execute runs the command line and exits non-zero on failure. SIGINT and
// SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root, err := NewRootCmd()
	if err != nil {
		stop()
		logger.Errorf("Error while creating the root command: %v", err)
		fmt.Fprintln(os.Stderr, util.Failure(genericErrorMessage))
		os.Exit(1)
	}
	err = ExecuteContext(ctx, root)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
