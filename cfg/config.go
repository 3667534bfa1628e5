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

package cfg

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string `yaml:"app-name"`

	Booking BookingConfig `yaml:"booking"`

	Check CheckConfig `yaml:"check"`

	Files FilesConfig `yaml:"files"`

	Generate GenerateConfig `yaml:"generate"`

	Logging LoggingConfig `yaml:"logging"`

	Metrics MetricsConfig `yaml:"metrics"`

	Random RandomConfig `yaml:"random"`
}

type BookingConfig struct {
	Attempts int `yaml:"attempts"`

	HighValueBalance int `yaml:"high-value-balance"`

	InputFile ResolvedPath `yaml:"input-file"`

	RealIntegrationEnabled bool `yaml:"real-integration-enabled"`

	RoundTrip time.Duration `yaml:"round-trip"`

	SuccessRate float64 `yaml:"success-rate"`

	UseReal bool `yaml:"use-real"`
}

type CheckConfig struct {
	BaseDelay time.Duration `yaml:"base-delay"`

	HighValueBalance int `yaml:"high-value-balance"`

	InputFile ResolvedPath `yaml:"input-file"`

	PrepareDelay time.Duration `yaml:"prepare-delay"`

	ScoreThreshold float64 `yaml:"score-threshold"`

	Workers int `yaml:"workers"`
}

type FilesConfig struct {
	HitsFile ResolvedPath `yaml:"hits-file"`

	RecordsFile ResolvedPath `yaml:"records-file"`
}

type GenerateConfig struct {
	Count int `yaml:"count"`

	ExpiryYears int `yaml:"expiry-years"`

	StartYear int `yaml:"start-year"`
}

type LogRotateLoggingConfig struct {
	BackupFileCount int `yaml:"backup-file-count"`

	Compress bool `yaml:"compress"`

	MaxFileSizeMb int `yaml:"max-file-size-mb"`
}

type LoggingConfig struct {
	FilePath ResolvedPath `yaml:"file-path"`

	Format LogFormat `yaml:"format"`

	LogRotate LogRotateLoggingConfig `yaml:"log-rotate"`

	Severity LogSeverity `yaml:"severity"`
}

type MetricsConfig struct {
	Summary bool `yaml:"summary"`
}

type RandomConfig struct {
	Seed int64 `yaml:"seed"`
}

// BindFlags registers the flags shared by every command on flagSet and binds
// them to their config keys in v.
func BindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP("app-name", "", "", "The application name reported in logs.")
	if err := v.BindPFlag("app-name", flagSet.Lookup("app-name")); err != nil {
		return err
	}

	flagSet.StringP("records-file", "", DefaultRecordsFile, "Flat file holding the generated record list.")
	if err := v.BindPFlag("files.records-file", flagSet.Lookup("records-file")); err != nil {
		return err
	}

	flagSet.StringP("hits-file", "", DefaultHitsFile, "Append-only file receiving hits and simulated bookings.")
	if err := v.BindPFlag("files.hits-file", flagSet.Lookup("hits-file")); err != nil {
		return err
	}

	flagSet.Int64P("seed", "", 0, "Seed for the pseudo-random source. 0 seeds from the current time.")
	if err := v.BindPFlag("random.seed", flagSet.Lookup("seed")); err != nil {
		return err
	}

	flagSet.StringP("log-file", "", "", "The file for storing logs. When not provided, logs are printed to stderr.")
	if err := v.BindPFlag("logging.file-path", flagSet.Lookup("log-file")); err != nil {
		return err
	}

	flagSet.StringP("log-format", "", "text", "The format of the log file: 'text' or 'json'.")
	if err := v.BindPFlag("logging.format", flagSet.Lookup("log-format")); err != nil {
		return err
	}

	flagSet.StringP("log-severity", "", "info", "Specifies the logging severity expressed as one of [trace, debug, info, warning, error, off]")
	if err := v.BindPFlag("logging.severity", flagSet.Lookup("log-severity")); err != nil {
		return err
	}

	flagSet.IntP("log-rotate-max-file-size-mb", "", 512, "The maximum size in megabytes that a log file can reach before it is rotated.")
	if err := v.BindPFlag("logging.log-rotate.max-file-size-mb", flagSet.Lookup("log-rotate-max-file-size-mb")); err != nil {
		return err
	}

	flagSet.IntP("log-rotate-backup-file-count", "", 10, "The maximum number of backup log files to retain after they have been rotated. 0 retains all backups.")
	if err := v.BindPFlag("logging.log-rotate.backup-file-count", flagSet.Lookup("log-rotate-backup-file-count")); err != nil {
		return err
	}

	flagSet.BoolP("log-rotate-compress", "", true, "Compress rotated log files using gzip.")
	if err := v.BindPFlag("logging.log-rotate.compress", flagSet.Lookup("log-rotate-compress")); err != nil {
		return err
	}

	flagSet.BoolP("metrics-summary", "", false, "Log a summary of the collected metrics when the command finishes.")
	if err := v.BindPFlag("metrics.summary", flagSet.Lookup("metrics-summary")); err != nil {
		return err
	}

	return nil
}

// BindGenerateFlags registers the flags of the generate command.
func BindGenerateFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.IntP("count", "c", 200, "How many records to generate.")
	if err := v.BindPFlag("generate.count", flagSet.Lookup("count")); err != nil {
		return err
	}

	flagSet.IntP("start-year", "", 2025, "Start year for expiries.")
	if err := v.BindPFlag("generate.start-year", flagSet.Lookup("start-year")); err != nil {
		return err
	}

	flagSet.IntP("expiry-years", "", 6, "Width of the expiry window in years, starting at start-year.")
	if err := v.BindPFlag("generate.expiry-years", flagSet.Lookup("expiry-years")); err != nil {
		return err
	}

	return nil
}

// BindCheckFlags registers the flags of the simulate-check command.
func BindCheckFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP("input", "i", "", "Input file to read records from (default: the records file).")
	if err := v.BindPFlag("check.input-file", flagSet.Lookup("input")); err != nil {
		return err
	}

	flagSet.IntP("threads", "t", 8, "Number of concurrent workers.")
	if err := v.BindPFlag("check.workers", flagSet.Lookup("threads")); err != nil {
		return err
	}

	flagSet.DurationP("base-delay", "", 250*time.Millisecond, "Base simulated latency of one evaluation, scaled by the record score.")
	if err := v.BindPFlag("check.base-delay", flagSet.Lookup("base-delay")); err != nil {
		return err
	}

	flagSet.DurationP("prepare-delay", "", 600*time.Millisecond, "Duration of the progress bar shown before the workers start.")
	if err := v.BindPFlag("check.prepare-delay", flagSet.Lookup("prepare-delay")); err != nil {
		return err
	}

	flagSet.Float64P("score-threshold", "", DefaultScoreThreshold, "Records scoring above this value are accepted.")
	if err := v.BindPFlag("check.score-threshold", flagSet.Lookup("score-threshold")); err != nil {
		return err
	}

	flagSet.IntP("high-value-balance", "", DefaultHighValueBalance, "Records with at least this balance are always accepted.")
	if err := v.BindPFlag("check.high-value-balance", flagSet.Lookup("high-value-balance")); err != nil {
		return err
	}

	return nil
}

// BindBookFlags registers the flags of the attempt-book command.
func BindBookFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP("input", "i", "", "Input file to read records from (default: the records file).")
	if err := v.BindPFlag("booking.input-file", flagSet.Lookup("input")); err != nil {
		return err
	}

	flagSet.IntP("attempts", "a", 5, "Number of random attempts to simulate.")
	if err := v.BindPFlag("booking.attempts", flagSet.Lookup("attempts")); err != nil {
		return err
	}

	flagSet.BoolP("use-real", "", false, "Route attempts to the real integration. Fails unless the real integration is enabled and implemented.")
	if err := v.BindPFlag("booking.use-real", flagSet.Lookup("use-real")); err != nil {
		return err
	}

	flagSet.BoolP("enable-real-integration", "", false, "Allow the real integration client to run at all.")
	if err := v.BindPFlag("booking.real-integration-enabled", flagSet.Lookup("enable-real-integration")); err != nil {
		return err
	}

	flagSet.Float64P("success-rate", "", DefaultBookingSuccessRate, "Probability that a simulated booking succeeds.")
	if err := v.BindPFlag("booking.success-rate", flagSet.Lookup("success-rate")); err != nil {
		return err
	}

	flagSet.IntP("booking-high-value-balance", "", DefaultHighValueBalance, "Records with at least this balance always book successfully.")
	if err := v.BindPFlag("booking.high-value-balance", flagSet.Lookup("booking-high-value-balance")); err != nil {
		return err
	}

	flagSet.DurationP("round-trip", "", 800*time.Millisecond, "Simulated duration of one booking round trip.")
	if err := v.BindPFlag("booking.round-trip", flagSet.Lookup("round-trip")); err != nil {
		return err
	}

	return nil
}
