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
	"errors"
	"fmt"
)

const (
	WorkersInvalidValueError        = "the value of workers for check can't be negative"
	AttemptsInvalidValueError       = "the value of attempts for booking can't be negative"
	StartYearInvalidValueError      = "the value of start-year for generate should be atleast 1"
	ExpiryYearsInvalidValueError    = "the value of expiry-years for generate should be atleast 1"
	DelayInvalidValueError          = "simulated delays can't be negative"
	HighValueBalanceInvalidValueErr = "the value of high-value-balance can't be negative"
)

func isValidLogRotateConfig(config *LogRotateLoggingConfig) error {
	if config.MaxFileSizeMb <= 0 {
		return fmt.Errorf("max-file-size-mb should be atleast 1")
	}
	if config.BackupFileCount < 0 {
		return fmt.Errorf("backup-file-count should be 0 (to retain all backup files) or a positive value")
	}
	return nil
}

func isValidProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s should be within [0, 1], got %v", name, p)
	}
	return nil
}

func isValidGenerateConfig(c *GenerateConfig) error {
	if c.StartYear < 1 {
		return errors.New(StartYearInvalidValueError)
	}
	if c.ExpiryYears < 1 {
		return errors.New(ExpiryYearsInvalidValueError)
	}
	return nil
}

func isValidCheckConfig(c *CheckConfig) error {
	if c.Workers < 0 {
		return errors.New(WorkersInvalidValueError)
	}
	if c.BaseDelay < 0 || c.PrepareDelay < 0 {
		return errors.New(DelayInvalidValueError)
	}
	if c.HighValueBalance < 0 {
		return errors.New(HighValueBalanceInvalidValueErr)
	}
	return isValidProbability("score-threshold", c.ScoreThreshold)
}

func isValidBookingConfig(c *BookingConfig) error {
	if c.Attempts < 0 {
		return errors.New(AttemptsInvalidValueError)
	}
	if c.RoundTrip < 0 {
		return errors.New(DelayInvalidValueError)
	}
	if c.HighValueBalance < 0 {
		return errors.New(HighValueBalanceInvalidValueErr)
	}
	return isValidProbability("success-rate", c.SuccessRate)
}

// ValidateConfig returns a non-nil error if the config is invalid.
func ValidateConfig(config *Config) error {
	var err error

	if err = isValidLogRotateConfig(&config.Logging.LogRotate); err != nil {
		return fmt.Errorf("error parsing log-rotate config: %w", err)
	}

	if err = isValidGenerateConfig(&config.Generate); err != nil {
		return fmt.Errorf("error parsing generate config: %w", err)
	}

	if err = isValidCheckConfig(&config.Check); err != nil {
		return fmt.Errorf("error parsing check config: %w", err)
	}

	if err = isValidBookingConfig(&config.Booking); err != nil {
		return fmt.Errorf("error parsing booking config: %w", err)
	}

	return nil
}
