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

	"github.com/blssim/blssim/cfg"
	"github.com/blssim/blssim/internal/booking"
	"github.com/blssim/blssim/internal/hits"
	"github.com/blssim/blssim/internal/logger"
	"github.com/blssim/blssim/internal/util"
	"github.com/blssim/blssim/metrics"
	"github.com/spf13/cobra"
)

func newBookCmd(a *app) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:   "attempt-book",
		Short: "Attempt bookings for randomly sampled records (simulation).",
		Args:  cobra.NoArgs,
		RunE:  a.runE(a.book),
	}
	if err := cfg.BindBookFlags(a.v, c.Flags()); err != nil {
		return nil, fmt.Errorf("error while binding attempt-book flags: %w", err)
	}
	return c, nil
}

// booker picks the client attempts are routed to.
func (a *app) booker(out io.Writer) (booking.Booker, string) {
	bookCfg := a.config.Booking
	if bookCfg.UseReal {
		return booking.NewRealClient(bookCfg.RealIntegrationEnabled), "real"
	}
	return booking.NewSimulator(booking.SimulatorParams{
		SuccessRate:      bookCfg.SuccessRate,
		HighValueBalance: bookCfg.HighValueBalance,
		RoundTrip:        bookCfg.RoundTrip,
	}, a.rand, util.NewProgress(out, a.clock)), "simulated"
}

func (a *app) book(ctx context.Context, out io.Writer) error {
	path := a.inputPath(a.config.Booking.InputFile)
	recs, err := loadRecords(path)
	if err != nil {
		return err
	}

	sample := booking.Sample(a.rand, recs, a.config.Booking.Attempts)
	booker, mode := a.booker(out)
	store := hits.NewStore(string(a.config.Files.HitsFile))

	for _, r := range sample {
		fmt.Fprintln(out, util.Notice(fmt.Sprintf("\n=== Attempting booking for %s (%s) ===", r.Identifier, mode)))
		resp, err := booker.Attempt(ctx, r)
		a.metricHandle.BookingAttemptCount(1, booking.StatusOf(resp, err))

		switch {
		case errors.Is(err, booking.ErrIntegrationDisabled), errors.Is(err, booking.ErrNotImplemented):
			// Contained to this attempt.
			logger.Warnf("Real integration attempt failed: %v", err)
			fmt.Fprintln(out, util.Failure(fmt.Sprintf("Real integration failed or disabled: %v", err)))
		case err != nil:
			return err
		case resp.Succeeded():
			if err = store.Append(hits.BookedLine(resp.AppointmentID, resp.Record)); err != nil {
				return err
			}
			a.metricHandle.HitsCount(1, metrics.HitSourceBookingAttr)
			fmt.Fprintln(out, util.Success(fmt.Sprintf("Booking success (%s): appointment id %s", mode, resp.AppointmentID)))
		default:
			fmt.Fprintln(out, util.Warning(fmt.Sprintf("Booking failed (%s): %s", mode, resp.Message)))
		}
	}
	return nil
}
