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

// Package booking simulates booking requests for records and holds the
// disabled-by-default client for a real booking integration.
package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/blssim/blssim/internal/logger"
	"github.com/blssim/blssim/internal/record"
	"github.com/blssim/blssim/internal/util"
	"github.com/blssim/blssim/metrics"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"

	ConfirmedMessage      = "Simulated booking confirmed"
	NoAvailabilityMessage = "Simulated no-availability or invalid credentials"

	appointmentPrefix       = "SIM-"
	appointmentDigitsLength = 8
)

var (
	// ErrIntegrationDisabled is a configuration error: the real integration
	// was requested while the gate is off.
	ErrIntegrationDisabled = errors.New("real integration disabled by configuration")

	// ErrNotImplemented is returned by the real integration once enabled,
	// until a real client is written.
	ErrNotImplemented = errors.New("real integration not implemented")
)

// Response is the outcome of one booking attempt. AppointmentID is set only
// on success.
type Response struct {
	Status        string
	Message       string
	AppointmentID string
	// Record is the flat line form of the booked record.
	Record string
}

func (r Response) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Booker attempts a booking for one record.
type Booker interface {
	Attempt(ctx context.Context, r record.Record) (Response, error)
}

type SimulatorParams struct {
	// Probability that an attempt succeeds on chance alone.
	SuccessRate float64
	// Records with at least this balance always succeed.
	HighValueBalance int
	// Simulated duration of the request.
	RoundTrip time.Duration
}

// Simulator is a Booker that never leaves the process.
type Simulator struct {
	params   SimulatorParams
	progress *util.Progress

	mu   sync.Mutex
	rand *rand.Rand // GUARDED_BY(mu)
}

func NewSimulator(params SimulatorParams, rng *rand.Rand, progress *util.Progress) *Simulator {
	return &Simulator{params: params, rand: rng, progress: progress}
}

func (s *Simulator) Attempt(ctx context.Context, r record.Record) (Response, error) {
	logger.Warnf("Simulated booking request for %s - simulation only", r.Identifier)
	prefix := fmt.Sprintf("Contacting (simulated) booking endpoint for %s", r.Identifier)
	if err := s.progress.Run(ctx, prefix, s.params.RoundTrip); err != nil {
		return Response{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rand.Float64() < s.params.SuccessRate || r.Balance >= s.params.HighValueBalance {
		return Response{
			Status:        StatusSuccess,
			Message:       ConfirmedMessage,
			AppointmentID: appointmentPrefix + s.digits(appointmentDigitsLength),
			Record:        r.String(),
		}, nil
	}
	return Response{
		Status:  StatusFail,
		Message: NoAvailabilityMessage,
		Record:  r.String(),
	}, nil
}

// LOCKS_REQUIRED(s.mu)
func (s *Simulator) digits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + s.rand.IntN(10))
	}
	return string(b)
}

// RealClient is the gate in front of a real booking integration. No
// integration exists, so every attempt fails: with ErrIntegrationDisabled
// while the gate is off and ErrNotImplemented once it is on.
type RealClient struct {
	enabled bool
}

func NewRealClient(enabled bool) *RealClient {
	return &RealClient{enabled: enabled}
}

func (c *RealClient) Attempt(_ context.Context, r record.Record) (Response, error) {
	if !c.enabled {
		return Response{}, fmt.Errorf("booking %s: %w (booking.real-integration-enabled=false)", r.Identifier, ErrIntegrationDisabled)
	}
	return Response{}, fmt.Errorf("booking %s: %w", r.Identifier, ErrNotImplemented)
}

// StatusOf maps an attempt's outcome to its metric attribute.
func StatusOf(resp Response, err error) metrics.BookingStatus {
	switch {
	case errors.Is(err, ErrIntegrationDisabled):
		return metrics.BookingStatusConfigErrorAttr
	case errors.Is(err, ErrNotImplemented):
		return metrics.BookingStatusNotImplementedAttr
	case err != nil:
		return metrics.BookingStatusErrorAttr
	case resp.Succeeded():
		return metrics.BookingStatusSuccessAttr
	default:
		return metrics.BookingStatusFailAttr
	}
}

// Sample returns min(n, len(recs)) distinct records chosen at random.
func Sample(rng *rand.Rand, recs []record.Record, n int) []record.Record {
	k := max(0, min(n, len(recs)))
	out := make([]record.Record, 0, k)
	for _, i := range rng.Perm(len(recs))[:k] {
		out = append(out, recs[i])
	}
	return out
}
