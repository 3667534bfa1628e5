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

package metrics

import (
	"context"
	"time"
)

// HitSource is the flow that produced a hit.
type HitSource string

const (
	HitSourceCheckAttr   HitSource = "check"
	HitSourceBookingAttr HitSource = "booking"
)

// BookingStatus is the outcome of one booking attempt.
type BookingStatus string

const (
	BookingStatusSuccessAttr        BookingStatus = "success"
	BookingStatusFailAttr           BookingStatus = "fail"
	BookingStatusConfigErrorAttr    BookingStatus = "config_error"
	BookingStatusNotImplementedAttr BookingStatus = "not_implemented"
	BookingStatusErrorAttr          BookingStatus = "error"
)

// MetricHandle provides an interface for recording metrics.
type MetricHandle interface {
	// RecordsEvaluatedCount - The cumulative number of records run through the evaluation function.
	RecordsEvaluatedCount(inc int64)

	// HitsCount - The cumulative number of hits along with the flow that produced them: check or booking.
	HitsCount(inc int64, source HitSource)

	// EvaluationLatency - The cumulative distribution of evaluation latencies, simulated delay included.
	EvaluationLatency(ctx context.Context, latency time.Duration)

	// WorkerFaultCount - The cumulative number of evaluations that failed with an error or a panic.
	WorkerFaultCount(inc int64)

	// BookingAttemptCount - The cumulative number of booking attempts along with their status.
	BookingAttemptCount(inc int64, status BookingStatus)
}
