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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestRecordsEvaluatedCount(t *testing.T) {
	ctx := context.Background()
	m, rd := SetupOTel(ctx, t)
	defer m.Close()

	m.RecordsEvaluatedCount(3)
	m.RecordsEvaluatedCount(2)
	m.RecordsEvaluatedCount(-1)

	VerifyCounterMetric(t, ctx, rd, "records_evaluated_count", *attribute.EmptySet(), 5)
}

func TestHitsCount(t *testing.T) {
	tests := []struct {
		name     string
		f        func(m *otelMetrics)
		expected map[attribute.Set]int64
	}{
		{
			name: "source_check",
			f: func(m *otelMetrics) {
				m.HitsCount(4, HitSourceCheckAttr)
			},
			expected: map[attribute.Set]int64{
				attribute.NewSet(attribute.String("source", "check")): 4,
			},
		},
		{
			name: "multiple_sources_accumulate",
			f: func(m *otelMetrics) {
				m.HitsCount(1, HitSourceCheckAttr)
				m.HitsCount(2, HitSourceBookingAttr)
				m.HitsCount(3, HitSourceCheckAttr)
			},
			expected: map[attribute.Set]int64{
				attribute.NewSet(attribute.String("source", "check")):   4,
				attribute.NewSet(attribute.String("source", "booking")): 2,
			},
		},
		{
			name: "unknown_source_ignored",
			f: func(m *otelMetrics) {
				m.HitsCount(1, HitSourceCheckAttr)
				m.HitsCount(7, HitSource("other"))
			},
			expected: map[attribute.Set]int64{
				attribute.NewSet(attribute.String("source", "check")): 1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			m, rd := SetupOTel(ctx, t)
			defer m.Close()

			tc.f(m)

			for attrs, v := range tc.expected {
				VerifyCounterMetric(t, ctx, rd, "hits_count", attrs, v)
			}
		})
	}
}

func TestBookingAttemptCount(t *testing.T) {
	ctx := context.Background()
	m, rd := SetupOTel(ctx, t)
	defer m.Close()

	m.BookingAttemptCount(2, BookingStatusSuccessAttr)
	m.BookingAttemptCount(3, BookingStatusFailAttr)
	m.BookingAttemptCount(1, BookingStatusConfigErrorAttr)
	m.BookingAttemptCount(1, BookingStatusNotImplementedAttr)
	m.BookingAttemptCount(1, BookingStatusErrorAttr)

	for status, v := range map[string]int64{
		"success":         2,
		"fail":            3,
		"config_error":    1,
		"not_implemented": 1,
		"error":           1,
	} {
		VerifyCounterMetric(t, ctx, rd, "booking_attempt_count", attribute.NewSet(attribute.String("status", status)), v)
	}
}

func TestWorkerFaultCount(t *testing.T) {
	ctx := context.Background()
	m, rd := SetupOTel(ctx, t)
	defer m.Close()

	m.WorkerFaultCount(1)
	m.WorkerFaultCount(1)

	VerifyCounterMetric(t, ctx, rd, "worker_fault_count", *attribute.EmptySet(), 2)
}

func TestEvaluationLatency(t *testing.T) {
	ctx := context.Background()
	m, rd := SetupOTel(ctx, t)

	m.EvaluationLatency(ctx, 125*time.Millisecond)
	m.EvaluationLatency(ctx, 300*time.Millisecond)
	m.Close()

	VerifyHistogramMetric(t, ctx, rd, "evaluation_latency", *attribute.EmptySet(), 2)
}

func TestSummaryLines(t *testing.T) {
	ctx := context.Background()
	s := NewSummary()
	defer func() {
		require.NoError(t, s.Shutdown(ctx))
	}()
	m, err := NewOTelMetrics(ctx, 1, 10)
	require.NoError(t, err)

	m.RecordsEvaluatedCount(10)
	m.HitsCount(4, HitSourceCheckAttr)
	m.EvaluationLatency(ctx, 200*time.Millisecond)
	m.EvaluationLatency(ctx, 100*time.Millisecond)
	m.Close()
	lines, err := s.Lines(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"evaluation_latency count=2 sum=300ms",
		"hits_count{source=check} = 4",
		"records_evaluated_count = 10",
	}, lines)
	assert.NoError(t, s.Log(ctx))
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()

	assert.NotPanics(t, func() {
		m.RecordsEvaluatedCount(1)
		m.HitsCount(1, HitSourceBookingAttr)
		m.EvaluationLatency(context.Background(), time.Second)
		m.WorkerFaultCount(1)
		m.BookingAttemptCount(1, BookingStatusFailAttr)
	})
}
