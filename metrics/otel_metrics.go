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
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blssim/blssim/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	logInterval = 5 * time.Minute
	meterName   = "blssim"
)

var (
	unrecognizedAttr                          atomic.Value
	hitsCountSourceCheckAttrSet               = metric.WithAttributeSet(attribute.NewSet(attribute.String("source", string(HitSourceCheckAttr))))
	hitsCountSourceBookingAttrSet             = metric.WithAttributeSet(attribute.NewSet(attribute.String("source", string(HitSourceBookingAttr))))
	bookingAttemptCountStatusSuccessAttrSet   = metric.WithAttributeSet(attribute.NewSet(attribute.String("status", string(BookingStatusSuccessAttr))))
	bookingAttemptCountStatusFailAttrSet      = metric.WithAttributeSet(attribute.NewSet(attribute.String("status", string(BookingStatusFailAttr))))
	bookingAttemptCountStatusConfigErrAttrSet = metric.WithAttributeSet(attribute.NewSet(attribute.String("status", string(BookingStatusConfigErrorAttr))))
	bookingAttemptCountStatusNotImplAttrSet   = metric.WithAttributeSet(attribute.NewSet(attribute.String("status", string(BookingStatusNotImplementedAttr))))
	bookingAttemptCountStatusErrorAttrSet     = metric.WithAttributeSet(attribute.NewSet(attribute.String("status", string(BookingStatusErrorAttr))))
)

type histogramRecord struct {
	ctx        context.Context
	instrument metric.Int64Histogram
	value      int64
	attributes metric.RecordOption
}

// otelMetrics keeps counters in atomics observed by asynchronous
// instruments. Histogram samples are handed to a small pool of goroutines
// over a buffered channel and dropped when the channel is full.
type otelMetrics struct {
	ch chan histogramRecord
	wg *sync.WaitGroup

	recordsEvaluatedCountAtomic              *atomic.Int64
	hitsCountSourceCheckAtomic               *atomic.Int64
	hitsCountSourceBookingAtomic             *atomic.Int64
	workerFaultCountAtomic                   *atomic.Int64
	bookingAttemptCountStatusSuccessAtomic   *atomic.Int64
	bookingAttemptCountStatusFailAtomic      *atomic.Int64
	bookingAttemptCountStatusConfigErrAtomic *atomic.Int64
	bookingAttemptCountStatusNotImplAtomic   *atomic.Int64
	bookingAttemptCountStatusErrorAtomic     *atomic.Int64
	evaluationLatency                        metric.Int64Histogram
}

func (o *otelMetrics) RecordsEvaluatedCount(inc int64) {
	if inc < 0 {
		logger.Errorf("Counter metric records_evaluated_count received a negative increment: %d", inc)
		return
	}
	o.recordsEvaluatedCountAtomic.Add(inc)
}

func (o *otelMetrics) HitsCount(inc int64, source HitSource) {
	if inc < 0 {
		logger.Errorf("Counter metric hits_count received a negative increment: %d", inc)
		return
	}
	switch source {
	case HitSourceCheckAttr:
		o.hitsCountSourceCheckAtomic.Add(inc)
	case HitSourceBookingAttr:
		o.hitsCountSourceBookingAtomic.Add(inc)
	default:
		updateUnrecognizedAttribute(string(source))
	}
}

func (o *otelMetrics) EvaluationLatency(ctx context.Context, latency time.Duration) {
	record := histogramRecord{ctx: ctx, instrument: o.evaluationLatency, value: latency.Milliseconds()}

	select {
	case o.ch <- record: // Do nothing
	default: // Unblock writes to channel if it's full.
	}
}

func (o *otelMetrics) WorkerFaultCount(inc int64) {
	if inc < 0 {
		logger.Errorf("Counter metric worker_fault_count received a negative increment: %d", inc)
		return
	}
	o.workerFaultCountAtomic.Add(inc)
}

func (o *otelMetrics) BookingAttemptCount(inc int64, status BookingStatus) {
	if inc < 0 {
		logger.Errorf("Counter metric booking_attempt_count received a negative increment: %d", inc)
		return
	}
	switch status {
	case BookingStatusSuccessAttr:
		o.bookingAttemptCountStatusSuccessAtomic.Add(inc)
	case BookingStatusFailAttr:
		o.bookingAttemptCountStatusFailAtomic.Add(inc)
	case BookingStatusConfigErrorAttr:
		o.bookingAttemptCountStatusConfigErrAtomic.Add(inc)
	case BookingStatusNotImplementedAttr:
		o.bookingAttemptCountStatusNotImplAtomic.Add(inc)
	case BookingStatusErrorAttr:
		o.bookingAttemptCountStatusErrorAtomic.Add(inc)
	default:
		updateUnrecognizedAttribute(string(status))
	}
}

// NewOTelMetrics registers the instruments on the global meter provider.
// workers goroutines drain histogram samples from a channel of bufferSize.
func NewOTelMetrics(ctx context.Context, workers int, bufferSize int) (*otelMetrics, error) {
	ch := make(chan histogramRecord, bufferSize)
	var wg sync.WaitGroup
	startSampledLogging(ctx)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range ch {
				if record.attributes != nil {
					record.instrument.Record(record.ctx, record.value, record.attributes)
				} else {
					record.instrument.Record(record.ctx, record.value)
				}
			}
		}()
	}
	meter := otel.Meter(meterName)

	var recordsEvaluatedCountAtomic,
		workerFaultCountAtomic atomic.Int64

	var hitsCountSourceCheckAtomic,
		hitsCountSourceBookingAtomic atomic.Int64

	var bookingAttemptCountStatusSuccessAtomic,
		bookingAttemptCountStatusFailAtomic,
		bookingAttemptCountStatusConfigErrAtomic,
		bookingAttemptCountStatusNotImplAtomic,
		bookingAttemptCountStatusErrorAtomic atomic.Int64

	_, err0 := meter.Int64ObservableCounter("records_evaluated_count",
		metric.WithDescription("The cumulative number of records run through the evaluation function."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &recordsEvaluatedCountAtomic)
			return nil
		}))

	_, err1 := meter.Int64ObservableCounter("hits_count",
		metric.WithDescription("The cumulative number of hits along with the flow that produced them: check or booking."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &hitsCountSourceCheckAtomic, hitsCountSourceCheckAttrSet)
			conditionallyObserve(obsrv, &hitsCountSourceBookingAtomic, hitsCountSourceBookingAttrSet)
			return nil
		}))

	evaluationLatency, err2 := meter.Int64Histogram("evaluation_latency",
		metric.WithDescription("The cumulative distribution of evaluation latencies, simulated delay included."),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 10, 50, 100, 150, 200, 250, 300, 400, 500, 1000, 5000))

	_, err3 := meter.Int64ObservableCounter("worker_fault_count",
		metric.WithDescription("The cumulative number of evaluations that failed with an error or a panic."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &workerFaultCountAtomic)
			return nil
		}))

	_, err4 := meter.Int64ObservableCounter("booking_attempt_count",
		metric.WithDescription("The cumulative number of booking attempts along with their status."),
		metric.WithUnit(""),
		metric.WithInt64Callback(func(_ context.Context, obsrv metric.Int64Observer) error {
			conditionallyObserve(obsrv, &bookingAttemptCountStatusSuccessAtomic, bookingAttemptCountStatusSuccessAttrSet)
			conditionallyObserve(obsrv, &bookingAttemptCountStatusFailAtomic, bookingAttemptCountStatusFailAttrSet)
			conditionallyObserve(obsrv, &bookingAttemptCountStatusConfigErrAtomic, bookingAttemptCountStatusConfigErrAttrSet)
			conditionallyObserve(obsrv, &bookingAttemptCountStatusNotImplAtomic, bookingAttemptCountStatusNotImplAttrSet)
			conditionallyObserve(obsrv, &bookingAttemptCountStatusErrorAtomic, bookingAttemptCountStatusErrorAttrSet)
			return nil
		}))

	errs := []error{err0, err1, err2, err3, err4}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &otelMetrics{
		ch:                                       ch,
		wg:                                       &wg,
		recordsEvaluatedCountAtomic:              &recordsEvaluatedCountAtomic,
		hitsCountSourceCheckAtomic:               &hitsCountSourceCheckAtomic,
		hitsCountSourceBookingAtomic:             &hitsCountSourceBookingAtomic,
		workerFaultCountAtomic:                   &workerFaultCountAtomic,
		bookingAttemptCountStatusSuccessAtomic:   &bookingAttemptCountStatusSuccessAtomic,
		bookingAttemptCountStatusFailAtomic:      &bookingAttemptCountStatusFailAtomic,
		bookingAttemptCountStatusConfigErrAtomic: &bookingAttemptCountStatusConfigErrAtomic,
		bookingAttemptCountStatusNotImplAtomic:   &bookingAttemptCountStatusNotImplAtomic,
		bookingAttemptCountStatusErrorAtomic:     &bookingAttemptCountStatusErrorAtomic,
		evaluationLatency:                        evaluationLatency,
	}, nil
}

// Close stops the histogram goroutines after they drain pending samples.
func (o *otelMetrics) Close() {
	close(o.ch)
	o.wg.Wait()
}

func conditionallyObserve(obsrv metric.Int64Observer, counter *atomic.Int64, obsrvOptions ...metric.ObserveOption) {
	if val := counter.Load(); val > 0 {
		obsrv.Observe(val, obsrvOptions...)
	}
}

func updateUnrecognizedAttribute(newValue string) {
	unrecognizedAttr.CompareAndSwap("", newValue)
}

// startSampledLogging starts a goroutine that logs unrecognized attributes periodically.
func startSampledLogging(ctx context.Context) {
	unrecognizedAttr.Store("")

	go func() {
		ticker := time.NewTicker(logInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logUnrecognizedAttribute()
			}
		}
	}()
}

// logUnrecognizedAttribute retrieves and logs any unrecognized attributes.
func logUnrecognizedAttribute() {
	if currentAttr := unrecognizedAttr.Swap("").(string); currentAttr != "" {
		logger.Tracef("Attribute %s is not declared", currentAttr)
	}
}
