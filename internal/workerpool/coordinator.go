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

package workerpool

import (
	"context"
	"fmt"

	"github.com/blssim/blssim/clock"
	"github.com/blssim/blssim/internal/logger"
	"github.com/blssim/blssim/internal/record"
	"github.com/blssim/blssim/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Coordinator runs an Evaluator over a batch of records with a bounded
// number of workers.
type Coordinator struct {
	evaluator    Evaluator
	metricHandle metrics.MetricHandle
	clock        clock.Clock
}

func NewCoordinator(evaluator Evaluator, metricHandle metrics.MetricHandle, c clock.Clock) *Coordinator {
	return &Coordinator{
		evaluator:    evaluator,
		metricHandle: metricHandle,
		clock:        c,
	}
}

// Run evaluates every record exactly once using WorkerCount(workers,
// len(records)) workers and returns the accepted lines in arrival order.
//
// Run returns only after all workers have exited and every record has been
// marked processed. A failure evaluating one record is logged and does not
// affect the others. If ctx ends, the remaining records are drained without
// being evaluated, and the lines gathered so far are returned with ctx.Err().
func (c *Coordinator) Run(ctx context.Context, records []record.Record, workers int) ([]string, error) {
	runID := uuid.NewString()
	n := WorkerCount(workers, len(records))
	if n == 0 {
		if len(records) > 0 {
			logger.Warnf("Run %s: no workers requested for %d records", runID, len(records))
		}
		return []string{}, nil
	}

	logger.Infof("Run %s: evaluating %d records with %d workers", runID, len(records), n)
	queue := NewTaskQueue(records)
	results := NewResultSet()

	var group errgroup.Group
	for i := range n {
		w := &worker{
			id:      i + 1,
			runID:   runID,
			coord:   c,
			queue:   queue,
			results: results,
		}
		group.Go(func() error {
			w.loop(ctx)
			return nil
		})
	}

	queue.Join()
	if err := group.Wait(); err != nil {
		return results.Items(), fmt.Errorf("run %s: %w", runID, err)
	}

	logger.Infof("Run %s: complete, %d hits", runID, results.Len())
	return results.Items(), ctx.Err()
}

type worker struct {
	id      int
	runID   string
	coord   *Coordinator
	queue   *TaskQueue[record.Record]
	results *ResultSet
}

func (w *worker) loop(ctx context.Context) {
	for {
		r, ok := w.queue.Claim()
		if !ok {
			return
		}
		w.process(ctx, r)
	}
}

// process evaluates one claimed record and always marks it done, even when
// the evaluation panics.
func (w *worker) process(ctx context.Context, r record.Record) {
	defer w.queue.Done()
	defer func() {
		if p := recover(); p != nil {
			w.coord.metricHandle.WorkerFaultCount(1)
			logger.Errorf("Run %s: worker %d panicked evaluating %s: %v", w.runID, w.id, r.Identifier, p)
		}
	}()

	if ctx.Err() != nil {
		return
	}

	logger.Debugf("Worker %d checking %s", w.id, r.Identifier)
	start := w.coord.clock.Now()
	hit, accepted, err := w.coord.evaluator.Evaluate(ctx, r)
	w.coord.metricHandle.EvaluationLatency(ctx, w.coord.clock.Now().Sub(start))
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.coord.metricHandle.WorkerFaultCount(1)
		logger.Errorf("Run %s: worker %d failed evaluating %s: %v", w.runID, w.id, r.Identifier, err)
		return
	}

	w.coord.metricHandle.RecordsEvaluatedCount(1)
	if accepted {
		w.results.Append(hit)
		w.coord.metricHandle.HitsCount(1, metrics.HitSourceCheckAttr)
		logger.Infof("Worker %d found valid: %s", w.id, hit)
	}
}
