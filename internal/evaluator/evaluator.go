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

// Package evaluator implements the probabilistic acceptance rule applied to
// each record during a check run.
package evaluator

import (
	"context"
	"fmt"
	"time"

	"github.com/blssim/blssim/clock"
	"github.com/blssim/blssim/internal/record"
)

const hitPrefix = "HIT: "

type Params struct {
	// Records scoring strictly above this value are accepted.
	ScoreThreshold float64
	// Records with at least this balance are accepted regardless of score.
	HighValueBalance int
	// Simulated latency is BaseDelay scaled by (0.5 + score).
	BaseDelay time.Duration
}

// Evaluator holds no mutable state and may be used from many goroutines.
type Evaluator struct {
	params Params
	clock  clock.Clock
}

func NewEvaluator(params Params, c clock.Clock) *Evaluator {
	return &Evaluator{params: params, clock: c}
}

// Score maps an identifier to [0, 0.99]: the sum of its code points modulo
// 100, divided by 100.
func Score(identifier string) float64 {
	sum := 0
	for _, r := range identifier {
		sum += int(r)
	}
	return float64(sum%100) / 100.0
}

// Delay returns the simulated latency for a record with the given score.
func (e *Evaluator) Delay(score float64) time.Duration {
	return time.Duration(float64(e.params.BaseDelay) * (0.5 + score))
}

// Accepts applies the acceptance rule without the simulated latency.
func (e *Evaluator) Accepts(r record.Record) bool {
	return Score(r.Identifier) > e.params.ScoreThreshold || r.Balance >= e.params.HighValueBalance
}

// Evaluate waits for the simulated latency and then applies the acceptance
// rule. On acceptance it returns the formatted hit line and true. The only
// error is the context's, when it ends before the latency elapses.
func (e *Evaluator) Evaluate(ctx context.Context, r record.Record) (string, bool, error) {
	score := Score(r.Identifier)
	if d := e.Delay(score); d > 0 {
		select {
		case <-e.clock.After(d):
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}

	if e.Accepts(r) {
		return FormatHit(r), true, nil
	}
	return "", false, nil
}

// FormatHit renders the success line for an accepted record.
func FormatHit(r record.Record) string {
	return fmt.Sprintf("%s%s", hitPrefix, r)
}
