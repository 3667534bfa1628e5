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

	"github.com/blssim/blssim/internal/record"
)

// Evaluator is the per-record work a pool applies. Implementations must be
// safe for concurrent use on distinct records.
type Evaluator interface {
	// Evaluate returns the success line and true when the record is accepted.
	Evaluate(ctx context.Context, r record.Record) (string, bool, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, r record.Record) (string, bool, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, r record.Record) (string, bool, error) {
	return f(ctx, r)
}

// WorkerCount returns the number of workers a run over records items
// launches for a requested count: never more workers than items, never
// negative.
func WorkerCount(requested, records int) int {
	return max(0, min(requested, records))
}
