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

package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/blssim/blssim/clock"
	"github.com/blssim/blssim/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultParams = Params{
	ScoreThreshold:   0.85,
	HighValueBalance: 120,
	BaseDelay:        250 * time.Millisecond,
}

// identifierWithScore returns a 16 digit identifier whose score is want.
// Sixteen '0's sum to 768, so bumping digits shifts the sum modulo 100.
func identifierWithScore(t *testing.T, want float64) string {
	t.Helper()
	b := []byte("0000000000000000")
	target := int(want*100+0.5) - 68
	if target < 0 {
		target += 100
	}
	for i := 0; target > 0; i++ {
		step := min(9, target)
		b[i] += byte(step)
		target -= step
	}
	id := string(b)
	require.InDelta(t, want, Score(id), 1e-9)
	return id
}

func TestScore(t *testing.T) {
	testCases := []struct {
		identifier string
		expected   float64
	}{
		{"", 0},
		{"0", 0.48},   // '0' = 48
		{"00", 0.96},  // 96
		{"000", 0.44}, // 144
		{"0000000000000000", 0.68},
		{"9999999999999999", 0.12}, // 16 * 57 = 912
	}

	for _, tc := range testCases {
		t.Run(tc.identifier, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Score(tc.identifier), 1e-9)
		})
	}
}

func TestEvaluate_AcceptanceRule(t *testing.T) {
	params := defaultParams
	params.BaseDelay = 0
	e := NewEvaluator(params, clock.RealClock{})
	testCases := []struct {
		name     string
		score    float64
		balance  int
		accepted bool
	}{
		{"low score low balance", 0.10, 0, false},
		{"score at threshold is rejected", 0.85, 69, false},
		{"score above threshold", 0.86, 0, true},
		{"balance at cutoff", 0.10, 120, true},
		{"balance above cutoff", 0.10, 280, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := record.Record{
				Identifier: identifierWithScore(t, tc.score),
				Expiry:     record.Expiry{Month: 5, Year: 2026},
				Reference:  "321",
				Balance:    tc.balance,
			}

			hit, ok, err := e.Evaluate(context.Background(), r)

			require.NoError(t, err)
			assert.Equal(t, tc.accepted, ok)
			assert.Equal(t, tc.accepted, e.Accepts(r))
			if tc.accepted {
				assert.Equal(t, "HIT: "+r.String(), hit)
			} else {
				assert.Empty(t, hit)
			}
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	params := defaultParams
	params.BaseDelay = 0
	e := NewEvaluator(params, clock.RealClock{})
	r := record.Record{Identifier: "4821736459012837", Expiry: record.Expiry{Month: 1, Year: 2027}, Reference: "555", Balance: 25}

	first, firstOK, err := e.Evaluate(context.Background(), r)
	require.NoError(t, err)
	for range 10 {
		hit, ok, err := e.Evaluate(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, firstOK, ok)
		assert.Equal(t, first, hit)
	}
}

func TestDelay_ScalesWithScore(t *testing.T) {
	e := NewEvaluator(defaultParams, clock.RealClock{})

	assert.Equal(t, 125*time.Millisecond, e.Delay(0))
	assert.Equal(t, 250*time.Millisecond, e.Delay(0.5))
	assert.Equal(t, 187500*time.Microsecond, e.Delay(0.25))
}

func TestEvaluate_WaitsForSimulatedLatency(t *testing.T) {
	sc := clock.NewSimulatedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	e := NewEvaluator(defaultParams, sc)
	r := record.Record{Identifier: identifierWithScore(t, 0.5), Balance: 180}
	done := make(chan bool, 1)

	go func() {
		_, ok, _ := e.Evaluate(context.Background(), r)
		done <- ok
	}()

	require.Eventually(t, func() bool { return sc.WaiterCount() == 1 }, time.Second, time.Millisecond)
	sc.AdvanceTime(249 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("Evaluate returned before the simulated latency elapsed")
	case <-time.After(10 * time.Millisecond):
	}
	sc.AdvanceTime(time.Millisecond)
	select {
	case ok := <-done:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Evaluate did not return after the simulated latency elapsed")
	}
}

func TestEvaluate_ContextCancelled(t *testing.T) {
	sc := clock.NewSimulatedClock(time.Now())
	e := NewEvaluator(defaultParams, sc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hit, ok, err := e.Evaluate(ctx, record.Record{Identifier: "1234", Balance: 280})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
	assert.Empty(t, hit)
}
