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
	"sync"
	"testing"
	"time"

	"github.com/jacobsa/syncutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	syncutil.EnableInvariantChecking()
}

func TestNewTaskQueue(t *testing.T) {
	q := NewTaskQueue([]int{4, 5, 6})

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, 3, q.Unfinished())
}

func TestTaskQueue_ClaimInOrder(t *testing.T) {
	q := NewTaskQueue([]int{4, 5})

	v, ok := q.Claim()
	require.True(t, ok)
	assert.Equal(t, 4, v)
	v, ok = q.Claim()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = q.Claim()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 2, q.Unfinished())
}

func TestTaskQueue_JoinEmptyReturnsImmediately(t *testing.T) {
	q := NewTaskQueue[int](nil)

	done := make(chan struct{})
	go func() {
		q.Join()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Join blocked on an empty queue")
	}
}

func TestTaskQueue_JoinWaitsForDone(t *testing.T) {
	q := NewTaskQueue([]int{1, 2})
	_, _ = q.Claim()
	_, _ = q.Claim()
	q.Done()
	joined := make(chan struct{})

	go func() {
		q.Join()
		close(joined)
	}()

	select {
	case <-joined:
		t.Fatal("Join returned with an item still in progress")
	case <-time.After(20 * time.Millisecond):
	}
	q.Done()
	select {
	case <-joined:
	case <-time.After(time.Second):
		t.Fatal("Join did not return after the last Done")
	}
	assert.Equal(t, 0, q.Unfinished())
}

func TestTaskQueue_DoneWithoutClaimPanics(t *testing.T) {
	q := NewTaskQueue([]int{1})

	assert.Panics(t, q.Done)
}

func TestTaskQueue_ConcurrentClaimsAreExactlyOnce(t *testing.T) {
	const items = 10000
	input := make([]int, items)
	for i := range input {
		input[i] = i
	}
	q := NewTaskQueue(input)
	seen := make([]int, items)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := q.Claim()
				if !ok {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
				q.Done()
			}
		}()
	}
	q.Join()
	wg.Wait()

	for i, n := range seen {
		assert.Equal(t, 1, n, "item %d claimed %d times", i, n)
	}
}
