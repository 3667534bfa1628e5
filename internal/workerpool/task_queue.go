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
	"fmt"
	"sync"

	"github.com/jacobsa/syncutil"
)

// node represents a node in the queue.
type node[T any] struct {
	value T
	next  *node[T]
}

// TaskQueue is a FIFO filled once at construction and drained by any number
// of concurrent consumers. Each item is handed out by exactly one Claim.
// Consumers call Done after finishing a claimed item; Join blocks until every
// item has been claimed and marked done.
type TaskQueue[T any] struct {
	mu syncutil.InvariantMutex

	start, end *node[T] // GUARDED_BY(mu)
	size       int      // GUARDED_BY(mu)

	// Items claimed or waiting that haven't been marked done.
	//
	// GUARDED_BY(mu)
	unfinished int

	// Signalled when unfinished reaches zero.
	allDone *sync.Cond
}

// NewTaskQueue creates a queue holding items in order.
func NewTaskQueue[T any](items []T) *TaskQueue[T] {
	q := &TaskQueue[T]{}
	for _, it := range items {
		q.push(it)
	}
	q.unfinished = len(items)
	q.mu = syncutil.NewInvariantMutex(q.checkInvariants)
	q.allDone = sync.NewCond(&q.mu)
	return q
}

// LOCKS_REQUIRED(q.mu)
func (q *TaskQueue[T]) checkInvariants() {
	// INVARIANT: start == nil iff end == nil iff size == 0
	if (q.start == nil) != (q.size == 0) || (q.end == nil) != (q.size == 0) {
		panic(fmt.Sprintf("Inconsistent queue ends for size %d", q.size))
	}

	// INVARIANT: 0 <= size <= unfinished
	if q.size < 0 || q.unfinished < q.size {
		panic(fmt.Sprintf("Unexpected counters: size %d, unfinished %d", q.size, q.unfinished))
	}
}

// LOCKS_REQUIRED(q.mu) or called before the queue is shared.
func (q *TaskQueue[T]) push(value T) {
	n := &node[T]{value: value}
	if q.size == 0 {
		q.start = n
		q.end = n
	} else {
		q.end.next = n
		q.end = n
	}
	q.size++
}

// Claim removes and returns the front item. ok is false once the queue is
// empty; since the queue is never refilled that state is final.
func (q *TaskQueue[T]) Claim() (value T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.size == 0 {
		return value, false
	}
	n := q.start
	q.start = n.next
	if q.start == nil {
		q.end = nil
	}
	q.size--
	return n.value, true
}

// Done marks one claimed item as processed. It panics when called more
// times than items were claimed.
func (q *TaskQueue[T]) Done() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.unfinished <= q.size {
		panic("workerpool: Done called more times than Claim")
	}
	q.unfinished--
	if q.unfinished == 0 {
		q.allDone.Broadcast()
	}
}

// Join blocks until every item has been claimed and marked done. It returns
// immediately for an empty queue.
func (q *TaskQueue[T]) Join() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.unfinished > 0 {
		q.allDone.Wait()
	}
}

// Len returns the number of unclaimed items.
func (q *TaskQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// Unfinished returns the number of items not yet marked done.
func (q *TaskQueue[T]) Unfinished() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unfinished
}
