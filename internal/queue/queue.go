// Package queue provides a generic, concurrency-safe work queue that tracks
// which of its items were processed successfully and which were skipped.
package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Decision is returned by a processing function for each processed item.
type Decision int

const (
	// DecisionSkipped is returned by a processFunc when an item was skipped.
	DecisionSkipped Decision = iota

	// DecisionSuccess is returned by a processFunc when an item was processed.
	DecisionSuccess
)

// Queue holds items of any comparable type. Items are dequeued in the order
// they were enqueued.
type Queue[T comparable] struct {
	sync.RWMutex
	startTime  time.Time
	finishTime time.Time
	head       int
	items      []T
	success    []T
	skipped    []T
	inProgress map[T]struct{}
}

// Progress is a snapshot of the state of a [Queue].
type Progress struct {
	TotalItems      int
	SuccessItems    int
	SkippedItems    int
	InProgressItems int
	Elapsed         time.Duration
}

// New returns a pointer to a new, empty [Queue].
func New[T comparable]() *Queue[T] {
	return &Queue[T]{
		inProgress: make(map[T]struct{}),
	}
}

// Enqueue adds items to the end of the queue.
func (q *Queue[T]) Enqueue(items ...T) {
	q.Lock()
	defer q.Unlock()

	q.items = append(q.items, items...)
}

// Dequeue returns the next item and advances the queue head. The second
// return value is false when no items are left.
func (q *Queue[T]) Dequeue() (T, bool) { //nolint:ireturn
	q.Lock()
	defer q.Unlock()

	if q.head >= len(q.items) {
		var zeroVal T

		return zeroVal, false
	}

	if q.startTime.IsZero() {
		q.startTime = time.Now()
	}

	item := q.items[q.head]
	q.head++

	return item, true
}

// HasRemainingItems returns whether the queue has items left to dequeue.
func (q *Queue[T]) HasRemainingItems() bool {
	q.RLock()
	defer q.RUnlock()

	return q.head < len(q.items)
}

// SetProcessing marks items as in progress.
func (q *Queue[T]) SetProcessing(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		q.inProgress[item] = struct{}{}
	}
}

// SetSuccess marks in-progress items as successfully processed.
func (q *Queue[T]) SetSuccess(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.success = append(q.success, item)
	}
	q.markFinished()
}

// SetSkipped marks in-progress items as skipped.
func (q *Queue[T]) SetSkipped(items ...T) {
	q.Lock()
	defer q.Unlock()

	for _, item := range items {
		delete(q.inProgress, item)
		q.skipped = append(q.skipped, item)
	}
	q.markFinished()
}

// markFinished records the finish time once every item was processed. The
// caller must hold the write lock.
func (q *Queue[T]) markFinished() {
	if len(q.success)+len(q.skipped) >= len(q.items) && q.finishTime.IsZero() {
		q.finishTime = time.Now()
	}
}

// Successful returns a copy of all successfully processed items.
func (q *Queue[T]) Successful() []T {
	q.RLock()
	defer q.RUnlock()

	result := make([]T, len(q.success))
	copy(result, q.success)

	return result
}

// Skipped returns a copy of all skipped items.
func (q *Queue[T]) Skipped() []T {
	q.RLock()
	defer q.RUnlock()

	result := make([]T, len(q.skipped))
	copy(result, q.skipped)

	return result
}

// Progress returns the current [Progress] of the queue.
func (q *Queue[T]) Progress() Progress {
	q.RLock()
	defer q.RUnlock()

	var elapsed time.Duration
	switch {
	case q.startTime.IsZero():
	case q.finishTime.IsZero():
		elapsed = time.Since(q.startTime)
	default:
		elapsed = q.finishTime.Sub(q.startTime)
	}

	return Progress{
		TotalItems:      len(q.items),
		SuccessItems:    len(q.success),
		SkippedItems:    len(q.skipped),
		InProgressItems: len(q.inProgress),
		Elapsed:         elapsed,
	}
}

// DequeueAndProcessConc concurrently dequeues and processes all items with at
// most maxWorkers invocations of processFunc at a time. An error is only
// returned in case of a context cancellation, after all started invocations
// have returned.
//
// It is the responsibility of the processFunc to ensure thread-safety for
// anything happening inside the processFunc, with the [Queue] only
// guaranteeing thread-safety for itself.
func (q *Queue[T]) DequeueAndProcessConc(ctx context.Context, maxWorkers int, processFunc func(T) Decision) error {
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, max(maxWorkers, 1))

	for {
		select {
		case <-ctx.Done():
			wg.Wait()

			return fmt.Errorf("(queue-concproc) %w", ctx.Err())
		case semaphore <- struct{}{}:
		}

		if ctx.Err() != nil {
			<-semaphore

			continue
		}

		item, ok := q.Dequeue()
		if !ok {
			<-semaphore

			break
		}

		wg.Add(1)
		go func(item T) {
			defer wg.Done()
			defer func() { <-semaphore }()

			q.SetProcessing(item)

			switch processFunc(item) {
			case DecisionSkipped:
				q.SetSkipped(item)
			case DecisionSuccess:
				q.SetSuccess(item)
			}
		}(item)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return fmt.Errorf("(queue-concproc) %w", ctx.Err())
	}

	return nil
}
