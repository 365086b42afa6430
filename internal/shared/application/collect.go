package application

import (
	"fmt"
	"sync"
)

// Outcome records what happened to one item handed to MapCollectingFailures.
type Outcome[R any] struct {
	Index int
	Value R
	Err   error
}

// OK reports whether the item succeeded.
func (o Outcome[R]) OK() bool { return o.Err == nil }

// PanicError is recorded for an item whose work function panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// MapCollectingFailures applies fn to every item in order and records one
// Outcome per item. A failing or panicking item never stops the items after
// it; outcomes are returned in input order.
func MapCollectingFailures[T, R any](items []T, fn func(i int, item T) (R, error)) []Outcome[R] {
	outcomes := make([]Outcome[R], len(items))
	for i, item := range items {
		outcomes[i] = attempt(i, item, fn)
	}
	return outcomes
}

// MapConcurrentCollectingFailures is MapCollectingFailures with every item
// run on its own goroutine. It returns once all items finish; outcomes stay
// in input order.
func MapConcurrentCollectingFailures[T, R any](items []T, fn func(i int, item T) (R, error)) []Outcome[R] {
	outcomes := make([]Outcome[R], len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			outcomes[i] = attempt(i, item, fn)
		}(i, item)
	}
	wg.Wait()
	return outcomes
}

func attempt[T, R any](i int, item T, fn func(int, T) (R, error)) (out Outcome[R]) {
	out.Index = i
	defer func() {
		if r := recover(); r != nil {
			var zero R
			out.Value = zero
			out.Err = &PanicError{Value: r}
		}
	}()
	out.Value, out.Err = fn(i, item)
	return out
}

// Partition splits outcomes into successes and failures, keeping order.
func Partition[R any](outcomes []Outcome[R]) (succeeded, failed []Outcome[R]) {
	for _, o := range outcomes {
		if o.OK() {
			succeeded = append(succeeded, o)
		} else {
			failed = append(failed, o)
		}
	}
	return succeeded, failed
}
