package application

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCollectingFailures(t *testing.T) {
	t.Run("attempts every item despite failures", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}
		var seen []int

		outcomes := MapCollectingFailures(items, func(i int, n int) (int, error) {
			seen = append(seen, n)
			if n%2 == 0 {
				return 0, fmt.Errorf("even %d", n)
			}
			return n * 10, nil
		})

		require.Len(t, outcomes, 5)
		assert.Equal(t, items, seen)
		assert.Equal(t, 10, outcomes[0].Value)
		assert.EqualError(t, outcomes[1].Err, "even 2")
		assert.Equal(t, 30, outcomes[2].Value)
		for i, o := range outcomes {
			assert.Equal(t, i, o.Index)
		}
	})

	t.Run("captures panics as failures", func(t *testing.T) {
		outcomes := MapCollectingFailures([]string{"a", "b"}, func(i int, s string) (string, error) {
			if s == "a" {
				panic("kaboom")
			}
			return s, nil
		})

		require.Len(t, outcomes, 2)
		var panicErr *PanicError
		require.True(t, errors.As(outcomes[0].Err, &panicErr))
		assert.Equal(t, "kaboom", panicErr.Value)
		assert.Equal(t, "", outcomes[0].Value)
		assert.True(t, outcomes[1].OK())
		assert.Equal(t, "b", outcomes[1].Value)
	})

	t.Run("empty input", func(t *testing.T) {
		outcomes := MapCollectingFailures[int, int](nil, func(int, int) (int, error) {
			t.Fatal("should not be called")
			return 0, nil
		})
		assert.Empty(t, outcomes)
	})
}

func TestMapConcurrentCollectingFailures(t *testing.T) {
	t.Run("runs items concurrently and keeps input order", func(t *testing.T) {
		var started sync.WaitGroup
		started.Add(3)
		gate := make(chan struct{})
		go func() {
			started.Wait()
			close(gate)
		}()

		outcomes := MapConcurrentCollectingFailures([]int{1, 2, 3}, func(i int, n int) (int, error) {
			started.Done()
			select {
			case <-gate:
			case <-time.After(time.Second):
				return 0, fmt.Errorf("item %d ran alone", n)
			}
			if n == 2 {
				return 0, fmt.Errorf("even %d", n)
			}
			return n * 10, nil
		})

		require.Len(t, outcomes, 3)
		for i, o := range outcomes {
			assert.Equal(t, i, o.Index)
		}
		assert.Equal(t, 10, outcomes[0].Value)
		assert.EqualError(t, outcomes[1].Err, "even 2")
		assert.Equal(t, 30, outcomes[2].Value)
	})

	t.Run("captures panics as failures", func(t *testing.T) {
		outcomes := MapConcurrentCollectingFailures([]string{"a", "b"}, func(i int, s string) (string, error) {
			if s == "a" {
				panic("kaboom")
			}
			return s, nil
		})

		require.Len(t, outcomes, 2)
		var panicErr *PanicError
		require.True(t, errors.As(outcomes[0].Err, &panicErr))
		assert.True(t, outcomes[1].OK())
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MapConcurrentCollectingFailures[int, int](nil, func(int, int) (int, error) {
			return 0, nil
		}))
	})
}

func TestPartition(t *testing.T) {
	outcomes := []Outcome[int]{
		{Index: 0, Value: 1},
		{Index: 1, Err: errors.New("x")},
		{Index: 2, Value: 3},
	}

	ok, failed := Partition(outcomes)

	require.Len(t, ok, 2)
	require.Len(t, failed, 1)
	assert.Equal(t, 0, ok[0].Index)
	assert.Equal(t, 2, ok[1].Index)
	assert.Equal(t, 1, failed[0].Index)
}
