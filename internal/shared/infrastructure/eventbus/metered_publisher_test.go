package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/dayline/pkg/observability"
)

type failingPublisher struct {
	err    error
	closed bool
}

func (f *failingPublisher) Publish(context.Context, string, []byte) error { return f.err }
func (f *failingPublisher) Close() error {
	f.closed = true
	return nil
}

func TestMeteredPublisher(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewInMemoryMetrics()
	inner := &failingPublisher{}
	p := NewMeteredPublisher(inner, metrics)

	require.NoError(t, p.Publish(ctx, "planner.import.completed", []byte(`{}`)))
	require.NoError(t, p.Publish(ctx, "planner.import.completed", []byte(`{}`)))

	inner.err = errors.New("broker down")
	assert.Error(t, p.Publish(ctx, "planner.reset.completed", []byte(`{}`)))

	assert.Equal(t, int64(2), metrics.GetCounter(observability.MetricEventsPublished,
		observability.T("routing_key", "planner.import.completed")))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricEventsFailed,
		observability.T("routing_key", "planner.reset.completed")))

	require.NoError(t, p.Close())
	assert.True(t, inner.closed)
	assert.Same(t, inner, p.Unwrap())
}
