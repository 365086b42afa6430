package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetAllHandler_Handle(t *testing.T) {
	publisher := &recordingPublisher{}
	metrics := observability.NewInMemoryMetrics()

	coordinator := services.NewResetCoordinator(time.Second,
		services.ResetFunc{BackendName: "structured-store", Fn: func(context.Context) error { return nil }},
		services.ResetFunc{BackendName: "kv-store", Fn: func(context.Context) error { return errors.New("connection refused") }},
	)
	handler := NewResetAllHandler(coordinator, publisher, nil, metrics)

	result := handler.Handle(context.Background(), ResetAllCommand{})

	assert.False(t, result.Success)
	assert.Equal(t, map[string]bool{"structured-store": true, "kv-store": false}, result.Cleared)
	assert.Equal(t, []string{"kv-store: connection refused"}, result.Errors)

	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricResets))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricResetFailures))

	require.Equal(t, []string{RoutingKeyResetCompleted}, publisher.keys())
	var published services.ResetResult
	require.NoError(t, publisher.events[0].Decode(&published))
	assert.Equal(t, result, published)
}

func TestResetAllHandler_AllClear(t *testing.T) {
	coordinator := services.NewResetCoordinator(0,
		services.ResetFunc{BackendName: "structured-store", Fn: func(context.Context) error { return nil }},
	)
	result := NewResetAllHandler(coordinator, nil, nil, nil).Handle(context.Background(), ResetAllCommand{})

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
}
