package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayline/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type importedPayload struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
}

func TestNewEnvelope(t *testing.T) {
	ctx := observability.WithCorrelationID(context.Background(), "corr-1")
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600))

	env, err := eventbus.NewEnvelope(ctx, "planner.import.completed", importedPayload{Source: "plan.xlsx", Rows: 3}, at)
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(env.EventID))
	assert.Equal(t, "planner.import.completed", env.RoutingKey)
	assert.Equal(t, "corr-1", env.CorrelationID)
	assert.Equal(t, time.UTC, env.OccurredAt.Location())
	assert.True(t, env.OccurredAt.Equal(at))

	var got importedPayload
	require.NoError(t, env.Decode(&got))
	assert.Equal(t, importedPayload{Source: "plan.xlsx", Rows: 3}, got)
}

func TestNewEnvelope_UnencodablePayload(t *testing.T) {
	_, err := eventbus.NewEnvelope(context.Background(), "x", func() {}, time.Now())
	assert.Error(t, err)
}

func TestPublishJSON_DeliversThroughInProcessBus(t *testing.T) {
	bus := eventbus.NewInProcessBus(testLogger())
	consumer := &mockConsumer{eventTypes: []string{"planner.import.completed"}}
	bus.RegisterConsumer(consumer)

	ctx := observability.WithCorrelationID(context.Background(), "corr-2")
	err := eventbus.PublishJSON(ctx, bus, "planner.import.completed", importedPayload{Source: "a.xlsx", Rows: 1})
	require.NoError(t, err)

	require.Len(t, consumer.events, 1)
	event := consumer.events[0]
	assert.Equal(t, "planner.import.completed", event.RoutingKey)
	assert.Equal(t, "corr-2", event.CorrelationID)

	var got importedPayload
	require.NoError(t, event.Decode(&got))
	assert.Equal(t, "a.xlsx", got.Source)
}

func TestInProcessBus_ConsumerErrorIsSwallowed(t *testing.T) {
	bus := eventbus.NewInProcessBus(testLogger())
	consumer := &mockConsumer{eventTypes: []string{"planner.reset.completed"}, err: errors.New("boom")}
	bus.RegisterConsumer(consumer)

	err := eventbus.PublishJSON(context.Background(), bus, "planner.reset.completed", map[string]bool{"success": true})
	assert.NoError(t, err)
	assert.Len(t, consumer.events, 1)
}

func TestInProcessBus_InvalidPayload(t *testing.T) {
	bus := eventbus.NewInProcessBus(testLogger())
	consumer := &mockConsumer{eventTypes: []string{eventbus.Wildcard}}
	bus.RegisterConsumer(consumer)

	err := bus.Publish(context.Background(), "planner.import.completed", []byte("not json"))
	assert.NoError(t, err)
	assert.Empty(t, consumer.events)
}

func TestInProcessBus_FillsMissingRoutingKey(t *testing.T) {
	bus := eventbus.NewInProcessBus(testLogger())
	consumer := &mockConsumer{eventTypes: []string{"planner.schedule.recalculated"}}
	bus.RegisterConsumer(consumer)

	body, err := json.Marshal(map[string]any{"payload": map[string]int{"task_count": 2}})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), "planner.schedule.recalculated", body))
	require.Len(t, consumer.events, 1)
	assert.Equal(t, "planner.schedule.recalculated", consumer.events[0].RoutingKey)
}

func TestInProcessBus_CloseAndRegistry(t *testing.T) {
	bus := eventbus.NewInProcessBus(testLogger())
	assert.NotNil(t, bus.Registry())
	assert.NoError(t, bus.Close())
}

func TestLoggingConsumer(t *testing.T) {
	c := eventbus.NewLoggingConsumer(testLogger())
	assert.Equal(t, []string{eventbus.Wildcard}, c.EventTypes())
	assert.NoError(t, c.Handle(context.Background(), &eventbus.Envelope{RoutingKey: "x", Payload: json.RawMessage(`{}`)}))
}

func TestNoopPublisher(t *testing.T) {
	p := eventbus.NewNoopPublisher(nil)
	assert.NoError(t, p.Publish(context.Background(), "x", []byte("{}")))
	assert.NoError(t, p.Close())
}
