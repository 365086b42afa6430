package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// InProcessBus delivers events synchronously to registered consumers. It is
// the publisher used when no broker is configured.
type InProcessBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewInProcessBus creates a new in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer registers an event consumer.
func (b *InProcessBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes an Envelope and dispatches it. Bad payloads and consumer
// failures are logged, never returned: a local side effect must not fail the
// command that emitted the event.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	event := &Envelope{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.ErrorContext(ctx, "failed to unmarshal event payload",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	start := time.Now()
	if err := b.registry.Dispatch(ctx, event); err != nil {
		b.logger.ErrorContext(ctx, "event dispatch failed",
			"routing_key", routingKey,
			"event_id", event.EventID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil
	}

	b.logger.DebugContext(ctx, "event dispatched",
		"routing_key", routingKey,
		"event_id", event.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}

// Registry returns the underlying consumer registry.
func (b *InProcessBus) Registry() *ConsumerRegistry {
	return b.registry
}

// LoggingConsumer writes every event it sees to the logger at info level.
type LoggingConsumer struct {
	logger *slog.Logger
}

// NewLoggingConsumer creates a wildcard consumer that logs events.
func NewLoggingConsumer(logger *slog.Logger) *LoggingConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingConsumer{logger: logger}
}

func (c *LoggingConsumer) EventTypes() []string { return []string{Wildcard} }

func (c *LoggingConsumer) Handle(ctx context.Context, event *Envelope) error {
	c.logger.InfoContext(ctx, "event",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
		"payload", string(event.Payload),
	)
	return nil
}
