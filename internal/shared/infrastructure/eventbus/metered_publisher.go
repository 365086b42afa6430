package eventbus

import (
	"context"

	"github.com/felixgeelhaar/dayline/pkg/observability"
)

// MeteredPublisher counts published and failed events per routing key.
type MeteredPublisher struct {
	next    Publisher
	metrics observability.Metrics
}

// NewMeteredPublisher wraps next. A nil metrics sink records nothing.
func NewMeteredPublisher(next Publisher, metrics observability.Metrics) *MeteredPublisher {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &MeteredPublisher{next: next, metrics: metrics}
}

func (p *MeteredPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	tag := observability.T("routing_key", routingKey)
	if err := p.next.Publish(ctx, routingKey, payload); err != nil {
		p.metrics.Counter(observability.MetricEventsFailed, 1, tag)
		return err
	}
	p.metrics.Counter(observability.MetricEventsPublished, 1, tag)
	return nil
}

func (p *MeteredPublisher) Close() error {
	return p.next.Close()
}

// Unwrap returns the decorated publisher.
func (p *MeteredPublisher) Unwrap() Publisher {
	return p.next
}
