package observability

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric names recorded by dayline.
const (
	MetricOperationTotal    = "dayline.operation.total"
	MetricOperationDuration = "dayline.operation.duration"
	MetricOperationErrors   = "dayline.operation.errors"

	MetricRowsImported   = "dayline.import.rows_valid"
	MetricRowsRejected   = "dayline.import.rows_invalid"
	MetricRowsFractional = "dayline.import.rows_fractional"

	MetricResets        = "dayline.reset.total"
	MetricResetFailures = "dayline.reset.backend_failures"

	MetricEventsPublished = "dayline.events.published"
	MetricEventsFailed    = "dayline.events.failed"
)

// Metrics records counters and timings.
type Metrics interface {
	Counter(name string, value int64, tags ...Tag)
	Timing(name string, duration time.Duration, tags ...Tag)
}

// Tag labels a metric.
type Tag struct {
	Key   string
	Value string
}

// T creates a Tag.
func T(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// NoopMetrics discards everything.
type NoopMetrics struct{}

func (NoopMetrics) Counter(string, int64, ...Tag)         {}
func (NoopMetrics) Timing(string, time.Duration, ...Tag) {}

// InMemoryMetrics keeps metrics for the life of the process. The CLI reads
// them back for `status --metrics`; tests assert on them.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: map[string]int64{},
		timings:  map[string][]time.Duration{},
	}
}

func (m *InMemoryMetrics) Counter(name string, value int64, tags ...Tag) {
	m.mu.Lock()
	m.counters[metricKey(name, tags)] += value
	m.mu.Unlock()
}

func (m *InMemoryMetrics) Timing(name string, duration time.Duration, tags ...Tag) {
	key := metricKey(name, tags)
	m.mu.Lock()
	m.timings[key] = append(m.timings[key], duration)
	m.mu.Unlock()
}

// GetCounter returns a counter's value for exactly these tags.
func (m *InMemoryMetrics) GetCounter(name string, tags ...Tag) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[metricKey(name, tags)]
}

// GetTimings returns every duration recorded under these tags.
func (m *InMemoryMetrics) GetTimings(name string, tags ...Tag) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.timings[metricKey(name, tags)]...)
}

// CounterSnapshot lists every counter as "name:key=value..." keys, sorted.
func (m *InMemoryMetrics) CounterSnapshot() []CounterValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CounterValue, 0, len(m.counters))
	for key, value := range m.counters {
		out = append(out, CounterValue{Key: key, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// CounterValue is one entry of a CounterSnapshot.
type CounterValue struct {
	Key   string
	Value int64
}

func metricKey(name string, tags []Tag) string {
	if len(tags) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for _, t := range tags {
		b.WriteString(":")
		b.WriteString(t.Key)
		b.WriteString("=")
		b.WriteString(t.Value)
	}
	return b.String()
}
