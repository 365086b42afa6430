package observability

import (
	"context"
	"log/slog"
	"time"
)

// Timer measures one operation. On stop it logs the outcome at debug level
// on success and error level on failure, and records MetricOperation*.
type Timer struct {
	operation string
	start     time.Time
	ctx       context.Context
	logger    *slog.Logger
	metrics   Metrics
	tags      []Tag
}

// StartTimer starts timing operation.
func StartTimer(operation string) *Timer {
	return &Timer{operation: operation, start: time.Now(), ctx: context.Background()}
}

// WithContext sets the context log records are emitted with.
func (t *Timer) WithContext(ctx context.Context) *Timer {
	if ctx != nil {
		t.ctx = ctx
	}
	return t
}

func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

func (t *Timer) WithMetrics(metrics Metrics) *Timer {
	t.metrics = metrics
	return t
}

func (t *Timer) WithTags(tags ...Tag) *Timer {
	t.tags = append(t.tags, tags...)
	return t
}

// Stop records a successful run.
func (t *Timer) Stop() time.Duration {
	return t.StopWithError(nil)
}

// StopWithError records a run that ended with err, which may be nil.
func (t *Timer) StopWithError(err error) time.Duration {
	elapsed := time.Since(t.start)

	if t.logger != nil {
		attrs := []any{OperationKey, t.operation, DurationKey, elapsed.Milliseconds()}
		if err != nil {
			t.logger.ErrorContext(t.ctx, "operation failed", append(attrs, ErrorKey, err.Error())...)
		} else {
			t.logger.DebugContext(t.ctx, "operation completed", attrs...)
		}
	}

	if t.metrics != nil {
		tags := make([]Tag, 0, len(t.tags)+1)
		tags = append(append(tags, t.tags...), T(OperationKey, t.operation))
		t.metrics.Timing(MetricOperationDuration, elapsed, tags...)
		t.metrics.Counter(MetricOperationTotal, 1, tags...)
		if err != nil {
			t.metrics.Counter(MetricOperationErrors, 1, tags...)
		}
	}
	return elapsed
}

// TimeOperation times fn.
func TimeOperation(ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func() error) error {
	_, err := TimeOperationResult(ctx, logger, metrics, operation, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// TimeOperationResult times fn and passes its result through.
func TimeOperationResult[T any](ctx context.Context, logger *slog.Logger, metrics Metrics, operation string, fn func() (T, error)) (T, error) {
	timer := StartTimer(operation).WithContext(ctx).WithLogger(logger).WithMetrics(metrics)
	result, err := fn()
	timer.StopWithError(err)
	return result, err
}
