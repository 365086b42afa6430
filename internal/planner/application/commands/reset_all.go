package commands

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayline/pkg/observability"
)

// RoutingKeyResetCompleted is published after every reset attempt.
const RoutingKeyResetCompleted = "planner.reset.completed"

// ResetAllCommand wipes every backend.
type ResetAllCommand struct{}

// ResetAllHandler handles the ResetAllCommand.
type ResetAllHandler struct {
	coordinator *services.ResetCoordinator
	publisher   eventbus.Publisher
	logger      *slog.Logger
	metrics     observability.Metrics
}

// NewResetAllHandler creates a new ResetAllHandler.
func NewResetAllHandler(coordinator *services.ResetCoordinator, publisher eventbus.Publisher, logger *slog.Logger, metrics observability.Metrics) *ResetAllHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ResetAllHandler{coordinator: coordinator, publisher: publisher, logger: logger, metrics: metrics}
}

// Handle always returns a result; backend failures are listed in it rather
// than returned as an error.
func (h *ResetAllHandler) Handle(ctx context.Context, _ ResetAllCommand) services.ResetResult {
	result := h.coordinator.ResetAll(ctx)

	h.metrics.Counter(observability.MetricResets, 1)
	if n := len(result.Errors); n > 0 {
		h.metrics.Counter(observability.MetricResetFailures, int64(n))
		h.logger.WarnContext(ctx, "reset incomplete",
			"backends", result.Backends,
			"errors", result.Errors,
		)
	} else {
		h.logger.InfoContext(ctx, "reset completed", "backends", result.Backends)
	}

	publish(ctx, h.publisher, h.logger, RoutingKeyResetCompleted, result)
	return result
}
