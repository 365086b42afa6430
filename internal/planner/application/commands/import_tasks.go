package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/settings"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/task"
	sharedApplication "github.com/felixgeelhaar/dayline/internal/shared/application"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayline/pkg/observability"
)

// ImportTasksCommand carries one decoded spreadsheet.
type ImportTasksCommand struct {
	Source string
	Rows   []importing.Row
}

// ImportTasksResult contains the new schedule and the import summary.
type ImportTasksResult struct {
	Schedule *ScheduleResult
	Summary  importing.Summary
}

// ImportTasksHandler handles the ImportTasksCommand.
type ImportTasksHandler struct {
	summaryRepo  importing.SummaryRepository
	settingsRepo settings.Repository
	importer     *services.BatchImporter
	uow          sharedApplication.UnitOfWork
	scheduler    scheduler
	metrics      observability.Metrics
}

// NewImportTasksHandler creates a new ImportTasksHandler.
func NewImportTasksHandler(
	taskRepo task.Repository,
	summaryRepo importing.SummaryRepository,
	settingsRepo settings.Repository,
	importer *services.BatchImporter,
	calculator *services.ScheduleCalculator,
	uow sharedApplication.UnitOfWork,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.Metrics,
) *ImportTasksHandler {
	if importer == nil {
		importer = services.NewBatchImporter(nil, nil)
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ImportTasksHandler{
		summaryRepo:  summaryRepo,
		settingsRepo: settingsRepo,
		importer:     importer,
		uow:          uow,
		scheduler:    newScheduler(taskRepo, calculator, publisher, logger),
		metrics:      metrics,
	}
}

// Handle validates every row, schedules the accepted ones from the start
// time and replaces the stored task list and summary in one unit of work.
// A start time found in the sheet wins over the saved one and is saved.
func (h *ImportTasksHandler) Handle(ctx context.Context, cmd ImportTasksCommand) (*ImportTasksResult, error) {
	logger := h.scheduler.logger
	imported := h.importer.Import(cmd.Rows, cmd.Source)
	summary := imported.Summary

	start, err := h.startTime(ctx, summary.StartTime)
	if err != nil {
		return nil, err
	}

	var schedule *ScheduleResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		schedule, err = h.scheduler.apply(txCtx, imported.Tasks, start)
		if err != nil {
			return err
		}
		if err := h.summaryRepo.Save(txCtx, summary); err != nil {
			return fmt.Errorf("save import summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.metrics.Counter(observability.MetricRowsImported, int64(summary.ValidRows))
	h.metrics.Counter(observability.MetricRowsRejected, int64(summary.InvalidRows))
	h.metrics.Counter(observability.MetricRowsFractional, int64(summary.FractionalRows))

	logger.InfoContext(ctx, "tasks imported",
		"source", cmd.Source,
		"valid_rows", summary.ValidRows,
		"invalid_rows", summary.InvalidRows,
		"fractional_rows", summary.FractionalRows,
		"start_time", schedule.StartTime,
		"end_time", schedule.EndTime,
	)
	if summary.FractionalRows > 0 {
		logger.WarnContext(ctx, "durations below one were read as fractions of a day",
			"rows", summary.FractionalRows,
		)
	}

	publish(ctx, h.scheduler.publisher, logger, importing.RoutingKeyImportCompleted, importing.ImportCompleted{
		SummaryID:   summary.ID,
		SourceName:  summary.SourceName,
		ValidRows:   summary.ValidRows,
		InvalidRows: summary.InvalidRows,
	})
	h.scheduler.announce(ctx, ReasonImport, schedule)

	return &ImportTasksResult{Schedule: schedule, Summary: summary}, nil
}

func (h *ImportTasksHandler) startTime(ctx context.Context, fromSheet string) (string, error) {
	if fromSheet == "" {
		start, err := h.settingsRepo.LoadStartTime(ctx)
		if err != nil {
			return "", fmt.Errorf("load start time: %w", err)
		}
		return start, nil
	}
	if err := h.settingsRepo.SaveStartTime(ctx, fromSheet); err != nil {
		h.scheduler.logger.WarnContext(ctx, "could not save start time from sheet",
			"start_time", fromSheet,
			"error", err,
		)
	}
	return fromSheet, nil
}
