package cli

import (
	"errors"

	internalApp "github.com/felixgeelhaar/dayline/internal/app"
	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayline/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayline/internal/planner/infrastructure/spreadsheet"
	"github.com/felixgeelhaar/dayline/pkg/observability"
)

// ErrNotInitialized is returned by commands run before SetApp.
var ErrNotInitialized = errors.New("dayline is not initialized")

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	ImportTasksHandler         *commands.ImportTasksHandler
	RecalculateScheduleHandler *commands.RecalculateScheduleHandler
	ReorderTaskHandler         *commands.ReorderTaskHandler
	SetStartTimeHandler        *commands.SetStartTimeHandler
	UpdateNotesHandler         *commands.UpdateNotesHandler
	DeleteTaskHandler          *commands.DeleteTaskHandler
	ResetAllHandler            *commands.ResetAllHandler

	// Query Handlers
	GetScheduleHandler      *queries.GetScheduleHandler
	GetImportSummaryHandler *queries.GetImportSummaryHandler
	ExportScheduleHandler   *queries.ExportScheduleHandler

	Decoder *spreadsheet.XLSXDecoder

	Health  *observability.HealthRegistry
	Metrics observability.Metrics
}

// NewApp creates a new CLI application.
func NewApp(
	importTasksHandler *commands.ImportTasksHandler,
	recalculateScheduleHandler *commands.RecalculateScheduleHandler,
	reorderTaskHandler *commands.ReorderTaskHandler,
	setStartTimeHandler *commands.SetStartTimeHandler,
	updateNotesHandler *commands.UpdateNotesHandler,
	deleteTaskHandler *commands.DeleteTaskHandler,
	resetAllHandler *commands.ResetAllHandler,
	getScheduleHandler *queries.GetScheduleHandler,
	getImportSummaryHandler *queries.GetImportSummaryHandler,
	exportScheduleHandler *queries.ExportScheduleHandler,
) *App {
	return &App{
		ImportTasksHandler:         importTasksHandler,
		RecalculateScheduleHandler: recalculateScheduleHandler,
		ReorderTaskHandler:         reorderTaskHandler,
		SetStartTimeHandler:        setStartTimeHandler,
		UpdateNotesHandler:         updateNotesHandler,
		DeleteTaskHandler:          deleteTaskHandler,
		ResetAllHandler:            resetAllHandler,
		GetScheduleHandler:         getScheduleHandler,
		GetImportSummaryHandler:    getImportSummaryHandler,
		ExportScheduleHandler:      exportScheduleHandler,
		Metrics:                    observability.NoopMetrics{},
	}
}

// NewAppFromContainer creates a CLI application from a fully wired container.
func NewAppFromContainer(c *internalApp.Container) *App {
	a := NewApp(
		c.ImportTasksHandler,
		c.RecalculateScheduleHandler,
		c.ReorderTaskHandler,
		c.SetStartTimeHandler,
		c.UpdateNotesHandler,
		c.DeleteTaskHandler,
		c.ResetAllHandler,
		c.GetScheduleHandler,
		c.GetImportSummaryHandler,
		c.ExportScheduleHandler,
	)
	a.SetDecoder(c.Decoder)
	a.SetHealth(c.Health)
	a.SetMetrics(c.Metrics)
	return a
}

// SetDecoder sets the spreadsheet decoder used by import.
func (a *App) SetDecoder(decoder *spreadsheet.XLSXDecoder) {
	a.Decoder = decoder
}

// SetHealth sets the registry the status command reports on.
func (a *App) SetHealth(registry *observability.HealthRegistry) {
	a.Health = registry
}

// SetMetrics sets the metrics sink for command timings.
func (a *App) SetMetrics(metrics observability.Metrics) {
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	a.Metrics = metrics
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}

// RequireApp returns the global instance or ErrNotInitialized.
func RequireApp() (*App, error) {
	if app == nil {
		return nil, ErrNotInitialized
	}
	return app, nil
}
