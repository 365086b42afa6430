package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayline/internal/planner/application/commands"
	"github.com/felixgeelhaar/dayline/internal/planner/application/queries"
	"github.com/felixgeelhaar/dayline/internal/planner/application/services"
	"github.com/felixgeelhaar/dayline/internal/planner/domain/importing"
	"github.com/felixgeelhaar/dayline/internal/planner/infrastructure/kvstore"
	"github.com/felixgeelhaar/dayline/internal/planner/infrastructure/persistence"
	"github.com/felixgeelhaar/dayline/internal/planner/infrastructure/spreadsheet"
	sharedDomain "github.com/felixgeelhaar/dayline/internal/shared/domain"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/dayline/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayline/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/dayline/pkg/config"
	"github.com/felixgeelhaar/dayline/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry
	Clock   sharedDomain.TimeSource

	// Infrastructure
	DBConn         database.Connection
	UnitOfWork     *database.GenericUnitOfWork
	RedisClient    *redis.Client
	KVStore        kvstore.Store
	EventPublisher eventbus.Publisher
	InProcessBus   *eventbus.InProcessBus
	Decoder        *spreadsheet.XLSXDecoder
	Encoder        *spreadsheet.XLSXEncoder

	// Repositories
	TaskRepo     *persistence.SQLTaskRepository
	SummaryRepo  *persistence.SQLSummaryRepository
	SettingsRepo *persistence.KVSettingsRepository

	// Services
	Calculator       *services.ScheduleCalculator
	Importer         *services.BatchImporter
	ResetCoordinator *services.ResetCoordinator

	// Command handlers
	ImportTasksHandler         *commands.ImportTasksHandler
	RecalculateScheduleHandler *commands.RecalculateScheduleHandler
	ReorderTaskHandler         *commands.ReorderTaskHandler
	SetStartTimeHandler        *commands.SetStartTimeHandler
	UpdateNotesHandler         *commands.UpdateNotesHandler
	DeleteTaskHandler          *commands.DeleteTaskHandler
	ResetAllHandler            *commands.ResetAllHandler

	// Query handlers
	GetScheduleHandler      *queries.GetScheduleHandler
	GetImportSummaryHandler *queries.GetImportSummaryHandler
	ExportScheduleHandler   *queries.ExportScheduleHandler
}

// Columns maps the configured column names onto importing.Columns.
func Columns(cfg *config.Config) importing.Columns {
	return importing.Columns{
		OrderKey:  cfg.ColumnOrder,
		Name:      cfg.ColumnName,
		Duration:  cfg.ColumnDuration,
		Notes:     cfg.ColumnNotes,
		StartTime: cfg.ColumnStart,
	}.WithDefaults()
}

// NewContainer connects every backend and builds the handlers. SQLite,
// in-memory settings and the in-process bus are used when no URLs are
// configured. Outside development an unreachable Redis or RabbitMQ is an
// error; in development it falls back to the local implementation.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(),
		Clock:   sharedDomain.SystemTime{},
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initKVStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	c.wire()
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbCfg := database.Config{URL: c.Config.DatabaseURL, SQLitePath: c.Config.SQLitePath}
	if c.Config.LocalMode {
		dbCfg.Driver = database.DriverSQLite
	} else if database.DetectDriver(c.Config.DatabaseURL) == database.DriverSQLite {
		dbCfg.Driver = database.DriverSQLite
		dbCfg.SQLitePath = database.SQLitePathFromURL(c.Config.DatabaseURL)
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrations.Run(ctx, conn); err != nil {
		conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DBConn = conn
	c.UnitOfWork = database.NewUnitOfWork(conn)
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))
	c.Logger.Info("connected to database", "driver", conn.Driver().String())
	return nil
}

func (c *Container) initKVStore(ctx context.Context) error {
	if !c.Config.UsesRedis() {
		c.KVStore = kvstore.NewMemoryStore()
		c.Logger.Debug("using in-memory settings store")
		return nil
	}

	client, err := kvstore.DialRedis(ctx, c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, settings will use in-memory fallback", "error", err)
		c.KVStore = kvstore.NewMemoryStore()
		return nil
	}

	c.RedisClient = client
	c.KVStore = kvstore.NewBreakerStore("redis", kvstore.NewRedisStore(client, kvstore.DefaultNamespace), kvstore.BreakerConfig{
		FailureThreshold: convert.IntToUint32Clamped(c.Config.BreakerFailures, 1),
		Timeout:          c.Config.BreakerTimeout,
		MaxRequests:      1,
	}, c.Logger)
	c.Health.Register("kv-store", observability.KeyValueHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) initPublisher() error {
	if c.Config.UsesBroker() {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, eventbus.ExchangeName, c.Logger)
		if err == nil {
			c.EventPublisher = eventbus.NewMeteredPublisher(publisher, c.Metrics)
			c.Health.Register("event-broker", observability.BrokerHealthChecker(publisher.Ping))
			return nil
		}
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
	}

	c.InProcessBus = eventbus.NewInProcessBus(c.Logger)
	c.InProcessBus.RegisterConsumer(eventbus.NewLoggingConsumer(c.Logger))
	c.EventPublisher = eventbus.NewMeteredPublisher(c.InProcessBus, c.Metrics)
	return nil
}

func (c *Container) wire() {
	columns := Columns(c.Config)

	c.Decoder = spreadsheet.NewXLSXDecoder(c.Config.SheetName)
	c.Encoder = spreadsheet.NewXLSXEncoder(columns)

	c.TaskRepo = persistence.NewSQLTaskRepository(c.DBConn)
	c.SummaryRepo = persistence.NewSQLSummaryRepository(c.DBConn)
	c.SettingsRepo = persistence.NewKVSettingsRepository(c.KVStore, c.Config.DefaultStartTime)

	c.Calculator = services.NewScheduleCalculator()
	c.Importer = services.NewBatchImporter(importing.NewValidator(columns), c.Clock)
	c.ResetCoordinator = services.NewResetCoordinator(c.Config.ResetTimeout,
		&persistence.StructuredStore{Tasks: c.TaskRepo, Summaries: c.SummaryRepo, UoW: c.UnitOfWork},
		c.SettingsRepo,
	)

	c.ImportTasksHandler = commands.NewImportTasksHandler(c.TaskRepo, c.SummaryRepo, c.SettingsRepo, c.Importer, c.Calculator, c.UnitOfWork, c.EventPublisher, c.Logger, c.Metrics)
	c.RecalculateScheduleHandler = commands.NewRecalculateScheduleHandler(c.TaskRepo, c.SettingsRepo, c.Calculator, c.UnitOfWork, c.EventPublisher, c.Logger)
	c.ReorderTaskHandler = commands.NewReorderTaskHandler(c.TaskRepo, c.SettingsRepo, c.Calculator, c.UnitOfWork, c.EventPublisher, c.Logger)
	c.SetStartTimeHandler = commands.NewSetStartTimeHandler(c.TaskRepo, c.SettingsRepo, c.Calculator, c.UnitOfWork, c.Clock, c.EventPublisher, c.Logger)
	c.UpdateNotesHandler = commands.NewUpdateNotesHandler(c.TaskRepo, c.UnitOfWork, c.Logger)
	c.DeleteTaskHandler = commands.NewDeleteTaskHandler(c.TaskRepo, c.SettingsRepo, c.Calculator, c.UnitOfWork, c.EventPublisher, c.Logger)
	c.ResetAllHandler = commands.NewResetAllHandler(c.ResetCoordinator, c.EventPublisher, c.Logger, c.Metrics)

	c.GetScheduleHandler = queries.NewGetScheduleHandler(c.TaskRepo, c.SettingsRepo, c.Calculator)
	c.GetImportSummaryHandler = queries.NewGetImportSummaryHandler(c.SummaryRepo)
	c.ExportScheduleHandler = queries.NewExportScheduleHandler(c.TaskRepo, c.Encoder)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Debug("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Debug("database connection closed")
		}
	}
}
