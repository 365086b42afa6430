package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayline/adapter/cli"
	"github.com/felixgeelhaar/dayline/adapter/cli/schedule"
	"github.com/felixgeelhaar/dayline/adapter/cli/task"
	"github.com/felixgeelhaar/dayline/internal/app"
	"github.com/felixgeelhaar/dayline/pkg/config"
	"github.com/felixgeelhaar/dayline/pkg/observability"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat))
	slog.SetDefault(logger)
	cli.SetLogger(logger)

	// Cancel in-flight work on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			return 1
		}
		// In development, allow version and help to run without storage
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(cli.NewAppFromContainer(container))
	}

	cli.AddCommand(schedule.Cmd)
	cli.AddCommand(task.Cmd)

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}
