package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"InstrumentData/internal/app"
	"InstrumentData/internal/config"
	"InstrumentData/internal/logging"
	"InstrumentData/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal(slog.Default(), "load config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(slog.Default(), "config validation", err)
	}

	logger, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		fatal(slog.Default(), "init logger", err)
	}
	slog.SetDefault(logger)

	registry := prometheus.NewRegistry()
	p, err := app.NewProvider(cfg, registry)
	if err != nil {
		fatal(logger, "init provider", err)
	}
	logger.Info("data source", slog.String("provider", p.Name()))

	runner := &app.Runner{
		Config:   cfg,
		Provider: p,
		Strategy: app.NewStrategy(cfg.Strategy),
		Gatherer: registry,
		Logger:   logger,
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(ctx, runner.Refresh, logger)
	if err := sched.RunNow(); err != nil {
		fatal(logger, "build dataset", err)
	}

	if cfg.Schedule.RefreshCron == "" {
		return
	}
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		fatal(logger, "register refresh", err)
	}
	sched.Start()
	if next, ok := sched.Next(); ok {
		logger.Info("waiting for next refresh", slog.Time("next", next))
	}

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping")
	sched.Stop()
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
