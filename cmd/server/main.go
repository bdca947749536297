package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpadapter "resume-maker/internal/adapter/http"
	repo "resume-maker/internal/adapter/repository"
	"resume-maker/internal/config"
	"resume-maker/internal/infrastructure/migration"
	"resume-maker/internal/metrics"
	"resume-maker/internal/theme"
	"resume-maker/internal/usecase"
	infra "resume-maker/pkg/infrastructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var pool *pgxpool.Pool
	if cfg.Storage.DatabaseURL != "" {
		pool, err = infra.NewPool(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			if cfg.Storage.Driver == config.DriverPostgres {
				return fmt.Errorf("connect postgres: %w", err)
			}
			logger.Warn("Export log database not available", "error", err)
		} else {
			defer pool.Close()
			if err := migration.RunMigrations(ctx, pool); err != nil {
				return err
			}
		}
	}

	storage, closeStorage, err := openStorage(ctx, cfg, pool)
	if err != nil {
		return err
	}
	defer closeStorage()
	logger.Info("Storage ready", "driver", cfg.Storage.Driver)

	themes, err := theme.NewRegistry(cfg.TemplatesDir, logger)
	if err != nil {
		return err
	}
	if cfg.WatchTemplates {
		go func() {
			if err := themes.Watch(ctx); err != nil {
				logger.Warn("Template watcher stopped", "error", err)
			}
		}()
	}

	session, err := usecase.NewSession(usecase.Options{
		Storage:          storage,
		Themes:           themes,
		DocumentRenderer: infra.NewChromedpRenderer(cfg.ChromePath),
		Exports:          repo.NewExportsRepo(pool),
		ExportDir:        cfg.ExportDir,
		AutosaveInterval: cfg.AutosaveInterval,
		Logger:           logger,
		Metrics:          m,
	})
	if err != nil {
		return err
	}
	if session.Start(ctx) {
		logger.Info("Restored saved resume")
	}
	go func() {
		_ = session.Run(ctx)
	}()

	app := fiber.New(fiber.Config{
		AppName:               "resume-maker",
		DisableStartupMessage: cfg.Environment == "production",
		BodyLimit:             10 << 20,
	})
	httpadapter.NewHandler(session, logger).Register(app, reg)

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(":" + cfg.Port)
	}()
	logger.Info("Server listening", "port", cfg.Port, "environment", cfg.Environment)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

// openStorage builds the configured backend. The returned func releases it.
func openStorage(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (usecase.Storage, func(), error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return repo.NewMemoryStorage(int(cfg.Storage.QuotaBytes)), noop, nil
	case config.DriverPostgres:
		return repo.NewPostgresStorage(pool), noop, nil
	case config.DriverRedis:
		client, err := infra.NewRedisClient(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisStorage(client, repo.DefaultRedisPrefix), func() { _ = client.Close() }, nil
	}
	s, err := repo.NewFileStorage(cfg.Storage.DataDir, cfg.Storage.QuotaBytes)
	if err != nil {
		return nil, nil, err
	}
	return s, noop, nil
}
