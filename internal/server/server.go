// Package server boots the application: config, database, cache, storage,
// queue workers and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerloft/careerloft/app/jobs"
	"github.com/careerloft/careerloft/config"
	"github.com/careerloft/careerloft/database/migrations"
	"github.com/careerloft/careerloft/internal/kernel"
	"github.com/careerloft/careerloft/pkg/cache"
	"github.com/careerloft/careerloft/pkg/database"
	"github.com/careerloft/careerloft/pkg/logger"
	"github.com/careerloft/careerloft/pkg/queue"
	"github.com/careerloft/careerloft/pkg/schedule"
	"github.com/careerloft/careerloft/pkg/storage"
)

// Run boots everything and blocks until SIGINT/SIGTERM.
func Run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		closeSink, err := logger.EnableMongoSink(uri, config.LogMongoDB(), "logs")
		if err != nil {
			logger.Warn("server: mongo log sink disabled", "error", err)
		} else {
			defer closeSink()
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close() //nolint:errcheck
	if err := migrations.Migrate(database.DB); err != nil {
		return fmt.Errorf("server: migrate: %w", err)
	}
	queue.UseDB(database.DB)

	if err := cache.Connect(); err != nil {
		// Sessions and queue fall back to in-process state without Redis;
		// fine for development, not for production.
		logger.Warn("server: redis unavailable", "error", err)
	}

	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobs.RegisterAll()
	if config.Get("QUEUE_DRIVER", "memory") == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, 4)

	kernel.RegisterListeners()
	kernel.RegisterSchedules()
	schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.NewRouter().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
