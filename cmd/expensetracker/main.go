package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/amqp"
	"expensetracker/internal/backend"
	"expensetracker/internal/cli"
	apphttp "expensetracker/internal/http"
	"expensetracker/internal/log"
	"expensetracker/internal/storage"
	"expensetracker/internal/tracker"
)

func main() {
	cli.LoadEnvFile()

	bootstrap := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(bootstrap)
	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, cancel := cli.GracefulShutdown(logger)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}
	slot, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend)).CreateSlot(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", log.FieldError, err, log.FieldBackend, backendCfg.Type)
		os.Exit(1)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer closeCancel()
		if err := slot.Close(closeCtx); err != nil {
			logger.Warn("Failed to close storage backend", log.FieldError, err)
		}
	}()

	store := storage.NewStore(slot.Slot, cfg.StorageKey)
	opts := []tracker.Option{tracker.WithLogger(logger.WithComponent(log.ComponentTracker))}

	// Change notifications are optional; the tracker works without a broker.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, change notifications disabled", log.FieldError, err)
		} else {
			defer amqpClient.Close()
			opts = append(opts, tracker.WithNotifier(amqpClient))
			logger.Info("AMQP change notifications enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	tr, err := tracker.New(ctx, store, opts...)
	if err != nil {
		logger.Error("Failed to load expenses", log.FieldError, err)
		os.Exit(1)
	}

	srv, err := apphttp.NewServer(":"+cfg.Port, tr,
		apphttp.WithLogger(logger.WithComponent(log.ComponentHTTP)),
		apphttp.WithRateLimit(cfg.RateLimitPerMinute),
		apphttp.WithReadiness(slot.Ping),
	)
	if err != nil {
		logger.Error("Failed to create HTTP server", log.FieldError, err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "port", cfg.Port, log.FieldBackend, backendCfg.Type, log.FieldStorageKey, store.Key(), log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...", log.FieldOperation, log.OpShutdown)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", log.FieldError, err)
		cancel()
		return
	}
	logger.Info("Server shutdown complete")
}
