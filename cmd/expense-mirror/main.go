package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/amqp"
	"expensetracker/internal/backend"
	"expensetracker/internal/cli"
	"expensetracker/internal/log"
	"expensetracker/internal/sheets"
	gsheet "expensetracker/internal/sheets/google"
	"expensetracker/internal/sheets/memory"
	"expensetracker/internal/storage"
	"expensetracker/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	bootstrap := cli.SetupLogger("info")
	cfg := cli.LoadAndValidateConfig(bootstrap)
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentWorker)

	if err := cfg.ValidateMirror(); err != nil {
		logger.Error("Mirror configuration invalid", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Starting expense-mirror", log.FieldOperation, log.OpStartup)

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
	defer slot.Close(context.Background())

	store := storage.NewStore(slot.Slot, cfg.StorageKey)

	var writer sheets.SnapshotWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, gsheet.Credentials{
			JSON: cfg.GoogleServiceAccountJSON,
			File: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = memory.New()
		logger.Warn("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, mirroring in memory")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	w := worker.NewMirrorWorker(store, writer, logger)

	// Catch up on anything changed while the mirror was down.
	if err := w.Resync(ctx); err != nil {
		logger.Error("Startup resync failed", log.FieldError, err)
	}

	scheduler, err := worker.NewScheduler(cfg.MirrorSchedule, w, cfg.MirrorTimeout)
	if err != nil {
		logger.Error("Invalid mirror schedule", log.FieldError, err, "schedule", cfg.MirrorSchedule)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeWithRetry(gctx, w.HandleChange)
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Mirror stopped with error", log.FieldError, err)
		return
	}
	logger.Info("Mirror shutdown complete", log.FieldOperation, log.OpShutdown)
}
