package main

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
	"github.com/Lukk17/exchangeApp/internal/platform/config"
	"github.com/Lukk17/exchangeApp/internal/platform/scheduler"
)

const (
	retentionJobName = "clear_old_rates"
	downloadJobName  = "download_rates"
)

// registerJobs schedules the background jobs. Retention runs once at start and
// then every RetentionInterval. The download job waits a full DownloadInterval
// before its first run, so a restart never calls the provider on its own.
func registerJobs(ctx context.Context, jobs *scheduler.Scheduler, cfg *config.Config, services *portssvc.ServiceContainer, logger *slog.Logger) error {
	err := jobs.Every(ctx, retentionJobName, cfg.RetentionInterval, true, func(ctx context.Context) error {
		_, err := services.Retention.ClearOldRates(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention job: %w", err)
	}

	if cfg.DownloadInterval <= 0 {
		logger.Info("Scheduled downloads disabled, use GET /download")
		return nil
	}

	err = jobs.Every(ctx, downloadJobName, cfg.DownloadInterval, false, func(ctx context.Context) error {
		_, err := services.Ingestion.DownloadAndStore(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to schedule download job: %w", err)
	}
	return nil
}
