package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lukk17/exchangeApp/internal/core/domain"
	portsrepo "github.com/Lukk17/exchangeApp/internal/core/ports/repositories"
	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
	"github.com/Lukk17/exchangeApp/internal/utils"
)

// retentionService implements the RateRetentionSvc interface
type retentionService struct {
	BaseService
	rateRepo portsrepo.RateRepositoryFacade
}

// NewRetentionService creates a new retention service
func NewRetentionService(rateRepo portsrepo.RateRepositoryFacade, options ...ServiceOption) portssvc.RateRetentionSvc {
	return &retentionService{
		BaseService: newBaseService(options...),
		rateRepo:    rateRepo,
	}
}

var _ portssvc.RateRetentionSvc = (*retentionService)(nil)

// ClearOldRates deletes every rate dated before the same calendar day one year ago.
// The cutoff is recomputed on each call.
func (s *retentionService) ClearOldRates(ctx context.Context) (int, error) {
	cutoff := RetentionCutoff(s.Now())
	logger := s.GetLogger(ctx).With(slog.String("cutoff", utils.FormatDate(cutoff)))

	toDelete, err := s.rateRepo.FindRatesBefore(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to find old rates", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to find rates older than %s: %w", utils.FormatDate(cutoff), err)
	}
	if len(toDelete) == 0 {
		logger.Debug("No old rates to delete")
		return 0, nil
	}

	ids := make([]string, len(toDelete))
	for i, rate := range toDelete {
		ids[i] = rate.RateID
	}

	deleted, err := s.rateRepo.DeleteRates(ctx, ids)
	if err != nil {
		logger.Error("Failed to delete old rates", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to delete rates older than %s: %w", utils.FormatDate(cutoff), err)
	}

	if s.Metrics != nil {
		s.Metrics.RatesDeleted.Add(float64(deleted))
	}
	s.LogInfo(ctx, "Old rates deleted", slog.String("cutoff", utils.FormatDate(cutoff)), slog.Int("count", deleted))
	return deleted, nil
}

// RetentionCutoff is the first calendar day that is still kept: the same day
// one year before now (UTC). Rates are compared by date only, so a rate dated
// exactly on the cutoff survives the whole day. 29 February maps to 28 February.
func RetentionCutoff(now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	if last := daysIn(year-1, month); day > last {
		day = last
	}
	return domain.CalendarDay(time.Date(year-1, month, day, 0, 0, 0, 0, time.UTC))
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
