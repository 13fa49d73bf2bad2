package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/Lukk17/exchangeApp/internal/core/domain"
	portsrepo "github.com/Lukk17/exchangeApp/internal/core/ports/repositories"
	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
	"github.com/Lukk17/exchangeApp/internal/utils"
)

// ingestionService implements the RateIngestionSvc interface
type ingestionService struct {
	BaseService
	client   portssvc.ExchangeClient
	rateRepo portsrepo.RateRepositoryFacade
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(client portssvc.ExchangeClient, rateRepo portsrepo.RateRepositoryFacade, options ...ServiceOption) portssvc.RateIngestionSvc {
	return &ingestionService{
		BaseService: newBaseService(options...),
		client:      client,
		rateRepo:    rateRepo,
	}
}

var _ portssvc.RateIngestionSvc = (*ingestionService)(nil)

// DownloadAndStore fetches the current snapshot and stores it unless rates for
// its date already exist.
func (s *ingestionService) DownloadAndStore(ctx context.Context) (*domain.IngestionResult, error) {
	start := s.Now()
	snapshot, err := s.client.FetchSnapshot(ctx)
	if s.Metrics != nil {
		s.Metrics.ProviderLatencies.Observe(s.Now().Sub(start).Seconds())
	}
	if err != nil {
		s.countDownload("failed")
		s.LogError(ctx, err, "Failed to download rates snapshot")
		return nil, fmt.Errorf("failed to download rates: %w", err)
	}

	date := domain.CalendarDay(snapshot.Date)
	logger := s.GetLogger(ctx).With(slog.String("snapshot_date", utils.FormatDate(date)))

	registered, err := s.isAlreadyRegistered(ctx, date)
	if err != nil {
		s.countDownload("failed")
		logger.Error("Failed to check for stored snapshot", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check stored rates: %w", err)
	}
	if registered {
		s.countDownload("skipped")
		logger.Info("Rates already stored for date, skipping")
		return &domain.IngestionResult{Date: date, Skipped: true}, nil
	}

	rates := buildRates(snapshot, date)
	if err := s.rateRepo.InsertRates(ctx, rates); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.countDownload("skipped")
			logger.Info("Rates stored concurrently for date, skipping")
			return &domain.IngestionResult{Date: date, Skipped: true}, nil
		}
		s.countDownload("failed")
		logger.Error("Failed to store rates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to store rates: %w", err)
	}

	s.countDownload("stored")
	if s.Metrics != nil {
		s.Metrics.RatesInserted.Add(float64(len(rates)))
	}
	s.LogInfo(ctx, "Rates stored",
		slog.String("snapshot_date", utils.FormatDate(date)),
		slog.Int("count", len(rates)),
		slog.String("base", snapshot.Base),
	)

	return &domain.IngestionResult{Date: date, Inserted: len(rates)}, nil
}

func (s *ingestionService) isAlreadyRegistered(ctx context.Context, date time.Time) (bool, error) {
	_, err := s.rateRepo.FindFirstRateByDate(ctx, date)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *ingestionService) countDownload(outcome string) {
	if s.Metrics != nil {
		s.Metrics.DownloadsTotal.WithLabelValues(outcome).Inc()
	}
}

// buildRates explodes a snapshot into one row per currency, ordered by currency name.
func buildRates(snapshot *domain.RatesSnapshot, date time.Time) []domain.Rate {
	names := make([]string, 0, len(snapshot.Rates))
	for name := range snapshot.Rates {
		names = append(names, name)
	}
	sort.Strings(names)

	rates := make([]domain.Rate, 0, len(names))
	for _, name := range names {
		rates = append(rates, domain.Rate{
			CurrencyName: name,
			Value:        snapshot.Rates[name].Round(domain.RateScale),
			Date:         date,
		})
	}
	return rates
}
