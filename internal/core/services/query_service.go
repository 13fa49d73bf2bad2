package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/Lukk17/exchangeApp/internal/core/domain"
	portsrepo "github.com/Lukk17/exchangeApp/internal/core/ports/repositories"
	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
	"github.com/Lukk17/exchangeApp/internal/dto"
	"github.com/Lukk17/exchangeApp/internal/utils"
)

// queryService implements the RateQuerySvc interface
type queryService struct {
	BaseService
	rateRepo portsrepo.RateReader
}

// NewQueryService creates a new query service
func NewQueryService(rateRepo portsrepo.RateReader, options ...ServiceOption) portssvc.RateQuerySvc {
	return &queryService{
		BaseService: newBaseService(options...),
		rateRepo:    rateRepo,
	}
}

var _ portssvc.RateQuerySvc = (*queryService)(nil)

// GetRates returns the rates for a single day ("2021-09-05") or for the days
// strictly between two dates ("2021-09-01:2021-09-08"). Rates dated on either
// boundary of a range are not returned.
func (s *queryService) GetRates(ctx context.Context, dateSpec string) ([]dto.RateDTO, error) {
	if strings.TrimSpace(dateSpec) == "" {
		return nil, apperrors.NewDateParseError(dateSpec, nil)
	}

	var (
		rates []domain.Rate
		err   error
	)
	if utils.IsDateRange(dateSpec) {
		rates, err = s.findRatesInRange(ctx, dateSpec)
	} else {
		rates, err = s.findRatesForDay(ctx, dateSpec)
	}
	if err != nil {
		return nil, err
	}

	return dto.ToListRateDTO(rates), nil
}

func (s *queryService) findRatesInRange(ctx context.Context, dateSpec string) ([]domain.Rate, error) {
	parts := strings.Split(dateSpec, utils.DateRangeSeparator)
	if len(parts) != 2 {
		return nil, apperrors.NewDateParseError(dateSpec, fmt.Errorf("expected exactly two dates separated by %q", utils.DateRangeSeparator))
	}

	start, err := utils.ParseDate(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(parts[1])
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Querying rates for date range",
		slog.String("start", utils.FormatDate(start)),
		slog.String("end", utils.FormatDate(end)))

	rates, err := s.rateRepo.FindRatesBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates between %s and %s: %w", parts[0], parts[1], err)
	}
	return rates, nil
}

func (s *queryService) findRatesForDay(ctx context.Context, dateSpec string) ([]domain.Rate, error) {
	date, err := utils.ParseDate(dateSpec)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Querying rates for date", slog.String("date", utils.FormatDate(date)))

	rates, err := s.rateRepo.FindRatesByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates for %s: %w", dateSpec, err)
	}
	return rates, nil
}
