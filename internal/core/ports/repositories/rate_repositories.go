package repositories

import (
	"context"
	"time"

	"github.com/Lukk17/exchangeApp/internal/core/domain"
)

// RateReader defines read operations for stored rates.
// All dates are calendar days; comparisons ignore time of day.
type RateReader interface {
	// FindFirstRateByDate returns any one rate stored for date, or apperrors.ErrNotFound.
	FindFirstRateByDate(ctx context.Context, date time.Time) (*domain.Rate, error)
	// FindRatesByDate returns every rate stored for exactly date.
	FindRatesByDate(ctx context.Context, date time.Time) ([]domain.Rate, error)
	// FindRatesBetween returns rates with start < date < end (both bounds exclusive).
	FindRatesBetween(ctx context.Context, start, end time.Time) ([]domain.Rate, error)
	// FindRatesBefore returns rates with date < before.
	FindRatesBefore(ctx context.Context, before time.Time) ([]domain.Rate, error)
}

// RateWriter defines write operations for stored rates.
type RateWriter interface {
	// InsertRates stores all rates in a single transaction. Every rate must share one date.
	// It returns apperrors.ErrDuplicate when rates for that date were stored concurrently.
	InsertRates(ctx context.Context, rates []domain.Rate) error
	// DeleteRates removes the rates with the given IDs in one statement and returns the count.
	DeleteRates(ctx context.Context, rateIDs []string) (int, error)
}

// RateRepositoryFacade combines all rate-related repository interfaces
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
