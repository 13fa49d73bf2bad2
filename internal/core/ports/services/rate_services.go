package services

import (
	"context"

	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/Lukk17/exchangeApp/internal/dto"
)

// ExchangeClient fetches the current rates snapshot from the exchange provider.
type ExchangeClient interface {
	// FetchSnapshot fails with apperrors.ErrNetwork or apperrors.ErrDecode.
	FetchSnapshot(ctx context.Context) (*domain.RatesSnapshot, error)
}

// RateIngestionSvc downloads a snapshot and stores it unless its date is already stored.
type RateIngestionSvc interface {
	DownloadAndStore(ctx context.Context) (*domain.IngestionResult, error)
}

// RateQuerySvc answers date and date-range queries over stored rates.
type RateQuerySvc interface {
	// GetRates accepts "yyyy-MM-dd" or "yyyy-MM-dd:yyyy-MM-dd" and fails with apperrors.ErrDateParse.
	GetRates(ctx context.Context, dateSpec string) ([]dto.RateDTO, error)
}

// RateRetentionSvc prunes rates older than the retention period.
type RateRetentionSvc interface {
	ClearOldRates(ctx context.Context) (int, error)
}
