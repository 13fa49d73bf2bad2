package services_test

import (
	"context"
	"time"

	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockRateRepository is a mock type for the RateRepositoryFacade interface
type MockRateRepository struct {
	mock.Mock
}

// --- Implement mock methods for RateRepositoryFacade ---

func (m *MockRateRepository) FindFirstRateByDate(ctx context.Context, date time.Time) (*domain.Rate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rate), args.Error(1)
}

func (m *MockRateRepository) FindRatesByDate(ctx context.Context, date time.Time) ([]domain.Rate, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rate), args.Error(1)
}

func (m *MockRateRepository) FindRatesBetween(ctx context.Context, start, end time.Time) ([]domain.Rate, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rate), args.Error(1)
}

func (m *MockRateRepository) FindRatesBefore(ctx context.Context, before time.Time) ([]domain.Rate, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rate), args.Error(1)
}

func (m *MockRateRepository) InsertRates(ctx context.Context, rates []domain.Rate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRateRepository) DeleteRates(ctx context.Context, rateIDs []string) (int, error) {
	args := m.Called(ctx, rateIDs)
	return args.Int(0), args.Error(1)
}

// MockExchangeClient is a mock type for the ExchangeClient interface
type MockExchangeClient struct {
	mock.Mock
}

func (m *MockExchangeClient) FetchSnapshot(ctx context.Context) (*domain.RatesSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RatesSnapshot), args.Error(1)
}

// day builds a UTC calendar day for test fixtures.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
