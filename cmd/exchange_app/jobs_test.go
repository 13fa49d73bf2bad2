package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Lukk17/exchangeApp/internal/core/domain"
	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
	"github.com/Lukk17/exchangeApp/internal/platform/config"
	"github.com/Lukk17/exchangeApp/internal/platform/scheduler"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockIngestionService struct {
	mock.Mock
}

func (m *MockIngestionService) DownloadAndStore(ctx context.Context) (*domain.IngestionResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestionResult), args.Error(1)
}

type MockRetentionService struct {
	mock.Mock
}

func (m *MockRetentionService) ClearOldRates(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestRegisterJobs_DownloadDoesNotRunAtStart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ingestion := new(MockIngestionService)
	retention := new(MockRetentionService)

	retentionRan := make(chan struct{})
	retention.On("ClearOldRates", mock.Anything).
		Run(func(mock.Arguments) { close(retentionRan) }).
		Return(0, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	jobs := scheduler.New(logger, nil)
	cfg := &config.Config{RetentionInterval: time.Hour, DownloadInterval: time.Hour}

	err := registerJobs(ctx, jobs, cfg, &portssvc.ServiceContainer{Ingestion: ingestion, Retention: retention}, logger)
	require.NoError(t, err)

	select {
	case <-retentionRan:
	case <-time.After(2 * time.Second):
		t.Fatal("retention job did not run at start")
	}

	cancel()
	jobs.Wait()

	retention.AssertExpectations(t)
	ingestion.AssertNotCalled(t, "DownloadAndStore", mock.Anything)
}

func TestRegisterJobs_DownloadDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	retention := new(MockRetentionService)
	retention.On("ClearOldRates", mock.Anything).Return(0, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	jobs := scheduler.New(logger, nil)
	cfg := &config.Config{RetentionInterval: time.Hour, DownloadInterval: 0}

	err := registerJobs(ctx, jobs, cfg, &portssvc.ServiceContainer{Retention: retention}, logger)

	require.NoError(t, err)
	cancel()
	jobs.Wait()
}

func TestRegisterJobs_RejectsZeroRetention(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := registerJobs(context.Background(), scheduler.New(logger, nil), &config.Config{}, &portssvc.ServiceContainer{}, logger)

	require.Error(t, err)
}
