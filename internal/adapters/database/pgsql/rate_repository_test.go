package pgsql_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Lukk17/exchangeApp/internal/adapters/database/pgsql"
	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/Lukk17/exchangeApp/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// RateRepositoryTestSuite runs against a real PostgreSQL instance.
// Set PGSQL_TEST_URL to enable it; the rates table is truncated before every test.
type RateRepositoryTestSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *pgsql.PgxRateRepository
}

func (suite *RateRepositoryTestSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		suite.T().Skip("PGSQL_TEST_URL not set, skipping PostgreSQL integration tests")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.Require().NoError(database.RunMigrations(url, "file://../../../../migrations", logger))

	pool, err := database.NewPgxPool(context.Background(), url, true)
	suite.Require().NoError(err)
	suite.pool = pool
	suite.repo = pgsql.NewPgxRateRepository(pool)
}

func (suite *RateRepositoryTestSuite) TearDownSuite() {
	database.ClosePgxPool(suite.pool)
}

func (suite *RateRepositoryTestSuite) SetupTest() {
	_, err := suite.pool.Exec(context.Background(), `TRUNCATE TABLE rates`)
	suite.Require().NoError(err)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func snapshotRates(date time.Time) []domain.Rate {
	return []domain.Rate{
		{CurrencyName: "GBP", Value: decimal.RequireFromString("0.85756"), Date: date},
		{CurrencyName: "USD", Value: decimal.RequireFromString("1.18742"), Date: date},
	}
}

// --- Test Cases ---

func (suite *RateRepositoryTestSuite) TestInsertAndFindByDate() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.InsertRates(ctx, snapshotRates(day(2021, 9, 5))))

	rates, err := suite.repo.FindRatesByDate(ctx, day(2021, 9, 5))

	suite.Require().NoError(err)
	suite.Require().Len(rates, 2)
	suite.Equal("GBP", rates[0].CurrencyName)
	suite.True(decimal.RequireFromString("1.18742").Equal(rates[1].Value))
	suite.Equal(day(2021, 9, 5), rates[1].Date)
	suite.NotEmpty(rates[0].RateID)
	suite.NotEqual(rates[0].RateID, rates[1].RateID)

	first, err := suite.repo.FindFirstRateByDate(ctx, day(2021, 9, 5))
	suite.Require().NoError(err)
	suite.Equal(day(2021, 9, 5), first.Date)
}

func (suite *RateRepositoryTestSuite) TestFindFirstRateByDate_NotFound() {
	_, err := suite.repo.FindFirstRateByDate(context.Background(), day(2000, 1, 1))

	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *RateRepositoryTestSuite) TestInsertRates_DuplicateDate() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.InsertRates(ctx, snapshotRates(day(2021, 9, 5))))

	err := suite.repo.InsertRates(ctx, snapshotRates(day(2021, 9, 5)))

	suite.True(errors.Is(err, apperrors.ErrDuplicate))
	rates, err := suite.repo.FindRatesByDate(ctx, day(2021, 9, 5))
	suite.Require().NoError(err)
	suite.Len(rates, 2)
}

func (suite *RateRepositoryTestSuite) TestInsertRates_ConcurrentSameDate() {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = suite.repo.InsertRates(ctx, snapshotRates(day(2021, 9, 6)))
		}(i)
	}
	wg.Wait()

	stored := 0
	for _, err := range errs {
		if err == nil {
			stored++
			continue
		}
		suite.True(errors.Is(err, apperrors.ErrDuplicate), "unexpected error %v", err)
	}
	suite.Equal(1, stored)

	rates, err := suite.repo.FindRatesByDate(ctx, day(2021, 9, 6))
	suite.Require().NoError(err)
	suite.Len(rates, 2)
}

func (suite *RateRepositoryTestSuite) TestInsertRates_MixedDatesRejected() {
	rates := append(snapshotRates(day(2021, 9, 5)), domain.Rate{CurrencyName: "PLN", Value: decimal.NewFromInt(4), Date: day(2021, 9, 6)})

	err := suite.repo.InsertRates(context.Background(), rates)

	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *RateRepositoryTestSuite) TestFindRatesBetween_ExcludesBounds() {
	ctx := context.Background()
	for _, d := range []time.Time{day(2021, 9, 1), day(2021, 9, 4), day(2021, 9, 8)} {
		suite.Require().NoError(suite.repo.InsertRates(ctx, snapshotRates(d)))
	}

	rates, err := suite.repo.FindRatesBetween(ctx, day(2021, 9, 1), day(2021, 9, 8))

	suite.Require().NoError(err)
	suite.Require().Len(rates, 2)
	for _, rate := range rates {
		suite.Equal(day(2021, 9, 4), rate.Date)
	}
}

func (suite *RateRepositoryTestSuite) TestFindBeforeAndDelete() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.InsertRates(ctx, snapshotRates(day(2020, 9, 4))))
	suite.Require().NoError(suite.repo.InsertRates(ctx, snapshotRates(day(2020, 9, 5))))

	old, err := suite.repo.FindRatesBefore(ctx, day(2020, 9, 5))
	suite.Require().NoError(err)
	suite.Require().Len(old, 2)

	ids := []string{old[0].RateID, old[1].RateID}
	deleted, err := suite.repo.DeleteRates(ctx, ids)
	suite.Require().NoError(err)
	suite.Equal(2, deleted)

	remaining, err := suite.repo.FindRatesByDate(ctx, day(2020, 9, 5))
	suite.Require().NoError(err)
	suite.Len(remaining, 2)
}

// --- Run Test Suite ---

func TestRateRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RateRepositoryTestSuite))
}
