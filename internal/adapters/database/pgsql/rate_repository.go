package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/Lukk17/exchangeApp/internal/models"
	"github.com/Lukk17/exchangeApp/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// rateIngestLockNamespace is the first key of the advisory lock taken per snapshot date.
const rateIngestLockNamespace int32 = 0x52415445 // "RATE"

const selectRateColumns = `SELECT rate_id, currency_name, value, date, created_at FROM rates`

// PgxRateRepository implements the repositories.RateRepositoryFacade interface using pgxpool.
type PgxRateRepository struct {
	BaseRepository
	now func() time.Time
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
		now:            time.Now,
	}
}

// FindFirstRateByDate retrieves any one rate stored for the given day.
func (r *PgxRateRepository) FindFirstRateByDate(ctx context.Context, date time.Time) (*domain.Rate, error) {
	query := selectRateColumns + ` WHERE date = $1 LIMIT 1;`

	var modelRate models.Rate
	err := r.Pool.QueryRow(ctx, query, domain.CalendarDay(date)).Scan(
		&modelRate.RateID, &modelRate.CurrencyName, &modelRate.Value, &modelRate.Date, &modelRate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rates stored for " + date.Format("2006-01-02"))
		}
		return nil, apperrors.NewAppError(500, "failed to find rate by date", err)
	}

	domainRate := mapping.ToDomainRate(modelRate)
	return &domainRate, nil
}

// FindRatesByDate retrieves every rate stored for exactly the given day.
func (r *PgxRateRepository) FindRatesByDate(ctx context.Context, date time.Time) ([]domain.Rate, error) {
	query := selectRateColumns + ` WHERE date = $1 ORDER BY date, currency_name;`
	return r.queryRates(ctx, query, domain.CalendarDay(date))
}

// FindRatesBetween retrieves rates strictly after start and strictly before end.
func (r *PgxRateRepository) FindRatesBetween(ctx context.Context, start, end time.Time) ([]domain.Rate, error) {
	query := selectRateColumns + ` WHERE date > $1 AND date < $2 ORDER BY date, currency_name;`
	return r.queryRates(ctx, query, domain.CalendarDay(start), domain.CalendarDay(end))
}

// FindRatesBefore retrieves rates strictly before the given day.
func (r *PgxRateRepository) FindRatesBefore(ctx context.Context, before time.Time) ([]domain.Rate, error) {
	query := selectRateColumns + ` WHERE date < $1 ORDER BY date, currency_name;`
	return r.queryRates(ctx, query, domain.CalendarDay(before))
}

// InsertRates stores a whole snapshot atomically. An advisory lock on the
// snapshot date serialises concurrent ingestions of the same day, and the
// date is re-checked under that lock.
func (r *PgxRateRepository) InsertRates(ctx context.Context, rates []domain.Rate) error {
	if len(rates) == 0 {
		return nil
	}

	date := domain.CalendarDay(rates[0].Date)
	for _, rate := range rates[1:] {
		if !domain.CalendarDay(rate.Date).Equal(date) {
			return apperrors.NewValidationError("all rates of a snapshot must share one date")
		}
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, rateIngestLockNamespace, dayNumber(date)); err != nil {
		return apperrors.NewAppError(500, "failed to lock snapshot date", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rates WHERE date = $1)`, date).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check snapshot date", err)
	}
	if exists {
		return fmt.Errorf("%w: rates for %s", apperrors.ErrDuplicate, date.Format("2006-01-02"))
	}

	createdAt := r.now().UTC()
	batch := &pgx.Batch{}
	for _, rate := range rates {
		modelRate := mapping.ToModelRate(rate)
		if modelRate.RateID == "" {
			modelRate.RateID = uuid.NewString()
		}
		batch.Queue(`
			INSERT INTO rates (rate_id, currency_name, value, date, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			modelRate.RateID, modelRate.CurrencyName, modelRate.Value, date, createdAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert rates", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteRates removes the rates with the given IDs.
func (r *PgxRateRepository) DeleteRates(ctx context.Context, rateIDs []string) (int, error) {
	if len(rateIDs) == 0 {
		return 0, nil
	}

	tag, err := r.Pool.Exec(ctx, `DELETE FROM rates WHERE rate_id = ANY($1)`, rateIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete rates", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PgxRateRepository) queryRates(ctx context.Context, query string, args ...any) ([]domain.Rate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rates", err)
	}
	defer rows.Close()

	var modelRates []models.Rate
	for rows.Next() {
		var modelRate models.Rate
		err := rows.Scan(
			&modelRate.RateID, &modelRate.CurrencyName, &modelRate.Value, &modelRate.Date, &modelRate.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan rate", err)
		}
		modelRates = append(modelRates, modelRate)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating rates", err)
	}

	return mapping.ToDomainRates(modelRates), nil
}

// dayNumber is the number of days since the Unix epoch.
func dayNumber(day time.Time) int32 {
	return int32(day.Unix() / int64(24*time.Hour/time.Second))
}
