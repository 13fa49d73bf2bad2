package pgsql

import (
	portsrepo "github.com/Lukk17/exchangeApp/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every pgx-backed repository on one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateRepo: NewPgxRateRepository(dbPool),
	}
}

var _ portsrepo.RateRepositoryFacade = (*PgxRateRepository)(nil)
