package services

import (
	portsrepo "github.com/Lukk17/exchangeApp/internal/core/ports/repositories"
	portssvc "github.com/Lukk17/exchangeApp/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, client portssvc.ExchangeClient, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ingestion: NewIngestionService(client, repos.RateRepo, options...),
		Query:     NewQueryService(repos.RateRepo, options...),
		Retention: NewRetentionService(repos.RateRepo, options...),
	}
}
