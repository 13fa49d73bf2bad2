package mapping

import (
	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/Lukk17/exchangeApp/internal/models"
)

// ToModelRate converts a domain Rate to a model Rate
func ToModelRate(d domain.Rate) models.Rate {
	return models.Rate{
		RateID:       d.RateID,
		CurrencyName: d.CurrencyName,
		Value:        d.Value,
		Date:         d.Date,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainRate converts a model Rate to a domain Rate
func ToDomainRate(m models.Rate) domain.Rate {
	return domain.Rate{
		RateID:       m.RateID,
		CurrencyName: m.CurrencyName,
		Value:        m.Value,
		Date:         domain.CalendarDay(m.Date),
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainRates converts a slice of model Rates to domain Rates
func ToDomainRates(ms []models.Rate) []domain.Rate {
	rates := make([]domain.Rate, len(ms))
	for i, m := range ms {
		rates[i] = ToDomainRate(m)
	}
	return rates
}
