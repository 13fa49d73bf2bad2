package dto

import (
	"encoding/json"

	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/Lukk17/exchangeApp/internal/utils"
	"github.com/shopspring/decimal"
)

// RateDTO is the API representation of a stored rate.
type RateDTO struct {
	CurrencyName string          `json:"currencyName" example:"USD"`
	Value        decimal.Decimal `json:"value" swaggertype:"number" example:"1.17845"`
	Date         string          `json:"date" example:"2021-09-05"` // yyyy-MM-dd
}

// MarshalJSON writes Value as a JSON number with the stored scale, e.g. 1.00000.
func (r RateDTO) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CurrencyName string          `json:"currencyName"`
		Value        json.RawMessage `json:"value"`
		Date         string          `json:"date"`
	}{
		CurrencyName: r.CurrencyName,
		Value:        json.RawMessage(r.Value.StringFixed(domain.RateScale)),
		Date:         r.Date,
	})
}

// PresentDataQuery binds the query string of GET /presentData.
type PresentDataQuery struct {
	Date string `form:"date"` // yyyy-MM-dd or yyyy-MM-dd:yyyy-MM-dd
}

// ToRateDTO converts a domain.Rate to a RateDTO
func ToRateDTO(rate domain.Rate) RateDTO {
	return RateDTO{
		CurrencyName: rate.CurrencyName,
		Value:        rate.Value,
		Date:         utils.FormatDate(rate.Date),
	}
}

// ToListRateDTO converts a slice of domain.Rate to a slice of RateDTOs.
// The result is never nil so that an empty result encodes as [].
func ToListRateDTO(rates []domain.Rate) []RateDTO {
	responses := make([]RateDTO, len(rates))
	for i, rate := range rates {
		responses[i] = ToRateDTO(rate)
	}
	return responses
}
