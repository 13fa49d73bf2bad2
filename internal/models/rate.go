package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the row stored in the rates table.
// Value maps to NUMERIC(12,5); Date maps to DATE.
type Rate struct {
	RateID       string          `json:"rateID"` // Primary Key (UUID)
	CurrencyName string          `json:"currencyName"`
	Value        decimal.Decimal `json:"value"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"createdAt"`
}
