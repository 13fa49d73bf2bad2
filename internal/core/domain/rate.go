package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateScale is the number of fractional digits kept for a stored rate value.
const RateScale int32 = 5

// Rate is a single currency value for one calendar day.
type Rate struct {
	RateID       string          `json:"rateID"` // Assigned by the store (UUID)
	CurrencyName string          `json:"currencyName"`
	Value        decimal.Decimal `json:"value"`
	Date         time.Time       `json:"date"` // Calendar day, UTC midnight
	CreatedAt    time.Time       `json:"createdAt"`
}

// RatesSnapshot is one provider response: every configured currency for a single day.
type RatesSnapshot struct {
	Success   bool
	Timestamp int64
	Base      string
	Date      time.Time
	Rates     map[string]decimal.Decimal
}

// CalendarDay truncates t to midnight UTC of its own calendar date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IngestionResult describes the outcome of one download-and-store run.
type IngestionResult struct {
	Date     time.Time
	Inserted int
	Skipped  bool // A snapshot for Date was already stored
}
