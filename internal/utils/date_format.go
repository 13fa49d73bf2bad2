package utils

import (
	"strings"
	"time"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/Lukk17/exchangeApp/internal/core/domain"
)

// DateLayout is the yyyy-MM-dd layout used on the API and by the exchange provider.
const DateLayout = "2006-01-02"

// DateRangeSeparator splits the two ends of a date range, e.g. "2021-09-01:2021-09-08".
const DateRangeSeparator = ":"

// ParseDate parses a yyyy-MM-dd string into a calendar day.
// Example: "2021-09-05" returns 2021-09-05T00:00:00Z
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewDateParseError(value, err)
	}
	return domain.CalendarDay(t), nil
}

// FormatDate formats a calendar day as zero-padded yyyy-MM-dd.
// Example: 2021-09-05T13:45:00Z returns "2021-09-05"
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDateRange reports whether the given spec is a range of dates rather than a single day.
func IsDateRange(spec string) bool {
	return strings.Contains(spec, DateRangeSeparator)
}
