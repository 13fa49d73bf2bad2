package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2021-09-05 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 9, 5, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2021-9-5", "05-09-2021", "2021-02-30", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, apperrors.ErrDateParse), "input %q", bad)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2021-01-02", FormatDate(time.Date(2021, 1, 2, 23, 59, 0, 0, time.UTC)))

	day := time.Date(2021, 9, 5, 0, 0, 0, 0, time.UTC)
	parsed, err := ParseDate(FormatDate(day))
	require.NoError(t, err)
	assert.Equal(t, day, parsed)
}

func TestIsDateRange(t *testing.T) {
	assert.True(t, IsDateRange("2021-09-01:2021-09-08"))
	assert.False(t, IsDateRange("2021-09-01"))
}
