package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{
	"success": true,
	"timestamp": 1630835999,
	"base": "EUR",
	"date": "2021-09-05",
	"rates": {"USD": 1.187419, "GBP": 0.857564, "PLN": 4.5176}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	mockServer := httptest.NewServer(handler)
	t.Cleanup(mockServer.Close)

	return NewClient(Config{
		URL:       mockServer.URL + "/api/latest",
		AccessKey: "secret-key",
		Symbols:   "USD,GBP,PLN",
		Base:      "EUR",
		Timeout:   5 * time.Second,
	}, nil)
}

func TestFetchSnapshot_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Check that the request has the expected path and parameters
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/latest", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret-key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "USD,GBP,PLN", r.URL.Query().Get("symbols"))
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(okBody))
	})

	snapshot, err := client.FetchSnapshot(context.Background())

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.True(t, snapshot.Success)
	assert.Equal(t, "EUR", snapshot.Base)
	assert.Equal(t, int64(1630835999), snapshot.Timestamp)
	assert.Equal(t, time.Date(2021, 9, 5, 0, 0, 0, 0, time.UTC), snapshot.Date)
	require.Len(t, snapshot.Rates, 3)
	assert.Equal(t, "1.187419", snapshot.Rates["USD"].String())
	assert.Equal(t, "4.5176", snapshot.Rates["PLN"].String())
}

func TestFetchSnapshot_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	})

	snapshot, err := client.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.Nil(t, snapshot)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
	assert.Contains(t, err.Error(), "503")
}

func TestFetchSnapshot_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": true, "rates": `))
	})

	_, err := client.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDecode))
}

func TestFetchSnapshot_ProviderReportedFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": {"code": 101, "type": "invalid_access_key", "info": "You have not supplied a valid API Access Key."}}`))
	})

	_, err := client.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
	assert.Contains(t, err.Error(), "invalid_access_key")
}

func TestFetchSnapshot_Unreachable(t *testing.T) {
	mockServer := httptest.NewServer(http.NotFoundHandler())
	unreachableURL := mockServer.URL
	mockServer.Close()

	client := NewClient(Config{URL: unreachableURL, AccessKey: "secret-key", Symbols: "USD", Base: "EUR"}, nil)

	_, err := client.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestFetchSnapshot_InvalidURL(t *testing.T) {
	client := NewClient(Config{URL: "not a url"}, nil)

	_, err := client.FetchSnapshot(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))
}

func TestDecodeSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "valid", body: okBody},
		{name: "success omitted", body: `{"date": "2021-09-05", "rates": {"USD": 1.1}}`},
		{name: "not json", body: `<html></html>`, wantErr: apperrors.ErrDecode},
		{name: "missing date", body: `{"success": true, "rates": {"USD": 1.1}}`, wantErr: apperrors.ErrDecode},
		{name: "bad date", body: `{"success": true, "date": "05/09/2021", "rates": {"USD": 1.1}}`, wantErr: apperrors.ErrDecode},
		{name: "missing rates", body: `{"success": true, "date": "2021-09-05"}`, wantErr: apperrors.ErrDecode},
		{name: "non numeric rate", body: `{"success": true, "date": "2021-09-05", "rates": {"USD": "abc"}}`, wantErr: apperrors.ErrDecode},
		{name: "reported failure", body: `{"success": false}`, wantErr: apperrors.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot, err := decodeSnapshot([]byte(tt.body))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, snapshot)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, snapshot.Rates)
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxErrorBodyLength+10)

	assert.Equal(t, "short", truncate([]byte("short")))
	assert.Len(t, truncate([]byte(long)), maxErrorBodyLength+3)
}
