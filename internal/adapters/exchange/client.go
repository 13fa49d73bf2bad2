package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lukk17/exchangeApp/internal/apperrors"
	"github.com/Lukk17/exchangeApp/internal/core/domain"
	"github.com/Lukk17/exchangeApp/internal/middleware"
	"github.com/Lukk17/exchangeApp/internal/utils"
	"github.com/shopspring/decimal"
)

// maxErrorBodyLength caps how much of a failed response body ends up in an error.
const maxErrorBodyLength = 512

// Config holds the static provider settings.
type Config struct {
	URL       string
	AccessKey string
	Symbols   string
	Base      string
	Timeout   time.Duration // Zero means no client-side timeout
}

// Client implements services.ExchangeClient against a fixer.io style endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a new exchange provider client. A nil httpClient gets a
// default one using cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// ratesResponse is the provider payload. Rates are decoded straight into
// decimals so no precision is lost to float64.
type ratesResponse struct {
	Success   *bool                      `json:"success"`
	Timestamp int64                      `json:"timestamp"`
	Base      string                     `json:"base"`
	Date      string                     `json:"date"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Error     *providerError             `json:"error,omitempty"`
}

type providerError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// FetchSnapshot issues a single GET for the configured symbols and base currency.
func (c *Client) FetchSnapshot(ctx context.Context) (*domain.RatesSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reqURL, err := c.buildURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", apperrors.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", apperrors.ErrNetwork, redact(err, c.cfg.AccessKey))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Error closing exchange response body", slog.String("error", closeErr.Error()))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", apperrors.ErrNetwork, err)
	}

	logger.Debug("Exchange provider responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
		slog.Int("body_bytes", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: provider returned status %d, body: %s", apperrors.ErrNetwork, resp.StatusCode, truncate(body))
	}

	return decodeSnapshot(body)
}

func (c *Client) buildURL() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid provider URL %q", apperrors.ErrNetwork, c.cfg.URL)
	}

	q := u.Query()
	q.Set("access_key", c.cfg.AccessKey)
	q.Set("symbols", c.cfg.Symbols)
	q.Set("base", c.cfg.Base)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func decodeSnapshot(body []byte) (*domain.RatesSnapshot, error) {
	var payload ratesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecode, err)
	}

	if payload.Success != nil && !*payload.Success {
		if payload.Error != nil {
			return nil, fmt.Errorf("%w: provider reported failure %d (%s): %s",
				apperrors.ErrNetwork, payload.Error.Code, payload.Error.Type, payload.Error.Info)
		}
		return nil, fmt.Errorf("%w: provider reported failure", apperrors.ErrNetwork)
	}

	if payload.Date == "" {
		return nil, fmt.Errorf("%w: missing date", apperrors.ErrDecode)
	}
	date, err := utils.ParseDate(payload.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDecode, err)
	}
	if payload.Rates == nil {
		return nil, fmt.Errorf("%w: missing rates", apperrors.ErrDecode)
	}

	return &domain.RatesSnapshot{
		Success:   payload.Success == nil || *payload.Success,
		Timestamp: payload.Timestamp,
		Base:      payload.Base,
		Date:      date,
		Rates:     payload.Rates,
	}, nil
}

func truncate(body []byte) string {
	s := string(body)
	if len(s) > maxErrorBodyLength {
		return s[:maxErrorBodyLength] + "..."
	}
	return s
}

// redact strips the access key from transport errors, which embed the request URL.
func redact(err error, accessKey string) error {
	var urlErr *url.Error
	if accessKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), url.QueryEscape(accessKey), "REDACTED"))
}
