// Package fx provides statement.Converter implementations: an HTTP-backed
// historical-rate client and an in-memory fixture for tests/demos. A
// Postgres-memoizing Converter sits in internal/infrastructure/quotecache,
// wrapping either of these as its upstream.
//
// Grounded on nezdemkovski-folio212's internal/infrastructure/trading212
// client.go (HTTP client shape: options, HTTPError with rate-limit hints;
// a failed request, including a 429, is returned as an error and is not
// retried) and
// original_source/src/quotes/alphavantage.rs (a historical-rate provider
// queried by date range, the shape this client mirrors for FX instead of
// equities).
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avoronin/yieldscope/internal/domain/calendar"
	"github.com/avoronin/yieldscope/internal/domain/statement"
	"github.com/shopspring/decimal"
)

// Client fetches historical FX rates from a REST provider that answers
// GET /historical?date=YYYY-MM-DD&base=FROM&symbols=TO with
// {"rates":{"TO":"1.2345"}}.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:    apiKey,
		userAgent: "yieldscope",
		http:      &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// ConvertTo implements statement.Converter.
func (c *Client) ConvertTo(date calendar.Date, cash statement.Cash, target string) (decimal.Decimal, error) {
	if cash.Currency == target {
		return cash.Amount, nil
	}

	rate, err := c.historicalRate(context.Background(), date, cash.Currency, target)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return cash.Amount.Mul(rate), nil
}

type historicalRateResponse struct {
	Rates map[string]string `json:"rates"`
}

func (c *Client) historicalRate(ctx context.Context, date calendar.Date, from, to string) (decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid baseURL %q: %w", c.baseURL, err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/historical"

	q := url.Values{}
	q.Set("date", date.String())
	q.Set("base", from)
	q.Set("symbols", to)
	if c.apiKey != "" {
		q.Set("access_key", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return decimal.Decimal{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		httpErr := &HTTPError{Method: http.MethodGet, URL: u.String(), StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		if v := strings.TrimSpace(resp.Header.Get("Retry-After")); v != "" {
			if n, perr := strconv.Atoi(v); perr == nil && n > 0 {
				httpErr.RetryAfterSeconds = n
			}
		}
		if resp.StatusCode == http.StatusNotFound {
			return decimal.Decimal{}, &statement.ErrFxUnavailable{From: from, To: to, Date: date}
		}
		return decimal.Decimal{}, httpErr
	}

	var out historicalRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode FX rate response: %w", err)
	}

	raw, ok := out.Rates[to]
	if !ok {
		return decimal.Decimal{}, &statement.ErrFxUnavailable{From: from, To: to, Date: date}
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid rate %q for %s/%s: %w", raw, from, to, err)
	}
	return rate, nil
}
