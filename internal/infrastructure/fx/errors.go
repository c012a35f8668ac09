package fx

import (
	"fmt"
	"time"
)

// HTTPError is returned for any non-2xx response from the rate provider.
//
// Grounded on nezdemkovski-folio212's internal/infrastructure/trading212
// HTTPError: same shape (method/URL/status/body + rate-limit hints), carried
// over verbatim since the provider is, like Trading212's, a rate-limited
// third-party HTTP API.
type HTTPError struct {
	Method             string
	URL                string
	StatusCode         int
	Body               string
	RetryAfterSeconds  int
	RateLimitResetUnix int64
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// SuggestedRetryDelay derives a retry delay from whichever rate-limit header
// the response carried, relative to now.
func (e *HTTPError) SuggestedRetryDelay(now time.Time) (time.Duration, bool) {
	if e.RetryAfterSeconds > 0 {
		return time.Duration(e.RetryAfterSeconds) * time.Second, true
	}
	if e.RateLimitResetUnix > 0 {
		return time.Unix(e.RateLimitResetUnix, 0).Sub(now), true
	}
	return 0, false
}
