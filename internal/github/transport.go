package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultMaxRetries = 3
	rateLimitBuffer   = time.Second
)

// APIError is a non-retryable API failure carrying the response for logging.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GET %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
}

// IsClientError reports whether err is a 4xx API response.
func IsClientError(err error) bool {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
	}
	return false
}

type requestStats struct {
	requests       int
	retries        int
	rateLimitWaits int
}

// transport issues GET requests with retry on 5xx/network failures and
// rate-limit pacing driven by the standard X-RateLimit headers. The header
// check runs after every response, including successful ones, so a 200 that
// exhausts the quota still blocks the next call until the reset time.
type transport struct {
	http       *http.Client
	token      string
	maxRetries int
	sleep      func(time.Duration)
	now        func() time.Time
	stats      requestStats
}

func newTransport(httpClient *http.Client, token string) *transport {
	return &transport{
		http:       httpClient,
		token:      token,
		maxRetries: defaultMaxRetries,
		sleep:      time.Sleep,
		now:        time.Now,
	}
}

// getJSON performs a GET against rawURL, decodes a successful body into out
// (when out is non-nil), and returns the response headers for pagination.
// 5xx and network failures are retried up to maxRetries with exponential
// backoff; 4xx responses (other than rate-limit signaling) fail immediately.
func (t *transport) getJSON(ctx context.Context, rawURL string, params url.Values, out any) (http.Header, error) {
	requestURL := rawURL
	if len(params) > 0 {
		sep := "?"
		if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		requestURL = rawURL + sep + params.Encode()
	}

	for attempt := 0; ; attempt++ {
		t.stats.requests++

		req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request for %s: %w", requestURL, err)
		}
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("Authorization", "Bearer "+t.token)
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

		resp, err := t.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if attempt >= t.maxRetries {
				return nil, fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
			}
			logrus.WithError(err).WithFields(logrus.Fields{
				"url":     requestURL,
				"attempt": attempt + 1,
			}).Warn("network failure, retrying")
			t.backoff(attempt)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		// Quota check must happen before any status handling: even a 200
		// response can leave the remaining budget at zero.
		waited := t.waitForRateLimit(resp.Header)

		if readErr != nil {
			if attempt >= t.maxRetries {
				return nil, fmt.Errorf("reading response from %s: %w", requestURL, readErr)
			}
			t.backoff(attempt)
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if out != nil {
				if err := json.Unmarshal(body, out); err != nil {
					return nil, fmt.Errorf("decoding response from %s: %w", requestURL, err)
				}
			}
			return resp.Header, nil

		case resp.StatusCode >= 500:
			if attempt >= t.maxRetries {
				return nil, &APIError{StatusCode: resp.StatusCode, URL: requestURL, Body: string(body)}
			}
			logrus.WithFields(logrus.Fields{
				"url":     requestURL,
				"status":  resp.StatusCode,
				"attempt": attempt + 1,
			}).Warn("server error, retrying")
			t.backoff(attempt)
			continue

		case (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests) && waited:
			// Rate-limit signaled via 403/429 with an exhausted quota; the
			// wait already happened, reissue the call.
			if attempt >= t.maxRetries {
				return nil, &APIError{StatusCode: resp.StatusCode, URL: requestURL, Body: string(body)}
			}
			continue

		default:
			return nil, &APIError{StatusCode: resp.StatusCode, URL: requestURL, Body: string(body)}
		}
	}
}

// backoff sleeps 2^attempt seconds before the next try.
func (t *transport) backoff(attempt int) {
	t.stats.retries++
	t.sleep(time.Duration(1<<attempt) * time.Second)
}

// waitForRateLimit blocks until the quota reset time (plus a one-second
// buffer) when the remaining quota is zero. Returns true if it waited.
func (t *transport) waitForRateLimit(h http.Header) bool {
	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil || remaining > 0 {
		return false
	}
	reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		return false
	}
	wait := time.Unix(reset, 0).Sub(t.now())
	if wait < 0 {
		wait = 0
	}
	wait += rateLimitBuffer
	t.stats.rateLimitWaits++
	logrus.WithField("wait_seconds", wait.Seconds()).Warn("rate limit reached, waiting for reset")
	t.sleep(wait)
	return true
}
