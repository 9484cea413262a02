package mojang

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
)

// execute runs one logical API call with retries. method and rawURL
// describe the request, payload is an optional JSON body replayed on
// every attempt, and decode turns a success-response body into a T.
//
// The attempt counter is bounded by the client's max attempts. Transient
// failures (429 under the ratelimit policy, 502/503/504 always) sleep
// and retry; every other non-success status is classified and returned
// on first occurrence. A success response whose body fails to decode is
// returned as ErrMalformedResponse and never retried.
func execute[T any](ctx context.Context, c *Client, method, rawURL string, payload []byte, decode func([]byte) (T, error)) (T, error) {
	var zero T

	for attempt := 1; ; attempt++ {
		resp, err := c.send(ctx, method, rawURL, payload)
		if err != nil {
			return zero, err
		}

		slog.Debug("mojang API response",
			"method", method,
			"url", rawURL,
			"status", resp.StatusCode,
			"attempt", attempt)

		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			body, err := readBody(resp)
			if err != nil {
				return zero, fmt.Errorf("read response: %w", err)
			}

			value, err := decode(body)
			if err != nil {
				return zero, malformedf("failed to deserialize %s %s: %v", method, rawURL, err)
			}
			return value, nil
		}

		if attempt < c.maxAttempts {
			if delay, ok := c.retryDelay(resp.StatusCode, attempt); ok {
				// Drain before reuse of the connection
				drainBody(resp)
				if err := c.sleep(ctx, delay); err != nil {
					return zero, err
				}
				continue
			}
		}

		body, _ := readBody(resp)
		return zero, classify(resp.StatusCode, body, requestPath(rawURL))
	}
}

// send issues a single HTTP request. A fresh request is built per call
// so that POST payloads can be replayed across attempts.
func (c *Client) send(ctx context.Context, method, rawURL string, payload []byte) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("mojang API request", "method", method, "url", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPIUnavailable, err)
	}

	return resp, nil
}

// retryDelay reports whether status is retry-eligible and the delay to
// apply before the next attempt. 429 retries only when configured, with
// the fixed ratelimit delay; 502, 503 and 504 always retry, with
// exponential backoff of 2^(attempt-1) seconds.
func (c *Client) retryDelay(status, attempt int) (time.Duration, bool) {
	switch {
	case status == http.StatusTooManyRequests && c.retryOnRatelimit:
		slog.Warn("mojang API rate limited",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"delay", c.ratelimitDelay)
		return c.ratelimitDelay, true

	case status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable,
		status == http.StatusGatewayTimeout:
		delay := time.Duration(1<<(attempt-1)) * time.Second
		slog.Warn("transient mojang API error",
			"status", status,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"delay", delay)
		return delay, true

	default:
		return 0, false
	}
}

// sleepContext pauses for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readBody consumes and closes the response body.
func readBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	return io.ReadAll(resp.Body)
}

// drainBody discards any unread body so the underlying connection can be
// reused for the next attempt.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// requestPath extracts the path component of a URL for error details.
func requestPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

// getJSON issues a GET request and decodes the JSON response into T.
func getJSON[T any](ctx context.Context, c *Client, url string) (T, error) {
	return execute(ctx, c, http.MethodGet, url, nil, decodeJSON[T])
}

// postJSON issues a POST request with a JSON payload and decodes the
// JSON response into T.
func postJSON[T any](ctx context.Context, c *Client, url string, payload any) (T, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("encode request: %w", err)
	}
	return execute(ctx, c, http.MethodPost, url, body, decodeJSON[T])
}

// getText issues a GET request and returns the response body as text.
func getText(ctx context.Context, c *Client, url string) (string, error) {
	return execute(ctx, c, http.MethodGet, url, nil, func(body []byte) (string, error) {
		return string(body), nil
	})
}

func decodeJSON[T any](body []byte) (T, error) {
	var value T
	err := json.Unmarshal(body, &value)
	return value, err
}
