package mojang

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a client, failing the test on config errors.
func newTestClient(t *testing.T, config *Config) *Client {
	t.Helper()

	client, err := NewClient(config)
	require.NoError(t, err)
	return client
}

// recordDelays replaces the client's retry sleep with one that records
// the requested delays without waiting.
func recordDelays(c *Client) *[]time.Duration {
	delays := new([]time.Duration)
	c.sleep = func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return delays
}

func TestExecute_TransientRetry(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		wantDelays  []time.Duration
	}{
		{
			name:        "single attempt",
			maxAttempts: 1,
			wantDelays:  nil,
		},
		{
			name:        "default attempts",
			maxAttempts: 3,
			wantDelays:  []time.Duration{1 * time.Second, 2 * time.Second},
		},
		{
			name:        "five attempts",
			maxAttempts: 5,
			wantDelays:  []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestCount := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestCount++
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("<html>upstream unavailable</html>"))
			}))
			defer server.Close()

			client := newTestClient(t, &Config{MaxAttempts: tt.maxAttempts, DisableCache: true})
			delays := recordDelays(client)

			_, err := getJSON[map[string]any](context.Background(), client, server.URL+"/test")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrServerError)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)

			assert.Equal(t, tt.maxAttempts, requestCount, "attempts must match the configured ceiling")
			assert.Equal(t, tt.wantDelays, *delays)
		})
	}
}

func TestExecute_TransientThenSuccess(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		if requestCount < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("bad gateway"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(t, &Config{DisableCache: true})
	delays := recordDelays(client)

	result, err := getJSON[map[string]bool](context.Background(), client, server.URL+"/test")
	require.NoError(t, err)
	assert.True(t, result["ok"])
	assert.Equal(t, 3, requestCount)
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
}

func TestExecute_RatelimitNoRetry(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errorMessage":"The client has sent too many requests"}`))
	}))
	defer server.Close()

	client := newTestClient(t, &Config{DisableCache: true})
	delays := recordDelays(client)

	_, err := getJSON[map[string]any](context.Background(), client, server.URL+"/test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "The client has sent too many requests", apiErr.Detail)

	assert.Equal(t, 1, requestCount, "429 must fail immediately when ratelimit retry is off")
	assert.Empty(t, *delays)
}

func TestExecute_RatelimitRetry(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, &Config{
		MaxAttempts:      3,
		RetryOnRatelimit: true,
		RatelimitDelay:   45 * time.Second,
		DisableCache:     true,
	})
	delays := recordDelays(client)

	_, err := getJSON[map[string]any](context.Background(), client, server.URL+"/test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRequests)

	assert.Equal(t, 3, requestCount)
	assert.Equal(t, []time.Duration{45 * time.Second, 45 * time.Second}, *delays,
		"ratelimit delay is fixed, not exponential")
}

func TestExecute_RetryEligibility(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantRequests int
		wantKind     error
	}{
		{
			name:         "bad gateway retried",
			status:       http.StatusBadGateway,
			wantRequests: 2,
			wantKind:     ErrServerError,
		},
		{
			name:         "service unavailable retried",
			status:       http.StatusServiceUnavailable,
			wantRequests: 2,
			wantKind:     ErrServerError,
		},
		{
			name:         "gateway timeout retried",
			status:       http.StatusGatewayTimeout,
			wantRequests: 2,
			wantKind:     ErrServerError,
		},
		{
			name:         "internal error not retried",
			status:       http.StatusInternalServerError,
			wantRequests: 1,
			wantKind:     ErrServerError,
		},
		{
			name:         "not implemented not retried",
			status:       http.StatusNotImplemented,
			wantRequests: 1,
			wantKind:     ErrServerError,
		},
		{
			name:         "unauthorized not retried",
			status:       http.StatusUnauthorized,
			wantRequests: 1,
			wantKind:     ErrUnauthorized,
		},
		{
			name:         "forbidden not retried",
			status:       http.StatusForbidden,
			wantRequests: 1,
			wantKind:     ErrForbidden,
		},
		{
			name:         "not found not retried",
			status:       http.StatusNotFound,
			wantRequests: 1,
			wantKind:     ErrNotFound,
		},
		{
			name:         "teapot maps to generic",
			status:       http.StatusTeapot,
			wantRequests: 1,
			wantKind:     ErrGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requestCount := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requestCount++
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, &Config{MaxAttempts: 2, DisableCache: true})
			recordDelays(client)

			_, err := getJSON[map[string]any](context.Background(), client, server.URL+"/test")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Equal(t, tt.wantRequests, requestCount)
		})
	}
}

func TestExecute_MalformedNeverRetried(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("this is not json"))
	}))
	defer server.Close()

	client := newTestClient(t, &Config{MaxAttempts: 3, DisableCache: true})
	delays := recordDelays(client)

	_, err := getJSON[map[string]any](context.Background(), client, server.URL+"/test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "failed to deserialize")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)

	assert.Equal(t, 1, requestCount, "decode failures must not consume the retry budget")
	assert.Empty(t, *delays)
}

func TestExecute_PostPayloadReplayed(t *testing.T) {
	requestCount := 0
	var bodies []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(body))

		if requestCount == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(t, &Config{DisableCache: true})
	recordDelays(client)

	_, err := postJSON[[]batchEntry](context.Background(), client, server.URL+"/profiles/minecraft", []string{"Notch", "jeb_"})
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.JSONEq(t, `["Notch","jeb_"]`, bodies[0])
	assert.Equal(t, bodies[0], bodies[1], "retried POST must resend the same payload")
}

func TestExecute_CancelDuringBackoff(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, &Config{DisableCache: true})

	// Cancel while the first backoff is pending
	ctx, cancel := context.WithCancel(context.Background())
	client.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(ctx, d)
	}

	_, err := getJSON[map[string]any](ctx, client, server.URL+"/test")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, requestCount, "no further attempts after cancellation")
}

func TestExecute_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, &Config{DisableCache: true})

	_, err := getJSON[map[string]any](context.Background(), client, url+"/test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPIUnavailable)
}

func TestGetText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json at all</html>"))
	}))
	defer server.Close()

	client := newTestClient(t, &Config{DisableCache: true})

	text, err := getText(context.Background(), client, server.URL+"/test")
	require.NoError(t, err)
	assert.Equal(t, "<html>not json at all</html>", text)
}

func TestSleepContext(t *testing.T) {
	t.Run("elapses", func(t *testing.T) {
		err := sleepContext(context.Background(), time.Millisecond)
		assert.NoError(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := sleepContext(ctx, time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestRequestPath(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{
			name:   "full URL",
			rawURL: "https://sessionserver.mojang.com/session/minecraft/profile/abc?unsigned=false",
			want:   "/session/minecraft/profile/abc",
		},
		{
			name:   "no path",
			rawURL: "https://api.mojang.com",
			want:   "",
		},
		{
			name:   "unparsable URL returned verbatim",
			rawURL: "://broken",
			want:   "://broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, requestPath(tt.rawURL))
		})
	}
}
