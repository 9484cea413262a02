package mojang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultAPIBaseURL is the main Mojang API host, used for batch
	// name lookups.
	DefaultAPIBaseURL = "https://api.mojang.com"

	// DefaultSessionBaseURL is the session server host, used for
	// profile and blocklist queries.
	DefaultSessionBaseURL = "https://sessionserver.mojang.com"

	// DefaultServicesBaseURL is the Minecraft services host, used for
	// single name lookups.
	DefaultServicesBaseURL = "https://api.minecraftservices.com"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is the user agent string sent with API requests.
	DefaultUserAgent = "go-mojang/dev (https://github.com/steviee/go-mojang)"

	// DefaultMaxAttempts is the default ceiling on attempts per call,
	// including the first.
	DefaultMaxAttempts = 3

	// DefaultRatelimitDelay is the default fixed delay before retrying
	// a rate-limited request.
	DefaultRatelimitDelay = 60 * time.Second

	// MaxBatchNames is the largest batch the bulk lookup endpoint
	// accepts.
	MaxBatchNames = 10
)

// Client is a Mojang API client covering name, profile and blocklist
// lookups. It is safe for concurrent use.
type Client struct {
	apiBaseURL      string
	sessionBaseURL  string
	servicesBaseURL string

	httpClient *http.Client
	userAgent  string

	maxAttempts      int
	retryOnRatelimit bool
	ratelimitDelay   time.Duration

	cache *lookupCache

	// sleep pauses between retry attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error

	ownsClient bool
	closeOnce  sync.Once
}

// Config holds client configuration. The zero value selects the
// defaults.
type Config struct {
	// APIBaseURL, SessionBaseURL and ServicesBaseURL override the
	// Mojang hosts, mainly for testing.
	APIBaseURL      string
	SessionBaseURL  string
	ServicesBaseURL string

	// HTTPClient is an optional caller-supplied HTTP client. When set,
	// Close leaves it untouched and Timeout is ignored; when nil, the
	// client creates and owns one.
	HTTPClient *http.Client

	Timeout   time.Duration
	UserAgent string

	// MaxAttempts caps the number of attempts per call, including the
	// first. Zero selects DefaultMaxAttempts; negative values are
	// rejected.
	MaxAttempts int

	// RetryOnRatelimit enables automatic retry of HTTP 429 responses
	// after RatelimitDelay.
	RetryOnRatelimit bool

	// RatelimitDelay is the fixed delay before retrying a rate-limited
	// request. Zero selects DefaultRatelimitDelay.
	RatelimitDelay time.Duration

	CacheSize    int
	CacheTTL     time.Duration
	DisableCache bool
}

// NewClient creates a new Mojang API client.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = &Config{}
	}

	if config.MaxAttempts == 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got %d", config.MaxAttempts)
	}

	if config.APIBaseURL == "" {
		config.APIBaseURL = DefaultAPIBaseURL
	}
	if config.SessionBaseURL == "" {
		config.SessionBaseURL = DefaultSessionBaseURL
	}
	if config.ServicesBaseURL == "" {
		config.ServicesBaseURL = DefaultServicesBaseURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.RatelimitDelay == 0 {
		config.RatelimitDelay = DefaultRatelimitDelay
	}

	httpClient := config.HTTPClient
	ownsClient := httpClient == nil
	if ownsClient {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	var cache *lookupCache
	if !config.DisableCache {
		cache = newLookupCache(config.CacheSize, config.CacheTTL)
	}

	slog.Debug("creating Mojang API client",
		"max_attempts", config.MaxAttempts,
		"retry_on_ratelimit", config.RetryOnRatelimit,
		"cache_enabled", !config.DisableCache)

	return &Client{
		apiBaseURL:       config.APIBaseURL,
		sessionBaseURL:   config.SessionBaseURL,
		servicesBaseURL:  config.ServicesBaseURL,
		httpClient:       httpClient,
		userAgent:        config.UserAgent,
		maxAttempts:      config.MaxAttempts,
		retryOnRatelimit: config.RetryOnRatelimit,
		ratelimitDelay:   config.RatelimitDelay,
		cache:            cache,
		sleep:            sleepContext,
		ownsClient:       ownsClient,
	}, nil
}

// GetUUID looks up the UUID for a username. It returns uuid.Nil with a
// nil error when the username does not exist. Results are cached to
// avoid repeated API calls.
func (c *Client) GetUUID(ctx context.Context, username string) (uuid.UUID, error) {
	if err := validateUsername(username); err != nil {
		return uuid.Nil, err
	}

	// Check cache first
	if c.cache != nil {
		if entry := c.cache.get(username); entry != nil {
			slog.Debug("mojang UUID cache hit", "username", username)
			if entry.NotFound {
				return uuid.Nil, nil
			}
			return entry.ID, nil
		}
	}

	slog.Debug("mojang UUID cache miss, querying API", "username", username)

	id, err := c.lookupUUID(ctx, username)

	// Cache both hits and misses to avoid repeated lookups
	if c.cache != nil && err == nil {
		c.cache.set(username, cacheEntry{ID: id, NotFound: id == uuid.Nil})
	}

	return id, err
}

// lookupUUID performs a single name lookup against the services API.
func (c *Client) lookupUUID(ctx context.Context, username string) (uuid.UUID, error) {
	url := fmt.Sprintf("%s/minecraft/profile/lookup/name/%s", c.servicesBaseURL, username)

	resp, err := getJSON[uuidResponse](ctx, c, url)
	if err != nil {
		if isAbsent(err) {
			slog.Debug("mojang username not found", "username", username)
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}

	if resp.ID == nil {
		return uuid.Nil, malformedf("UUID lookup response missing id field")
	}
	if *resp.ID == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(*resp.ID)
	if err != nil {
		return uuid.Nil, malformedf("invalid UUID in lookup response: %v", err)
	}

	slog.Debug("mojang UUID lookup success", "username", username, "uuid", id)

	return id, nil
}

// GetUUIDs batch-converts up to MaxBatchNames usernames to UUIDs. The
// returned map is keyed by the server-returned casing, so an input of
// "notch" appears under "Notch". Names that do not exist are absent
// from the result.
func (c *Client) GetUUIDs(ctx context.Context, names []string) (map[string]uuid.UUID, error) {
	if len(names) > MaxBatchNames {
		return nil, fmt.Errorf("batch lookup accepts at most %d names, got %d", MaxBatchNames, len(names))
	}
	for _, name := range names {
		if err := validateUsername(name); err != nil {
			return nil, err
		}
	}

	url := c.apiBaseURL + "/profiles/minecraft"

	entries, err := postJSON[[]batchEntry](ctx, c, url, names)
	if err != nil {
		if isAbsent(err) {
			return map[string]uuid.UUID{}, nil
		}
		return nil, err
	}

	result := make(map[string]uuid.UUID, len(entries))
	for _, entry := range entries {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			return nil, malformedf("invalid UUID in batch response for %q: %v", entry.Name, err)
		}
		result[entry.Name] = id
	}

	return result, nil
}

// GetUsername converts a UUID to its current username. It returns an
// empty string with a nil error when no profile exists for the UUID.
func (c *Client) GetUsername(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := c.fetchProfile(ctx, id)
	if err != nil || doc == nil {
		return "", err
	}

	if doc.Name == "" {
		return "", malformedf("profile response missing name field")
	}

	return doc.Name, nil
}

// GetProfile retrieves the full profile for a UUID, including decoded
// skin and cape texture data. It returns nil with a nil error when no
// profile exists for the UUID.
func (c *Client) GetProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	doc, err := c.fetchProfile(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}

	return decodeProfile(doc)
}

// fetchProfile retrieves the raw session server document for a UUID, or
// nil when the profile does not exist.
func (c *Client) fetchProfile(ctx context.Context, id uuid.UUID) (*sessionProfile, error) {
	url := fmt.Sprintf("%s/session/minecraft/profile/%s", c.sessionBaseURL, undashed(id))

	doc, err := getJSON[sessionProfile](ctx, c, url)
	if err != nil {
		if isAbsent(err) {
			slog.Debug("mojang profile not found", "uuid", id)
			return nil, nil
		}
		return nil, err
	}

	return &doc, nil
}

// GetBlockedServers retrieves the SHA-1 hashes of blocked server
// addresses, one hash per line.
func (c *Client) GetBlockedServers(ctx context.Context) ([]string, error) {
	text, err := getText(ctx, c, c.sessionBaseURL+"/blockedservers")
	if err != nil {
		return nil, err
	}

	return splitLines(text), nil
}

// isAbsent reports whether err represents a "player not found" response.
// The API returns either 404 or 400 for unknown names and UUIDs; both
// map to an absent result rather than an error.
func isAbsent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrBadRequest)
}

// splitLines splits newline-separated text into lines, tolerating CRLF
// line endings and a trailing newline.
func splitLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// Close releases the HTTP client when it is owned by this client. It is
// a no-op for caller-supplied HTTP clients and safe to call more than
// once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.ownsClient {
			c.httpClient.CloseIdleConnections()
		}
	})
}

// ClearCache clears the UUID lookup cache.
func (c *Client) ClearCache() {
	if c.cache != nil {
		c.cache.clear()
	}
}

// CacheSize returns the current number of entries in the cache.
func (c *Client) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.size()
}
