package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
	"github.com/mr-tron/base58"
	"github.com/rs/zerolog/log"

	"github.com/haymini/hayctl/internal/logger"
)

const (
	// DefaultBaseURL is the production backend.
	DefaultBaseURL = "https://api.haymini.net"

	// DefaultTimeout bounds every request so a slow backend can never
	// hang a validation call indefinitely.
	DefaultTimeout = 10 * time.Second

	maxRetries = 3
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// CacheDir enables a disk-backed response cache for resource
	// reads. Empty means in-memory caching only.
	CacheDir string
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client talks to the remote access-control backend. It is the only
// component that attaches bearer tokens and interprets HTTP failures;
// everything above it works with the package error taxonomy.
type Client struct {
	baseURL string

	authClient  *http.Client // auth endpoints, never cached
	queryClient *http.Client // resource reads, cached

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// New creates a client for the given configuration.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		authClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logger.NewHTTPRequests(nil),
		},
		queryClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newCachingTransport(cfg.CacheDir),
		},
	}
}

// newCachingTransport builds the query-cache transport for resource
// reads, disk-backed when cacheDir is set.
func newCachingTransport(cacheDir string) http.RoundTripper {
	var cached *httpcache.Transport
	if cacheDir == "" {
		cached = httpcache.NewTransport(httpcache.NewMemoryCache())
	} else {
		cached = httpcache.NewTransport(diskcache.New(cacheDir))
	}
	cached.Transport = logger.NewHTTPRequests(nil)
	return cached
}

// SetToken sets the bearer token attached to authenticated requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	log.Debug().Str("token", Fingerprint(token)).Msg("bearer token set")
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// OnUnauthorized registers a hook invoked whenever any request outside
// the login endpoint is rejected with HTTP 401. The hook must be
// idempotent; concurrent 401s may invoke it more than once.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()

	if fn != nil {
		fn()
	}
}

// Fingerprint returns a short Base58-encoded SHA256 prefix of a token,
// safe to include in log output.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	return base58.Encode(hash[:])[:8]
}

// do executes a single JSON request and decodes a 2xx response body
// into out (when out is non-nil). Non-2xx responses become *APIError,
// transport failures are wrapped as ErrUnavailable.
func (c *Client) do(ctx context.Context, httpClient *http.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Error payloads are best-effort; keep the status code when
		// the body isn't the documented shape.
		_ = json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	return nil
}

// getResource fetches a read-only resource through the query cache,
// retrying transient failures with exponential backoff. A 401 fires
// the unauthorized hook and is never retried.
func (c *Client) getResource(ctx context.Context, path string, out any) error {
	operation := func() (struct{}, error) {
		err := c.do(ctx, c.queryClient, http.MethodGet, path, nil, out)
		if err == nil {
			return struct{}{}, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return struct{}{}, backoff.Permanent(err)
		}

		log.Warn().Err(err).Str("path", path).Msg("resource fetch failed, will retry")

		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxRetries),
	)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			c.unauthorized()
		}
		return err
	}

	return nil
}
