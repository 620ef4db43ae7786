// Package client provides the HTTP transport for the vacancy listing API:
// a mandatory client-identifying User-Agent, error classification, and an
// optional response cache.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/vacancy-report/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public hh.ru API.
	DefaultBaseURL = "https://api.hh.ru"

	// DefaultUserAgent identifies this tool to the API.
	DefaultUserAgent = "hh-parser-app/1.0"

	// DefaultTimeout bounds a single request, including reading the body.
	DefaultTimeout = 30 * time.Second

	maxErrorBody = 4096
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacancy_api_requests_total",
		Help: "Total listing API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vacancy_api_request_duration_seconds",
		Help:    "Listing API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vacancy_api_errors_total",
		Help: "Total listing API errors by class",
	}, []string{"class"})
)

// ResponseCache is the subset of cache.Store used by the client.
type ResponseCache interface {
	Get(ctx context.Context, key cache.Key) (*cache.Entry, error)
	Set(ctx context.Context, key cache.Key, entry *cache.Entry) error
	Refresh(ctx context.Context, key cache.Key, expires time.Time) error
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the listing API.
	BaseURL string

	// UserAgent is attached to every request (REQUIRED).
	UserAgent string

	// Timeout per request; 0 disables it. Ignored when HTTPClient is set.
	Timeout time.Duration

	// HTTPClient overrides the default transport (tests, proxies).
	HTTPClient *http.Client

	// Cache is optional; nil means every request goes to the API.
	Cache ResponseCache
}

// DefaultConfig returns the configuration used by the report command.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

// Client talks to the listing API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
	cache      ResponseCache
	logger     zerolog.Logger
}

// New creates a new Client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.UserAgent) == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		cache:      cfg.Cache,
		logger:     log.With().Str("component", "client").Logger(),
	}, nil
}

// Get performs a GET request against endpoint with the given query.
func (c *Client) Get(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	u := c.baseURL.JoinPath(endpoint)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.Do(req)
}

// Do sends req. Any status >= 400 and any network failure is returned as an
// *APIError; on success the caller owns the response body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	key := cache.KeyFor(req.URL)
	cached := c.lookup(ctx, key)
	if cached.IsFresh() {
		c.logger.Debug().Str("endpoint", endpoint).Str("key", key.String()).Msg("Serving page from cache")
		requestsTotal.WithLabelValues(endpoint, "cached").Inc()
		return cache.Replay(cached, req), nil
	}
	if cached.CanRevalidate() {
		cache.AddConditionalHeaders(req, cached)
		c.logger.Debug().Str("endpoint", endpoint).Str("etag", cached.ETag).Msg("Revalidating cached page")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, &APIError{
			ErrorClass: ErrorClassNetwork,
			Endpoint:   endpoint,
			Message:    "request failed",
			Err:        err,
		}
	}
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotModified && cached != nil {
		_ = resp.Body.Close()
		cache.NotModified.Inc()
		if err := c.cache.Refresh(ctx, key, cache.ExpiresFrom(resp.Header)); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to refresh cached page")
		}
		return cache.Replay(cached, req), nil
	}

	if class := classifyStatus(resp.StatusCode); class != "" {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
		errorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Listing API returned an error status")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: class,
			Endpoint:   endpoint,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	if resp.StatusCode == http.StatusOK {
		c.store(ctx, key, resp)
	}

	return resp, nil
}

func (c *Client) lookup(ctx context.Context, key cache.Key) *cache.Entry {
	if c.cache == nil {
		return nil
	}
	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache get error")
		}
		return nil
	}
	return entry
}

func (c *Client) store(ctx context.Context, key cache.Key, resp *http.Response) {
	if c.cache == nil {
		return
	}
	entry, err := cache.Capture(resp)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to capture response for cache")
		return
	}
	if err := c.cache.Set(ctx, key, entry); err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache response")
		return
	}
	c.logger.Debug().Str("key", key.String()).Dur("ttl", entry.TTL()).Msg("Cached response")
}
