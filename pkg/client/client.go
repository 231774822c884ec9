// Package client provides the core HTTP client for the Art Institute of
// Chicago public API with rate limiting, error classification, and
// structured logging.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rkoenig/artic-client/pkg/ratelimit"
)

// DefaultBaseURL is the production endpoint of the ARTIC API.
const DefaultBaseURL = "https://api.artic.edu/api/v1"

// Prometheus metrics for API client operations.
var (
	articRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_requests_total",
		Help: "Total ARTIC API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	articRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "artic_request_duration_seconds",
		Help:    "ARTIC API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	articErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_errors_total",
		Help: "Total ARTIC API errors by class",
	}, []string{"class"})
)

// Client is the ARTIC API client.
//
// Each request is attempted exactly once: a failure is reported to the
// caller and the in-flight operation stops. Callers that can live with
// partial data (the multi-page selector) handle this themselves.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.artic.edu/api/v1".
	// Overridable for tests.
	BaseURL string

	// User-Agent header sent with every request.
	// Format: "AppName/Version (contact@example.com)"
	UserAgent string

	// Timeout applies to the whole request including body read.
	Timeout time.Duration

	// RequestsPerSecond caps the sustained outbound request rate.
	// Zero disables client-side throttling.
	RequestsPerSecond float64
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         userAgent,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 5,
	}
}

// New creates a new ARTIC API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "artic-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: ratelimit.New(cfg.RequestsPerSecond, logger),
		config:  cfg,
		logger:  logger,
	}, nil
}

// Do performs an HTTP request with rate limiting and error classification.
// HTTP error statuses (>= 400) are returned as *APIError; the single
// attempt is never retried.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := req.URL.Path

	startTime := time.Now()
	defer func() {
		articRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Msg("Request aborted while waiting for rate limiter")
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", req.Method).
		Msg("Executing ARTIC request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errClass := classifyError(nil, err)
		articErrorsTotal.WithLabelValues(string(errClass)).Inc()
		articRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		return nil, &APIError{
			ErrorClass: errClass,
			Endpoint:   endpoint,
			Message:    "request failed",
			Err:        err,
		}
	}

	articRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		errClass := classifyError(resp, nil)
		articErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("ARTIC request error")

		resp.Body.Close()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Endpoint:   endpoint,
			Message:    resp.Status,
		}
	}

	return resp, nil
}

// Get performs a GET request against an API path with query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	rawURL := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
