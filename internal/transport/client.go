package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for REST calls.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "confluo_requests_total",
		Help: "Total REST requests by path and status",
	}, []string{"path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "confluo_request_duration_seconds",
		Help:    "REST request duration in seconds by path",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"path"})
)

const restPrefix = "/rest/api/"

// Client is the HTTP implementation of Fetcher. Credentials are static; the
// server is expected to accept basic auth with an API token.
type Client struct {
	baseURL  string
	username string
	apiToken string
	client   *http.Client
	logger   zerolog.Logger
}

// NewClient creates a transport client for the given server. A zero timeout
// falls back to 30 seconds.
func NewClient(baseURL, username, apiToken string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		apiToken: apiToken,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	target := c.baseURL + restPrefix + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, path)
}

func (c *Client) Send(ctx context.Context, method, path string, body []byte) (*RawResponse, error) {
	target := c.baseURL + restPrefix + strings.TrimLeft(path, "/")

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path)
}

func (c *Client) do(req *http.Request, path string) (*RawResponse, error) {
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(path, "network_error").Inc()
		c.logger.Error().Err(err).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(path, "read_error").Inc()
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	requestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	raw := &RawResponse{
		OK:     ok,
		Status: resp.StatusCode,
		Body:   body,
	}
	if !ok {
		raw.Reason = resp.Status
		c.logger.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("non-2xx response")
	} else {
		c.logger.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("duration", time.Since(start)).
			Msg("request complete")
	}
	return raw, nil
}

var _ Fetcher = (*Client)(nil)
