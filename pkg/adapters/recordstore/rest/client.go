package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/hkbk-garden/plant-catalog/pkg/apperrors"
	"github.com/hkbk-garden/plant-catalog/pkg/metrics"
	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// Config contains the hosted record API connection options.
type Config struct {
	// BaseURL is the project URL; requests go to {BaseURL}/rest/v1/{Table}.
	BaseURL string
	APIKey  string
	Table   string
	Timeout time.Duration

	// BreakerFailures consecutive failures open the breaker for BreakerOpenFor.
	BreakerFailures uint32
	BreakerOpenFor  time.Duration
}

// Client reads plant records from a PostgREST-style HTTP API.
// Calls are not retried; the circuit breaker only stops hammering an
// upstream that is already failing.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewClient builds a Client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid record API url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid record API url %q", cfg.BaseURL)
	}
	table := cfg.Table
	if table == "" {
		table = "plants"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerOpenFor == 0 {
		cfg.BreakerOpenFor = 30 * time.Second
	}

	name := "record-api:" + base.Host
	c := &Client{
		endpoint: base.JoinPath("rest", "v1", table).String(),
		apiKey:   cfg.APIKey,
		http:     httpClient,
		logger:   logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			open := 0.0
			if to == gobreaker.StateOpen {
				open = 1
			}
			metrics.BreakerState.WithLabelValues(name).Set(open)
			logger.Warn("Record API breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c, nil
}

// List returns every plant record.
func (c *Client) List(ctx context.Context) ([]*models.Plant, error) {
	q := url.Values{}
	q.Set("select", "*")
	return c.fetch(ctx, q)
}

// GetByID returns the plant with the given id, or nil when none matches.
func (c *Client) GetByID(ctx context.Context, id string) (*models.Plant, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+id)

	plants, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(plants) == 0 {
		return nil, nil
	}
	return plants[0], nil
}

func (c *Client) fetch(ctx context.Context, q url.Values) ([]*models.Plant, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		return c.do(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("record API unavailable: %w: %w", apperrors.ErrStore, err)
		}
		return nil, err
	}
	return res.([]*models.Plant), nil
}

func (c *Client) do(ctx context.Context, q url.Values) ([]*models.Plant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build record API request: %w: %w", apperrors.ErrStore, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record API request failed: %w: %w", apperrors.ErrStore, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read record API response: %w: %w", apperrors.ErrStore, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("Record API returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body, 512)))
		return nil, fmt.Errorf("record API returned status %d: %w", resp.StatusCode, apperrors.ErrStore)
	}

	var plants []*models.Plant
	if err := json.Unmarshal(body, &plants); err != nil {
		return nil, fmt.Errorf("failed to decode record API response: %w: %w", apperrors.ErrStore, err)
	}
	return plants, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
