package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/model"
)

// Client talks to the listings provider over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a provider client from configuration.
func NewClient(cfg config.ProviderConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 5
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

// searchRequest is the provider's search payload. Zero-valued filters are
// omitted so the provider sees exactly the filter shape we intend.
type searchRequest struct {
	Location string `json:"location,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Size     int    `json:"size"`
}

type searchResponse struct {
	Data []model.RawListing `json:"data"`
}

// Search executes one provider search call. A 4xx response in the
// filter-rejection class maps to ErrFilterRejected; every other failure is
// fatal and propagates unchanged.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]model.RawListing, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredentials
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "provider: rate limiter wait")
	}

	body, err := json.Marshal(searchRequest{
		Location: q.Location,
		City:     q.City,
		State:    q.State,
		Size:     q.Limit,
	})
	if err != nil {
		return nil, eris.Wrap(err, "provider: marshal search request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "provider: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "provider: search request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if isFilterRejection(resp.StatusCode) {
		// Drain so the connection can be reused by the next tier.
		_, _ = io.Copy(io.Discard, resp.Body)
		zap.L().Debug("provider: filter shape rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("location", q.Location),
			zap.String("city", q.City),
			zap.String("state", q.State),
		)
		return nil, ErrFilterRejected
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("provider: unexpected status %d from search", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, eris.Wrap(err, "provider: decode search response")
	}

	zap.L().Debug("provider: search complete",
		zap.Int("listings", len(parsed.Data)),
		zap.Int("requested", q.Limit),
	)

	return parsed.Data, nil
}

// isFilterRejection reports whether the status marks an unsupported filter
// shape rather than a genuine transport failure. 400 and 422 are the
// provider's documented rejection responses; 401/403/404 and friends are
// real errors and must not trigger a fallback tier.
func isFilterRejection(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusUnprocessableEntity
}
