package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/model"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.ProviderConfig{
		BaseURL:       baseURL,
		APIKey:        "test-key",
		TimeoutSecs:   5,
		RatePerSecond: 100,
	})
}

func TestSearchMissingCredentials(t *testing.T) {
	client := NewClient(config.ProviderConfig{BaseURL: "http://unused"})

	_, err := client.Search(context.Background(), SearchQuery{Limit: 10})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNoCredentials))
}

func TestSearchSuccess(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []model.RawListing{
				{City: "Austin", State: "TX"},
				{City: "Dallas", State: "TX"},
			},
		})
	}))
	defer srv.Close()

	listings, err := newTestClient(srv.URL).Search(context.Background(), SearchQuery{
		Location: "Austin, TX",
		Limit:    50,
	})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Austin", listings[0].City)

	// Zero-valued filters are omitted from the payload.
	assert.Equal(t, "Austin, TX", gotBody["location"])
	assert.NotContains(t, gotBody, "city")
	assert.NotContains(t, gotBody, "state")
	assert.InDelta(t, 50, gotBody["size"].(float64), 0.001)
}

func TestSearchFilterRejection(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"bad request", http.StatusBadRequest},
		{"unprocessable", http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Search(context.Background(), SearchQuery{City: "Topeka", Limit: 10})
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrFilterRejected))
		})
	}
}

func TestSearchTransportClassErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"forbidden", http.StatusForbidden},
		{"not found", http.StatusNotFound},
		{"too many requests", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Search(context.Background(), SearchQuery{Limit: 10})
			require.Error(t, err)
			assert.False(t, eris.Is(err, ErrFilterRejected))
		})
	}
}

func TestSearchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), SearchQuery{Limit: 10})
	require.Error(t, err)
}
