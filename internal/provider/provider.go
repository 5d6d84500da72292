// Package provider implements the client for the upstream property
// listings API. The engine consumes it through a single search call.
package provider

import (
	"context"

	"github.com/propsignal/market-cli/internal/model"
)

// SearchQuery is one provider-side search request. All filters are optional;
// an empty query asks for an unfiltered nationwide sample of Limit records.
type SearchQuery struct {
	// Location is the provider's free-form location filter, e.g. "Austin, TX".
	Location string
	// City and State are the provider's explicit structured filters.
	City  string
	State string
	// Limit caps the number of returned records.
	Limit int
}

// Searcher is the engine's view of the listings provider.
type Searcher interface {
	Search(ctx context.Context, q SearchQuery) ([]model.RawListing, error)
}
