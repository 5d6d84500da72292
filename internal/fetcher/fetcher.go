// Package fetcher retrieves bounded listing samples from the provider,
// falling back through progressively looser filter shapes when the provider
// rejects or returns nothing for a tighter one.
package fetcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/propsignal/market-cli/internal/model"
	"github.com/propsignal/market-cli/internal/provider"
)

// Scope narrows a sample to one city. A nil *Scope means nationwide.
type Scope struct {
	City  string
	State string
}

// NewScope canonicalizes user-supplied city and state strings: the city is
// title-cased ("fort worth" -> "Fort Worth"), the state upper-cased.
func NewScope(city, state string) Scope {
	return Scope{
		City:  cases.Title(language.AmericanEnglish).String(strings.TrimSpace(city)),
		State: strings.ToUpper(strings.TrimSpace(state)),
	}
}

// Fetcher retrieves listing samples through a tiered fallback chain.
type Fetcher struct {
	searcher       provider.Searcher
	broadSampleCap int
}

// New creates a Fetcher. broadSampleCap bounds the oversized unfiltered
// sample requested by the client-side filtering tiers; zero means 1000.
func New(searcher provider.Searcher, broadSampleCap int) *Fetcher {
	if broadSampleCap <= 0 {
		broadSampleCap = 1000
	}
	return &Fetcher{searcher: searcher, broadSampleCap: broadSampleCap}
}

// tier is one fallback strategy. A tier returning (nil, nil) simply yields
// to the next tier; a non-empty result wins; a non-rejection error aborts
// the whole chain.
type tier struct {
	name string
	run  func(ctx context.Context) ([]model.RawListing, error)
}

// FetchSample retrieves up to size listings for the scope. With a nil scope
// a single unfiltered nationwide search is issued. With a scope, tiers are
// tried strictly in order and only a provider filter rejection or an empty
// result advances the chain; transport errors propagate immediately.
func (f *Fetcher) FetchSample(ctx context.Context, scope *Scope, size int) ([]model.RawListing, error) {
	if scope == nil {
		listings, err := f.searcher.Search(ctx, provider.SearchQuery{Limit: size})
		if err != nil {
			return nil, eris.Wrap(err, "fetcher: nationwide sample")
		}
		return listings, nil
	}

	broadSize := min(size*4, f.broadSampleCap)

	// The broad sample is shared by tiers 4 and 5 so it is fetched at most
	// once per call.
	var (
		broad        []model.RawListing
		broadFetched bool
	)
	broadSample := func(ctx context.Context) ([]model.RawListing, error) {
		if broadFetched {
			return broad, nil
		}
		var err error
		broad, err = f.searcher.Search(ctx, provider.SearchQuery{Limit: broadSize})
		if err == nil {
			broadFetched = true
		}
		return broad, err
	}

	tiers := []tier{
		{
			name: "location-filter",
			run: func(ctx context.Context) ([]model.RawListing, error) {
				return f.searcher.Search(ctx, provider.SearchQuery{
					Location: fmt.Sprintf("%s, %s", scope.City, scope.State),
					Limit:    size,
				})
			},
		},
		{
			name: "city-state-fields",
			run: func(ctx context.Context) ([]model.RawListing, error) {
				return f.searcher.Search(ctx, provider.SearchQuery{
					City:  scope.City,
					State: scope.State,
					Limit: size,
				})
			},
		},
		{
			name: "state-filter",
			run: func(ctx context.Context) ([]model.RawListing, error) {
				listings, err := f.searcher.Search(ctx, provider.SearchQuery{
					State: scope.State,
					Limit: size,
				})
				if err != nil {
					return nil, err
				}
				return filterByState(listings, scope.State), nil
			},
		},
		{
			name: "broad-city-match",
			run: func(ctx context.Context) ([]model.RawListing, error) {
				listings, err := broadSample(ctx)
				if err != nil {
					return nil, err
				}
				return filterByCityState(listings, scope.City, scope.State), nil
			},
		},
		{
			name: "broad-state-match",
			run: func(ctx context.Context) ([]model.RawListing, error) {
				listings, err := broadSample(ctx)
				if err != nil {
					return nil, err
				}
				return filterByState(listings, scope.State), nil
			},
		},
	}

	for _, t := range tiers {
		listings, err := t.run(ctx)
		if err != nil {
			if eris.Is(err, provider.ErrFilterRejected) {
				zap.L().Debug("fetcher: tier rejected by provider, trying next",
					zap.String("tier", t.name),
					zap.String("city", scope.City),
					zap.String("state", scope.State),
				)
				continue
			}
			return nil, eris.Wrapf(err, "fetcher: tier %s", t.name)
		}
		if len(listings) > 0 {
			zap.L().Debug("fetcher: tier satisfied",
				zap.String("tier", t.name),
				zap.Int("listings", len(listings)),
			)
			return listings, nil
		}
	}

	// All tiers empty: not an error, the caller sees an empty sample.
	zap.L().Info("fetcher: no listings found for scope",
		zap.String("city", scope.City),
		zap.String("state", scope.State),
	)
	return nil, nil
}

// filterByCityState keeps listings whose trimmed city and state both match
// case-insensitively.
func filterByCityState(listings []model.RawListing, city, state string) []model.RawListing {
	var out []model.RawListing
	for _, l := range listings {
		if strings.EqualFold(strings.TrimSpace(l.City), city) && strings.EqualFold(strings.TrimSpace(l.State), state) {
			out = append(out, l)
		}
	}
	return out
}

// filterByState keeps listings whose trimmed state matches exactly.
func filterByState(listings []model.RawListing, state string) []model.RawListing {
	var out []model.RawListing
	for _, l := range listings {
		if strings.TrimSpace(l.State) == state {
			out = append(out, l)
		}
	}
	return out
}
