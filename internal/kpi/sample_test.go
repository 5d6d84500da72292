package kpi

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsignal/market-cli/internal/aggregate"
	"github.com/propsignal/market-cli/internal/fetcher"
	"github.com/propsignal/market-cli/internal/model"
)

// fixedFetcher returns the same sample for every call.
type fixedFetcher struct {
	listings []model.RawListing
	err      error
}

func (f *fixedFetcher) FetchSample(_ context.Context, _ *fetcher.Scope, _ int) ([]model.RawListing, error) {
	return f.listings, f.err
}

func testNow() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func newTestOrchestrator(fetch SampleFetcher) *Orchestrator {
	cfg := testScoringConfig()
	agg := aggregate.New(cfg, nil, aggregate.WithClock(testNow))
	return NewOrchestrator(fetch, agg, cfg, 100).WithClock(testNow)
}

func austinSample() []model.RawListing {
	june := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)

	return []model.RawListing{
		{City: "Austin", State: "TX", ListPrice: ptrFloat64(330000), ListedDate: ptrTime(june), DaysOnMarket: ptrFloat64(25)},
		{City: "Austin", State: "TX", ListPrice: ptrFloat64(340000), ListedDate: ptrTime(june), DaysOnMarket: ptrFloat64(31)},
		{City: "Austin", State: "TX", ListPrice: ptrFloat64(300000), ListedDate: ptrTime(may), DaysOnMarket: ptrFloat64(35)},
		{City: "Austin", State: "TX", ListPrice: ptrFloat64(310000), ListedDate: ptrTime(may), DaysOnMarket: ptrFloat64(39)},
		{City: "Austin", State: "TX", ListPrice: ptrFloat64(305000), ListedDate: ptrTime(may)},
	}
}

func TestComputeCityKpisFromSample(t *testing.T) {
	orch := newTestOrchestrator(&fixedFetcher{listings: austinSample()})

	snapshot, err := orch.ComputeCityKpisFromSample(context.Background(), "austin", "tx")
	require.NoError(t, err)

	assert.Equal(t, "Austin", snapshot.City)
	assert.Equal(t, "TX", snapshot.State)
	// Current cohort: 330000, 340000 -> median 335000.
	assert.InDelta(t, 335000, snapshot.MedianPrice, 0.001)
	assert.Equal(t, 2, snapshot.Inventory)
	// Previous cohort: 300000, 305000, 310000 -> median 305000.
	expectedChange := (335000.0 - 305000.0) / 305000.0 * 100
	assert.InDelta(t, expectedChange, snapshot.PriceChangePct, 0.01)
	// Previous cohort has 3 listings.
	assert.InDelta(t, -100.0/3, snapshot.InventoryChangePct, 0.01)
	// DOM: current avg 28, previous avg 37 (undated DOM excluded).
	assert.InDelta(t, 28, snapshot.DaysOnMarket, 0.001)
	assert.InDelta(t, -9, snapshot.DomChangeDays, 0.001)
}

func TestComputeCityKpisFromSampleIdempotent(t *testing.T) {
	orch := newTestOrchestrator(&fixedFetcher{listings: austinSample()})

	first, err := orch.ComputeCityKpisFromSample(context.Background(), "Austin", "TX")
	require.NoError(t, err)
	second, err := orch.ComputeCityKpisFromSample(context.Background(), "Austin", "TX")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeCityKpisFromSampleEmpty(t *testing.T) {
	orch := newTestOrchestrator(&fixedFetcher{})

	snapshot, err := orch.ComputeCityKpisFromSample(context.Background(), "Topeka", "KS")
	require.NoError(t, err)

	assert.Equal(t, "Topeka", snapshot.City)
	assert.Zero(t, snapshot.MedianPrice)
	assert.InDelta(t, 2.5, snapshot.JobGrowthPct, 0.001)
}

func TestComputeCityKpisFromSampleFetchError(t *testing.T) {
	fetchErr := eris.New("provider down")
	orch := newTestOrchestrator(&fixedFetcher{err: fetchErr})

	_, err := orch.ComputeCityKpisFromSample(context.Background(), "Austin", "TX")
	require.Error(t, err)
	assert.True(t, eris.Is(err, fetchErr))
}

func TestComputeCityKpisFromSampleMixedCasings(t *testing.T) {
	// The same city under two provider casings forms two groups; the
	// case-insensitive lookup must pick the first-encountered one on every
	// call, not whichever a map walk happens to visit.
	june := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	sample := []model.RawListing{
		{City: "AUSTIN", State: "TX", ListPrice: ptrFloat64(500000), ListedDate: ptrTime(june), RentEstimate: ptrFloat64(4000)},
		{City: "austin", State: "tx", ListPrice: ptrFloat64(300000), ListedDate: ptrTime(june), RentEstimate: ptrFloat64(1200)},
	}
	orch := newTestOrchestrator(&fixedFetcher{listings: sample})

	first, err := orch.ComputeCityKpisFromSample(context.Background(), "Austin", "TX")
	require.NoError(t, err)

	// Cap rate comes from the first-encountered group: 4000 * 12 / 500000.
	assert.InDelta(t, 9.6, first.CapRatePct, 0.001)

	for i := 0; i < 5; i++ {
		again, err := orch.ComputeCityKpisFromSample(context.Background(), "Austin", "TX")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeCityKpisFromSampleStateFallbackListings(t *testing.T) {
	// A state-tier fetch can include neighbors; their listings must not
	// leak into the scoped city's raw statistics.
	june := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	sample := []model.RawListing{
		{City: "Austin", State: "TX", ListPrice: ptrFloat64(330000), ListedDate: ptrTime(june)},
		{City: "Dallas", State: "TX", ListPrice: ptrFloat64(900000), ListedDate: ptrTime(june), RentEstimate: ptrFloat64(5000)},
	}
	orch := newTestOrchestrator(&fixedFetcher{listings: sample})

	snapshot, err := orch.ComputeCityKpisFromSample(context.Background(), "Austin", "TX")
	require.NoError(t, err)

	// Cap rate derives from Austin's group only: rent fallback 0.006.
	expectedCap := 330000 * 0.006 * 12 / 330000.0 * 100
	assert.InDelta(t, expectedCap, snapshot.CapRatePct, 0.01)
}
