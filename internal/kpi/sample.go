package kpi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/propsignal/market-cli/internal/aggregate"
	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/fetcher"
	"github.com/propsignal/market-cli/internal/model"
)

// SampleFetcher is the slice of the fetcher the orchestrator needs.
type SampleFetcher interface {
	FetchSample(ctx context.Context, scope *fetcher.Scope, size int) ([]model.RawListing, error)
}

// Orchestrator fetches a city-scoped sample and turns it into a snapshot.
type Orchestrator struct {
	fetch      SampleFetcher
	agg        *aggregate.Aggregator
	calc       *Calculator
	sampleSize int
	now        func() time.Time
}

// NewOrchestrator wires the fetch-aggregate-compute pipeline for one city.
func NewOrchestrator(fetch SampleFetcher, agg *aggregate.Aggregator, cfg config.ScoringConfig, sampleSize int) *Orchestrator {
	if sampleSize <= 0 {
		sampleSize = 500
	}
	return &Orchestrator{
		fetch:      fetch,
		agg:        agg,
		calc:       NewCalculator(cfg),
		sampleSize: sampleSize,
		now:        time.Now,
	}
}

// WithClock overrides the time source used for cohort partitioning.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// ComputeCityKpisFromSample fetches a city-scoped sample, splits it into
// current- and previous-month cohorts, recomputes raw statistics per cohort,
// and delegates to ComputeCityKpis. An empty fetch yields the well-defined
// empty snapshot rather than an error.
func (o *Orchestrator) ComputeCityKpisFromSample(ctx context.Context, city, state string) (model.CityKpiSnapshot, error) {
	scope := fetcher.NewScope(city, state)

	listings, err := o.fetch.FetchSample(ctx, &scope, o.sampleSize)
	if err != nil {
		return model.CityKpiSnapshot{}, eris.Wrapf(err, "kpi: fetch sample for %s, %s", scope.City, scope.State)
	}
	if len(listings) == 0 {
		zap.L().Info("kpi: empty sample, returning placeholder snapshot",
			zap.String("city", scope.City),
			zap.String("state", scope.State),
		)
		return o.calc.EmptySnapshot(scope.City, scope.State), nil
	}

	cityMetrics, err := o.cityMetrics(listings, scope)
	if err != nil {
		return model.CityKpiSnapshot{}, err
	}

	current, previous := partitionCohorts(listings, o.now())
	metrics := CityMonthMetrics{
		Current:  cohortStats(current),
		Previous: cohortStats(previous),
		City:     cityMetrics,
	}

	snapshot := o.calc.ComputeCityKpis(scope.City, scope.State, metrics)

	zap.L().Debug("kpi: snapshot computed",
		zap.String("city", scope.City),
		zap.String("state", scope.State),
		zap.Int("sample", len(listings)),
		zap.Int("current_cohort", len(current)),
		zap.Int("previous_cohort", len(previous)),
		zap.Float64("opportunity_score", snapshot.OpportunityScore),
	)

	return snapshot, nil
}

// cityMetrics aggregates the full sample and picks out the scoped city's
// group. Listings from neighboring cities may be present when a state-level
// fallback tier served the fetch; they only contribute to their own groups.
func (o *Orchestrator) cityMetrics(listings []model.RawListing, scope fetcher.Scope) (model.CityMetrics, error) {
	groups := o.agg.AggregateList(listings)

	key := fmt.Sprintf("%s, %s", scope.City, scope.State)
	for i := range groups {
		if groups[i].Key() == key {
			return groups[i], nil
		}
	}

	// The provider may spell the city differently than the canonical form;
	// fall back to a case-insensitive scan before giving up. First-encounter
	// order makes the pick stable when multiple casings are present.
	for i := range groups {
		if strings.EqualFold(groups[i].City, scope.City) && strings.EqualFold(groups[i].State, scope.State) {
			return groups[i], nil
		}
	}

	// Scoped city absent from its own sample: treat as no data.
	return model.CityMetrics{City: scope.City, State: scope.State}, nil
}
