// Package aggregate groups raw listings by city and derives per-city market
// statistics in a single pass over the sample.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/model"
)

// JobGrowthSource supplies the external job-growth signal per city. The
// engine treats it as an opaque collaborator and never computes it.
type JobGrowthSource interface {
	JobGrowthPct(city, state string) float64
}

// PlaceholderJobGrowth returns a flat configured percentage for every city.
type PlaceholderJobGrowth struct {
	Pct float64
}

func (p PlaceholderJobGrowth) JobGrowthPct(_, _ string) float64 { return p.Pct }

// Aggregator derives CityMetrics from raw listing samples.
type Aggregator struct {
	cfg  config.ScoringConfig
	jobs JobGrowthSource
	now  func() time.Time
}

// Option customizes an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source; used by tests to pin the
// previous-calendar-year window.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an Aggregator. A nil jobs source falls back to the configured
// placeholder signal.
func New(cfg config.ScoringConfig, jobs JobGrowthSource, opts ...Option) *Aggregator {
	if jobs == nil {
		jobs = PlaceholderJobGrowth{Pct: cfg.PlaceholderJobGrowth}
	}
	a := &Aggregator{cfg: cfg, jobs: jobs, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// cityGroup accumulates one (city, state) bucket during the scan.
type cityGroup struct {
	city  string
	state string
	count int

	prices        []float64
	lastYearSales []float64
	rents         []float64
	incomes       []float64

	countyCounts map[string]int
	countyOrder  []string
}

// Aggregate groups listings by trimmed (city, state) and computes raw
// statistics per group, keyed by "City, State".
func (a *Aggregator) Aggregate(listings []model.RawListing) map[string]model.CityMetrics {
	ordered := a.AggregateList(listings)
	out := make(map[string]model.CityMetrics, len(ordered))
	for _, m := range ordered {
		out[m.Key()] = m
	}
	return out
}

// AggregateList is Aggregate preserving first-encounter group order, which
// downstream ranking relies on for stable tie-breaks. Listings missing city
// or state are excluded from grouping entirely rather than pooled into an
// unknown bucket.
func (a *Aggregator) AggregateList(listings []model.RawListing) []model.CityMetrics {
	groups := make(map[string]*cityGroup)
	order := make([]string, 0)
	prevYear := a.now().UTC().Year() - 1

	for i := range listings {
		l := &listings[i]
		city := strings.TrimSpace(l.City)
		state := strings.TrimSpace(l.State)
		if city == "" || state == "" {
			continue
		}

		key := fmt.Sprintf("%s, %s", city, state)
		g, ok := groups[key]
		if !ok {
			g = &cityGroup{city: city, state: state, countyCounts: make(map[string]int)}
			groups[key] = g
			order = append(order, key)
		}
		g.count++

		if price, ok := l.BestPrice(); ok {
			g.prices = append(g.prices, price)
		}

		if sale, ok := lastYearSale(l, prevYear); ok {
			g.lastYearSales = append(g.lastYearSales, sale)
		}

		if l.RentEstimate != nil && *l.RentEstimate > 0 {
			g.rents = append(g.rents, *l.RentEstimate)
		}
		if l.MedianIncome != nil && *l.MedianIncome > 0 {
			g.incomes = append(g.incomes, *l.MedianIncome)
		}

		if county := strings.TrimSpace(l.County); county != "" {
			if _, seen := g.countyCounts[county]; !seen {
				g.countyOrder = append(g.countyOrder, county)
			}
			g.countyCounts[county]++
		}
	}

	out := make([]model.CityMetrics, 0, len(groups))
	for _, key := range order {
		out = append(out, a.finalize(groups[key]))
	}

	zap.L().Debug("aggregate: sample grouped",
		zap.Int("listings", len(listings)),
		zap.Int("cities", len(out)),
	)

	return out
}

// finalize turns an accumulated group into CityMetrics, applying the
// documented fallbacks so every derived figure is finite.
func (a *Aggregator) finalize(g *cityGroup) model.CityMetrics {
	medianPrice := Median(g.prices)

	medianLastYear := Median(g.lastYearSales)
	if medianLastYear == 0 {
		// No qualifying sales: conservative downward proxy of the current
		// median, floored at 1 so growth math never divides by zero.
		medianLastYear = medianPrice * a.cfg.LastYearPriceProxy
		if medianLastYear < 1 {
			medianLastYear = 1
		}
	}

	medianRent := Median(g.rents)
	if medianRent == 0 {
		// Approximate 0.6%-of-value monthly rent rule.
		medianRent = medianPrice * a.cfg.RentRuleOfThumb
	}

	capRate := 0.0
	if medianPrice > 0 {
		capRate = medianRent * 12 / medianPrice * 100
	}

	affordability := 0.0
	if medianIncome := Median(g.incomes); medianIncome > 0 && medianPrice > 0 {
		affordability = medianIncome / medianPrice * 100
	}

	return model.CityMetrics{
		City:                    g.city,
		State:                   g.state,
		County:                  dominantCounty(g),
		SampleSize:              g.count,
		MedianCurrentPrice:      medianPrice,
		MedianLastYearSalePrice: medianLastYear,
		PriceGrowthPct:          PctChange(medianPrice, medianLastYear),
		MedianMonthlyRent:       medianRent,
		CapRatePct:              capRate,
		JobGrowthPct:            a.jobs.JobGrowthPct(g.city, g.state),
		AffordabilityRaw:        affordability,
	}
}

// lastYearSale returns the listing's qualifying previous-calendar-year sale
// amount. Primary path: last-sale amount with a last-sale date in prevYear.
// Secondary path: an explicit sold price with the same qualifying date.
func lastYearSale(l *model.RawListing, prevYear int) (float64, bool) {
	if l.LastSaleDate == nil || l.LastSaleDate.UTC().Year() != prevYear {
		return 0, false
	}
	if l.LastSaleAmount != nil && *l.LastSaleAmount > 0 {
		return *l.LastSaleAmount, true
	}
	if l.SoldPrice != nil && *l.SoldPrice > 0 {
		return *l.SoldPrice, true
	}
	return 0, false
}

// dominantCounty returns the most frequent non-empty county in the group,
// ties broken by first-encountered order.
func dominantCounty(g *cityGroup) string {
	best := ""
	bestCount := 0
	for _, county := range g.countyOrder {
		if n := g.countyCounts[county]; n > bestCount {
			best = county
			bestCount = n
		}
	}
	return best
}
