// Package kpi computes the single-city KPI snapshot: month-over-month
// deltas plus an opportunity score rescaled against fixed plausible ranges,
// since a single city has no peer set to min-max against.
package kpi

import (
	"math"
	"time"

	"github.com/propsignal/market-cli/internal/aggregate"
	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/model"
	"github.com/propsignal/market-cli/internal/scoring"
)

// MonthCohort holds the raw figures for one calendar-month slice of a
// city's sample.
type MonthCohort struct {
	MedianPrice     float64
	Inventory       int
	AvgDaysOnMarket float64
}

// CityMonthMetrics bundles current-versus-previous-month cohorts with the
// city's overall raw statistics.
type CityMonthMetrics struct {
	Current  MonthCohort
	Previous MonthCohort
	City     model.CityMetrics
}

// Calculator derives CityKpiSnapshots.
type Calculator struct {
	cfg config.ScoringConfig
}

// NewCalculator creates a Calculator with the given scoring configuration.
func NewCalculator(cfg config.ScoringConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// ComputeCityKpis builds a snapshot from pre-computed month metrics. All
// month-over-month deltas are zero-guarded percentages except the
// days-on-market delta, which is an absolute day difference.
func (c *Calculator) ComputeCityKpis(city, state string, m CityMonthMetrics) model.CityKpiSnapshot {
	priceChange := aggregate.PctChange(m.Current.MedianPrice, m.Previous.MedianPrice)
	inventoryChange := aggregate.PctChange(float64(m.Current.Inventory), float64(m.Previous.Inventory))
	domChange := m.Current.AvgDaysOnMarket - m.Previous.AvgDaysOnMarket

	return model.CityKpiSnapshot{
		City:               city,
		State:              state,
		MedianPrice:        math.Round(m.Current.MedianPrice),
		PriceChangePct:     round2(priceChange),
		Inventory:          m.Current.Inventory,
		InventoryChangePct: round2(inventoryChange),
		DaysOnMarket:       math.Round(m.Current.AvgDaysOnMarket),
		DomChangeDays:      round2(domChange),
		OpportunityScore:   c.opportunityScore(priceChange, m.City),
		JobGrowthPct:       round2(m.City.JobGrowthPct),
		PriceGrowthPct:     round2(m.City.PriceGrowthPct),
		CapRatePct:         round2(m.City.CapRatePct),
		AffordabilityRaw:   round2(m.City.AffordabilityRaw),
	}
}

// opportunityScore rescales each component against its configured fixed
// range and combines them with the same weights as the cross-city
// leaderboard. The two scores are deliberately not comparable: this one has
// no peer set, the leaderboard's normalization is dynamic.
func (c *Calculator) opportunityScore(priceChangeMoM float64, city model.CityMetrics) float64 {
	r := c.cfg.KpiRanges
	score := scoring.RangeNormalize(priceChangeMoM, r.PriceGrowthMin, r.PriceGrowthMax)*c.cfg.PriceGrowthWeight +
		scoring.RangeNormalize(city.CapRatePct, r.CapRateMin, r.CapRateMax)*c.cfg.CapRateWeight +
		scoring.RangeNormalize(city.JobGrowthPct, r.JobGrowthMin, r.JobGrowthMax)*c.cfg.JobGrowthWeight +
		scoring.RangeNormalize(city.AffordabilityRaw, r.AffordabilityMin, r.AffordabilityMax)*c.cfg.AffordabilityWeight
	return math.Round(score)
}

// EmptySnapshot is the well-defined "no data" snapshot: all zeros except
// the job-growth placeholder, which distinguishes missing data from a
// genuine zero-growth reading.
func (c *Calculator) EmptySnapshot(city, state string) model.CityKpiSnapshot {
	return model.CityKpiSnapshot{
		City:         city,
		State:        state,
		JobGrowthPct: c.cfg.PlaceholderJobGrowth,
	}
}

// partitionCohorts splits listings into current-month and previous-month
// cohorts by listing date, falling back to the last status date. Listings
// dated outside both months are ignored.
func partitionCohorts(listings []model.RawListing, now time.Time) (current, previous []model.RawListing) {
	now = now.UTC()
	curYear, curMonth := now.Year(), now.Month()
	prev := now.AddDate(0, -1, -now.Day()+1) // first day of previous month
	prevYear, prevMonth := prev.Year(), prev.Month()

	for _, l := range listings {
		d := l.ListedDate
		if d == nil {
			d = l.LastStatusDate
		}
		if d == nil {
			continue
		}
		t := d.UTC()
		switch {
		case t.Year() == curYear && t.Month() == curMonth:
			current = append(current, l)
		case t.Year() == prevYear && t.Month() == prevMonth:
			previous = append(previous, l)
		}
	}
	return current, previous
}

// cohortStats reduces one cohort to its raw month figures.
func cohortStats(listings []model.RawListing) MonthCohort {
	var prices []float64
	var domSum float64
	var domCount int
	for i := range listings {
		if p, ok := listings[i].BestPrice(); ok {
			prices = append(prices, p)
		}
		if dom := listings[i].DaysOnMarket; dom != nil && *dom >= 0 {
			domSum += *dom
			domCount++
		}
	}
	cohort := MonthCohort{
		MedianPrice: aggregate.Median(prices),
		Inventory:   len(listings),
	}
	if domCount > 0 {
		cohort.AvgDaysOnMarket = domSum / float64(domCount)
	}
	return cohort
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
