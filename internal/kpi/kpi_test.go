package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/model"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		PriceGrowthWeight:    0.30,
		CapRateWeight:        0.30,
		JobGrowthWeight:      0.20,
		AffordabilityWeight:  0.20,
		LastYearPriceProxy:   0.90,
		RentRuleOfThumb:      0.006,
		PlaceholderJobGrowth: 2.5,
		TopN:                 10,
		KpiRanges: config.KpiRangesConfig{
			PriceGrowthMin: -10, PriceGrowthMax: 15,
			CapRateMin: 2, CapRateMax: 12,
			JobGrowthMin: 0, JobGrowthMax: 8,
			AffordabilityMin: 5, AffordabilityMax: 30,
		},
	}
}

func ptrFloat64(v float64) *float64  { return &v }
func ptrTime(v time.Time) *time.Time { return &v }

func TestComputeCityKpisDeltas(t *testing.T) {
	calc := NewCalculator(testScoringConfig())

	snapshot := calc.ComputeCityKpis("Austin", "TX", CityMonthMetrics{
		Current:  MonthCohort{MedianPrice: 330000, Inventory: 120, AvgDaysOnMarket: 28},
		Previous: MonthCohort{MedianPrice: 300000, Inventory: 100, AvgDaysOnMarket: 35},
		City:     model.CityMetrics{CapRatePct: 7, JobGrowthPct: 4, AffordabilityRaw: 17.5},
	})

	assert.InDelta(t, 330000, snapshot.MedianPrice, 0.001)
	assert.InDelta(t, 10, snapshot.PriceChangePct, 0.001)
	assert.Equal(t, 120, snapshot.Inventory)
	assert.InDelta(t, 20, snapshot.InventoryChangePct, 0.001)
	assert.InDelta(t, 28, snapshot.DaysOnMarket, 0.001)
	// DOM delta is an absolute day difference, not a percentage.
	assert.InDelta(t, -7, snapshot.DomChangeDays, 0.001)
}

func TestComputeCityKpisZeroGuards(t *testing.T) {
	calc := NewCalculator(testScoringConfig())

	snapshot := calc.ComputeCityKpis("Austin", "TX", CityMonthMetrics{
		Current: MonthCohort{MedianPrice: 330000, Inventory: 120},
		// Empty previous cohort: every denominator is zero.
		Previous: MonthCohort{},
	})

	assert.Zero(t, snapshot.PriceChangePct)
	assert.Zero(t, snapshot.InventoryChangePct)
}

func TestOpportunityScoreMidpoints(t *testing.T) {
	calc := NewCalculator(testScoringConfig())

	// Every component sits exactly at its range midpoint, so each
	// contributes 50 and the weighted total is 50.
	snapshot := calc.ComputeCityKpis("Austin", "TX", CityMonthMetrics{
		Current:  MonthCohort{MedianPrice: 102500},
		Previous: MonthCohort{MedianPrice: 100000}, // +2.5% MoM
		City:     model.CityMetrics{CapRatePct: 7, JobGrowthPct: 4, AffordabilityRaw: 17.5},
	})

	assert.InDelta(t, 50, snapshot.OpportunityScore, 0.001)
}

func TestOpportunityScoreClampsOutOfRange(t *testing.T) {
	calc := NewCalculator(testScoringConfig())

	snapshot := calc.ComputeCityKpis("Austin", "TX", CityMonthMetrics{
		Current:  MonthCohort{MedianPrice: 200000},
		Previous: MonthCohort{MedianPrice: 100000}, // +100% MoM, clamps to 100
		City:     model.CityMetrics{CapRatePct: 50, JobGrowthPct: 20, AffordabilityRaw: 90},
	})

	assert.InDelta(t, 100, snapshot.OpportunityScore, 0.001)
}

func TestEmptySnapshotPlaceholder(t *testing.T) {
	calc := NewCalculator(testScoringConfig())

	snapshot := calc.EmptySnapshot("Topeka", "KS")
	assert.Equal(t, "Topeka", snapshot.City)
	assert.Equal(t, "KS", snapshot.State)
	assert.Zero(t, snapshot.MedianPrice)
	assert.Zero(t, snapshot.OpportunityScore)
	// Placeholder distinguishes "no data" from a genuine zero reading.
	assert.InDelta(t, 2.5, snapshot.JobGrowthPct, 0.001)
}

func TestPartitionCohorts(t *testing.T) {
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	inCurrent := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	inPrevious := time.Date(2025, time.May, 28, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	listings := []model.RawListing{
		{City: "A", ListedDate: ptrTime(inCurrent)},
		{City: "B", ListedDate: ptrTime(inPrevious)},
		{City: "C", LastStatusDate: ptrTime(inPrevious)}, // listed date absent
		{City: "D", ListedDate: ptrTime(older)},
		{City: "E"}, // undated
	}

	current, previous := partitionCohorts(listings, now)
	assert.Len(t, current, 1)
	assert.Len(t, previous, 2)
}

func TestPartitionCohortsAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	december := time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)

	listings := []model.RawListing{
		{City: "A", ListedDate: ptrTime(december)},
	}

	current, previous := partitionCohorts(listings, now)
	assert.Empty(t, current)
	assert.Len(t, previous, 1)
}

func TestCohortStats(t *testing.T) {
	listings := []model.RawListing{
		{ListPrice: ptrFloat64(300000), DaysOnMarket: ptrFloat64(20)},
		{ListPrice: ptrFloat64(320000), DaysOnMarket: ptrFloat64(40)},
		{}, // no price, no DOM; still inventory
	}

	cohort := cohortStats(listings)
	assert.InDelta(t, 310000, cohort.MedianPrice, 0.001)
	assert.Equal(t, 3, cohort.Inventory)
	assert.InDelta(t, 30, cohort.AvgDaysOnMarket, 0.001)
}
