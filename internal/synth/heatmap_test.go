package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsignal/market-cli/internal/model"
)

func TestNeighborhoodHeatmapShape(t *testing.T) {
	cells := NeighborhoodHeatmap(austinSnapshot())

	require.GreaterOrEqual(t, len(cells), 8)
	require.LessOrEqual(t, len(cells), 10)

	center := cityCenters["Austin, TX"]
	for _, c := range cells {
		assert.NotEmpty(t, c.Name)
		// Price multiplier 0.85x-1.20x of the city median.
		assert.GreaterOrEqual(t, c.MedianPrice, math.Floor(330000*0.85))
		assert.LessOrEqual(t, c.MedianPrice, math.Ceil(330000*1.20))
		// Coordinates within ±0.08 degrees of the known center.
		assert.InDelta(t, center.Lat, c.Lat, 0.08)
		assert.InDelta(t, center.Lng, c.Lng, 0.08)
		assert.GreaterOrEqual(t, c.OpportunityScore, 0.0)
		assert.LessOrEqual(t, c.OpportunityScore, 100.0)
	}
}

func TestNeighborhoodHeatmapDeterministic(t *testing.T) {
	a := NeighborhoodHeatmap(austinSnapshot())
	b := NeighborhoodHeatmap(austinSnapshot())
	assert.Equal(t, a, b)
}

func TestNeighborhoodHeatmapUnknownCityUsesDefaultCenter(t *testing.T) {
	snapshot := model.CityKpiSnapshot{
		City:        "Smallville",
		State:       "KS",
		MedianPrice: 150000,
	}

	cells := NeighborhoodHeatmap(snapshot)
	require.NotEmpty(t, cells)
	for _, c := range cells {
		assert.InDelta(t, defaultCenter.Lat, c.Lat, 0.08)
		assert.InDelta(t, defaultCenter.Lng, c.Lng, 0.08)
	}
}

func TestNeighborhoodHeatmapGrowthJitterBounded(t *testing.T) {
	cells := NeighborhoodHeatmap(austinSnapshot())
	for _, c := range cells {
		assert.InDelta(t, 8.5, c.GrowthPct, 2.01)
	}
}

func TestAgentActivityMixSumsTo100(t *testing.T) {
	mix := AgentActivityMix(austinSnapshot())

	total := mix.CashPct + mix.ConventionalPct + mix.FHAPct + mix.InvestorPct
	assert.InDelta(t, 100, total, 0.05)

	for name, v := range map[string]float64{
		"cash":         mix.CashPct,
		"conventional": mix.ConventionalPct,
		"fha":          mix.FHAPct,
		"investor":     mix.InvestorPct,
	} {
		assert.Greater(t, v, 0.0, "%s share must be positive", name)
		assert.Less(t, v, 100.0, "%s share must be a share", name)
	}
}

func TestAgentActivityMixDeterministic(t *testing.T) {
	a := AgentActivityMix(austinSnapshot())
	b := AgentActivityMix(austinSnapshot())
	assert.Equal(t, a, b)
}

func TestAgentActivityMixVariesByCity(t *testing.T) {
	dallas := austinSnapshot()
	dallas.City = "Dallas"

	a := AgentActivityMix(austinSnapshot())
	b := AgentActivityMix(dallas)
	assert.NotEqual(t, a, b)
}
