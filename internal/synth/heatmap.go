package synth

import (
	"fmt"
	"math"

	"github.com/propsignal/market-cli/internal/model"
)

// neighborhoodNames label the synthetic sub-areas in generation order.
var neighborhoodNames = []string{
	"Downtown",
	"Midtown",
	"North Side",
	"South Side",
	"East End",
	"West End",
	"Riverside",
	"Uptown",
	"Old Town",
	"Lakeview",
}

// NeighborhoodHeatmap synthesizes 8-10 named sub-areas around the city
// center. Prices are a 0.85x-1.20x multiple of the city median, growth and
// opportunity jitter around the city's figures, and coordinates offset the
// known city center by up to ±0.08 degrees.
func NeighborhoodHeatmap(snapshot model.CityKpiSnapshot) []model.NeighborhoodCell {
	rng := NewRand(fmt.Sprintf("%s-%s-neighborhoods", snapshot.City, snapshot.State))
	center := centerFor(snapshot.City, snapshot.State)

	count := rng.IntBetween(8, 10)
	cells := make([]model.NeighborhoodCell, count)
	for i := range cells {
		cells[i] = model.NeighborhoodCell{
			Name:             neighborhoodNames[i],
			MedianPrice:      math.Round(snapshot.MedianPrice * rng.Between(0.85, 1.20)),
			GrowthPct:        round2(snapshot.PriceGrowthPct + rng.Between(-2.0, 2.0)),
			OpportunityScore: clampScore(snapshot.OpportunityScore + rng.Between(-10, 10)),
			Lat:              center.Lat + rng.Between(-0.08, 0.08),
			Lng:              center.Lng + rng.Between(-0.08, 0.08),
		}
	}
	return cells
}

// AgentActivityMix synthesizes the financing mix for a city, jittered
// around typical national shares and renormalized to sum to 100.
func AgentActivityMix(snapshot model.CityKpiSnapshot) model.AgentActivityMix {
	rng := NewRand(fmt.Sprintf("%s-%s-agents", snapshot.City, snapshot.State))

	cash := 28 * rng.Between(0.8, 1.2)
	conventional := 52 * rng.Between(0.8, 1.2)
	fha := 12 * rng.Between(0.8, 1.2)
	investor := 8 * rng.Between(0.8, 1.2)

	// Hotter markets skew toward cash and investor purchases.
	if snapshot.OpportunityScore > 60 {
		cash *= 1.15
		investor *= 1.25
	}

	total := cash + conventional + fha + investor
	scale := 100 / total

	return model.AgentActivityMix{
		CashPct:         round2(cash * scale),
		ConventionalPct: round2(conventional * scale),
		FHAPct:          round2(fha * scale),
		InvestorPct:     round2(investor * scale),
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return math.Round(v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
