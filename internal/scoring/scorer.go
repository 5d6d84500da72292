package scoring

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/propsignal/market-cli/internal/config"
	"github.com/propsignal/market-cli/internal/model"
)

// Scorer ranks aggregated city metrics into the investment leaderboard.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a Scorer with the given weights and leaderboard depth.
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score normalizes each metric across the city set, combines the normalized
// components via the configured weights, and returns the Top-N leaderboard
// sorted descending by score with dense 1-based ranks. An empty input yields
// an empty slice, never an error.
func (s *Scorer) Score(cities []model.CityMetrics) []model.LeaderboardItem {
	if len(cities) == 0 {
		return []model.LeaderboardItem{}
	}

	growth := make([]float64, len(cities))
	capRate := make([]float64, len(cities))
	jobs := make([]float64, len(cities))
	afford := make([]float64, len(cities))
	for i, c := range cities {
		growth[i] = c.PriceGrowthPct
		capRate[i] = c.CapRatePct
		jobs[i] = c.JobGrowthPct
		afford[i] = c.AffordabilityRaw
	}

	normGrowth := BuildNormalizer(growth)
	normCapRate := BuildNormalizer(capRate)
	normJobs := BuildNormalizer(jobs)
	normAfford := BuildNormalizer(afford)

	items := make([]model.LeaderboardItem, len(cities))
	for i, c := range cities {
		score := normGrowth(c.PriceGrowthPct)*s.cfg.PriceGrowthWeight +
			normCapRate(c.CapRatePct)*s.cfg.CapRateWeight +
			normJobs(c.JobGrowthPct)*s.cfg.JobGrowthWeight +
			normAfford(c.AffordabilityRaw)*s.cfg.AffordabilityWeight

		items[i] = model.LeaderboardItem{
			City:            c.City,
			State:           c.State,
			County:          c.County,
			PriceGrowthPct:  round2(c.PriceGrowthPct),
			CapRatePct:      round2(c.CapRatePct),
			JobGrowthPct:    round2(c.JobGrowthPct),
			Affordability:   math.Round(normAfford(c.AffordabilityRaw)),
			InvestmentScore: math.Round(score),
			SampleSize:      c.SampleSize,
		}
	}

	// Stable keeps ties in input order so ranks are deterministic.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].InvestmentScore > items[j].InvestmentScore
	})

	topN := s.cfg.TopN
	if topN <= 0 {
		topN = 10
	}
	if len(items) > topN {
		items = items[:topN]
	}
	for i := range items {
		items[i].Rank = i + 1
	}

	zap.L().Debug("scoring: leaderboard built",
		zap.Int("cities", len(cities)),
		zap.Int("ranked", len(items)),
	)

	return items
}

// round2 rounds to 2 decimal places for display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
