package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/propsignal/market-cli/internal/config"
)

// WeightSum returns the sum of the four component weights.
func WeightSum(c config.ScoringConfig) float64 {
	return c.PriceGrowthWeight + c.CapRateWeight + c.JobGrowthWeight + c.AffordabilityWeight
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	weights := map[string]float64{
		"price_growth_weight":  c.PriceGrowthWeight,
		"cap_rate_weight":      c.CapRateWeight,
		"job_growth_weight":    c.JobGrowthWeight,
		"affordability_weight": c.AffordabilityWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	// Weights must sum to 1.0 (allow tolerance for floating-point).
	if sum := WeightSum(c); math.Abs(sum-1.0) > 0.001 {
		errs = append(errs, fmt.Sprintf("weights should sum to 1.0, got %.3f", sum))
	}

	if c.LastYearPriceProxy <= 0 || c.LastYearPriceProxy > 1 {
		errs = append(errs, "last_year_price_proxy must be in (0, 1]")
	}
	if c.RentRuleOfThumb <= 0 {
		errs = append(errs, "rent_rule_of_thumb must be > 0")
	}
	if c.TopN < 0 {
		errs = append(errs, "top_n must be >= 0")
	}

	ranges := map[string][2]float64{
		"price_growth":  {c.KpiRanges.PriceGrowthMin, c.KpiRanges.PriceGrowthMax},
		"cap_rate":      {c.KpiRanges.CapRateMin, c.KpiRanges.CapRateMax},
		"job_growth":    {c.KpiRanges.JobGrowthMin, c.KpiRanges.JobGrowthMax},
		"affordability": {c.KpiRanges.AffordabilityMin, c.KpiRanges.AffordabilityMax},
	}
	for name, r := range ranges {
		if r[1] <= r[0] {
			errs = append(errs, fmt.Sprintf("kpi_ranges.%s max must be > min", name))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
