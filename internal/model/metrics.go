package model

import "fmt"

// CityMetrics holds the raw per-city statistics derived from one aggregation
// pass. Ephemeral: recomputed for every request, never persisted.
type CityMetrics struct {
	City                    string  `json:"city"`
	State                   string  `json:"state"`
	County                  string  `json:"county,omitempty"`
	SampleSize              int     `json:"sample_size"`
	MedianCurrentPrice      float64 `json:"median_current_price"`
	MedianLastYearSalePrice float64 `json:"median_last_year_sale_price"`
	PriceGrowthPct          float64 `json:"price_growth_pct"`
	MedianMonthlyRent       float64 `json:"median_monthly_rent"`
	CapRatePct              float64 `json:"cap_rate_pct"`
	JobGrowthPct            float64 `json:"job_growth_pct"`
	AffordabilityRaw        float64 `json:"affordability_raw"`
}

// Key returns the canonical "City, State" grouping key.
func (m *CityMetrics) Key() string {
	return fmt.Sprintf("%s, %s", m.City, m.State)
}

// LeaderboardItem is one ranked row of the cross-city investment leaderboard.
type LeaderboardItem struct {
	Rank            int     `json:"rank"`
	City            string  `json:"city"`
	State           string  `json:"state"`
	County          string  `json:"county,omitempty"`
	PriceGrowthPct  float64 `json:"price_growth_pct"`
	CapRatePct      float64 `json:"cap_rate_pct"`
	JobGrowthPct    float64 `json:"job_growth_pct"`
	Affordability   float64 `json:"affordability"`
	InvestmentScore float64 `json:"investment_score"`
	SampleSize      int     `json:"sample_size"`
}

// CityKpiSnapshot is the single-city KPI view with month-over-month deltas.
// DomChangeDays is an absolute day delta, not a percentage.
type CityKpiSnapshot struct {
	City               string  `json:"city"`
	State              string  `json:"state"`
	MedianPrice        float64 `json:"median_price"`
	PriceChangePct     float64 `json:"price_change_pct"`
	Inventory          int     `json:"inventory"`
	InventoryChangePct float64 `json:"inventory_change_pct"`
	DaysOnMarket       float64 `json:"days_on_market"`
	DomChangeDays      float64 `json:"dom_change_days"`
	OpportunityScore   float64 `json:"opportunity_score"`
	JobGrowthPct       float64 `json:"job_growth_pct"`
	PriceGrowthPct     float64 `json:"price_growth_pct"`
	CapRatePct         float64 `json:"cap_rate_pct"`
	AffordabilityRaw   float64 `json:"affordability_raw"`
}

// MonthlyKpiPoint is one synthesized month of the single-city price series.
type MonthlyKpiPoint struct {
	Month       string  `json:"month"` // YYYY-MM
	MedianPrice float64 `json:"median_price"`
	Inventory   int     `json:"inventory"`
}

// NeighborhoodCell is one synthesized sub-area of the city heatmap.
type NeighborhoodCell struct {
	Name             string  `json:"name"`
	MedianPrice      float64 `json:"median_price"`
	GrowthPct        float64 `json:"growth_pct"`
	OpportunityScore float64 `json:"opportunity_score"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

// AgentActivityMix is the synthesized financing/buyer mix for a city.
// Shares are percentages summing to 100.
type AgentActivityMix struct {
	CashPct         float64 `json:"cash_pct"`
	ConventionalPct float64 `json:"conventional_pct"`
	FHAPct          float64 `json:"fha_pct"`
	InvestorPct     float64 `json:"investor_pct"`
}
