package model

import "time"

// RawListing is one property record as returned by the listings provider.
// Every numeric field is optional; absence is the norm, not an error, and
// must never be silently read as zero.
type RawListing struct {
	City           string     `json:"city,omitempty"`
	State          string     `json:"state,omitempty"`
	County         string     `json:"county,omitempty"`
	ListPrice      *float64   `json:"list_price,omitempty"`
	SoldPrice      *float64   `json:"sold_price,omitempty"`
	LastSaleAmount *float64   `json:"last_sale_amount,omitempty"`
	LastSaleDate   *time.Time `json:"last_sale_date,omitempty"`
	EstimatedValue *float64   `json:"estimated_value,omitempty"`
	RentEstimate   *float64   `json:"rent_estimate,omitempty"`
	MedianIncome   *float64   `json:"median_income,omitempty"`
	DaysOnMarket   *float64   `json:"days_on_market,omitempty"`
	ListedDate     *time.Time `json:"listed_date,omitempty"`
	LastStatusDate *time.Time `json:"last_status_date,omitempty"`
}

// BestPrice returns the first usable price for the listing, in priority
// order: active list price, estimated value, sold price. The boolean is
// false when no finite positive price is present.
func (l *RawListing) BestPrice() (float64, bool) {
	for _, p := range []*float64{l.ListPrice, l.EstimatedValue, l.SoldPrice} {
		if p != nil && isFinitePositive(*p) {
			return *p, true
		}
	}
	return 0, false
}

func isFinitePositive(v float64) bool {
	return v > 0 && v < 1e15
}
