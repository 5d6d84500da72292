package synth

import (
	"fmt"
	"math"
	"time"

	"github.com/propsignal/market-cli/internal/model"
)

// seasonalAmplitude is the peak fractional price swing of the 12-month
// sinusoidal term.
const seasonalAmplitude = 0.012

// MonthlySeries reverse-compounds the snapshot's median price backward from
// the present month, yielding `months` points in chronological order. Each
// step applies the known month-over-month growth rate, a seasonal sinusoid
// with a 12-month period, and small bounded noise from the city's seed.
func MonthlySeries(snapshot model.CityKpiSnapshot, months int, now time.Time) []model.MonthlyKpiPoint {
	if months <= 0 {
		months = 12
	}

	rng := NewRand(fmt.Sprintf("%s-%s-monthly", snapshot.City, snapshot.State))
	now = now.UTC()
	// Anchor at the first of the current month: offsetting from day 29-31
	// would normalize through short months (July 31 minus one month is not
	// a date in June) and duplicate or skip labels.
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	monthlyGrowth := snapshot.PriceChangePct / 100

	points := make([]model.MonthlyKpiPoint, months)
	price := snapshot.MedianPrice
	inventory := snapshot.Inventory

	// Walk backward from the present month, filling the slice from the end
	// so the result is already chronological.
	for i := months - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -(months - 1 - i), 0)
		points[i] = model.MonthlyKpiPoint{
			Month:       m.Format("2006-01"),
			MedianPrice: math.Round(price),
			Inventory:   inventory,
		}

		seasonal := seasonalAmplitude * math.Sin(2*math.Pi*float64(m.Month())/12)
		noise := rng.Between(-0.008, 0.008)
		step := 1 + monthlyGrowth + seasonal + noise
		if step <= 0.5 {
			// Bound pathological growth inputs so the series stays positive.
			step = 0.5
		}
		price = price / step

		if inventory > 0 {
			jitter := rng.Between(0.9, 1.1)
			inventory = int(math.Max(1, math.Round(float64(snapshot.Inventory)*jitter)))
		}
	}

	return points
}
