package aggregate

import "sort"

// Median returns the median of values: the middle element for odd counts,
// the mean of the two middle elements for even counts, 0 for empty input.
// The input slice is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// PctChange returns the percent change from prev to curr, or 0 when prev is
// zero. Keeps every derived percentage finite.
func PctChange(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}
