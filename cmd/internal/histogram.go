package internal

import (
	"cmp"
	"math"
	"slices"
)

// Histogram counts how often each value was rolled.
type Histogram map[float64]int

// Add counts v. NaN is never equal to itself as a map key, so it is ignored.
func (h Histogram) Add(v float64) {
	if math.IsNaN(v) {
		return
	}
	h[v]++
}

func (h Histogram) Total() int {
	sum := 0
	for _, n := range h {
		sum += n
	}
	return sum
}

func (h Histogram) Mean() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	var sum float64
	for v, n := range h {
		sum += v * float64(n)
	}
	return sum / float64(total)
}

// Values returns the distinct values in ascending order.
func (h Histogram) Values() []float64 {
	keys := make([]float64, 0, len(h))
	for v := range h {
		keys = append(keys, v)
	}
	slices.Sort(keys)
	return keys
}

// ByCount returns the distinct values, most frequent first. Ties keep
// ascending value order.
func (h Histogram) ByCount() []float64 {
	keys := h.Values()
	slices.SortStableFunc(keys, func(a, b float64) int {
		return cmp.Compare(h[b], h[a])
	})
	return keys
}
