package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogram(t *testing.T) {
	h := Histogram{}
	for _, v := range []float64{3, 1, 3, 2, 3, 1} {
		h.Add(v)
	}

	assert.Equal(t, 6, h.Total())
	assert.InDelta(t, 15.0/6, h.Mean(), 1e-9)
	assert.Equal(t, []float64{1, 2, 3}, h.Values())
	assert.Equal(t, []float64{3, 1, 2}, h.ByCount())
}

func TestHistogramEmpty(t *testing.T) {
	h := Histogram{}
	assert.Zero(t, h.Total())
	assert.Zero(t, h.Mean())
	assert.Empty(t, h.Values())
}

func TestHistogramIgnoresNaN(t *testing.T) {
	h := Histogram{}
	h.Add(math.NaN())
	h.Add(1)
	assert.Equal(t, 1, h.Total())
}
