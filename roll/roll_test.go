package roll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInRange(t *testing.T) {
	tests := []struct {
		draw     float64
		min, max int
		want     int
	}{
		{0, 1, 6, 1},
		{0.5, 1, 10, 6},
		{0.999, 1, 20, 20},
		{0.7, 1, 20, 15},
		{0, -1, 1, -1},
		{0.5, -1, 1, 0},
		{0.9, -1, 1, 1},
	}
	for _, tt := range tests {
		got := InRange(NewSequence(tt.draw), tt.min, tt.max)
		assert.Equal(t, tt.want, got, "draw %v in %d..%d", tt.draw, tt.min, tt.max)
	}
}

func TestRollStandard(t *testing.T) {
	dice := RollStandard(NewSequence(0.7, 0.4), 2, 1, 20)
	require.Len(t, dice, 2)

	assert.Equal(t, []int{15}, dice[0].Rolls)
	assert.Equal(t, 15, dice[0].Value)
	assert.Equal(t, 9, dice[1].Value)
	assert.Equal(t, 20, dice[1].Max)
	assert.False(t, dice[0].Custom())
}

func TestRollCustom(t *testing.T) {
	faces := []int{2, 3, 5, 7}
	dice := RollCustom(NewSequence(0, 0.5, 0.99), 3, faces)
	require.Len(t, dice, 3)

	assert.Equal(t, 2, dice[0].Value)
	assert.Equal(t, 5, dice[1].Value)
	assert.Equal(t, 7, dice[2].Value)
	assert.True(t, dice[0].Custom())
}

func TestDieAddResult(t *testing.T) {
	d := &Die{Min: 1, Max: 6}
	d.AddResult(6)
	d.AddResult(-1)
	d.Roll(NewSequence(0.5))

	assert.Equal(t, []int{6, -1, 4}, d.Rolls)
	assert.Equal(t, 9, d.Value)
}

func TestUnrolledCopy(t *testing.T) {
	d := RollStandard(NewSequence(0.5), 1, 1, 8)[0]
	d.Discarded = true
	d.Exploded = true

	c := d.UnrolledCopy()
	assert.Empty(t, c.Rolls)
	assert.Zero(t, c.Value)
	assert.False(t, c.Discarded)
	assert.False(t, c.Exploded)
	assert.Equal(t, 1, c.Min)
	assert.Equal(t, 8, c.Max)
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	got := []float64{s.Float64(), s.Float64(), s.Float64()}
	assert.Equal(t, []float64{0.1, 0.2, 0.1}, got)
	assert.Zero(t, NewSequence().Float64())
}

func TestSeededIsDeterministic(t *testing.T) {
	a := RollStandard(NewSeeded(42), 10, 1, 6)
	b := RollStandard(NewSeeded(42), 10, 1, 6)
	for i := range a {
		assert.Equal(t, a[i].Value, b[i].Value)
		assert.GreaterOrEqual(t, a[i].Value, 1)
		assert.LessOrEqual(t, a[i].Value, 6)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Source: NewSequence(0.25, 0.75)}
	RollStandard(r, 2, 1, 4)
	assert.Equal(t, []float64{0.25, 0.75}, r.Draws)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource()
	require.NoError(t, err)
	for range 100 {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}
