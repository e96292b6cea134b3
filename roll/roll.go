// Package roll creates and rolls individual dice from an injected random
// source.
package roll

import "math"

// Die is a single rolled die. Value is always the sum of Rolls.
type Die struct {
	Rolls     []int
	Value     int
	Discarded bool
	Exploded  bool
	Min       int
	Max       int
	Faces     []int // face values of a custom die, nil for a standard die
}

// Custom reports whether d rolls from an explicit face list.
func (d *Die) Custom() bool {
	return d.Faces != nil
}

// AddResult appends v to the roll history.
func (d *Die) AddResult(v int) {
	d.Rolls = append(d.Rolls, v)
	d.Value += v
}

// Roll draws a fresh result from src and appends it.
func (d *Die) Roll(src Source) {
	if d.Custom() {
		d.AddResult(d.Faces[InRange(src, 0, len(d.Faces)-1)])
		return
	}
	d.AddResult(InRange(src, d.Min, d.Max))
}

// UnrolledCopy returns a die with the same shape as d and no rolls.
func (d *Die) UnrolledCopy() *Die {
	return &Die{Min: d.Min, Max: d.Max, Faces: d.Faces}
}

// InRange maps one draw from src onto the integers min..max inclusive.
func InRange(src Source, min, max int) int {
	return int(math.Floor(src.Float64()*float64(max-min+1))) + min
}

// RollStandard rolls count dice in the range min..max.
func RollStandard(src Source, count, min, max int) []*Die {
	dice := make([]*Die, count)
	for i := range dice {
		d := &Die{Min: min, Max: max}
		d.Roll(src)
		dice[i] = d
	}
	return dice
}

// RollCustom rolls count dice choosing uniformly among faces.
func RollCustom(src Source, count int, faces []int) []*Die {
	dice := make([]*Die, count)
	for i := range dice {
		d := &Die{Faces: faces}
		d.Roll(src)
		dice[i] = d
	}
	return dice
}
