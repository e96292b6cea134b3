package roll

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Source is the randomness provider for dice rolls.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
}

// NewSource returns a pseudo-random source seeded from crypto/rand.
func NewSource() (*rand.Rand, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))), nil
}

// NewSeeded returns a deterministic source; the same seed always produces
// the same rolls.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sequence replays a fixed list of draws, starting over after the last one.
// An empty sequence always returns 0.
type Sequence struct {
	draws []float64
	next  int
}

// NewSequence returns a source yielding draws in order.
func NewSequence(draws ...float64) *Sequence {
	return &Sequence{draws: draws}
}

func (s *Sequence) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

// Recorder passes draws through from Source and keeps a copy of each.
type Recorder struct {
	Source Source
	Draws  []float64
}

func (r *Recorder) Float64() float64 {
	v := r.Source.Float64()
	r.Draws = append(r.Draws, v)
	return v
}
