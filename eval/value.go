package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/sansecio/dicego/diceerr"
	"github.com/sansecio/dicego/roll"
)

// NumberType tags a resolved number with how it was produced.
type NumberType int

const (
	Untyped NumberType = iota
	SuccessFail
	MatchCount
)

func (t NumberType) String() string {
	switch t {
	case SuccessFail:
		return "success/fail"
	case MatchCount:
		return "match count"
	default:
		return "untyped"
	}
}

// Value is the result of resolving a node: Dice, Numbers, or *Number.
type Value interface {
	value()
}

// Dice is a list of rolled dice.
type Dice []*roll.Die

// Numbers is a list of resolved numbers.
type Numbers []*Number

// Number is a resolved value with its human-readable trace.
type Number struct {
	Value     float64
	Text      string
	Type      NumberType
	Discarded bool
}

func (Dice) value()    {}
func (Numbers) value() {}
func (*Number) value() {}

// ToNumber coerces v into a single number. Lists are summed over their
// non-discarded entries; an empty list is an error.
func ToNumber(v Value, f Formatter) (*Number, error) {
	switch v := v.(type) {
	case *Number:
		return v, nil
	case Dice:
		if len(v) == 0 {
			return nil, diceerr.Semanticf("cannot resolve an empty list of dice")
		}
		return sumNumbers(diceNumbers(v, f)), nil
	case Numbers:
		if len(v) == 0 {
			return nil, diceerr.Semanticf("cannot resolve an empty list of numbers")
		}
		return sumNumbers(v), nil
	default:
		return nil, diceerr.Semanticf("cannot resolve %T to a number", v)
	}
}

// DieText renders d as "[r1+r2=total]". The total is only shown for dice
// with more than one roll.
func DieText(d *roll.Die, f Formatter) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, r := range d.Rolls {
		if i > 0 && r >= 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(strconv.Itoa(r))
	}
	if len(d.Rolls) > 1 {
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(d.Value))
	}
	sb.WriteByte(']')

	text := sb.String()
	if d.Discarded {
		text = f.AddDiscardedFormatting(text)
	}
	if d.Exploded {
		text = f.AddExplodeFormatting(text, true)
	}
	return text
}

func diceNumbers(dice Dice, f Formatter) Numbers {
	nums := make(Numbers, len(dice))
	for i, d := range dice {
		nums[i] = &Number{
			Value:     float64(d.Value),
			Text:      DieText(d, f),
			Discarded: d.Discarded,
		}
	}
	return nums
}

func sumNumbers(nums Numbers) *Number {
	var total float64
	for _, n := range nums {
		if !n.Discarded {
			total += n.Value
		}
	}
	return &Number{Value: total, Text: joinText(nums)}
}

// joinText renders entries as "a" or "(a + b + ...)".
func joinText(nums Numbers) string {
	if len(nums) == 1 {
		return nums[0].Text
	}
	texts := make([]string, len(nums))
	for i, n := range nums {
		texts[i] = n.Text
	}
	return "(" + strings.Join(texts, " + ") + ")"
}

// FormatNumber renders v in its shortest decimal form. Negative zero
// renders as "0".
func FormatNumber(v float64) string {
	switch {
	case v == 0:
		return "0"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case math.IsNaN(v):
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// entry is a die or number inside a list being filtered or counted.
type entry interface {
	amount() float64
	isDiscarded() bool
	discard(f Formatter)
}

type dieEntry struct{ *roll.Die }

func (e dieEntry) amount() float64   { return float64(e.Value) }
func (e dieEntry) isDiscarded() bool { return e.Discarded }
func (e dieEntry) discard(Formatter) { e.Discarded = true }

func (n *Number) amount() float64   { return n.Value }
func (n *Number) isDiscarded() bool { return n.Discarded }

func (n *Number) discard(f Formatter) {
	n.Text = f.AddDiscardedFormatting(n.Text)
	n.Discarded = true
}

// entries returns the list elements of v, which must be Dice or Numbers.
func entries(v Value) ([]entry, error) {
	switch v := v.(type) {
	case Dice:
		out := make([]entry, len(v))
		for i, d := range v {
			out[i] = dieEntry{d}
		}
		return out, nil
	case Numbers:
		out := make([]entry, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, nil
	default:
		return nil, diceerr.Semanticf("expected a list, got %T", v)
	}
}
