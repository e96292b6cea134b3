package eval

import (
	"github.com/sansecio/dicego/diceerr"
	"github.com/sansecio/dicego/roll"
)

// Tracker is told about every die before it is rolled.
type Tracker interface {
	NotifyNewDice(count int) error
}

// Formatter decorates trace text. Implementations must be stateless.
type Formatter interface {
	AddDiscardedFormatting(text string) string
	AddExplodeFormatting(text string, isDie bool) string
	AddSuccessFormatting(text string, isDie bool) string
	AddFailureFormatting(text string, isDie bool) string
}

// OperatorFormatter is optionally implemented by a Formatter whose markup
// collides with a math operator, such as "*" in Markdown.
type OperatorFormatter interface {
	FormatOperator(op byte) string
}

// Context carries the per-call collaborators through resolution.
type Context struct {
	Tracker   Tracker
	Formatter Formatter
	Source    roll.Source
}

// CountTracker fails once more than Max dice have been rolled in total.
// A Max of zero or less disables the limit, which leaves endless
// explosions unbounded.
type CountTracker struct {
	Max   int
	count int
}

// NewCountTracker returns a tracker allowing up to max dice.
func NewCountTracker(max int) *CountTracker {
	return &CountTracker{Max: max}
}

func (t *CountTracker) NotifyNewDice(count int) error {
	t.count += count
	if t.Max > 0 && t.count > t.Max {
		return diceerr.Limit(t.Max)
	}
	return nil
}

// Count returns the number of dice reported so far.
func (t *CountTracker) Count() int {
	return t.count
}
