// Package eval defines the executable resolution tree for dice expressions
// and resolves it into a typed number with an annotated trace.
package eval

import "strconv"

// Shape is the kind of value a node resolves to.
type Shape int

const (
	ShapeDiceRoll Shape = iota + 1
	ShapeNumber
	ShapeNumberList
)

func (s Shape) String() string {
	switch s {
	case ShapeDiceRoll:
		return "dice roll"
	case ShapeNumber:
		return "number"
	case ShapeNumberList:
		return "number list"
	default:
		return "unknown"
	}
}

// Node is a resolution node. The set of implementations is closed.
type Node interface {
	Shape() Shape
	resolutionNode()
}

// DiceRoll rolls Count dice in the range Min..Max.
type DiceRoll struct {
	Count int
	Min   int
	Max   int
}

// CustomDiceRoll rolls Count dice with explicit face values.
type CustomDiceRoll struct {
	Count int
	Faces []int
}

// StaticNumber is a literal.
type StaticNumber struct {
	Value float64
}

// ExplodeMode selects how an explosion adds rolls.
type ExplodeMode int

const (
	// ExplodeRegular adds a new die for every qualifying roll.
	ExplodeRegular ExplodeMode = iota
	// ExplodeCompounding adds rolls to the same die.
	ExplodeCompounding
	// ExplodePenetrating adds a new die whose total is reduced by one.
	ExplodePenetrating
)

// Explode rerolls dice that meet Condition and keeps both results. A nil
// Condition means the roll is at least the die maximum.
type Explode struct {
	Mode      ExplodeMode
	Child     Node
	Condition *Condition
}

// Reroll discards dice matching any of Conditions and rolls replacements.
// With Once set, replacement dice are never rerolled.
type Reroll struct {
	Child      Node
	Conditions []Condition
	Once       bool
}

// KeepDropConditional keeps (or drops) the entries matching any condition.
type KeepDropConditional struct {
	Child      Node
	Conditions []Condition
	Keep       bool
}

// KeepDropHighLow keeps (or drops) the Count highest or lowest entries.
type KeepDropHighLow struct {
	Child Node
	High  bool
	Keep  bool
	Count int
}

// NumberMatcher groups equal values. With MatchCount set it resolves to the
// number of values that occur more than once.
type NumberMatcher struct {
	Child      Node
	MatchCount bool
}

// SuccessFailCounter counts +1 for every entry matching Success and -1 for
// every entry matching Failure.
type SuccessFailCounter struct {
	Child   Node
	Success Condition
	Failure *Condition
}

// Bracket is a parenthesized expression.
type Bracket struct {
	Child Node
}

// FunctionName is a rounding or sign function.
type FunctionName string

const (
	Floor FunctionName = "floor"
	Ceil  FunctionName = "ceil"
	Round FunctionName = "round"
	Abs   FunctionName = "abs"
)

// Function applies Name to its child's numeric value.
type Function struct {
	Name  FunctionName
	Child Node
}

// NumberList is a list of expressions, each coerced to a number.
type NumberList struct {
	Entries []Node
}

// Math is a binary arithmetic operation.
type Math struct {
	Op    byte // one of + - * / % ^
	Left  Node
	Right Node
}

func (DiceRoll) Shape() Shape            { return ShapeDiceRoll }
func (CustomDiceRoll) Shape() Shape      { return ShapeDiceRoll }
func (StaticNumber) Shape() Shape        { return ShapeNumber }
func (*Explode) Shape() Shape            { return ShapeDiceRoll }
func (*Reroll) Shape() Shape             { return ShapeDiceRoll }
func (*NumberMatcher) Shape() Shape      { return ShapeNumber }
func (*SuccessFailCounter) Shape() Shape { return ShapeNumber }
func (*Function) Shape() Shape           { return ShapeNumber }
func (*NumberList) Shape() Shape         { return ShapeNumberList }

func (n *KeepDropConditional) Shape() Shape { return listShape(n.Child) }
func (n *KeepDropHighLow) Shape() Shape     { return listShape(n.Child) }
func (n *Bracket) Shape() Shape             { return n.Child.Shape() }

func (n *Math) Shape() Shape {
	if n.Op == '+' && n.Left.Shape() == ShapeDiceRoll && n.Right.Shape() == ShapeDiceRoll {
		return ShapeDiceRoll
	}
	return ShapeNumber
}

func listShape(child Node) Shape {
	if child.Shape() == ShapeDiceRoll {
		return ShapeDiceRoll
	}
	return ShapeNumberList
}

func (DiceRoll) resolutionNode()             {}
func (CustomDiceRoll) resolutionNode()       {}
func (StaticNumber) resolutionNode()         {}
func (*Explode) resolutionNode()             {}
func (*Reroll) resolutionNode()              {}
func (*KeepDropConditional) resolutionNode() {}
func (*KeepDropHighLow) resolutionNode()     {}
func (*NumberMatcher) resolutionNode()       {}
func (*SuccessFailCounter) resolutionNode()  {}
func (*Bracket) resolutionNode()             {}
func (*Function) resolutionNode()            {}
func (*NumberList) resolutionNode()          {}
func (*Math) resolutionNode()                {}

// Condition compares a value against an integer.
type Condition struct {
	Op    byte // one of = < >
	Value int
}

// Matches reports whether v satisfies c.
func (c Condition) Matches(v float64) bool {
	t := float64(c.Value)
	switch c.Op {
	case '<':
		return v < t
	case '>':
		return v > t
	default:
		return v == t
	}
}

func (c Condition) String() string {
	return string(c.Op) + strconv.Itoa(c.Value)
}

func matchesAny(conds []Condition, v float64) bool {
	for _, c := range conds {
		if c.Matches(v) {
			return true
		}
	}
	return false
}
