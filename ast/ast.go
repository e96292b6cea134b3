// Package ast defines the carved tree produced from a standardized dice
// expression, before any dice semantics are attached.
package ast

// Node is a carved element: a Leaf, a *Math, or a *Group.
type Node interface {
	carvedNode()
}

// Leaf is literal text between operators, such as "4d6kh3" or "12".
type Leaf struct {
	Text string
}

func (Leaf) carvedNode() {}

// Math is a binary operator. A nil operand is an empty slot waiting to be
// filled during folding.
type Math struct {
	Op    byte // one of + - * / % ^
	Left  Node
	Right Node
}

func (*Math) carvedNode() {}

// Group is a parenthesized group "( )" or a list "{ , }".
//
// After folding, a non-list group holds at most one element. A list group
// holds one *Group per comma-separated entry.
type Group struct {
	Elements []Node
	IsList   bool
	Function string // floor, ceil, round, abs; empty for plain groups
	Suffix   string // raw characters following a list's closing brace
}

func (*Group) carvedNode() {}

// Functions lists the names that may prefix a parenthesized group.
var Functions = []string{"floor", "ceil", "round", "abs"}
