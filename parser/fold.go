package parser

import (
	"github.com/sansecio/dicego/ast"
	"github.com/sansecio/dicego/diceerr"
)

// Fold links a flat sequence of carved elements into a single node. Each
// element either fills the empty right slot of the math node before it, or
// takes everything before it into its own empty left slot. Exactly one of
// the two must apply; anything else is a syntax error. Operator precedence
// holds across the link, so "1+(2)*3" multiplies before adding; splicing
// the whole left side into the slot would give (1+(2))*3 instead.
func Fold(elements []ast.Node) (ast.Node, error) {
	if len(elements) == 0 {
		return nil, nil
	}
	acc := elements[0]
	for _, cur := range elements[1:] {
		var right, left *ast.Math
		if m, ok := acc.(*ast.Math); ok {
			right = emptyRightSlot(m)
		}
		if m, ok := cur.(*ast.Math); ok {
			left = emptyLeftSlot(m)
		}

		switch {
		case right != nil && left != nil:
			return nil, diceerr.Syntaxf(-1, "operator %q is missing an operand", left.Op)
		case right != nil:
			right.Right = cur
		case left != nil:
			acc = attach(acc, cur.(*ast.Math), left)
		default:
			return nil, diceerr.Syntaxf(-1, "missing operator between elements")
		}
	}
	return acc, nil
}

// emptyRightSlot returns the math node on the right spine of m whose right
// operand is missing.
func emptyRightSlot(m *ast.Math) *ast.Math {
	for {
		if m.Right == nil {
			return m
		}
		next, ok := m.Right.(*ast.Math)
		if !ok {
			return nil
		}
		m = next
	}
}

// emptyLeftSlot returns the math node on the left spine of m whose left
// operand is missing.
func emptyLeftSlot(m *ast.Math) *ast.Math {
	for {
		if m.Left == nil {
			return m
		}
		next, ok := m.Left.(*ast.Math)
		if !ok {
			return nil
		}
		m = next
	}
}

// attach makes acc the leftmost operand of cur, where hole is the node on
// cur's left spine with the empty slot. The operators on that spine are
// inserted into acc one at a time, innermost first.
func attach(acc ast.Node, cur, hole *ast.Math) ast.Node {
	var spine []*ast.Math
	for m := cur; ; m = m.Left.(*ast.Math) {
		spine = append(spine, m)
		if m == hole {
			break
		}
	}
	tree := acc
	for i := len(spine) - 1; i >= 0; i-- {
		tree = insertOp(tree, spine[i])
	}
	return tree
}

// insertOp applies m to the trailing operand of tree. m takes over the
// deepest subtree on tree's right spine whose operator binds tighter than m.
func insertOp(tree ast.Node, m *ast.Math) ast.Node {
	parent, ok := tree.(*ast.Math)
	if !ok || !yields(parent.Op, m.Op) {
		m.Left = tree
		return m
	}
	for {
		child, ok := parent.Right.(*ast.Math)
		if !ok || !yields(child.Op, m.Op) {
			m.Left = parent.Right
			parent.Right = m
			return tree
		}
		parent = child
	}
}

// yields reports whether an operator op gives up its right operand to a
// following operator next. ^ is right associative.
func yields(op, next byte) bool {
	p, q := precedence(op), precedence(next)
	return p < q || p == q && next == '^'
}

func precedence(op byte) int {
	switch op {
	case '^':
		return 3
	case '*', '/', '%':
		return 2
	default:
		return 1
	}
}
