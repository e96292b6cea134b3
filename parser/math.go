package parser

import (
	"strings"

	"github.com/sansecio/dicego/ast"
)

// signContext lists the characters after which a '-' is a sign.
const signContext = "+-*/%^<>="

// CarveMath splits flat text (no brackets) into math nodes with the usual
// precedence: + and - bind loosest, then * / %, then ^. All operators fold
// left except ^, which is right associative. Missing operands are left as
// nil slots for Fold. afterGroup reports whether the text directly follows
// a carved group, which turns a leading '-' into subtraction.
func CarveMath(text string, afterGroup bool) ast.Node {
	return carveMath(text, afterGroup)
}

func carveMath(text string, afterGroup bool) ast.Node {
	if text == "" {
		return nil
	}
	pieces := splitOps(text, "+-", func(i int) bool {
		return text[i] != '-' || !IsSign(text, i, afterGroup)
	})
	return foldPieces(pieces, carveProduct)
}

func carveProduct(text string) ast.Node {
	return foldPieces(splitOps(text, "*/%", nil), carveExponent)
}

// carveExponent splits at the first '^'. The left side is taken as-is since
// the other operators have already been split out.
func carveExponent(text string) ast.Node {
	pieces := splitOps(text, "^", nil)
	if len(pieces) == 1 {
		return leaf(text)
	}
	rest := text[len(pieces[0].text)+1:]
	return &ast.Math{Op: '^', Left: leaf(pieces[0].text), Right: carveExponent(rest)}
}

// IsSign reports whether the '-' at text[i] belongs to a number rather than
// being a subtraction.
func IsSign(text string, i int, afterGroup bool) bool {
	if i == 0 {
		return !afterGroup
	}
	return strings.IndexByte(signContext, text[i-1]) >= 0
}

type mathPiece struct {
	op   byte // operator preceding text, 0 for the first piece
	text string
}

// splitOps cuts text at every operator in ops for which split returns true.
// Custom face lists "[...]" are never split.
func splitOps(text, ops string, split func(i int) bool) []mathPiece {
	var (
		pieces []mathPiece
		op     byte
		start  int
	)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '[' {
			if end := strings.IndexByte(text[i:], ']'); end >= 0 {
				i += end
			}
			continue
		}
		if strings.IndexByte(ops, ch) < 0 || (split != nil && !split(i)) {
			continue
		}
		pieces = append(pieces, mathPiece{op: op, text: text[start:i]})
		op = ch
		start = i + 1
	}
	return append(pieces, mathPiece{op: op, text: text[start:]})
}

func foldPieces(pieces []mathPiece, next func(string) ast.Node) ast.Node {
	acc := pieceNode(pieces[0].text, next)
	for _, p := range pieces[1:] {
		acc = &ast.Math{Op: p.op, Left: acc, Right: pieceNode(p.text, next)}
	}
	return acc
}

func pieceNode(text string, next func(string) ast.Node) ast.Node {
	if text == "" {
		return nil
	}
	return next(text)
}

func leaf(text string) ast.Node {
	if text == "" {
		return nil
	}
	return ast.Leaf{Text: text}
}
