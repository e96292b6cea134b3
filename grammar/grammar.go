// Package grammar turns a carved expression tree into an executable
// resolution tree, interpreting dice notation, modifiers, and resolvers.
package grammar

import (
	"github.com/alecthomas/participle/v2"

	"github.com/sansecio/dicego/ast"
	"github.com/sansecio/dicego/diceerr"
	"github.com/sansecio/dicego/eval"
	"github.com/sansecio/dicego/parser"
)

// Processor converts carved trees into resolution trees. It holds no
// per-call state and is safe for concurrent use.
type Processor struct {
	faces *participle.Parser[facesGrammar]
}

// New creates a Processor.
func New() *Processor {
	return &Processor{faces: newFacesParser()}
}

// Process converts a carved node into a resolution node.
func (p *Processor) Process(n ast.Node) (eval.Node, error) {
	switch n := n.(type) {
	case ast.Leaf:
		return p.ProcessLeaf(n.Text)
	case *ast.Math:
		return p.processMath(n)
	case *ast.Group:
		if n.IsList {
			return p.processList(n)
		}
		return p.processGroup(n)
	case nil:
		return nil, diceerr.Semanticf("empty expression")
	default:
		return nil, diceerr.Semanticf("unknown carved node %T", n)
	}
}

func (p *Processor) processGroup(g *ast.Group) (eval.Node, error) {
	if len(g.Elements) == 0 {
		return nil, diceerr.Syntaxf(-1, "empty brackets")
	}
	child, err := p.Process(g.Elements[0])
	if err != nil {
		return nil, err
	}
	switch g.Function {
	case "":
		return &eval.Bracket{Child: child}, nil
	case "floor", "ceil", "round", "abs":
		return &eval.Function{Name: eval.FunctionName(g.Function), Child: child}, nil
	default:
		return nil, diceerr.Semanticf("unknown function %q", g.Function)
	}
}

// processList applies the list suffix directly to a single dice entry and
// to a number list otherwise.
func (p *Processor) processList(g *ast.Group) (eval.Node, error) {
	entries := make([]eval.Node, 0, len(g.Elements))
	for _, e := range g.Elements {
		n, err := p.Process(e)
		if err != nil {
			return nil, err
		}
		entries = append(entries, n)
	}

	var target eval.Node
	if len(entries) == 1 && entries[0].Shape() == eval.ShapeDiceRoll {
		target = entries[0]
	} else {
		target = &eval.NumberList{Entries: entries}
	}
	return applySuffix(target, g.Suffix)
}

// applySuffix interprets a list suffix: either one resolver or one keep/drop
// modifier, with nothing left over.
func applySuffix(target eval.Node, suffix string) (eval.Node, error) {
	if suffix == "" {
		return target, nil
	}
	c := parser.NewCursor(suffix)

	n, err := readResolver(c, target)
	if err != nil {
		return nil, err
	}
	if c.Pos() < 0 {
		if ch, _ := c.Peek(); ch != 'k' && ch != 'd' {
			return nil, diceerr.Syntaxf(-1, "unknown list modifier %q", suffix)
		}
		if n, err = readKeepDrop(c, target); err != nil {
			return nil, err
		}
	}
	if !c.Done() {
		return nil, diceerr.Syntaxf(-1, "unexpected %q after list modifier %q", c.Rest(), suffix)
	}
	return n, nil
}

func (p *Processor) processMath(m *ast.Math) (eval.Node, error) {
	if m.Left == nil || m.Right == nil {
		return nil, diceerr.Syntaxf(-1, "operator %q is missing an operand", m.Op)
	}
	left, err := p.Process(m.Left)
	if err != nil {
		return nil, err
	}
	right, err := p.Process(m.Right)
	if err != nil {
		return nil, err
	}
	return &eval.Math{Op: m.Op, Left: left, Right: right}, nil
}
