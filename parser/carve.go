// Package parser carves standardized dice expressions into a tree of groups,
// math operators, and leaf text, with operator precedence applied.
package parser

import (
	"strings"

	"github.com/sansecio/dicego/ast"
	"github.com/sansecio/dicego/diceerr"
)

// Carve turns standardized text into a carved tree. Empty input yields a nil
// node and no error.
func Carve(text string) (ast.Node, error) {
	c := NewCursor(text)
	root, _, err := carveGroup(c, "")
	if err != nil {
		return nil, err
	}
	if len(root.Elements) == 0 {
		return nil, nil
	}
	return root.Elements[0], nil
}

// carveGroup reads elements until one of closers is consumed, then folds
// them. An empty closers string means the group ends with the input.
func carveGroup(c *Cursor, closers string) (*ast.Group, byte, error) {
	var (
		elements []ast.Node
		buf      strings.Builder
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		if n := carveMath(buf.String(), len(elements) > 0); n != nil {
			elements = append(elements, n)
		}
		buf.Reset()
	}
	finish := func() (*ast.Group, error) {
		flush()
		n, err := Fold(elements)
		if err != nil {
			return nil, err
		}
		g := &ast.Group{}
		if n != nil {
			g.Elements = []ast.Node{n}
		}
		return g, nil
	}

	for {
		ch, ok := c.Next()
		if !ok {
			if closers != "" {
				return nil, 0, diceerr.Syntaxf(c.Pos()+1, "missing closing %q", closers[len(closers)-1])
			}
			g, err := finish()
			return g, 0, err
		}

		switch ch {
		case '(':
			fn := functionSuffix(buf.String())
			if fn != "" {
				rest := strings.TrimSuffix(buf.String(), fn)
				buf.Reset()
				buf.WriteString(rest)
			}
			flush()
			sub, _, err := carveGroup(c, ")")
			if err != nil {
				return nil, 0, err
			}
			sub.Function = fn
			elements = append(elements, sub)

		case '{':
			if fn := functionSuffix(buf.String()); fn != "" {
				return nil, 0, diceerr.Syntaxf(c.Pos(), "function %s cannot be applied to a list", fn)
			}
			flush()
			list, err := carveList(c)
			if err != nil {
				return nil, 0, err
			}
			elements = append(elements, list)

		case ')', '}', ',':
			if strings.IndexByte(closers, ch) < 0 {
				return nil, 0, diceerr.Syntaxf(c.Pos(), "unexpected %q", ch)
			}
			g, err := finish()
			return g, ch, err

		case '[':
			if err := copyFaces(c, &buf); err != nil {
				return nil, 0, err
			}

		default:
			buf.WriteByte(ch)
		}
	}
}

// carveList reads comma separated entries up to the closing brace and the
// suffix that follows it. Empty entries are dropped.
func carveList(c *Cursor) (*ast.Group, error) {
	list := &ast.Group{IsList: true}
	for {
		entry, closer, err := carveGroup(c, ",}")
		if err != nil {
			return nil, err
		}
		if len(entry.Elements) > 0 {
			list.Elements = append(list.Elements, entry)
		}
		if closer == '}' {
			break
		}
	}
	list.Suffix = readSuffix(c)
	return list, nil
}

// copyFaces copies a custom face list "[...]" into buf unchanged. The
// opening bracket has already been consumed.
func copyFaces(c *Cursor, buf *strings.Builder) error {
	start := c.Pos()
	buf.WriteByte('[')
	for {
		ch, ok := c.Next()
		if !ok {
			return diceerr.Syntaxf(start, "missing closing ']'")
		}
		buf.WriteByte(ch)
		if ch == ']' {
			return nil
		}
	}
}

// readSuffix consumes the modifier characters following a list. A '-' is
// only part of the suffix directly after a compare operator.
func readSuffix(c *Cursor) string {
	var sb strings.Builder
	for {
		ch, ok := c.Peek()
		if !ok || !isSuffixChar(ch) {
			break
		}
		if ch == '-' {
			s := sb.String()
			if s == "" || !isCompareOp(s[len(s)-1]) {
				break
			}
		}
		c.Next()
		sb.WriteByte(ch)
	}
	return sb.String()
}

func functionSuffix(s string) string {
	for _, fn := range ast.Functions {
		if strings.HasSuffix(s, fn) {
			return fn
		}
	}
	return ""
}

func isSuffixChar(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' || isCompareOp(ch) || ch == '-'
}

func isCompareOp(ch byte) bool {
	return ch == '=' || ch == '<' || ch == '>'
}
