package grammar

import (
	"strconv"
	"strings"

	"github.com/sansecio/dicego/diceerr"
	"github.com/sansecio/dicego/eval"
	"github.com/sansecio/dicego/parser"
)

// ProcessLeaf interprets leaf text: a number, a decimal, or a dice term
// followed by modifiers and at most one resolver.
func (p *Processor) ProcessLeaf(text string) (eval.Node, error) {
	c := parser.NewCursor(text)

	count := 1
	if !peekIs(c, 'd') {
		digits, err := readIntText(c)
		if err != nil {
			return nil, err
		}
		if peekIs(c, '.') {
			c.Next()
			frac, err := readDigits(c)
			if err != nil {
				return nil, err
			}
			if err := expectDone(c, text); err != nil {
				return nil, err
			}
			v, err := strconv.ParseFloat(digits+"."+frac, 64)
			if err != nil {
				return nil, diceerr.Semanticf("invalid number %q", text)
			}
			return eval.StaticNumber{Value: v}, nil
		}
		if count, err = atoi(digits); err != nil {
			return nil, err
		}
		if !peekIs(c, 'd') {
			if err := expectDone(c, text); err != nil {
				return nil, err
			}
			return eval.StaticNumber{Value: float64(count)}, nil
		}
	}
	if count < 0 {
		return nil, diceerr.Semanticf("cannot roll a negative number of dice in %q", text)
	}
	c.Next() // 'd'

	node, err := p.readDie(c, count)
	if err != nil {
		return nil, err
	}
	for {
		next, err := readModifier(c, node)
		if err != nil {
			return nil, err
		}
		if next == nil {
			break
		}
		node = next
	}
	if node, err = readResolver(c, node); err != nil {
		return nil, err
	}
	if err := expectDone(c, text); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Processor) readDie(c *parser.Cursor, count int) (eval.Node, error) {
	ch, ok := c.Peek()
	switch {
	case !ok:
		return nil, diceerr.Syntaxf(-1, "missing die size")
	case ch == 'f':
		c.Next()
		return eval.DiceRoll{Count: count, Min: -1, Max: 1}, nil
	case ch == '[':
		faces, err := p.readFaces(c)
		if err != nil {
			return nil, err
		}
		return eval.CustomDiceRoll{Count: count, Faces: faces}, nil
	}

	sides, err := readInt(c)
	if err != nil {
		return nil, err
	}
	if sides < 1 {
		return nil, diceerr.Semanticf("dice must have at least one side, got %d", sides)
	}
	return eval.DiceRoll{Count: count, Min: 1, Max: sides}, nil
}

func (p *Processor) readFaces(c *parser.Cursor) ([]int, error) {
	rest := c.Rest()
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return nil, diceerr.Syntaxf(-1, "missing closing ']' in %q", rest)
	}
	src := rest[:end+1]
	g, err := p.faces.ParseString("", src)
	if err != nil {
		return nil, diceerr.Syntaxf(-1, "invalid custom faces %q: %v", src, err)
	}
	for range len(src) {
		c.Next()
	}
	return g.Faces, nil
}

// readModifier reads one modifier wrapping node. It returns nil when the
// next byte does not start a modifier.
func readModifier(c *parser.Cursor, node eval.Node) (eval.Node, error) {
	ch, ok := c.Peek()
	if !ok {
		return nil, nil
	}
	switch ch {
	case '!':
		return readExplode(c, node)
	case 'r':
		return readReroll(c, node)
	case 'k', 'd':
		return readKeepDrop(c, node)
	default:
		return nil, nil
	}
}

func readExplode(c *parser.Cursor, node eval.Node) (eval.Node, error) {
	c.Next() // '!'
	n := &eval.Explode{Mode: eval.ExplodeRegular, Child: node}
	switch {
	case peekIs(c, '!'):
		c.Next()
		n.Mode = eval.ExplodeCompounding
	case peekIs(c, 'p'):
		c.Next()
		n.Mode = eval.ExplodePenetrating
	}
	if ch, ok := c.Peek(); ok && (isDigit(ch) || isCompareOp(ch)) {
		cp, err := readComparePoint(c)
		if err != nil {
			return nil, err
		}
		n.Condition = &cp
	}
	return n, nil
}

// readReroll reads "r<cp>" or "ro<cp>", chained by more of the same kind.
func readReroll(c *parser.Cursor, node eval.Node) (eval.Node, error) {
	c.Next() // 'r'
	n := &eval.Reroll{Child: node}
	if peekIs(c, 'o') {
		c.Next()
		n.Once = true
	}
	for {
		cp, err := readComparePoint(c)
		if err != nil {
			return nil, err
		}
		n.Conditions = append(n.Conditions, cp)

		if !peekIs(c, 'r') {
			return n, nil
		}
		if after, _ := c.PeekAt(2); (after == 'o') != n.Once {
			return n, nil
		}
		c.Next()
		if n.Once {
			c.Next()
		}
	}
}

// readKeepDrop reads "kh", "kl", "dh", "dl" with an optional count, or
// "k<cp>" / "d<cp>" chained by the same letter.
func readKeepDrop(c *parser.Cursor, node eval.Node) (eval.Node, error) {
	letter, _ := c.Next()
	keep := letter == 'k'

	if ch, ok := c.Peek(); ok && (ch == 'h' || ch == 'l') {
		c.Next()
		n := &eval.KeepDropHighLow{Child: node, High: ch == 'h', Keep: keep, Count: 1}
		if next, ok := c.Peek(); ok && isDigit(next) {
			count, err := readInt(c)
			if err != nil {
				return nil, err
			}
			n.Count = count
		}
		return n, nil
	}

	n := &eval.KeepDropConditional{Child: node, Keep: keep}
	for {
		cp, err := readComparePoint(c)
		if err != nil {
			return nil, err
		}
		n.Conditions = append(n.Conditions, cp)

		if !peekIs(c, letter) {
			return n, nil
		}
		if after, _ := c.PeekAt(2); after == 'h' || after == 'l' {
			return n, nil
		}
		c.Next()
	}
}

// readResolver reads "m", "mt", or "<cp>[f<cp>]". Without a resolver node
// is returned unchanged and nothing is consumed.
func readResolver(c *parser.Cursor, node eval.Node) (eval.Node, error) {
	ch, ok := c.Peek()
	if !ok {
		return node, nil
	}

	if ch == 'm' {
		c.Next()
		n := &eval.NumberMatcher{Child: node}
		if peekIs(c, 't') {
			c.Next()
			n.MatchCount = true
		}
		return n, nil
	}

	if !isDigit(ch) && !isCompareOp(ch) && ch != '-' {
		return node, nil
	}
	success, err := readComparePoint(c)
	if err != nil {
		return nil, err
	}
	n := &eval.SuccessFailCounter{Child: node, Success: success}
	if peekIs(c, 'f') {
		c.Next()
		failure, err := readComparePoint(c)
		if err != nil {
			return nil, err
		}
		n.Failure = &failure
	}
	return n, nil
}

// readComparePoint reads a bare integer (equality) or =, <, > followed by
// an integer.
func readComparePoint(c *parser.Cursor) (eval.Condition, error) {
	ch, ok := c.Peek()
	switch {
	case !ok:
		return eval.Condition{}, diceerr.Syntaxf(-1, "missing compare point")
	case isCompareOp(ch):
		c.Next()
	case isDigit(ch) || ch == '-':
		ch = '='
	default:
		return eval.Condition{}, diceerr.Syntaxf(-1, "unexpected %q, expected a compare point", ch)
	}
	v, err := readInt(c)
	if err != nil {
		return eval.Condition{}, err
	}
	return eval.Condition{Op: ch, Value: v}, nil
}

func readInt(c *parser.Cursor) (int, error) {
	text, err := readIntText(c)
	if err != nil {
		return 0, err
	}
	return atoi(text)
}

// readIntText reads an optionally negative run of digits.
func readIntText(c *parser.Cursor) (string, error) {
	sign := ""
	if peekIs(c, '-') {
		c.Next()
		sign = "-"
	}
	digits, err := readDigits(c)
	if err != nil {
		return "", err
	}
	return sign + digits, nil
}

func readDigits(c *parser.Cursor) (string, error) {
	var sb strings.Builder
	for {
		ch, ok := c.Peek()
		if !ok || !isDigit(ch) {
			break
		}
		c.Next()
		sb.WriteByte(ch)
	}
	if sb.Len() == 0 {
		if ch, ok := c.Peek(); ok {
			return "", diceerr.Syntaxf(-1, "unexpected %q, expected a number", ch)
		}
		return "", diceerr.Syntaxf(-1, "unexpected end of input, expected a number")
	}
	return sb.String(), nil
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, diceerr.Semanticf("number %s is out of range", s)
	}
	return v, nil
}

func expectDone(c *parser.Cursor, text string) error {
	if c.Done() {
		return nil
	}
	return diceerr.Syntaxf(-1, "unexpected %q in %q", c.Rest(), text)
}

func peekIs(c *parser.Cursor, b byte) bool {
	ch, ok := c.Peek()
	return ok && ch == b
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isCompareOp(ch byte) bool {
	return ch == '=' || ch == '<' || ch == '>'
}
