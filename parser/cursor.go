package parser

// Cursor walks a string one byte at a time. The position starts before the
// first byte, so Pos returns -1 until Next is called.
type Cursor struct {
	input string
	pos   int
}

// NewCursor returns a cursor positioned before the first byte of input.
func NewCursor(input string) *Cursor {
	return &Cursor{input: input, pos: -1}
}

// Next consumes and returns the next byte. It returns false at the end of
// input without moving.
func (c *Cursor) Next() (byte, bool) {
	if c.pos+1 >= len(c.input) {
		return 0, false
	}
	c.pos++
	return c.input[c.pos], true
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	return c.PeekAt(1)
}

// PeekAt returns the byte n positions ahead of the last consumed one.
// PeekAt(1) is the same as Peek.
func (c *Cursor) PeekAt(n int) (byte, bool) {
	i := c.pos + n
	if i < 0 || i >= len(c.input) {
		return 0, false
	}
	return c.input[i], true
}

// Pos returns the index of the last consumed byte.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether every byte has been consumed.
func (c *Cursor) Done() bool {
	return c.pos+1 >= len(c.input)
}

// Rest returns the unconsumed input.
func (c *Cursor) Rest() string {
	return c.input[c.pos+1:]
}
