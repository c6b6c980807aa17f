package html

// EOF is returned by the cursor once the input is exhausted.
const EOF rune = -1

// Cursor walks the input one character at a time. The previously consumed
// character can be handed back once with Rewind.
type Cursor struct {
	input     []rune
	pos       int
	last      rune
	started   bool
	reconsume bool
}

// NewCursor returns a cursor positioned before the first character of s.
func NewCursor(s string) *Cursor {
	return &Cursor{input: []rune(s), last: EOF}
}

// Advance consumes and returns the next character, or EOF.
func (c *Cursor) Advance() rune {
	c.started = true
	if c.reconsume {
		c.reconsume = false
		return c.last
	}
	if c.pos >= len(c.input) {
		c.last = EOF
		return EOF
	}
	c.last = c.input[c.pos]
	c.pos++
	return c.last
}

// Rewind makes the next Advance return the last consumed character again.
func (c *Cursor) Rewind() {
	if !c.started {
		invariant("Cursor.Rewind", "nothing consumed yet")
	}
	if c.reconsume {
		invariant("Cursor.Rewind", "character already pending reconsume")
	}
	c.reconsume = true
}

// Peek returns the character the next Advance would return without consuming it.
func (c *Cursor) Peek() rune {
	if c.reconsume {
		return c.last
	}
	if c.pos >= len(c.input) {
		return EOF
	}
	return c.input[c.pos]
}

// Pos reports how many characters have been consumed from the input.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether every character has been consumed and nothing is
// pending reconsume.
func (c *Cursor) Done() bool {
	return !c.reconsume && c.pos >= len(c.input)
}
