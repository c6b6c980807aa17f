package html

import (
	"errors"
	"testing"
)

func TestCursor_AdvanceAndRewind(t *testing.T) {
	c := NewCursor("ab")

	if got := c.Peek(); got != 'a' {
		t.Fatalf("Peek() = %q, want 'a'", got)
	}
	if got := c.Advance(); got != 'a' {
		t.Fatalf("Advance() = %q, want 'a'", got)
	}

	c.Rewind()
	if got := c.Peek(); got != 'a' {
		t.Fatalf("Peek() after Rewind = %q, want 'a'", got)
	}
	if got := c.Advance(); got != 'a' {
		t.Fatalf("Advance() after Rewind = %q, want 'a'", got)
	}
	if got := c.Pos(); got != 1 {
		t.Fatalf("Pos() = %d, want 1", got)
	}

	if got := c.Advance(); got != 'b' {
		t.Fatalf("Advance() = %q, want 'b'", got)
	}
	if got := c.Advance(); got != EOF {
		t.Fatalf("Advance() at end = %q, want EOF", got)
	}
	if !c.Done() {
		t.Fatal("Done() = false at end of input")
	}

	// EOF can be handed back like any other character.
	c.Rewind()
	if c.Done() {
		t.Fatal("Done() = true with EOF pending reconsume")
	}
	if got := c.Advance(); got != EOF {
		t.Fatalf("Advance() after rewinding EOF = %q, want EOF", got)
	}
}

func TestCursor_RewindMisuse(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *Cursor)
	}{
		{"before advance", func(c *Cursor) { c.Rewind() }},
		{"twice", func(c *Cursor) { c.Advance(); c.Rewind(); c.Rewind() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catch(func() { tt.fn(NewCursor("x")) })
			var ie *InvariantError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InvariantError panic, got %v", err)
			}
		})
	}
}

// catch runs fn and returns the error it panicked with, if any.
func catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}
