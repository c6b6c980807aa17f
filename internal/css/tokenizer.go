package css

import (
	"strconv"
	"strings"
)

// eof represents the end of the input.
const eof rune = -1

// TokenSource is anything the parser can pull CSS tokens from. Next returns
// false once the source is exhausted.
type TokenSource interface {
	Next() (Token, bool)
}

// Tokenizer splits style sheet text into tokens. Whitespace and comments are
// dropped; characters that start no other token become delimiters.
type Tokenizer struct {
	input []rune
	pos   int
}

// NewTokenizer returns a tokenizer over src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{input: []rune(src)}
}

// Next returns the next token.
func (t *Tokenizer) Next() (Token, bool) {
	for {
		c := t.peek(0)
		switch {
		case c == eof:
			return Token{}, false
		case isWhitespace(c):
			t.pos++
		case c == '/' && t.peek(1) == '*':
			t.skipComment()
		case c == '"' || c == '\'':
			return t.consumeString(c), true
		case c == '#':
			if isNameChar(t.peek(1)) || t.validEscape(1) {
				t.pos++
				return Token{Kind: Hash, Value: t.consumeName()}, true
			}
			t.pos++
			return Token{Kind: Delim, Value: "#"}, true
		case c == '@':
			if t.startsIdent(1) {
				t.pos++
				return Token{Kind: AtKeyword, Value: t.consumeName()}, true
			}
			t.pos++
			return Token{Kind: Delim, Value: "@"}, true
		case t.startsNumber(0):
			return t.consumeNumeric(), true
		case t.startsIdent(0):
			return Token{Kind: Ident, Value: t.consumeName()}, true
		default:
			t.pos++
			if kind, ok := punctuation[c]; ok {
				return Token{Kind: kind}, true
			}
			return Token{Kind: Delim, Value: string(c)}, true
		}
	}
}

var punctuation = map[rune]TokenKind{
	':': Colon,
	';': Semicolon,
	',': Comma,
	'(': OpenParen,
	')': CloseParen,
	'[': OpenSquare,
	']': CloseSquare,
	'{': OpenCurly,
	'}': CloseCurly,
}

func (t *Tokenizer) peek(off int) rune {
	if i := t.pos + off; i < len(t.input) {
		return t.input[i]
	}
	return eof
}

// skipComment consumes a /* ... */ comment, or the rest of the input when it
// is unterminated.
func (t *Tokenizer) skipComment() {
	t.pos += 2
	for t.peek(0) != eof {
		if t.peek(0) == '*' && t.peek(1) == '/' {
			t.pos += 2
			return
		}
		t.pos++
	}
}

// consumeString consumes a quoted string. An unescaped newline or the end of
// input ends it early.
func (t *Tokenizer) consumeString(quote rune) Token {
	t.pos++
	var b strings.Builder
	for {
		c := t.peek(0)
		switch {
		case c == eof || c == '\n':
			return Token{Kind: String, Value: b.String()}
		case c == quote:
			t.pos++
			return Token{Kind: String, Value: b.String()}
		case c == '\\':
			switch t.peek(1) {
			case eof:
				t.pos++
			case '\n':
				t.pos += 2
			default:
				t.pos++
				b.WriteRune(t.consumeEscape())
			}
		default:
			t.pos++
			b.WriteRune(c)
		}
	}
}

// consumeEscape consumes the escape following a backslash.
func (t *Tokenizer) consumeEscape() rune {
	start := t.pos
	for t.pos-start < 6 && isHexDigit(t.peek(0)) {
		t.pos++
	}
	if t.pos == start {
		c := t.peek(0)
		t.pos++
		return c
	}
	n, _ := strconv.ParseUint(string(t.input[start:t.pos]), 16, 32)
	if isWhitespace(t.peek(0)) {
		t.pos++
	}
	if n == 0 || n > 0x10FFFF || (n >= 0xD800 && n <= 0xDFFF) {
		return '\uFFFD'
	}
	return rune(n)
}

func (t *Tokenizer) consumeName() string {
	var b strings.Builder
	for {
		c := t.peek(0)
		switch {
		case isNameChar(c):
			t.pos++
			b.WriteRune(c)
		case t.validEscape(0):
			t.pos++
			b.WriteRune(t.consumeEscape())
		default:
			return b.String()
		}
	}
}

// consumeNumeric consumes a number followed by an optional unit or percent
// sign.
func (t *Tokenizer) consumeNumeric() Token {
	start := t.pos
	if c := t.peek(0); c == '+' || c == '-' {
		t.pos++
	}
	for isDigit(t.peek(0)) {
		t.pos++
	}
	if t.peek(0) == '.' && isDigit(t.peek(1)) {
		t.pos += 2
		for isDigit(t.peek(0)) {
			t.pos++
		}
	}
	if c := t.peek(0); c == 'e' || c == 'E' {
		next := t.peek(1)
		exponent := isDigit(next) || ((next == '+' || next == '-') && isDigit(t.peek(2)))
		if exponent {
			t.pos += 2
			for isDigit(t.peek(0)) {
				t.pos++
			}
		}
	}

	text := string(t.input[start:t.pos])
	n, _ := strconv.ParseFloat(text, 64)

	switch {
	case t.startsIdent(0):
		return Token{Kind: Dimension, Value: text, Number: n, Unit: t.consumeName()}
	case t.peek(0) == '%':
		t.pos++
		return Token{Kind: Percentage, Value: text, Number: n}
	}
	return Token{Kind: Number, Value: text, Number: n}
}

func (t *Tokenizer) startsNumber(off int) bool {
	c := t.peek(off)
	if c == '+' || c == '-' {
		off++
		c = t.peek(off)
	}
	if isDigit(c) {
		return true
	}
	return c == '.' && isDigit(t.peek(off+1))
}

func (t *Tokenizer) startsIdent(off int) bool {
	c := t.peek(off)
	if c == '-' {
		next := t.peek(off + 1)
		return isNameStart(next) || next == '-' || t.validEscape(off+1)
	}
	return isNameStart(c) || t.validEscape(off)
}

func (t *Tokenizer) validEscape(off int) bool {
	return t.peek(off) == '\\' && t.peek(off+1) != '\n' && t.peek(off+1) != eof
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isNameStart(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_' || c >= 0x80
}

func isNameChar(c rune) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}
