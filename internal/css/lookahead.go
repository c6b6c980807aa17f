package css

// lookahead buffers at most one token from a TokenSource so the parser can
// inspect the next token before deciding whether to consume it.
type lookahead struct {
	src       TokenSource
	tok       Token
	buffered  bool
	exhausted bool
}

// peek returns the next token without consuming it.
func (l *lookahead) peek() (Token, bool) {
	if !l.buffered && !l.exhausted {
		l.tok, l.buffered = l.src.Next()
		l.exhausted = !l.buffered
	}
	return l.tok, l.buffered
}

// next consumes and returns the next token.
func (l *lookahead) next() (Token, bool) {
	tok, ok := l.peek()
	l.buffered = false
	return tok, ok
}
