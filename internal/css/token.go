package css

import (
	"fmt"
	"strconv"
)

// TokenKind identifies a CSS token.
type TokenKind int

const (
	Ident TokenKind = iota
	AtKeyword
	Hash
	String
	Number
	Dimension
	Percentage
	Delim
	Colon
	Semicolon
	Comma
	OpenParen
	CloseParen
	OpenSquare
	CloseSquare
	OpenCurly
	CloseCurly
)

var kindNames = [...]string{
	Ident:       "IDENT",
	AtKeyword:   "AT_KEYWORD",
	Hash:        "HASH",
	String:      "STRING",
	Number:      "NUMBER",
	Dimension:   "DIMENSION",
	Percentage:  "PERCENTAGE",
	Delim:       "DELIM",
	Colon:       "COLON",
	Semicolon:   "SEMICOLON",
	Comma:       "COMMA",
	OpenParen:   "(",
	CloseParen:  ")",
	OpenSquare:  "[",
	CloseSquare: "]",
	OpenCurly:   "{",
	CloseCurly:  "}",
}

// String returns the kind name, or the bracket itself for bracket kinds.
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single CSS token. Value holds the identifier, keyword, hash
// name, string contents, delimiter or numeric source text depending on Kind.
// Number is set for numeric kinds and Unit for dimensions.
type Token struct {
	Kind   TokenKind
	Value  string
	Number float64
	Unit   string
}

// String renders the token back as CSS text.
func (t Token) String() string {
	switch t.Kind {
	case Ident, Delim, Number:
		return t.Value
	case AtKeyword:
		return "@" + t.Value
	case Hash:
		return "#" + t.Value
	case String:
		return strconv.Quote(t.Value)
	case Dimension:
		return t.Value + t.Unit
	case Percentage:
		return t.Value + "%"
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Comma:
		return ","
	}
	return t.Kind.String()
}
