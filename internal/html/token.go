package html

import (
	"fmt"
	"strings"
)

// TokenKind identifies the shape of a Token.
type TokenKind int

const (
	StartTagToken TokenKind = iota
	EndTagToken
	CharToken
	EOFToken
)

// String returns the kind name used in token dumps.
func (k TokenKind) String() string {
	switch k {
	case StartTagToken:
		return "START_TAG"
	case EndTagToken:
		return "END_TAG"
	case CharToken:
		return "CHAR"
	case EOFToken:
		return "EOF"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one unit produced by the tokenizer. The concrete type is one of
// *StartTag, *EndTag, *Char or *EOFMarker.
type Token interface {
	Kind() TokenKind
	String() string
}

// StartTag is an opening tag such as <a href=x>. Name and attribute names are
// always lowercase.
type StartTag struct {
	Name        string
	SelfClosing bool
	Attributes  []Attribute
}

// Kind returns StartTagToken.
func (t *StartTag) Kind() TokenKind { return StartTagToken }

// String renders the tag as markup, quoting attribute values.
func (t *StartTag) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.Name)
	for _, a := range t.Attributes {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		if a.Value != "" {
			fmt.Fprintf(&b, "=%q", a.Value)
		}
	}
	if t.SelfClosing {
		b.WriteString("/")
	}
	b.WriteByte('>')
	return b.String()
}

// EndTag is a closing tag such as </a>.
type EndTag struct {
	Name string
}

// Kind returns EndTagToken.
func (t *EndTag) Kind() TokenKind { return EndTagToken }

// String renders the tag as markup.
func (t *EndTag) String() string { return "</" + t.Name + ">" }

// Char is a single character of document text.
type Char struct {
	Rune rune
}

// Kind returns CharToken.
func (t *Char) Kind() TokenKind { return CharToken }

// String returns the character itself.
func (t *Char) String() string { return string(t.Rune) }

// EOFMarker terminates every token stream.
type EOFMarker struct{}

// Kind returns EOFToken.
func (t *EOFMarker) Kind() TokenKind { return EOFToken }

// String returns "EOF".
func (t *EOFMarker) String() string { return "EOF" }

// Attribute is a name/value pair on a start tag.
type Attribute struct {
	Name  string
	Value string
}

// AddChar appends c to the attribute's name when isName is set, otherwise to
// its value.
func (a *Attribute) AddChar(c rune, isName bool) {
	if isName {
		a.Name += string(c)
		return
	}
	a.Value += string(c)
}
