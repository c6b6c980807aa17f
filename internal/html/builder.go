package html

import "strings"

type buildKind int

const (
	buildIdle buildKind = iota
	buildStartTag
	buildEndTag
)

// tagBuilder holds the tag currently being assembled. It is idle between
// tags; every mutation outside a tag is a tokenizer defect.
type tagBuilder struct {
	kind        buildKind
	name        strings.Builder
	selfClosing bool
	attrs       []Attribute
}

// begin starts a new start or end tag. The builder must be idle.
func (b *tagBuilder) begin(start bool) {
	if b.building() {
		invariant("begin", "a tag is already in progress")
	}
	b.kind = buildEndTag
	if start {
		b.kind = buildStartTag
	}
}

// building reports whether a tag is in progress.
func (b *tagBuilder) building() bool {
	return b.kind != buildIdle
}

func (b *tagBuilder) appendName(c rune) {
	if !b.building() {
		invariant("appendName", "no tag in progress")
	}
	b.name.WriteRune(c)
}

func (b *tagBuilder) tagName() string {
	return b.name.String()
}

// startAttribute opens a new attribute; it becomes the only one accepting
// characters.
func (b *tagBuilder) startAttribute() {
	if !b.building() {
		invariant("startAttribute", "no tag in progress")
	}
	b.attrs = append(b.attrs, Attribute{})
}

func (b *tagBuilder) appendAttribute(c rune, isName bool) {
	if !b.building() {
		invariant("appendAttribute", "no tag in progress")
	}
	if len(b.attrs) == 0 {
		invariant("appendAttribute", "no attribute open")
	}
	b.attrs[len(b.attrs)-1].AddChar(c, isName)
}

func (b *tagBuilder) setSelfClosing() {
	if !b.building() {
		invariant("setSelfClosing", "no tag in progress")
	}
	b.selfClosing = true
}

// take returns the finished tag and leaves the builder idle.
func (b *tagBuilder) take() Token {
	var t Token
	switch b.kind {
	case buildStartTag:
		t = &StartTag{
			Name:        b.name.String(),
			SelfClosing: b.selfClosing,
			Attributes:  dedupe(b.attrs),
		}
	case buildEndTag:
		// Attributes and the self-closing flag on end tags are parse errors
		// and do not survive emission.
		t = &EndTag{Name: b.name.String()}
	default:
		invariant("take", "no tag in progress")
	}
	b.discard()
	return t
}

// discard drops whatever is in progress.
func (b *tagBuilder) discard() {
	b.kind = buildIdle
	b.name.Reset()
	b.selfClosing = false
	b.attrs = nil
}

// dedupe keeps the first occurrence of each attribute name.
func dedupe(attrs []Attribute) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		dup := false
		for _, seen := range out {
			if seen.Name == a.Name {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}
