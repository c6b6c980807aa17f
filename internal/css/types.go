package css

import (
	"fmt"
	"strings"
)

// Specificity represents the specificity of a simple selector.
// Inline is set only for declarations that come from a style attribute.
type Specificity struct {
	Inline   int // style="" attribute (always 1000 when present)
	IDs      int // #id selectors
	Classes  int // .class selectors
	Elements int // type selectors
}

// Compare returns -1 if s < other, 0 if equal, 1 if s > other
func (s Specificity) Compare(other Specificity) int {
	switch {
	case s.Inline != other.Inline:
		return cmpInt(s.Inline, other.Inline)
	case s.IDs != other.IDs:
		return cmpInt(s.IDs, other.IDs)
	case s.Classes != other.Classes:
		return cmpInt(s.Classes, other.Classes)
	}
	return cmpInt(s.Elements, other.Elements)
}

func cmpInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// String formats the specificity as (inline,ids,classes,elements).
func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", s.Inline, s.IDs, s.Classes, s.Elements)
}

// SpecificityFromInline creates a specificity for inline styles
func SpecificityFromInline() Specificity {
	return Specificity{Inline: 1000}
}

// Selector is one of TypeSelector, ClassSelector, IdSelector or
// UnknownSelector.
type Selector interface {
	fmt.Stringer
	Specificity() Specificity
	selector()
}

// TypeSelector matches elements by tag name, e.g. div.
type TypeSelector string

// ClassSelector matches elements by class, e.g. .note.
type ClassSelector string

// IdSelector matches the element with the given id, e.g. #main.
type IdSelector string

// UnknownSelector stands for any selector this model cannot represent. It
// never matches.
type UnknownSelector struct{}

func (TypeSelector) selector()    {}
func (ClassSelector) selector()   {}
func (IdSelector) selector()      {}
func (UnknownSelector) selector() {}

// String renders the selector as CSS, escaping the name where needed.
func (s TypeSelector) String() string { return EscapeIdent(string(s)) }

// String renders the selector as CSS, escaping the name where needed.
func (s ClassSelector) String() string { return "." + EscapeIdent(string(s)) }

// String renders the selector as CSS, escaping the name where needed.
func (s IdSelector) String() string { return "#" + EscapeIdent(string(s)) }

// String returns the empty string; an unknown selector has no CSS form.
func (UnknownSelector) String() string { return "" }

// EscapeIdent serializes name as a CSS identifier so that it reads back as
// the same name, e.g. "1x" becomes `\31 x` and "a.b" becomes `a\.b`.
func EscapeIdent(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, c := range runes {
		switch {
		case c == 0:
			b.WriteRune('\uFFFD')
		case c <= 0x1F || c == 0x7F,
			i == 0 && isDigit(c),
			i == 1 && isDigit(c) && runes[0] == '-':
			fmt.Fprintf(&b, "\\%x ", c)
		case i == 0 && c == '-' && len(runes) == 1:
			b.WriteString(`\-`)
		case isNameChar(c):
			b.WriteRune(c)
		default:
			b.WriteByte('\\')
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Specificity counts one element.
func (TypeSelector) Specificity() Specificity { return Specificity{Elements: 1} }

// Specificity counts one class.
func (ClassSelector) Specificity() Specificity { return Specificity{Classes: 1} }

// Specificity counts one id.
func (IdSelector) Specificity() Specificity { return Specificity{IDs: 1} }

// Specificity is zero; an unknown selector never matches.
func (UnknownSelector) Specificity() Specificity { return Specificity{} }

// ComponentValue is the single token kept as a declaration's value.
type ComponentValue = Token

// Declaration is a property paired with its value.
type Declaration struct {
	Property string
	Value    ComponentValue
}

// NewDeclaration returns an empty declaration.
func NewDeclaration() *Declaration {
	return &Declaration{Value: ComponentValue{Kind: Ident}}
}

// SetProperty sets the property name.
func (d *Declaration) SetProperty(property string) {
	d.Property = property
}

// SetValue sets the value token.
func (d *Declaration) SetValue(value ComponentValue) {
	d.Value = value
}

// String renders the declaration as "property: value".
func (d Declaration) String() string {
	return d.Property + ": " + d.Value.String()
}

// QualifiedRule pairs a selector with its declarations.
type QualifiedRule struct {
	Selector     Selector
	Declarations []Declaration
}

// NewQualifiedRule returns a rule with an unknown selector and no
// declarations.
func NewQualifiedRule() *QualifiedRule {
	return &QualifiedRule{Selector: UnknownSelector{}}
}

// SetSelector replaces the rule's selector.
func (r *QualifiedRule) SetSelector(selector Selector) {
	r.Selector = selector
}

// SetDeclarations replaces the rule's declarations.
func (r *QualifiedRule) SetDeclarations(declarations []Declaration) {
	r.Declarations = declarations
}

// Stylesheet is the parsed form of a style sheet. Rules are kept in source
// order, which is also cascade order.
type Stylesheet struct {
	Rules []QualifiedRule
}

// NewStylesheet returns an empty style sheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{Rules: []QualifiedRule{}}
}

// SetRules replaces the rules, which must be in source order.
func (s *Stylesheet) SetRules(rules []QualifiedRule) {
	s.Rules = rules
}

// MatchResult represents a rule that matched an element, with its position
// in the style sheet.
type MatchResult struct {
	Rule        *QualifiedRule
	SourceOrder int
}
