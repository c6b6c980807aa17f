package css

import (
	"strings"
)

// Parser builds a Stylesheet from a stream of CSS tokens.
type Parser struct {
	t lookahead
}

// NewParser creates a parser reading from src.
func NewParser(src TokenSource) *Parser {
	return &Parser{t: lookahead{src: src}}
}

// Parse tokenizes and parses cssText in one step.
func Parse(cssText string) *Stylesheet {
	return NewParser(NewTokenizer(cssText)).ParseStylesheet()
}

// ParseDeclarations parses the body of a style attribute, such as
// "color: red; margin: 0".
func ParseDeclarations(styleAttr string) []Declaration {
	p := NewParser(NewTokenizer(styleAttr))
	return p.consumeListOfDeclarations()
}

// ParseStylesheet consumes the whole token stream. Parsing stops at the first
// qualified rule that cannot be completed; the rules before it are returned.
func (p *Parser) ParseStylesheet() *Stylesheet {
	sheet := NewStylesheet()
	sheet.SetRules(p.consumeListOfRules())
	return sheet
}

// consumeListOfRules consumes rules until the input ends or a qualified rule
// fails. At-rules are consumed and thrown away.
func (p *Parser) consumeListOfRules() []QualifiedRule {
	rules := []QualifiedRule{}

	for {
		tok, ok := p.t.peek()
		if !ok {
			return rules
		}

		if tok.Kind == AtKeyword {
			p.consumeAtRule()
			continue
		}

		rule := p.consumeQualifiedRule()
		if rule == nil {
			return rules
		}
		rules = append(rules, *rule)
	}
}

// consumeAtRule consumes an at-rule through its terminating semicolon or
// through the close brace matching its block.
func (p *Parser) consumeAtRule() {
	p.t.next()

	depth := 0
	for {
		tok, ok := p.t.next()
		if !ok {
			return
		}

		switch tok.Kind {
		case Semicolon:
			if depth == 0 {
				return
			}
		case OpenCurly:
			depth++
		case CloseCurly:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

// consumeQualifiedRule consumes a selector and its declaration block. It
// returns nil when the rule cannot be completed.
func (p *Parser) consumeQualifiedRule() *QualifiedRule {
	rule := NewQualifiedRule()

	for {
		tok, ok := p.t.peek()
		if !ok {
			return nil
		}

		switch tok.Kind {
		case OpenCurly:
			p.t.next()
			rule.SetDeclarations(p.consumeListOfDeclarations())
			return rule
		case Colon:
			// Pseudo-classes such as a:hover or .x:hover are not modeled; the
			// selector before them is kept.
			p.skipUntil(OpenCurly)
			continue
		}

		// Only the last simple selector before the block is kept.
		selector, ok := p.consumeSelector()
		if !ok {
			return nil
		}
		rule.SetSelector(selector)
	}
}

// consumeSelector consumes one simple selector.
func (p *Parser) consumeSelector() (Selector, bool) {
	tok, _ := p.t.next()

	switch tok.Kind {
	case Hash:
		return IdSelector(tok.Value), true
	case Delim:
		if tok.Value != "." {
			return UnknownSelector{}, true
		}
		name, ok := p.t.peek()
		if !ok || name.Kind != Ident {
			return nil, false
		}
		p.t.next()
		return ClassSelector(name.Value), true
	case Ident:
		return TypeSelector(tok.Value), true
	}
	return UnknownSelector{}, true
}

// consumeListOfDeclarations consumes declarations up to and including the
// close brace of the block, or to the end of input.
func (p *Parser) consumeListOfDeclarations() []Declaration {
	var declarations []Declaration

	for {
		tok, ok := p.t.peek()
		if !ok {
			return declarations
		}

		switch tok.Kind {
		case CloseCurly:
			p.t.next()
			return declarations
		case Ident:
			if d := p.consumeDeclaration(); d != nil {
				declarations = append(declarations, *d)
			}
		default:
			p.t.next()
		}
	}
}

// consumeDeclaration consumes "property: value". Only the first token of the
// value is kept. It returns nil when the colon or the value is missing.
func (p *Parser) consumeDeclaration() *Declaration {
	property, _ := p.t.next()

	d := NewDeclaration()
	d.SetProperty(NormalizePropertyName(property.Value))

	if tok, ok := p.t.peek(); !ok || tok.Kind != Colon {
		return nil
	}
	p.t.next()

	value, ok := p.t.peek()
	if !ok || value.Kind == Semicolon || value.Kind == CloseCurly {
		return nil
	}
	p.t.next()
	d.SetValue(value)

	p.skipValue(value)
	return d
}

// skipValue drops the rest of a declaration value, leaving the terminating
// semicolon or close brace in the stream.
func (p *Parser) skipValue(first Token) {
	depth := 0
	if opensBlock(first.Kind) {
		depth++
	}

	for {
		tok, ok := p.t.peek()
		if !ok {
			return
		}

		switch {
		case depth == 0 && (tok.Kind == Semicolon || tok.Kind == CloseCurly):
			return
		case opensBlock(tok.Kind):
			depth++
		case closesBlock(tok.Kind) && depth > 0:
			depth--
		}
		p.t.next()
	}
}

func (p *Parser) skipUntil(kind TokenKind) {
	for {
		tok, ok := p.t.peek()
		if !ok || tok.Kind == kind {
			return
		}
		p.t.next()
	}
}

func opensBlock(k TokenKind) bool {
	return k == OpenParen || k == OpenSquare || k == OpenCurly
}

func closesBlock(k TokenKind) bool {
	return k == CloseParen || k == CloseSquare || k == CloseCurly
}

// NormalizePropertyName normalizes CSS property names
func NormalizePropertyName(property string) string {
	return strings.ToLower(strings.TrimSpace(property))
}
