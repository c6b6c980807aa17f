package resolver

import (
	"sort"
	"strings"

	"markup/internal/css"
	"markup/internal/html"
)

// Resolver computes the declarations that apply to an element from a parsed
// style sheet and the element's own style attribute.
type Resolver struct {
	stylesheet *css.Stylesheet
}

// New creates a new style resolver
func New(stylesheet *css.Stylesheet) *Resolver {
	return &Resolver{stylesheet: stylesheet}
}

// Matches reports whether a simple selector matches node. Unknown selectors
// never match.
func Matches(selector css.Selector, node html.Node) bool {
	switch s := selector.(type) {
	case css.TypeSelector:
		return strings.EqualFold(node.TagName(), string(s))
	case css.ClassSelector:
		for _, class := range node.Classes() {
			if class == string(s) {
				return true
			}
		}
	case css.IdSelector:
		return node.ID() != "" && node.ID() == string(s)
	}
	return false
}

// MatchingRules returns the rules whose selector matches node, in source
// order.
func (r *Resolver) MatchingRules(node html.Node) []css.MatchResult {
	var matches []css.MatchResult

	for i := range r.stylesheet.Rules {
		rule := &r.stylesheet.Rules[i]
		if Matches(rule.Selector, node) {
			matches = append(matches, css.MatchResult{Rule: rule, SourceOrder: i})
		}
	}

	return matches
}

// ResolveStyles computes the final styles for an HTML element.
// Returns a map of property -> declaration with the cascade applied.
func (r *Resolver) ResolveStyles(node html.Node) map[string]css.Declaration {
	// Step 1: Find all CSS rules that match this element
	matches := r.MatchingRules(node)

	// Step 2: Get existing inline styles
	inlineStyles := css.ParseDeclarations(node.Attributes()["style"])

	// Step 3: Apply CSS cascade to determine winning declarations
	return r.applyCascade(matches, inlineStyles)
}

// cascadeEntry tracks the cascade information for a declaration
type cascadeEntry struct {
	specificity css.Specificity
	sourceOrder int
}

// applyCascade picks a winner per property: higher specificity first, then
// later source order. Inline declarations beat every rule.
func (r *Resolver) applyCascade(matches []css.MatchResult, inlineStyles []css.Declaration) map[string]css.Declaration {
	winning := make(map[string]css.Declaration)
	entries := make(map[string]cascadeEntry)

	consider := func(d css.Declaration, entry cascadeEntry) {
		existing, ok := entries[d.Property]
		if ok && !shouldReplace(entry, existing) {
			return
		}
		winning[d.Property] = d
		entries[d.Property] = entry
	}

	for _, match := range matches {
		for _, d := range match.Rule.Declarations {
			consider(d, cascadeEntry{
				specificity: match.Rule.Selector.Specificity(),
				sourceOrder: match.SourceOrder,
			})
		}
	}

	for i, d := range inlineStyles {
		consider(d, cascadeEntry{
			specificity: css.SpecificityFromInline(),
			sourceOrder: len(r.stylesheet.Rules) + i,
		})
	}

	return winning
}

// shouldReplace determines if a new declaration should replace the existing winning declaration
func shouldReplace(newEntry, existingEntry cascadeEntry) bool {
	switch newEntry.specificity.Compare(existingEntry.specificity) {
	case 1:
		return true
	case -1:
		return false
	}
	return newEntry.sourceOrder >= existingEntry.sourceOrder
}

// StylesString converts a styles map to a CSS string for inline styles
func StylesString(styles map[string]css.Declaration) string {
	if len(styles) == 0 {
		return ""
	}

	// Sort properties for consistent output
	properties := make([]string, 0, len(styles))
	for property := range styles {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	parts := make([]string, 0, len(properties))
	for _, property := range properties {
		parts = append(parts, styles[property].String())
	}

	return strings.Join(parts, "; ")
}
