package frontend

import (
	"fmt"
	"strings"
	"time"

	"markup/internal/config"
	"markup/internal/css"
	"markup/internal/html"
	"markup/internal/resolver"
)

// Engine runs the markup front end: HTML tokenization, style sheet parsing and,
// optionally, selector matching against a DOM built by an external parser.
type Engine struct {
	config     config.Config
	htmlParser html.Parser
}

// New creates a new engine with the given configuration
func New(cfg config.Config) *Engine {
	return &Engine{
		config:     cfg,
		htmlParser: html.NewParser(),
	}
}

// NewWithDefaults creates a new engine with the default configuration
func NewWithDefaults() *Engine {
	return New(config.Default())
}

// Result contains the output of one run
type Result struct {
	Tokens          []html.Token      // HTML tokens, ending with EOF
	StyleSheets     []*css.Stylesheet // one per <style> element, or the single input sheet
	RuleMatches     []RuleMatch       // per-rule match counts when matching is enabled
	ComputedStyles  []ElementStyles   // resolved declarations per styled element
	ProcessingStats ProcessingStats   // Performance and processing statistics
}

// RuleMatch records how many elements one rule's selector matched
type RuleMatch struct {
	Sheet    int
	Rule     int
	Selector css.Selector
	Elements int
}

// ElementStyles holds the resolved declarations of one element
type ElementStyles struct {
	Element string
	Text    string // trimmed text content, for locating the element
	Styles  map[string]css.Declaration
}

// ProcessingStats contains counters from a run
type ProcessingStats struct {
	HTMLTokens            int   // Tokens produced, EOF included
	StyleSheets           int   // Style sheets parsed
	CSSRulesParsed        int   // Total CSS rules parsed
	HTMLElementsProcessed int   // Elements visited while resolving styles
	SelectorsMatched      int   // Total selector matches found
	ProcessingTimeMs      int64 // Processing time in milliseconds
}

// TokenizeHTML returns the token stream of an HTML document
func (e *Engine) TokenizeHTML(htmlContent string) []html.Token {
	return html.Tokenize(htmlContent)
}

// ParseCSS parses a style sheet
func (e *Engine) ParseCSS(cssContent string) *css.Stylesheet {
	return css.Parse(cssContent)
}

// Process handles input according to the configured mode
func (e *Engine) Process(input string) (*Result, error) {
	if err := e.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	startTime := time.Now()

	var (
		result *Result
		err    error
	)
	switch e.config.Mode {
	case config.ModeHTML:
		result = &Result{Tokens: e.TokenizeHTML(input)}
	case config.ModeCSS:
		result = &Result{StyleSheets: []*css.Stylesheet{e.ParseCSS(input)}}
	default:
		result, err = e.Load(input)
	}
	if err != nil {
		return nil, err
	}

	result.ProcessingStats.HTMLTokens = len(result.Tokens)
	result.ProcessingStats.StyleSheets = len(result.StyleSheets)
	for _, sheet := range result.StyleSheets {
		result.ProcessingStats.CSSRulesParsed += len(sheet.Rules)
	}
	result.ProcessingStats.ProcessingTimeMs = time.Since(startTime).Milliseconds()
	return result, nil
}

// Load tokenizes a document, parses the style sheets embedded in its <style>
// elements and, if configured, matches their rules against the document.
func (e *Engine) Load(htmlContent string) (*Result, error) {
	result := &Result{Tokens: e.TokenizeHTML(htmlContent)}

	for _, text := range ExtractStyleTexts(result.Tokens) {
		result.StyleSheets = append(result.StyleSheets, e.ParseCSS(text))
	}

	if !e.config.MatchSelectors && !e.config.ComputedStyles {
		return result, nil
	}

	doc, err := e.htmlParser.Parse(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	if e.config.MatchSelectors {
		if err := e.matchRules(doc, result); err != nil {
			return nil, fmt.Errorf("failed to match selectors: %w", err)
		}
	}

	if e.config.ComputedStyles {
		e.computeStyles(doc, result)
	}

	return result, nil
}

// ExtractStyleTexts collects the character content of every <style> element
// in a token stream.
func ExtractStyleTexts(tokens []html.Token) []string {
	var (
		texts   []string
		current strings.Builder
		inStyle bool
	)

	for _, tok := range tokens {
		switch t := tok.(type) {
		case *html.StartTag:
			if t.Name == "style" && !t.SelfClosing {
				inStyle = true
				current.Reset()
			}
		case *html.EndTag:
			if t.Name == "style" && inStyle {
				inStyle = false
				texts = append(texts, current.String())
			}
		case *html.Char:
			if inStyle {
				current.WriteRune(t.Rune)
			}
		case *html.EOFMarker:
			// An unterminated style element still contributes its text.
			if inStyle {
				texts = append(texts, current.String())
			}
		}
	}

	return texts
}

// matchRules counts the elements each rule's selector selects
func (e *Engine) matchRules(doc html.Document, result *Result) error {
	for i, sheet := range result.StyleSheets {
		for j, rule := range sheet.Rules {
			nodes, err := doc.Select(rule.Selector)
			if err != nil {
				return err
			}
			result.RuleMatches = append(result.RuleMatches, RuleMatch{
				Sheet:    i,
				Rule:     j,
				Selector: rule.Selector,
				Elements: len(nodes),
			})
			result.ProcessingStats.SelectorsMatched += len(nodes)
		}
	}
	return nil
}

// computeStyles resolves the cascade for every element that can carry styles
func (e *Engine) computeStyles(doc html.Document, result *Result) {
	// All sheets cascade together in document order.
	merged := css.NewStylesheet()
	for _, sheet := range result.StyleSheets {
		merged.Rules = append(merged.Rules, sheet.Rules...)
	}
	styleResolver := resolver.New(merged)

	for _, element := range doc.Elements() {
		if shouldSkipElement(element.TagName()) {
			continue
		}
		result.ProcessingStats.HTMLElementsProcessed++

		styles := styleResolver.ResolveStyles(element)
		if len(styles) == 0 {
			continue
		}
		result.ComputedStyles = append(result.ComputedStyles, ElementStyles{
			Element: describe(element),
			Text:    strings.TrimSpace(element.Text()),
			Styles:  styles,
		})
	}
}

// shouldSkipElement determines if an element never receives styles
func shouldSkipElement(tagName string) bool {
	skipTags := map[string]bool{
		"html":     true,
		"head":     true,
		"title":    true,
		"meta":     true,
		"link":     true,
		"script":   true,
		"style":    true,
		"noscript": true,
		"base":     true,
	}

	return skipTags[strings.ToLower(tagName)]
}

// describe renders an element as tag#id.class for reports
func describe(node html.Node) string {
	var b strings.Builder
	b.WriteString(node.TagName())
	if id := node.ID(); id != "" {
		b.WriteString("#" + id)
	}
	for _, class := range node.Classes() {
		b.WriteString("." + class)
	}
	return b.String()
}
