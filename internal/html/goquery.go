package html

import (
	"fmt"
	"strings"

	"markup/internal/css"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// GoQueryDocument wraps goquery.Document to implement our Document interface
type GoQueryDocument struct {
	doc *goquery.Document
}

// GoQueryNode wraps goquery.Selection to implement our Node interface
type GoQueryNode struct {
	selection *goquery.Selection
}

// GoQueryParser implements our Parser interface using goquery
type GoQueryParser struct{}

// NewParser creates a new GoQuery-based HTML parser
func NewParser() *GoQueryParser {
	return &GoQueryParser{}
}

// Parse parses HTML string into a Document
func (p *GoQueryParser) Parse(htmlStr string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &GoQueryDocument{doc: doc}, nil
}

// Elements returns every element of the document in document order
func (d *GoQueryDocument) Elements() []Node {
	return wrap(d.doc.Find("*"))
}

// Select returns the elements matching selector. An unknown selector
// matches nothing.
func (d *GoQueryDocument) Select(selector css.Selector) ([]Node, error) {
	sel, err := compile(selector)
	if err != nil || sel == nil {
		return nil, err
	}
	return wrap(d.doc.FindMatcher(sel)), nil
}

// StyleTexts returns the text of every <style> element
func (d *GoQueryDocument) StyleTexts() []string {
	var texts []string
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts
}

func wrap(selection *goquery.Selection) []Node {
	nodes := make([]Node, selection.Length())
	selection.Each(func(i int, s *goquery.Selection) {
		nodes[i] = &GoQueryNode{selection: s}
	})
	return nodes
}

// compile turns a simple selector into a cascadia matcher. It returns nil for
// selectors that match nothing.
func compile(selector css.Selector) (cascadia.Selector, error) {
	if _, ok := selector.(css.UnknownSelector); ok || selector == nil {
		return nil, nil
	}
	sel, err := cascadia.Compile(selector.String())
	if err != nil {
		return nil, fmt.Errorf("failed to compile selector %q: %w", selector.String(), err)
	}
	return sel, nil
}

// TagName returns the element's tag name
func (n *GoQueryNode) TagName() string {
	if n.selection.Length() == 0 {
		return ""
	}
	return goquery.NodeName(n.selection)
}

// ID returns the element's ID attribute
func (n *GoQueryNode) ID() string {
	id, _ := n.selection.Attr("id")
	return id
}

// Classes returns the element's class list
func (n *GoQueryNode) Classes() []string {
	class, exists := n.selection.Attr("class")
	if !exists || class == "" {
		return []string{}
	}
	return strings.Fields(class)
}

// Attributes returns all attributes as a map
func (n *GoQueryNode) Attributes() map[string]string {
	attrs := make(map[string]string)

	if n.selection.Length() > 0 {
		for _, attr := range n.selection.Get(0).Attr {
			attrs[attr.Key] = attr.Val
		}
	}

	return attrs
}

// Text returns the text content
func (n *GoQueryNode) Text() string {
	return n.selection.Text()
}

// OuterHTML returns the outer HTML content
func (n *GoQueryNode) OuterHTML() string {
	if n.selection.Length() == 0 {
		return ""
	}

	var buf strings.Builder
	if err := html.Render(&buf, n.selection.Get(0)); err != nil {
		return ""
	}
	return buf.String()
}

// Matches checks if the element matches a simple selector
func (n *GoQueryNode) Matches(selector css.Selector) (bool, error) {
	if n.selection.Length() == 0 {
		return false, nil
	}

	sel, err := compile(selector)
	if err != nil || sel == nil {
		return false, err
	}
	return sel.Match(n.selection.Get(0)), nil
}
