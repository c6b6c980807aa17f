package html

import "markup/internal/css"

// Node represents an HTML element in a document tree.
// Tree construction is not done by the tokenizer; a Node comes from an
// external DOM builder such as the goquery adapter.
type Node interface {
	// Core node information
	TagName() string
	ID() string
	Classes() []string
	Attributes() map[string]string

	// Content access
	Text() string
	OuterHTML() string

	// Selector matching support
	Matches(selector css.Selector) (bool, error)
}

// Document represents the complete HTML document
type Document interface {
	// Element selection
	Elements() []Node
	Select(selector css.Selector) ([]Node, error)

	// Style tag management
	StyleTexts() []string
}

// Parser handles parsing HTML documents into a tree
type Parser interface {
	Parse(html string) (Document, error)
}
