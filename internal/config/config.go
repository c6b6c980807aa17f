package config

import (
	"fmt"
	"strings"
)

// Mode selects what kind of input is processed
type Mode string

const (
	ModeHTML     Mode = "html"     // tokenize an HTML document
	ModeCSS      Mode = "css"      // parse a style sheet
	ModeDocument Mode = "document" // tokenize HTML and parse its embedded style sheets
)

// Config holds configuration options for a front-end run
type Config struct {
	// Mode selects the input type
	Mode Mode

	// ShowTokens prints the HTML token stream
	ShowTokens bool

	// CoalesceText prints runs of character tokens as one line of text
	CoalesceText bool

	// ShowRules prints the parsed style rules
	ShowRules bool

	// MatchSelectors reports, for each rule, the elements its selector matches
	// in a DOM built from the document
	MatchSelectors bool

	// ComputedStyles prints the resolved declarations for every styled element
	ComputedStyles bool
}

// Default returns the configuration used when no flags are given
func Default() Config {
	return Config{
		Mode:           ModeDocument,
		ShowTokens:     true,
		CoalesceText:   true,
		ShowRules:      true,
		MatchSelectors: false,
		ComputedStyles: false,
	}
}

// ParseMode converts a flag value into a Mode
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeHTML, ModeCSS, ModeDocument:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode: %s (valid: %s, %s, %s)", s, ModeHTML, ModeCSS, ModeDocument)
}

// Validate checks that the options can be combined
func (c Config) Validate() error {
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if (c.MatchSelectors || c.ComputedStyles) && c.Mode != ModeDocument {
		return fmt.Errorf("selector matching requires mode %q", ModeDocument)
	}
	return nil
}
