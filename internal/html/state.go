package html

import "fmt"

// State is a tokenizer state.
type State int

const (
	Data State = iota
	TagOpen
	EndTagOpen
	TagName
	BeforeAttributeName
	AttributeName
	AfterAttributeName
	BeforeAttributeValue
	AttributeValueDoubleQuoted
	AttributeValueSingleQuoted
	AttributeValueUnquoted
	AfterAttributeValueQuoted
	SelfClosingStartTag
	ScriptData
	ScriptDataLessThanSign
	ScriptDataEndTagOpen
	ScriptDataEndTagName
	TemporaryBuffer
)

var stateNames = [...]string{
	Data:                       "Data",
	TagOpen:                    "TagOpen",
	EndTagOpen:                 "EndTagOpen",
	TagName:                    "TagName",
	BeforeAttributeName:        "BeforeAttributeName",
	AttributeName:              "AttributeName",
	AfterAttributeName:         "AfterAttributeName",
	BeforeAttributeValue:       "BeforeAttributeValue",
	AttributeValueDoubleQuoted: "AttributeValueDoubleQuoted",
	AttributeValueSingleQuoted: "AttributeValueSingleQuoted",
	AttributeValueUnquoted:     "AttributeValueUnquoted",
	AfterAttributeValueQuoted:  "AfterAttributeValueQuoted",
	SelfClosingStartTag:        "SelfClosingStartTag",
	ScriptData:                 "ScriptData",
	ScriptDataLessThanSign:     "ScriptDataLessThanSign",
	ScriptDataEndTagOpen:       "ScriptDataEndTagOpen",
	ScriptDataEndTagName:       "ScriptDataEndTagName",
	TemporaryBuffer:            "TemporaryBuffer",
}

// String returns the state name, for diagnostics.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Whitespace is defined to be U+0009 TAB, U+000A LF, U+000C FF, or U+0020 SPACE
func isWhitespace(c rune) bool {
	return c == '\t' || c == '\n' || c == '\f' || c == ' '
}

func isASCIIAlpha(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isASCIIUpper(c rune) bool {
	return 'A' <= c && c <= 'Z'
}

func toASCIILower(c rune) rune {
	if isASCIIUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}
