package html

import (
	"iter"
	"slices"

	"golang.org/x/net/html/atom"
)

// Tokenizer turns document text into a stream of tokens. It is driven by
// the consumer: every call to Next runs the state machine until exactly one
// token is ready.
type Tokenizer struct {
	cursor *Cursor
	state  State
	tag    tagBuilder

	// buf collects the letters of a candidate end tag inside raw text so they
	// can be replayed as characters when the tag turns out not to close it.
	buf []rune

	lastStartTag string
	done         bool
}

// NewTokenizer creates a tokenizer over the whole of input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{cursor: NewCursor(input), state: Data}
}

// Tokenize returns every token of input, ending with the EOF token.
func Tokenize(input string) []Token {
	return slices.Collect(NewTokenizer(input).Tokens())
}

// Tokens yields tokens until, and including, the EOF token.
func (t *Tokenizer) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := t.Next()
			if !yield(tok) || tok.Kind() == EOFToken {
				return
			}
		}
	}
}

// State returns the state the tokenizer will resume in.
func (t *Tokenizer) State() State {
	return t.state
}

// Next returns the next token. Once EOF has been returned the consumer should
// stop; further calls keep returning EOF.
func (t *Tokenizer) Next() Token {
	if t.done {
		return &EOFMarker{}
	}

	for {
		c := t.cursor.Advance()

		switch t.state {
		case Data:
			switch {
			case c == '<':
				t.state = TagOpen
			case c == EOF:
				return t.eof()
			default:
				return &Char{c}
			}

		case TagOpen:
			switch {
			case c == '/':
				t.state = EndTagOpen
			case isASCIIAlpha(c):
				t.tag.begin(true)
				t.reconsumeIn(TagName)
			case c == EOF:
				return t.eof()
			default:
				// The '<' itself is dropped.
				t.reconsumeIn(Data)
			}

		case EndTagOpen:
			switch {
			case c == EOF:
				return t.eof()
			case isASCIIAlpha(c):
				t.tag.begin(false)
				t.reconsumeIn(TagName)
			default:
				// Skipped until a letter starts the tag name.
			}

		case TagName:
			switch {
			case isWhitespace(c):
				t.state = BeforeAttributeName
			case c == '/':
				t.state = SelfClosingStartTag
			case c == '>':
				return t.emitTag()
			case c == EOF:
				return t.eof()
			default:
				t.tag.appendName(toASCIILower(c))
			}

		case BeforeAttributeName:
			switch {
			case isWhitespace(c):
			case c == '/' || c == '>' || c == EOF:
				t.reconsumeIn(AfterAttributeName)
			case c == '=':
				t.tag.startAttribute()
				t.tag.appendAttribute(c, true)
				t.state = AttributeName
			default:
				t.tag.startAttribute()
				t.reconsumeIn(AttributeName)
			}

		case AttributeName:
			switch {
			case isWhitespace(c) || c == '/' || c == '>' || c == EOF:
				t.reconsumeIn(AfterAttributeName)
			case c == '=':
				t.state = BeforeAttributeValue
			default:
				t.tag.appendAttribute(toASCIILower(c), true)
			}

		case AfterAttributeName:
			switch {
			case isWhitespace(c):
			case c == '/':
				t.state = SelfClosingStartTag
			case c == '=':
				t.state = BeforeAttributeValue
			case c == '>':
				return t.emitTag()
			case c == EOF:
				return t.eof()
			default:
				t.tag.startAttribute()
				t.reconsumeIn(AttributeName)
			}

		case BeforeAttributeValue:
			switch {
			case isWhitespace(c):
			case c == '"':
				t.state = AttributeValueDoubleQuoted
			case c == '\'':
				t.state = AttributeValueSingleQuoted
			case c == '>':
				return t.emitTag()
			default:
				t.reconsumeIn(AttributeValueUnquoted)
			}

		case AttributeValueDoubleQuoted, AttributeValueSingleQuoted:
			quote := '"'
			if t.state == AttributeValueSingleQuoted {
				quote = '\''
			}
			switch c {
			case quote:
				t.state = AfterAttributeValueQuoted
			case EOF:
				return t.eof()
			default:
				t.tag.appendAttribute(c, false)
			}

		case AttributeValueUnquoted:
			switch {
			case isWhitespace(c):
				t.state = BeforeAttributeName
			case c == '>':
				return t.emitTag()
			case c == EOF:
				return t.eof()
			default:
				t.tag.appendAttribute(c, false)
			}

		case AfterAttributeValueQuoted:
			switch {
			case isWhitespace(c):
				t.state = BeforeAttributeName
			case c == '/':
				t.state = SelfClosingStartTag
			case c == '>':
				return t.emitTag()
			case c == EOF:
				return t.eof()
			default:
				t.reconsumeIn(BeforeAttributeName)
			}

		case SelfClosingStartTag:
			switch c {
			case '>':
				t.tag.setSelfClosing()
				return t.emitTag()
			case EOF:
				return t.eof()
			default:
				t.reconsumeIn(BeforeAttributeName)
			}

		case ScriptData:
			switch c {
			case '<':
				t.state = ScriptDataLessThanSign
			case EOF:
				return t.eof()
			default:
				return &Char{c}
			}

		case ScriptDataLessThanSign:
			if c == '/' {
				t.buf = t.buf[:0]
				t.state = ScriptDataEndTagOpen
				continue
			}
			t.reconsumeIn(ScriptData)
			return &Char{'<'}

		case ScriptDataEndTagOpen:
			if isASCIIAlpha(c) {
				t.tag.begin(false)
				t.reconsumeIn(ScriptDataEndTagName)
				continue
			}
			t.buf = append(t.buf[:0], '<', '/')
			t.reconsumeIn(TemporaryBuffer)

		case ScriptDataEndTagName:
			switch {
			case isWhitespace(c) && t.appropriateEndTag():
				t.state = BeforeAttributeName
			case c == '/' && t.appropriateEndTag():
				t.state = SelfClosingStartTag
			case c == '>' && t.appropriateEndTag():
				return t.emitTag()
			case isASCIIAlpha(c):
				t.tag.appendName(toASCIILower(c))
				t.buf = append(t.buf, c)
			default:
				t.tag.discard()
				t.buf = append([]rune{'<', '/'}, t.buf...)
				t.reconsumeIn(TemporaryBuffer)
			}

		case TemporaryBuffer:
			if len(t.buf) == 0 {
				t.reconsumeIn(ScriptData)
				continue
			}
			t.cursor.Rewind()
			r := t.buf[0]
			t.buf = t.buf[1:]
			return &Char{r}

		default:
			invariant("Next", "unknown state "+t.state.String())
		}
	}
}

// reconsumeIn switches to state and hands the current character back to it.
func (t *Tokenizer) reconsumeIn(state State) {
	t.state = state
	t.cursor.Rewind()
}

// emitTag hands out the finished tag and picks the state that follows it.
func (t *Tokenizer) emitTag() Token {
	tok := t.tag.take()
	t.state = Data
	if st, ok := tok.(*StartTag); ok {
		t.lastStartTag = st.Name
		if !st.SelfClosing && isRawText(st.Name) {
			t.state = ScriptData
		}
	}
	return tok
}

// eof drops any unfinished tag and ends the stream.
func (t *Tokenizer) eof() Token {
	t.tag.discard()
	t.done = true
	return &EOFMarker{}
}

// appropriateEndTag reports whether the end tag being built closes the raw
// text element that was opened last.
func (t *Tokenizer) appropriateEndTag() bool {
	return t.lastStartTag != "" && t.tag.tagName() == t.lastStartTag
}

// isRawText reports whether the element's content is tokenized as raw text.
func isRawText(name string) bool {
	switch atom.Lookup([]byte(name)) {
	case atom.Script, atom.Style:
		return true
	}
	return false
}
