package html

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	nethtml "golang.org/x/net/html"
)

// chars returns one Char token per rune of s.
func chars(s string) []Token {
	var toks []Token
	for _, r := range s {
		toks = append(toks, &Char{r})
	}
	return toks
}

func seq(parts ...any) []Token {
	var toks []Token
	for _, p := range parts {
		switch p := p.(type) {
		case Token:
			toks = append(toks, p)
		case []Token:
			toks = append(toks, p...)
		}
	}
	return append(toks, &EOFMarker{})
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "",
			want:  seq(),
		},
		{
			name:  "anchor with unquoted attribute",
			input: "<a href=x>hi</a>",
			want: seq(
				&StartTag{Name: "a", Attributes: []Attribute{{Name: "href", Value: "x"}}},
				chars("hi"),
				&EndTag{Name: "a"},
			),
		},
		{
			name:  "uppercase tag",
			input: "<DIV>",
			want:  seq(&StartTag{Name: "div", SelfClosing: false, Attributes: []Attribute{}}),
		},
		{
			name:  "quoted values keep case",
			input: `<p class="Note" ID='Main'>`,
			want: seq(&StartTag{Name: "p", Attributes: []Attribute{
				{Name: "class", Value: "Note"},
				{Name: "id", Value: "Main"},
			}}),
		},
		{
			name:  "self closing",
			input: "<br/>",
			want:  seq(&StartTag{Name: "br", SelfClosing: true}),
		},
		{
			name:  "self closing after unquoted value",
			input: "<img src=a.png />",
			want: seq(&StartTag{Name: "img", SelfClosing: true, Attributes: []Attribute{
				{Name: "src", Value: "a.png"},
			}}),
		},
		{
			name:  "attribute without value",
			input: "<input disabled type=text>",
			want: seq(&StartTag{Name: "input", Attributes: []Attribute{
				{Name: "disabled"},
				{Name: "type", Value: "text"},
			}}),
		},
		{
			name:  "whitespace around equals",
			input: "<a  href = \"x\" >",
			want:  seq(&StartTag{Name: "a", Attributes: []Attribute{{Name: "href", Value: "x"}}}),
		},
		{
			name:  "duplicate attribute keeps first",
			input: "<a x=1 X=2>",
			want:  seq(&StartTag{Name: "a", Attributes: []Attribute{{Name: "x", Value: "1"}}}),
		},
		{
			name:  "attribute name starting with equals",
			input: "<a =b>",
			want:  seq(&StartTag{Name: "a", Attributes: []Attribute{{Name: "=b"}}}),
		},
		{
			name:  "missing attribute value",
			input: "<a b=>",
			want:  seq(&StartTag{Name: "a", Attributes: []Attribute{{Name: "b"}}}),
		},
		{
			name:  "end tag attributes are dropped",
			input: "</a b=c>",
			want:  seq(&EndTag{Name: "a"}),
		},
		{
			name:  "less than in text is dropped",
			input: "5 < 6",
			want:  seq(chars("5  6")),
		},
		{
			name:  "less than before digit is dropped",
			input: "a<1",
			want:  seq(chars("a1")),
		},
		{
			name:  "markup declaration falls back to text",
			input: "<!x>y",
			want:  seq(chars("!x>y")),
		},
		{
			name:  "doctype falls back to text",
			input: "<!DOCTYPE html><p>",
			want:  seq(chars("!DOCTYPE html>"), &StartTag{Name: "p"}),
		},
		{
			name:  "comment falls back to text",
			input: "<!-- note -->x",
			want:  seq(chars("!-- note -->x")),
		},
		{
			name:  "processing instruction falls back to text",
			input: "<?xml?>",
			want:  seq(chars("?xml?>")),
		},
		{
			name:  "end tag open skips to the first letter",
			input: "</1>b>c",
			want:  seq(&EndTag{Name: "b"}, chars("c")),
		},
		{
			name:  "empty end tag",
			input: "</>x",
			want:  seq(),
		},
		{
			name:  "eof in tag name",
			input: "<div",
			want:  seq(),
		},
		{
			name:  "eof in quoted value",
			input: `ab<a href="x`,
			want:  seq(chars("ab")),
		},
		{
			name:  "eof after less than",
			input: "a<",
			want:  seq(chars("a")),
		},
		{
			name:  "script content is raw text",
			input: "<script>if (a<b) x();</script><p>",
			want: seq(
				&StartTag{Name: "script"},
				chars("if (a<b) x();"),
				&EndTag{Name: "script"},
				&StartTag{Name: "p"},
			),
		},
		{
			name:  "inappropriate end tag inside script",
			input: "<script></div></script>",
			want: seq(
				&StartTag{Name: "script"},
				chars("</div>"),
				&EndTag{Name: "script"},
			),
		},
		{
			name:  "slash without letter inside script",
			input: "<script></ x</script>",
			want: seq(
				&StartTag{Name: "script"},
				chars("</ x"),
				&EndTag{Name: "script"},
			),
		},
		{
			name:  "unterminated end tag inside script",
			input: "<script>x</scr",
			want: seq(
				&StartTag{Name: "script"},
				chars("x</scr"),
			),
		},
		{
			name:  "style end tag is case insensitive",
			input: "<style>p{}</STYLE >",
			want: seq(
				&StartTag{Name: "style"},
				chars("p{}"),
				&EndTag{Name: "style"},
			),
		},
		{
			name:  "self closing script is not raw text",
			input: "<script/><b>",
			want: seq(
				&StartTag{Name: "script", SelfClosing: true},
				&StartTag{Name: "b"},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenize_LowercaseNames(t *testing.T) {
	for _, input := range []string{
		`<DIV CLASS="X"></DIV>`,
		`<DiV ClAsS="X"></dIv>`,
		`<div class="X"></div>`,
	} {
		t.Run(input, func(t *testing.T) {
			for _, tok := range Tokenize(input) {
				switch tok := tok.(type) {
				case *StartTag:
					if tok.Name != "div" {
						t.Errorf("start tag name = %q, want %q", tok.Name, "div")
					}
					for _, a := range tok.Attributes {
						if a.Name != strings.ToLower(a.Name) {
							t.Errorf("attribute name %q is not lowercase", a.Name)
						}
						if a.Value != "X" {
							t.Errorf("attribute value = %q, want %q", a.Value, "X")
						}
					}
				case *EndTag:
					if tok.Name != "div" {
						t.Errorf("end tag name = %q, want %q", tok.Name, "div")
					}
				}
			}
		})
	}
}

var malformed = []string{
	"",
	"<",
	"</",
	"<<<>>>",
	"<a",
	"<a ",
	"<a b",
	"<a b=",
	`<a b="`,
	"<a b='c'd>",
	"<a/ b>",
	"<a //>",
	"<!",
	"<!--",
	"</ >",
	"</1>",
	"<script>",
	"<script><",
	"<script></",
	"<script></script",
	"<script></script x='1'",
	"<style></styl",
	"text & more",
	"\x00<\x00>",
	"日本<語 属性=値>",
}

func TestTokenizer_EndsWithSingleEOF(t *testing.T) {
	for _, input := range malformed {
		t.Run(input, func(t *testing.T) {
			toks := Tokenize(input)
			if len(toks) == 0 {
				t.Fatal("no tokens")
			}
			for i, tok := range toks {
				isEOF := tok.Kind() == EOFToken
				if last := i == len(toks)-1; isEOF != last {
					t.Fatalf("token %d (%s) of %d: EOF must be last and only", i, tok, len(toks))
				}
			}
			// Each token consumes at least one character, except the final EOF.
			if limit := len([]rune(input)) + 1; len(toks) > limit {
				t.Fatalf("got %d tokens for %d characters", len(toks), limit-1)
			}
		})
	}
}

func TestTokenizer_NextAfterEOF(t *testing.T) {
	tz := NewTokenizer("a")
	if tok := tz.Next(); tok.Kind() != CharToken {
		t.Fatalf("first token = %s, want CHAR", tok.Kind())
	}
	for i := 0; i < 3; i++ {
		if tok := tz.Next(); tok.Kind() != EOFToken {
			t.Fatalf("call %d: token = %s, want EOF", i, tok.Kind())
		}
	}
}

func TestTokenizer_TokensStopsEarly(t *testing.T) {
	tz := NewTokenizer("abc")
	var got []Token
	for tok := range tz.Tokens() {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff(chars("ab"), got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if tok := tz.Next(); tok.String() != "c" {
		t.Fatalf("next token = %s, want c", tok)
	}
}

func TestTokenizer_State(t *testing.T) {
	tz := NewTokenizer("<script>x</script>")
	tz.Next()
	if got := tz.State(); got != ScriptData {
		t.Fatalf("state after <script> = %s, want %s", got, ScriptData)
	}
	tz.Next()
	tz.Next()
	if got := tz.State(); got != Data {
		t.Fatalf("state after </script> = %s, want %s", got, Data)
	}
}

// Serializing the tokens of a canonical document and tokenizing the result
// again must give the same tokens.
func TestTokenize_Idempotent(t *testing.T) {
	for _, input := range []string{
		`<p class="a">hi</p><br/>`,
		`<ul><li id="x">one</li><li>two</li></ul>`,
		`<script>a<b</script>`,
	} {
		t.Run(input, func(t *testing.T) {
			first := Tokenize(input)

			var b strings.Builder
			for _, tok := range first {
				if tok.Kind() != EOFToken {
					b.WriteString(tok.String())
				}
			}
			if b.String() != input {
				t.Fatalf("serialized = %q, want %q", b.String(), input)
			}

			if diff := cmp.Diff(first, Tokenize(b.String()), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("re-tokenized mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

// The tags produced for well-formed markup agree with the x/net/html
// tokenizer.
func TestTokenize_AgreesWithNetHTML(t *testing.T) {
	type tag struct {
		End         bool
		Name        string
		SelfClosing bool
		Attrs       []Attribute
	}

	input := `<div id="a" class='b c'><P>Hi <EM>there</EM></P><img src=x.png alt=""/><br></div>`

	var want []tag
	z := nethtml.NewTokenizer(strings.NewReader(input))
	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			break
		}
		tok := z.Token()
		var attrs []Attribute
		for _, a := range tok.Attr {
			attrs = append(attrs, Attribute{Name: a.Key, Value: a.Val})
		}
		switch tt {
		case nethtml.StartTagToken:
			want = append(want, tag{Name: tok.Data, Attrs: attrs})
		case nethtml.SelfClosingTagToken:
			want = append(want, tag{Name: tok.Data, SelfClosing: true, Attrs: attrs})
		case nethtml.EndTagToken:
			want = append(want, tag{End: true, Name: tok.Data})
		}
	}

	var got []tag
	for _, tok := range Tokenize(input) {
		switch tok := tok.(type) {
		case *StartTag:
			got = append(got, tag{Name: tok.Name, SelfClosing: tok.SelfClosing, Attrs: tok.Attributes})
		case *EndTag:
			got = append(got, tag{End: true, Name: tok.Name})
		}
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("tags differ from x/net/html (-want +got):\n%s", diff)
	}
}

func FuzzTokenize(f *testing.F) {
	for _, seed := range malformed {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		toks := Tokenize(input)
		if toks[len(toks)-1].Kind() != EOFToken {
			t.Fatalf("last token = %s, want EOF", toks[len(toks)-1])
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind() == EOFToken {
				t.Fatal("EOF before end of stream")
			}
		}
	})
}
