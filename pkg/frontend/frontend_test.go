package frontend

import (
	"testing"

	"markup/internal/config"
	"markup/internal/css"
	"markup/internal/html"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const page = `<html><head><style>
p { color: red }
.note { color: blue; margin: 0 }
#intro { width: 10px }
</style></head>
<body><p id="intro" class="note">Hi</p><p style="color: green">There</p><div class="note"></div></body></html>`

func TestExtractStyleTexts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"none", `<p>x</p>`, nil},
		{"one", `<style>a{b:c}</style>`, []string{"a{b:c}"}},
		{"two", `<style>a{}</style><p></p><style>b{}</style>`, []string{"a{}", "b{}"}},
		{"markup inside is text", `<style>a</p>b</style>`, []string{"a</p>b"}},
		{"unterminated", `<style>a{b:c}`, []string{"a{b:c}"}},
		{"empty", `<style></style>`, []string{""}},
		{"self-closing is ignored", `<style/>a{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractStyleTexts(html.Tokenize(tt.in))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ExtractStyleTexts(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestEngine_Load(t *testing.T) {
	result, err := NewWithDefaults().Load(page)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok := result.Tokens[len(result.Tokens)-1].(*html.EOFMarker); !ok {
		t.Fatalf("last token = %v, want EOF", result.Tokens[len(result.Tokens)-1])
	}
	if len(result.StyleSheets) != 1 {
		t.Fatalf("got %d style sheets, want 1", len(result.StyleSheets))
	}

	var selectors []string
	for _, rule := range result.StyleSheets[0].Rules {
		selectors = append(selectors, rule.Selector.String())
	}
	if diff := cmp.Diff([]string{"p", ".note", "#intro"}, selectors); diff != "" {
		t.Fatalf("selectors mismatch (-want +got):\n%s", diff)
	}

	if result.RuleMatches != nil || result.ComputedStyles != nil {
		t.Fatal("matching ran although it is disabled")
	}
}

func TestEngine_ProcessMatching(t *testing.T) {
	cfg := config.Default()
	cfg.MatchSelectors = true
	cfg.ComputedStyles = true

	result, err := New(cfg).Process(page)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	var counts []int
	for _, m := range result.RuleMatches {
		counts = append(counts, m.Elements)
	}
	if diff := cmp.Diff([]int{2, 2, 1}, counts); diff != "" {
		t.Errorf("match counts mismatch (-want +got):\n%s", diff)
	}
	if result.ProcessingStats.SelectorsMatched != 5 {
		t.Errorf("SelectorsMatched = %d, want 5", result.ProcessingStats.SelectorsMatched)
	}

	got := map[string]map[string]string{}
	for _, es := range result.ComputedStyles {
		styles := map[string]string{}
		for property, d := range es.Styles {
			styles[property] = d.Value.String()
		}
		got[es.Element] = styles
	}
	want := map[string]map[string]string{
		"p#intro.note": {"color": "blue", "margin": "0", "width": "10px"},
		"p":            {"color": "green"},
		"div.note":     {"color": "blue", "margin": "0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("computed styles mismatch (-want +got):\n%s", diff)
	}

	var texts []string
	for _, es := range result.ComputedStyles {
		texts = append(texts, es.Text)
	}
	if diff := cmp.Diff([]string{"Hi", "There", ""}, texts); diff != "" {
		t.Errorf("element texts mismatch (-want +got):\n%s", diff)
	}

	// body, p, p, div
	if n := result.ProcessingStats.HTMLElementsProcessed; n != 4 {
		t.Errorf("HTMLElementsProcessed = %d, want 4", n)
	}
}

func TestEngine_ProcessEscapedSelectors(t *testing.T) {
	cfg := config.Default()
	cfg.MatchSelectors = true
	cfg.ComputedStyles = true

	input := `<style>.\31 x { color: red } #a\.b { width: 1px }</style><p class="1x">a</p><p id="a.b">b</p>`
	result, err := New(cfg).Process(input)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []RuleMatch{
		{Sheet: 0, Rule: 0, Selector: css.ClassSelector("1x"), Elements: 1},
		{Sheet: 0, Rule: 1, Selector: css.IdSelector("a.b"), Elements: 1},
	}
	if diff := cmp.Diff(want, result.RuleMatches); diff != "" {
		t.Errorf("rule matches mismatch (-want +got):\n%s", diff)
	}
	if n := len(result.ComputedStyles); n != 2 {
		t.Errorf("got %d styled elements, want 2", n)
	}
}

func TestEngine_ProcessModes(t *testing.T) {
	t.Run("css", func(t *testing.T) {
		cfg := config.Default()
		cfg.Mode = config.ModeCSS

		result, err := New(cfg).Process(`a { b: c } @media x { d { e: f } } g { h: i }`)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if result.Tokens != nil {
			t.Errorf("css mode produced %d HTML tokens", len(result.Tokens))
		}
		if got := result.ProcessingStats.CSSRulesParsed; got != 2 {
			t.Errorf("CSSRulesParsed = %d, want 2", got)
		}
	})

	t.Run("html", func(t *testing.T) {
		cfg := config.Default()
		cfg.Mode = config.ModeHTML

		result, err := New(cfg).Process(`<b>x</b>`)
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if got := result.ProcessingStats.HTMLTokens; got != 4 {
			t.Errorf("HTMLTokens = %d, want 4", got)
		}
		if result.StyleSheets != nil {
			t.Errorf("html mode parsed %d style sheets", len(result.StyleSheets))
		}
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := config.Default()
		cfg.Mode = config.ModeHTML
		cfg.ComputedStyles = true

		if _, err := New(cfg).Process(`<p>`); err == nil {
			t.Fatal("Process accepted computed styles in html mode")
		}
	})
}

func TestEngine_ParseCSS(t *testing.T) {
	sheet := NewWithDefaults().ParseCSS(`div { color: red }`)
	want := &css.Stylesheet{Rules: []css.QualifiedRule{{
		Selector:     css.TypeSelector("div"),
		Declarations: []css.Declaration{{Property: "color", Value: css.Token{Kind: css.Ident, Value: "red"}}},
	}}}
	if diff := cmp.Diff(want, sheet); diff != "" {
		t.Fatalf("ParseCSS mismatch (-want +got):\n%s", diff)
	}
}
