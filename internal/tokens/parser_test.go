package tokens

import (
	"strings"
	"testing"
)

func fixed(s string) Handler {
	return HandlerFunc(func(Token, string) (string, bool) { return s, true })
}

func testParser(t *testing.T) *Parser {
	t.Helper()
	warn, err := NewTemplateHandler("warningbox", `<div class="warningbox">{{.Argument}}</div>`)
	if err != nil {
		t.Fatal(err)
	}
	return NewParser(map[string]Handler{
		"warningbox": warn,
		"TOC":        fixed(`<div class="toc">TOC</div>`),
		"a":          fixed("A"),
		"b":          fixed("B"),
		"declines":   HandlerFunc(func(Token, string) (string, bool) { return "never", false }),
		"panics":     HandlerFunc(func(Token, string) (string, bool) { panic("boom") }),
	})
}

// ---------------------------------------------------------------------------
// TestReplaceTokensAfterParse - Substitution rules
// ---------------------------------------------------------------------------

func TestReplaceTokensAfterParse(t *testing.T) {
	t.Parallel()

	p := testParser(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paragraph token replaces paragraph",
			input: "<p>{{warningbox:Be careful}}</p>\n",
			want:  "<div class=\"warningbox\">Be careful</div>\n",
		},
		{
			name:  "paragraph token with surrounding whitespace",
			input: "<p>\n{{toc}}\n</p>",
			want:  `<div class="toc">TOC</div>`,
		},
		{
			name:  "type tag case insensitive",
			input: "<p>{{ToC}}</p>",
			want:  `<div class="toc">TOC</div>`,
		},
		{
			name:  "inline token keeps paragraph",
			input: "<p>Before {{a}} after</p>",
			want:  "<p>Before A after</p>",
		},
		{
			name:  "token at paragraph start keeps opening tag",
			input: "<p>{{a}} then text</p>",
			want:  "<p>A then text</p>",
		},
		{
			name:  "token at paragraph end keeps closing tag",
			input: "<p>text then {{b}}</p>",
			want:  "<p>text then B</p>",
		},
		{
			name:  "several tokens",
			input: "<p>{{a}} and {{b}}</p>",
			want:  "<p>A and B</p>",
		},
		{
			name:  "argument with markup",
			input: "<p>{{warningbox:<strong>Bold</strong> note}}</p>",
			want:  `<div class="warningbox"><strong>Bold</strong> note</div>`,
		},
		{
			name:  "unknown type verbatim",
			input: "<p>{{nope:x}}</p>",
			want:  "<p>{{nope:x}}</p>",
		},
		{
			name:  "declining handler verbatim",
			input: "<p>{{declines}}</p>",
			want:  "<p>{{declines}}</p>",
		},
		{
			name:  "panicking handler verbatim",
			input: "<p>x {{panics}} y</p>",
			want:  "<p>x {{panics}} y</p>",
		},
		{
			name:  "inline code untouched",
			input: "<p>Use <code>{{toc}}</code> here</p>",
			want:  "<p>Use <code>{{toc}}</code> here</p>",
		},
		{
			name:  "code block untouched",
			input: "<pre><code class=\"language-md\">{{a}}\n{{b}}\n</code></pre><p>{{a}}</p>",
			want:  "<pre><code class=\"language-md\">{{a}}\n{{b}}\n</code></pre>A",
		},
		{
			name:  "malformed token untouched",
			input: "<p>{{ a b }} {{}} {{1x}}</p>",
			want:  "<p>{{ a b }} {{}} {{1x}}</p>",
		},
		{
			name:  "unterminated token stays in its paragraph",
			input: "<p>{{warningbox:oops</p>\n<p>later}} {{a}}</p>",
			want:  "<p>{{warningbox:oops</p>\n<p>later}} A</p>",
		},
		{
			name:  "argument may contain other closing tags",
			input: "<p>{{warningbox:<em>x</em> in <code>y</code>}}</p>",
			want:  `<div class="warningbox"><em>x</em> in <code>y</code></div>`,
		},
		{
			name:  "argument with preformatted close tag",
			input: "<p>{{warningbox:a</pre>b}}</p>",
			want:  `<div class="warningbox">a</pre>b</div>`,
		},
		{
			name:  "no tokens",
			input: "<h1 id=\"x\">Title</h1>",
			want:  "<h1 id=\"x\">Title</h1>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.ReplaceTokensAfterParse(tt.input); got != tt.want {
				t.Errorf("ReplaceTokensAfterParse(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReplaceTokensAfterParse_HandlerSeesToken(t *testing.T) {
	t.Parallel()

	var got Token
	var page string
	p := NewParser(map[string]Handler{
		"embed": HandlerFunc(func(tok Token, html string) (string, bool) {
			got, page = tok, html
			return "", true
		}),
	})

	input := "<p>See {{EMBED: video 42 }}</p>"
	out := p.ReplaceTokensAfterParse(input)

	want := Token{Type: "embed", Argument: "video 42", Raw: "{{EMBED: video 42 }}"}
	if got != want {
		t.Errorf("token = %+v, want %+v", got, want)
	}
	if page != input {
		t.Errorf("page = %q, want the full input", page)
	}
	if out != "<p>See </p>" {
		t.Errorf("output = %q", out)
	}
}

func TestParser_WithAndTypes(t *testing.T) {
	t.Parallel()

	base := NewParser(map[string]Handler{"a": fixed("A"), "nil": nil})
	extended := base.With("B", fixed("B"))

	if got := strings.Join(base.Types(), ","); got != "a" {
		t.Errorf("base Types() = %q, want a", got)
	}
	if got := strings.Join(extended.Types(), ","); got != "a,b" {
		t.Errorf("extended Types() = %q, want a,b", got)
	}
	if got := base.ReplaceTokensAfterParse("{{b}}"); got != "{{b}}" {
		t.Errorf("With() must not modify the receiver, got %q", got)
	}
	if got := extended.ReplaceTokensAfterParse("{{b}}"); got != "B" {
		t.Errorf("extended parser output = %q", got)
	}
}
