package tokens

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-wikitext/internal/logging"
)

func writeTokens(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tokens.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoadDefinitions - Resolution and fallback
// ---------------------------------------------------------------------------

func TestLoadDefinitions(t *testing.T) {
	t.Parallel()

	rec := &logging.Recorder{}
	path := writeTokens(t, `tokens:
  - name: Spoiler
    description: Hidden text
    html: <div class="spoiler">{{.Argument}}</div>
`)
	got := LoadDefinitions(path, rec)

	want := []Definition{{Name: "Spoiler", Description: "Hidden text", HTML: `<div class="spoiler">{{.Argument}}</div>`}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadDefinitions() mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Messages()) != 0 {
		t.Errorf("unexpected warnings: %v", rec.Messages())
	}
}

func TestLoadDefinitions_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		content     string
		missing     bool
		wantWarning string
	}{
		{name: "missing file", missing: true, wantWarning: "does not exist"},
		{name: "malformed YAML", content: "tokens: [", wantWarning: "failed"},
		{name: "no tokens", content: "tokens: []\n", wantWarning: ErrNoDefinitions.Error()},
		{name: "invalid name", content: "tokens:\n  - name: bad name\n    html: x\n", wantWarning: ErrInvalidName.Error()},
		{name: "duplicate name", content: "tokens:\n  - name: box\n    html: a\n  - name: BOX\n    html: b\n", wantWarning: ErrDuplicateDefinition.Error()},
		{name: "broken template", content: "tokens:\n  - name: box\n    html: \"{{.Argument\"\n", wantWarning: ErrTemplate.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "absent.yaml")
			if !tt.missing {
				path = writeTokens(t, tt.content)
			}
			rec := &logging.Recorder{}

			got := LoadDefinitions(path, rec)
			if diff := cmp.Diff(DefaultDefinitions(), got); diff != "" {
				t.Errorf("expected defaults (-want +got):\n%s", diff)
			}
			msgs := rec.Messages()
			if len(msgs) != 1 || !strings.Contains(msgs[0], tt.wantWarning) {
				t.Errorf("warnings = %v, want one containing %q", msgs, tt.wantWarning)
			}
		})
	}
}

func TestLoadDefinitions_EmptyPath(t *testing.T) {
	t.Parallel()

	rec := &logging.Recorder{}
	if diff := cmp.Diff(DefaultDefinitions(), LoadDefinitions("", rec)); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
	if len(rec.Messages()) != 0 {
		t.Errorf("unexpected warnings: %v", rec.Messages())
	}
}

// ---------------------------------------------------------------------------
// TestNewStandardParser - Default handler set
// ---------------------------------------------------------------------------

func TestNewStandardParser(t *testing.T) {
	t.Parallel()

	p, err := NewStandardParser(NewTOCHandler("Contents", 3), DefaultDefinitions())
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(p.Types(), ","); got != "cautionbox,infobox,toc,warningbox" {
		t.Errorf("Types() = %q", got)
	}

	got := p.ReplaceTokensAfterParse(`<h1 id="a">A</h1><p>{{toc}}</p><p>{{InfoBox:Read <em>this</em>}}</p>`)
	for _, want := range []string{
		`<a href="#a">1. A</a>`,
		`<div class="infobox">Read <em>this</em></div>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestNewStandardParser_DefinitionOverridesTOC(t *testing.T) {
	t.Parallel()

	p, err := NewStandardParser(NewTOCHandler("Contents", 3), []Definition{{Name: "toc", HTML: "<p>custom</p>"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ReplaceTokensAfterParse("<p>{{toc}}</p>"); got != "<p>custom</p>" {
		t.Errorf("output = %q", got)
	}
}

func TestNewStandardParser_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewStandardParser(nil, []Definition{{Name: "", HTML: "x"}})
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("err = %v, want ErrInvalidName", err)
	}
}

func TestTemplateHandler(t *testing.T) {
	t.Parallel()

	h, err := NewTemplateHandler("badge", `<span class="badge-{{.Type}}">{{.Argument}}</span>`)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := h.Expand(Token{Type: "badge", Argument: "<b>new</b>"}, "")
	if !ok || got != `<span class="badge-badge"><b>new</b></span>` {
		t.Errorf("Expand() = %q, %v", got, ok)
	}

	failing, err := NewTemplateHandler("fails", `{{.Missing}}`)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := failing.Expand(Token{}, ""); ok {
		t.Error("template referencing an unknown field should decline")
	}
}
