// Package markup converts wiki markup (Markdown) to HTML with goldmark.
//
// Every link, image and autolink in the document is handed to a Hooks
// implementation before rendering, so callers can resolve wiki page titles
// and attachment paths without touching the Markdown grammar.
package markup

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrConvert indicates goldmark failed to render the document.
var ErrConvert = errors.New("markup conversion failed")

// Parser converts markup to an HTML fragment. It is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Parser with GFM, footnotes and syntax highlighting.
// A nil hooks value leaves links and images untouched.
func NewParser(hooks Hooks) *Parser {
	if hooks == nil {
		hooks = NopHooks{}
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&hookTransformer{hooks: hooks}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// Raw HTML is kept; the sanitizer stage decides what survives.
			html.WithUnsafe(),
		),
	)
	return &Parser{md: md}
}

// Parse converts markup to HTML.
func (p *Parser) Parse(markup string) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(markup), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConvert, err)
	}
	return buf.String(), nil
}

// ToHTML converts markup to HTML after checking ctx.
func (p *Parser) ToHTML(ctx context.Context, markup string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.Parse(markup)
}

// hookTransformer collects links and images first and rewrites them after
// the walk, so the tree is never modified while it is being traversed.
type hookTransformer struct {
	hooks Hooks
}

func (t *hookTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()

	var (
		links     []*ast.Link
		images    []*ast.Image
		autoLinks []*ast.AutoLink
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			links = append(links, node)
		case *ast.Image:
			images = append(images, node)
		case *ast.AutoLink:
			autoLinks = append(autoLinks, node)
		}
		return ast.WalkContinue, nil
	})

	for _, al := range autoLinks {
		if link := replaceAutoLink(al, source); link != nil {
			links = append(links, link)
		}
	}
	for _, link := range links {
		t.rewriteLink(link, source)
	}
	for _, img := range images {
		t.rewriteImage(img, source)
	}
}

// replaceAutoLink swaps an autolink for an equivalent ast.Link.
func replaceAutoLink(al *ast.AutoLink, source []byte) *ast.Link {
	parent := al.Parent()
	if parent == nil {
		return nil
	}

	dest := al.URL(source)
	if al.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(dest), []byte("mailto:")) {
		dest = append([]byte("mailto:"), dest...)
	}

	link := ast.NewLink()
	link.Destination = dest
	link.AppendChild(link, ast.NewString(append([]byte(nil), al.Label(source)...)))
	parent.ReplaceChild(parent, al, link)
	return link
}

func (t *hookTransformer) rewriteLink(link *ast.Link, source []byte) {
	in := LinkTag{
		Href:  string(link.Destination),
		Text:  plainText(link, source),
		Title: string(link.Title),
	}
	out := t.hooks.OnLink(in)

	link.Destination = []byte(out.Href)
	link.Title = optionalBytes(out.Title)
	setAttribute(link, "class", out.Class)
	setAttribute(link, "rel", out.Rel)
	setAttribute(link, "target", out.Target)
	if out.Text != in.Text {
		replaceText(link, out.Text)
	}
}

func (t *hookTransformer) rewriteImage(img *ast.Image, source []byte) {
	in := ImageTag{
		Src:   string(img.Destination),
		Alt:   plainText(img, source),
		Title: string(img.Title),
	}
	out := t.hooks.OnImage(in)

	img.Destination = []byte(out.Src)
	img.Title = optionalBytes(out.Title)
	setAttribute(img, "class", out.Class)
	if out.Alt != in.Alt {
		replaceText(img, out.Alt)
	}
}

// plainText concatenates the text content below n.
func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func replaceText(n ast.Node, s string) {
	n.RemoveChildren(n)
	n.AppendChild(n, ast.NewString([]byte(s)))
}

func setAttribute(n ast.Node, name, value string) {
	if value == "" {
		return
	}
	n.SetAttributeString(name, []byte(value))
}

// optionalBytes returns nil for "" so the renderer omits the attribute.
func optionalBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
