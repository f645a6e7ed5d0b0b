// Package tokens expands custom {{type}} and {{type:argument}} placeholders
// in rendered HTML.
//
// Tokens run after Markdown parsing and before sanitization, so handler
// output is still subject to the whitelist. Unknown tokens are left as they
// are.
package tokens

import (
	"regexp"
	"sort"
	"strings"
)

// Token is one placeholder found in rendered HTML.
type Token struct {
	// Type is the lowercase type tag, e.g. "toc".
	Type string
	// Argument is the text after the colon, already rendered as HTML.
	Argument string
	// Raw is the placeholder as it appeared, braces included.
	Raw string
}

// Handler expands a token. page is the complete HTML the token was found
// in. ok is false when the handler declines, which leaves the token as is.
type Handler interface {
	Expand(tok Token, page string) (fragment string, ok bool)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(tok Token, page string) (string, bool)

func (f HandlerFunc) Expand(tok Token, page string) (string, bool) {
	return f(tok, page)
}

// tokenPattern matches a token with the paragraph tags around it, if any.
// Groups: 1=<p> prefix, 2=type, 3=argument, 4=</p> suffix.
// An argument holds no braces and never crosses a </p>, so an unterminated
// token stays inside its paragraph.
var tokenPattern = regexp.MustCompile(`(<p>\s*)?\{\{\s*([A-Za-z][A-Za-z0-9_-]*)\s*` +
	`(?::(` + tokenArgument + `))?\}\}(\s*</p>)?`)

// tokenArgument is any run of text and tags other than a closing paragraph.
const tokenArgument = `(?:[^{}<]|<[^/{}]|</(?:[^pP{}]|[pP][^>\s{}]))*?`

// codePattern matches code spans and blocks, whose contents are literal.
var codePattern = regexp.MustCompile(`(?is)<code\b[^>]*>.*?</code>`)

// Parser dispatches tokens to handlers keyed by type. It is immutable and
// safe for concurrent use.
type Parser struct {
	handlers map[string]Handler
}

// NewParser creates a Parser from handlers keyed by type tag. Keys are
// matched case-insensitively; nil handlers are ignored.
func NewParser(handlers map[string]Handler) *Parser {
	p := &Parser{handlers: make(map[string]Handler, len(handlers))}
	for name, h := range handlers {
		if h != nil {
			p.handlers[strings.ToLower(name)] = h
		}
	}
	return p
}

// With returns a copy of p with h registered under name, replacing any
// existing handler for that type.
func (p *Parser) With(name string, h Handler) *Parser {
	next := &Parser{handlers: make(map[string]Handler, len(p.handlers)+1)}
	for k, v := range p.handlers {
		next.handlers[k] = v
	}
	if h != nil {
		next.handlers[strings.ToLower(name)] = h
	}
	return next
}

// Types returns the registered type tags in sorted order.
func (p *Parser) Types() []string {
	types := make([]string, 0, len(p.handlers))
	for name := range p.handlers {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// ReplaceTokensAfterParse expands every registered token in html.
//
// A token that is the only content of a paragraph replaces the paragraph.
// Tokens inside <code> elements, tokens of unknown type and tokens whose
// handler declines are kept verbatim.
func (p *Parser) ReplaceTokensAfterParse(html string) string {
	matches := tokenPattern.FindAllStringSubmatchIndex(html, -1)
	if len(matches) == 0 {
		return html
	}
	code := codePattern.FindAllStringIndex(html, -1)

	var buf strings.Builder
	buf.Grow(len(html))
	last := 0
	for _, m := range matches {
		buf.WriteString(html[last:m[0]])
		last = m[1]

		hasOpen, hasClose := m[2] >= 0, m[8] >= 0
		start, end := m[0], m[1]
		if hasOpen {
			start = m[3]
		}
		if hasClose {
			end = m[8]
		}

		if inRanges(start, code) {
			buf.WriteString(html[m[0]:m[1]])
			continue
		}

		tok := Token{
			Type: strings.ToLower(html[m[4]:m[5]]),
			Raw:  html[start:end],
		}
		if m[6] >= 0 {
			tok.Argument = strings.TrimSpace(html[m[6]:m[7]])
		}

		fragment, ok := p.expand(tok, html)
		if !ok {
			buf.WriteString(html[m[0]:m[1]])
			continue
		}

		if hasOpen && hasClose {
			buf.WriteString(fragment)
			continue
		}
		if hasOpen {
			buf.WriteString(html[m[2]:m[3]])
		}
		buf.WriteString(fragment)
		if hasClose {
			buf.WriteString(html[m[8]:m[9]])
		}
	}
	buf.WriteString(html[last:])
	return buf.String()
}

// expand runs the handler for tok. A panicking handler counts as declining.
func (p *Parser) expand(tok Token, page string) (fragment string, ok bool) {
	h, found := p.handlers[tok.Type]
	if !found {
		return "", false
	}
	defer func() {
		if recover() != nil {
			fragment, ok = "", false
		}
	}()
	return h.Expand(tok, page)
}

func inRanges(pos int, ranges [][]int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}
