// Package sanitizer prunes rendered HTML down to a whitelist of elements and
// attributes.
//
// Elements that are not whitelisted are removed together with everything
// inside them. Attributes survive only when the whitelist lists them for
// their element or they are class or id. data-* attributes never survive,
// URL attributes must be relative or use a safe scheme and style values are
// reduced to a safe set of CSS declarations.
//
// Removals can be cancelled by an Exemption. The default exemption keeps
// wiki-internal administrative links such as href="Special:Random".
package sanitizer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-wikitext/internal/logging"
	"github.com/alnah/go-wikitext/internal/whitelist"
)

// ErrParse is returned when the input cannot be parsed as an HTML fragment.
var ErrParse = errors.New("parsing HTML for sanitization")

// SpecialMarker is the substring that marks an href as a wiki-internal link.
const SpecialMarker = "Special:"

// Exemption reports whether the removal of an attribute should be cancelled.
// name is the lowercase attribute name and value its decoded value.
type Exemption func(name, value string) bool

// SpecialLinkExemption keeps href attributes whose value contains
// SpecialMarker. The match is an exact, case-sensitive substring test.
func SpecialLinkExemption(name, value string) bool {
	return strings.EqualFold(name, "href") && strings.Contains(value, SpecialMarker)
}

// DefaultSchemes are the URL schemes allowed in href and src.
var DefaultSchemes = []string{"http", "https", "mailto"}

// alwaysAllowed attributes are kept on every whitelisted element.
var alwaysAllowed = map[string]bool{
	"class": true,
	"id":    true,
}

// urlAttributes carry URLs and are subject to scheme filtering.
var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"cite":       true,
	"background": true,
	"poster":     true,
}

// Sanitizer removes disallowed markup. It is immutable after New and safe
// for concurrent use.
type Sanitizer struct {
	whitelist  *whitelist.Whitelist
	schemes    map[string]struct{}
	exemptions []Exemption
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithSchemes replaces the allowed URL schemes.
func WithSchemes(schemes ...string) Option {
	return func(s *Sanitizer) {
		s.schemes = make(map[string]struct{}, len(schemes))
		for _, scheme := range schemes {
			s.schemes[strings.ToLower(scheme)] = struct{}{}
		}
	}
}

// WithExemption adds an exemption evaluated on every attribute removal.
func WithExemption(e Exemption) Option {
	return func(s *Sanitizer) {
		if e != nil {
			s.exemptions = append(s.exemptions, e)
		}
	}
}

// WithoutExemptions drops every exemption registered so far, including
// SpecialLinkExemption.
func WithoutExemptions() Option {
	return func(s *Sanitizer) {
		s.exemptions = nil
	}
}

// New builds a Sanitizer for wl. A nil wl uses the default whitelist.
func New(wl *whitelist.Whitelist, opts ...Option) *Sanitizer {
	if wl == nil {
		wl = whitelist.Default()
	}
	s := &Sanitizer{
		whitelist:  wl,
		exemptions: []Exemption{SpecialLinkExemption},
	}
	WithSchemes(DefaultSchemes...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config is the sanitizer configuration surface.
type Config struct {
	UseWhitelist  bool
	WhitelistPath string
}

// FromConfig loads the whitelist named by cfg once and builds a Sanitizer.
// It returns nil when cfg disables whitelisting: the caller must then skip
// sanitization entirely rather than run a permissive pass.
func FromConfig(cfg Config, logger logging.Logger, opts ...Option) *Sanitizer {
	if !cfg.UseWhitelist {
		return nil
	}
	return New(whitelist.Load(cfg.WhitelistPath, logger), opts...)
}

// Whitelist returns the whitelist in use.
func (s *Sanitizer) Whitelist() *whitelist.Whitelist {
	return s.whitelist
}

// Sanitize parses content as a body fragment, prunes it and serializes the
// result. Element and attribute order is preserved.
func (s *Sanitizer) Sanitize(content string) (string, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParse, err)
	}

	var buf strings.Builder
	for _, n := range nodes {
		if !s.clean(n) {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("%w: rendering: %v", ErrParse, err)
		}
	}
	return buf.String(), nil
}

// clean prunes n in place and reports whether n itself survives.
func (s *Sanitizer) clean(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
	default:
		return false
	}

	attrs, ok := s.whitelist.Rules(whitelist.Canonical(n.Data))
	if !ok {
		return false
	}
	s.cleanAttributes(n, attrs)

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !s.clean(c) {
			n.RemoveChild(c)
		}
		c = next
	}
	return true
}

func (s *Sanitizer) cleanAttributes(n *html.Node, allowed whitelist.AttributeSet) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		name := whitelist.Canonical(a.Key)
		if a.Namespace != "" {
			name = whitelist.Canonical(a.Namespace + ":" + a.Key)
		}

		value, ok := s.attribute(allowed, name, a.Val)
		switch {
		case ok:
			a.Val = value
		case s.exempt(name, a.Val):
		default:
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// attribute returns the value to keep for name, or false when the attribute
// must be removed.
func (s *Sanitizer) attribute(allowed whitelist.AttributeSet, name, value string) (string, bool) {
	if strings.HasPrefix(name, "data-") {
		return "", false
	}
	if !allowed.Has(name) && !alwaysAllowed[name] {
		return "", false
	}
	if urlAttributes[name] && !s.safeURL(value) {
		return "", false
	}
	if name == "style" {
		cleaned := sanitizeStyle(value)
		return cleaned, cleaned != ""
	}
	return value, true
}

func (s *Sanitizer) exempt(name, value string) bool {
	for _, e := range s.exemptions {
		if e(name, value) {
			return true
		}
	}
	return false
}

// safeURL reports whether raw is relative or uses an allowed scheme.
// Whitespace and control characters are ignored, as browsers do.
func (s *Sanitizer) safeURL(raw string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return true
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	_, ok := s.schemes[strings.ToLower(u.Scheme)]
	return ok
}
