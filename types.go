package wikitext

import (
	"github.com/alnah/go-wikitext/internal/links"
	"github.com/alnah/go-wikitext/internal/logging"
	"github.com/alnah/go-wikitext/internal/tokens"
	"github.com/alnah/go-wikitext/internal/whitelist"
)

// Page is the result of a render.
type Page struct {
	// HTML is the rendered, sanitized page.
	HTML string
	// Markup is the normalized source the HTML was rendered from.
	Markup string
}

// PageLookup resolves wiki page titles to URLs, ignoring case.
type PageLookup = links.PageLookup

// LookupFunc adapts a function to PageLookup.
type LookupFunc = links.LookupFunc

// PageRef maps a page title to its URL.
type PageRef = links.Page

// PageIndex is an immutable in-memory PageLookup.
type PageIndex = links.PageIndex

// NewPageIndex indexes pages by title. Pages without a URL get
// prefix + "/" + title.
func NewPageIndex(prefix string, pages []PageRef) (*PageIndex, error) {
	return links.NewPageIndex(prefix, pages)
}

// Logger receives warnings about configuration files that could not be used.
type Logger = logging.Logger

// Token is a custom {{type:argument}} placeholder.
type Token = tokens.Token

// TokenHandler expands a custom token.
type TokenHandler = tokens.Handler

// TokenHandlerFunc adapts a function to TokenHandler.
type TokenHandlerFunc = tokens.HandlerFunc

// Whitelist is the set of HTML elements and attributes a page may contain.
type Whitelist = whitelist.Whitelist

// WhitelistElement is one allowed element and its allowed attributes.
type WhitelistElement = whitelist.Element

// NewWhitelist validates elements and builds a Whitelist.
func NewWhitelist(elements []WhitelistElement) (*Whitelist, error) {
	return whitelist.New(elements)
}

// DefaultWhitelist returns the built-in whitelist.
func DefaultWhitelist() *Whitelist {
	return whitelist.Default()
}
