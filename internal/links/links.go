// Package links resolves wiki links and image sources while a page is parsed.
//
// Links to page titles are resolved through a PageLookup; titles that do not
// resolve become links to the page creation form. Attachment references and
// relative image sources are joined onto the attachments base path.
package links

import (
	"strings"

	"github.com/alnah/go-wikitext/internal/markup"
)

// CSS classes added to rewritten links.
const (
	ClassExternal    = "external-link"
	ClassAttachment  = "attachment"
	ClassMissingPage = "missing-page"
)

// Prefixes that mark an href or src as an attachment reference.
const (
	AttachmentPrefix = "attachment:"
	RootPrefix       = "~/"
)

// SpecialPrefix marks a link to a wiki special page.
const SpecialPrefix = "special:"

// Config holds the URL layout used to rewrite links.
type Config struct {
	// PageURLPrefix is prepended to special page names, e.g. "/wiki".
	PageURLPrefix string
	// NewPageURL is the page creation form; the title is passed as ?title=.
	NewPageURL string
	// AttachmentsURLPath is the base path of uploaded files.
	AttachmentsURLPath string
}

// DefaultConfig returns the layout used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		PageURLPrefix:      "/wiki",
		NewPageURL:         "/pages/new",
		AttachmentsURLPath: "/attachments/",
	}
}

// Hooks adapts a LinkRewriter and an ImageRewriter to markup.Hooks.
type Hooks struct {
	links  *LinkRewriter
	images *ImageRewriter
}

var _ markup.Hooks = (*Hooks)(nil)

// NewHooks builds parse hooks for cfg. A nil lookup leaves page titles
// unchanged.
func NewHooks(cfg Config, lookup PageLookup) *Hooks {
	return &Hooks{
		links:  NewLinkRewriter(cfg, lookup),
		images: NewImageRewriter(cfg),
	}
}

func (h *Hooks) OnLink(tag markup.LinkTag) markup.LinkTag {
	return h.links.Rewrite(tag)
}

func (h *Hooks) OnImage(tag markup.ImageTag) markup.ImageTag {
	return h.images.Rewrite(tag)
}

// addClass appends class to a space separated class list once.
func addClass(list, class string) string {
	for _, c := range strings.Fields(list) {
		if c == class {
			return list
		}
	}
	if strings.TrimSpace(list) == "" {
		return class
	}
	return list + " " + class
}

// trimAttachmentPrefix strips attachment: or ~ from ref. The ~ form keeps
// its slash so "~/a.png" becomes "/a.png" relative to the base path.
func trimAttachmentPrefix(ref string) (string, bool) {
	if hasPrefixFold(ref, AttachmentPrefix) {
		return ref[len(AttachmentPrefix):], true
	}
	if strings.HasPrefix(ref, RootPrefix) {
		return ref[1:], true
	}
	return ref, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
