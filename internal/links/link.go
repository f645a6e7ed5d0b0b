package links

import (
	"net/url"
	"strings"

	"github.com/alnah/go-wikitext/internal/markup"
)

// PageLookup resolves a wiki page title to its canonical URL.
// Titles are matched case-insensitively.
type PageLookup interface {
	ResolveTitleToURL(title string) (url string, ok bool)
}

// LookupFunc adapts a function to PageLookup.
type LookupFunc func(title string) (string, bool)

func (f LookupFunc) ResolveTitleToURL(title string) (string, bool) {
	return f(title)
}

// externalSchemes are schemes that never name a wiki page.
var externalSchemes = map[string]bool{
	"http":       true,
	"https":      true,
	"ftp":        true,
	"ftps":       true,
	"sftp":       true,
	"mailto":     true,
	"tel":        true,
	"sms":        true,
	"irc":        true,
	"news":       true,
	"xmpp":       true,
	"file":       true,
	"data":       true,
	"javascript": true,
	"vbscript":   true,
}

// LinkRewriter resolves link targets.
type LinkRewriter struct {
	cfg    Config
	lookup PageLookup
}

// NewLinkRewriter creates a LinkRewriter. A nil lookup leaves page titles
// unchanged.
func NewLinkRewriter(cfg Config, lookup PageLookup) *LinkRewriter {
	return &LinkRewriter{cfg: cfg, lookup: lookup}
}

// Rewrite returns tag with its target resolved:
//   - empty and #anchor hrefs are unchanged
//   - www. hosts get an http:// scheme and are treated as external
//   - external URLs keep their href and get the external-link class,
//     plus rel="nofollow" for http(s)
//   - absolute paths are unchanged
//   - attachment: and ~/ references point into the attachments path
//   - special: names point to the special page under PageURLPrefix
//   - anything else is a page title resolved through the lookup; unknown
//     titles link to NewPageURL with the missing-page class
//
// Input that cannot be resolved is returned unchanged.
func (r *LinkRewriter) Rewrite(tag markup.LinkTag) (out markup.LinkTag) {
	defer func() {
		if recover() != nil {
			out = tag
		}
	}()

	out = tag
	href := strings.TrimSpace(tag.Href)

	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return tag

	case hasPrefixFold(href, "www."):
		out.Href = "http://" + href
		markExternal(&out, "http")

	case isExternal(href):
		markExternal(&out, scheme(href))

	case strings.HasPrefix(href, "/"):
		return tag

	case hasPrefixFold(href, AttachmentPrefix) || strings.HasPrefix(href, RootPrefix):
		ref, _ := trimAttachmentPrefix(href)
		joined, ok := joinUnderBase(r.cfg.AttachmentsURLPath, ref)
		if !ok {
			return tag
		}
		out.Href = joined
		out.Class = addClass(out.Class, ClassAttachment)

	case hasPrefixFold(href, SpecialPrefix):
		name := href[len(SpecialPrefix):]
		out.Href = strings.TrimSuffix(r.cfg.PageURLPrefix, "/") + "/Special:" + name

	default:
		return r.rewritePage(tag, href)
	}
	return out
}

func (r *LinkRewriter) rewritePage(tag markup.LinkTag, href string) markup.LinkTag {
	if r.lookup == nil {
		return tag
	}

	title, fragment := href, ""
	if i := strings.Index(href, "#"); i >= 0 {
		title, fragment = href[:i], href[i:]
	}
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return tag
	}

	out := tag
	if pageURL, ok := r.lookup.ResolveTitleToURL(title); ok {
		out.Href = pageURL + fragment
		return out
	}
	out.Href = r.cfg.NewPageURL + "?title=" + url.QueryEscape(title)
	out.Class = addClass(out.Class, ClassMissingPage)
	return out
}

func markExternal(tag *markup.LinkTag, scheme string) {
	tag.Class = addClass(tag.Class, ClassExternal)
	if scheme == "http" || scheme == "https" {
		tag.Rel = addClass(tag.Rel, "nofollow")
	}
}

// isExternal reports whether href names something outside the wiki.
func isExternal(href string) bool {
	if strings.HasPrefix(href, "//") || strings.Contains(href, "://") {
		return true
	}
	return externalSchemes[scheme(href)]
}

// scheme returns the lowercase scheme of href, or "" when it has none.
func scheme(href string) string {
	if strings.HasPrefix(href, "//") {
		return ""
	}
	i := strings.Index(href, ":")
	if i <= 0 {
		return ""
	}
	s := href[:i]
	for j, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return ""
		}
	}
	return strings.ToLower(s)
}
