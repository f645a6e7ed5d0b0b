package links

import (
	"strings"

	"github.com/alnah/go-wikitext/internal/markup"
)

// ImageRewriter points relative image sources at the attachments path.
type ImageRewriter struct {
	base string
}

// NewImageRewriter creates an ImageRewriter for cfg.AttachmentsURLPath.
func NewImageRewriter(cfg Config) *ImageRewriter {
	return &ImageRewriter{base: cfg.AttachmentsURLPath}
}

// Rewrite joins a relative src onto the attachments path. Sources with a
// scheme, a leading slash or a path that would leave the attachments path
// are returned unchanged.
func (r *ImageRewriter) Rewrite(tag markup.ImageTag) (out markup.ImageTag) {
	defer func() {
		if recover() != nil {
			out = tag
		}
	}()

	src := strings.TrimSpace(tag.Src)
	if src == "" || strings.HasPrefix(src, "#") {
		return tag
	}

	ref, prefixed := trimAttachmentPrefix(src)
	if !prefixed && (strings.HasPrefix(src, "/") || isExternal(src) || scheme(src) != "") {
		return tag
	}

	joined, ok := joinUnderBase(r.base, ref)
	if !ok {
		return tag
	}
	out = tag
	out.Src = joined
	return out
}
