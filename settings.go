package wikitext

import (
	"fmt"
	"strings"
)

// Settings holds the text and link configuration of a Renderer.
type Settings struct {
	// DisableHTMLWhitelist turns sanitization off. When true the sanitizer stage
	// is not run at all.
	DisableHTMLWhitelist bool
	// HTMLWhitelistPath is a YAML or Roadkill XML whitelist file. Empty uses
	// the built-in whitelist.
	HTMLWhitelistPath string
	// CustomTokensPath is a YAML token definitions file. Empty uses the
	// built-in warningbox, infobox and cautionbox tokens.
	CustomTokensPath string

	PageURLPrefix      string // Prefix of special page links (default: /wiki)
	NewPageURL         string // Page creation form (default: /pages/new)
	AttachmentsURLPath string // Base path of uploaded files (default: /attachments/)

	TOCTitle    string // Table of contents title (default: Contents)
	TOCMaxDepth int    // Deepest heading level listed, 1-6 (default: 3)
}

// Default values for Settings.
const (
	DefaultPageURLPrefix      = "/wiki"
	DefaultNewPageURL         = "/pages/new"
	DefaultAttachmentsURLPath = "/attachments/"
	DefaultTOCTitle           = "Contents"
	DefaultTOCMaxDepth        = 3
)

// DefaultSettings returns sanitizing settings with the built-in whitelist
// and tokens.
func DefaultSettings() Settings {
	return Settings{
		PageURLPrefix:      DefaultPageURLPrefix,
		NewPageURL:         DefaultNewPageURL,
		AttachmentsURLPath: DefaultAttachmentsURLPath,
		TOCTitle:           DefaultTOCTitle,
		TOCMaxDepth:        DefaultTOCMaxDepth,
	}
}

// withDefaults fills empty URL fields and a zero TOC depth.
func (s Settings) withDefaults() Settings {
	if s.PageURLPrefix == "" {
		s.PageURLPrefix = DefaultPageURLPrefix
	}
	if s.NewPageURL == "" {
		s.NewPageURL = DefaultNewPageURL
	}
	if s.AttachmentsURLPath == "" {
		s.AttachmentsURLPath = DefaultAttachmentsURLPath
	}
	if s.TOCMaxDepth == 0 {
		s.TOCMaxDepth = DefaultTOCMaxDepth
	}
	return s
}

// Validate checks URL prefixes and the TOC depth.
func (s Settings) Validate() error {
	if s.TOCMaxDepth < 1 || s.TOCMaxDepth > 6 {
		return fmt.Errorf("%w: TOC max depth must be between 1 and 6, got %d", ErrInvalidSettings, s.TOCMaxDepth)
	}
	prefixes := []struct{ name, value string }{
		{"page URL prefix", s.PageURLPrefix},
		{"new page URL", s.NewPageURL},
	}
	for _, p := range prefixes {
		if !strings.HasPrefix(p.value, "/") {
			return fmt.Errorf("%w: %s must start with '/', got %q", ErrInvalidSettings, p.name, p.value)
		}
	}
	return nil
}
