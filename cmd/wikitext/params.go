package main

import (
	"fmt"

	wikitext "github.com/alnah/go-wikitext"
	"github.com/alnah/go-wikitext/internal/config"
	"github.com/alnah/go-wikitext/internal/logging"
)

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.text.noSanitize {
		cfg.Text.UseHTMLWhitelist = false
	}
	if flags.text.whitelist != "" {
		cfg.Text.HTMLWhitelistPath = flags.text.whitelist
	}
	if flags.text.tokens != "" {
		cfg.Text.CustomTokensPath = flags.text.tokens
	}
	if flags.attachments != "" {
		cfg.Links.AttachmentsURLPath = flags.attachments
	}
}

// buildSettings maps the config onto renderer settings.
func buildSettings(cfg *config.Config) wikitext.Settings {
	return wikitext.Settings{
		DisableHTMLWhitelist: !cfg.Text.UseHTMLWhitelist,
		HTMLWhitelistPath:    cfg.Text.HTMLWhitelistPath,
		CustomTokensPath:     cfg.Text.CustomTokensPath,
		PageURLPrefix:        cfg.Links.PageURLPrefix,
		NewPageURL:           cfg.Links.NewPageURL,
		AttachmentsURLPath:   cfg.Links.AttachmentsURLPath,
		TOCTitle:             cfg.TOC.Title,
		TOCMaxDepth:          cfg.TOC.MaxDepth,
	}
}

// buildPageIndex indexes the configured pages. Without pages, nil is
// returned and page links are left as written.
func buildPageIndex(cfg *config.Config) (*wikitext.PageIndex, error) {
	if len(cfg.Pages) == 0 {
		return nil, nil
	}

	prefix := cfg.Links.PageURLPrefix
	if prefix == "" {
		prefix = wikitext.DefaultPageURLPrefix
	}

	refs := make([]wikitext.PageRef, len(cfg.Pages))
	for i, p := range cfg.Pages {
		refs[i] = wikitext.PageRef{Title: p.Title, URL: p.URL}
	}

	idx, err := wikitext.NewPageIndex(prefix, refs)
	if err != nil {
		return nil, fmt.Errorf("%w: pages: %v", config.ErrInvalidField, err)
	}
	return idx, nil
}

// newRenderer builds the renderer shared by every file of the batch.
func newRenderer(cfg *config.Config, logger logging.Logger) (*wikitext.Renderer, error) {
	opts := []wikitext.Option{
		wikitext.WithSettings(buildSettings(cfg)),
		wikitext.WithLogger(logger),
	}

	idx, err := buildPageIndex(cfg)
	if err != nil {
		return nil, err
	}
	if idx != nil {
		opts = append(opts, wikitext.WithPageLookup(idx))
	}

	return wikitext.NewRenderer(opts...)
}
