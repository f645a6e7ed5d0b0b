package wikitext

import (
	"context"
	"fmt"

	"github.com/alnah/go-wikitext/internal/links"
	"github.com/alnah/go-wikitext/internal/logging"
	"github.com/alnah/go-wikitext/internal/markup"
	"github.com/alnah/go-wikitext/internal/pipeline"
	"github.com/alnah/go-wikitext/internal/sanitizer"
	"github.com/alnah/go-wikitext/internal/tokens"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkupParser  = (*markup.Parser)(nil)
	_ pipeline.TokenReplacer = (*tokens.Parser)(nil)
	_ pipeline.HTMLSanitizer = (*sanitizer.Sanitizer)(nil)
	_ markup.Hooks           = (*links.Hooks)(nil)
	_ tokens.Handler         = (*tokens.TOCHandler)(nil)
	_ tokens.Handler         = (*tokens.TemplateHandler)(nil)
)

// Renderer turns wiki markup into HTML. Create with NewRenderer.
type Renderer struct {
	settings  Settings
	chain     *pipeline.Chain
	tokens    *tokens.Parser
	sanitizer *sanitizer.Sanitizer
}

// NewRenderer builds the render chain. Whitelist and token definition files
// named in the settings are read here, once; problems with them are logged
// and the defaults are used.
// Returns ErrInvalidSettings if the settings fail validation.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(&cfg)
	}

	settings := cfg.settings.withDefaults()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger := logging.OrDefault(cfg.logger)

	hooks := links.NewHooks(links.Config{
		PageURLPrefix:      settings.PageURLPrefix,
		NewPageURL:         settings.NewPageURL,
		AttachmentsURLPath: settings.AttachmentsURLPath,
	}, cfg.lookup)

	defs := tokens.LoadDefinitions(settings.CustomTokensPath, logger)
	tokenParser, err := tokens.NewStandardParser(tokens.NewTOCHandler(settings.TOCTitle, settings.TOCMaxDepth), defs)
	if err != nil {
		return nil, fmt.Errorf("building token handlers: %w", err)
	}
	for _, nh := range cfg.handlers {
		tokenParser = tokenParser.With(nh.name, nh.handler)
	}

	r := &Renderer{settings: settings, tokens: tokenParser}

	// A nil *Sanitizer stored in the interface would not read as nil.
	var stage pipeline.HTMLSanitizer
	if !settings.DisableHTMLWhitelist {
		if cfg.whitelist != nil {
			r.sanitizer = sanitizer.New(cfg.whitelist)
		} else {
			r.sanitizer = sanitizer.FromConfig(sanitizer.Config{
				UseWhitelist:  true,
				WhitelistPath: settings.HTMLWhitelistPath,
			}, logger)
		}
		stage = r.sanitizer
	}

	r.chain = pipeline.NewStandardChain(markup.NewParser(hooks), tokenParser, stage)
	return r, nil
}

// Render runs markup through the render chain.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, markup string) (page *Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			page, err = nil, fmt.Errorf("%w: internal error: %v", ErrRender, rec)
		}
	}()

	content, err := r.chain.Invoke(ctx, markup)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return &Page{HTML: content.HTML, Markup: content.Markup}, nil
}

// Settings returns the effective settings, defaults applied.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Whitelist returns the whitelist pages are sanitized against, or nil when
// sanitization is disabled.
func (r *Renderer) Whitelist() *Whitelist {
	if r.sanitizer == nil {
		return nil
	}
	return r.sanitizer.Whitelist()
}

// TokenTypes returns the registered custom token types in sorted order.
func (r *Renderer) TokenTypes() []string {
	return r.tokens.Types()
}
