package pipeline

import (
	"context"
	"fmt"
)

// MarkupParser converts markup to HTML.
type MarkupParser interface {
	ToHTML(ctx context.Context, markup string) (string, error)
}

// TokenReplacer expands custom tokens in rendered HTML.
type TokenReplacer interface {
	ReplaceTokensAfterParse(html string) string
}

// HTMLSanitizer prunes HTML to what may be displayed.
type HTMLSanitizer interface {
	Sanitize(html string) (string, error)
}

// NormalizeStage cleans up raw markup before parsing.
type NormalizeStage struct{}

func (NormalizeStage) Invoke(_ context.Context, page PageContent) (PageContent, error) {
	page.Markup = Normalize(page.Markup)
	return page, nil
}

// ParseStage renders page.Markup into page.HTML.
type ParseStage struct {
	Parser MarkupParser
}

func (s ParseStage) Invoke(ctx context.Context, page PageContent) (PageContent, error) {
	out, err := s.Parser.ToHTML(ctx, page.Markup)
	if err != nil {
		if ctx.Err() != nil {
			return page, err
		}
		return page, fmt.Errorf("%w: %v", ErrParse, err)
	}
	page.HTML = out
	return page, nil
}

// HighlightStage turns highlight placeholders into <mark> elements.
type HighlightStage struct{}

func (HighlightStage) Invoke(_ context.Context, page PageContent) (PageContent, error) {
	page.HTML = ConvertMarkPlaceholders(page.HTML)
	return page, nil
}

// TokenStage expands custom tokens.
type TokenStage struct {
	Tokens TokenReplacer
}

func (s TokenStage) Invoke(_ context.Context, page PageContent) (PageContent, error) {
	page.HTML = s.Tokens.ReplaceTokensAfterParse(page.HTML)
	return page, nil
}

// SanitizeStage applies the whitelist to page.HTML.
type SanitizeStage struct {
	Sanitizer HTMLSanitizer
}

func (s SanitizeStage) Invoke(_ context.Context, page PageContent) (PageContent, error) {
	out, err := s.Sanitizer.Sanitize(page.HTML)
	if err != nil {
		return page, fmt.Errorf("%w: %v", ErrSanitize, err)
	}
	page.HTML = out
	return page, nil
}

// NewStandardChain builds normalize, parse, highlight, tokens and sanitize
// in that order. A nil tokens skips token substitution and a nil sanitizer
// skips sanitization.
func NewStandardChain(parser MarkupParser, tokens TokenReplacer, sanitizer HTMLSanitizer) *Chain {
	c := NewChain(NormalizeStage{}, ParseStage{Parser: parser}, HighlightStage{})
	if tokens != nil {
		c.Use(TokenStage{Tokens: tokens})
	}
	if sanitizer != nil {
		c.Use(SanitizeStage{Sanitizer: sanitizer})
	}
	return c
}
