package pipeline

import (
	"context"
	"errors"
)

// Sentinel errors for render failures.
var (
	ErrParse    = errors.New("markup parsing failed")
	ErrSanitize = errors.New("HTML sanitization failed")
)

// PageContent is the value passed from stage to stage. Markup holds the
// source, HTML the output produced so far.
type PageContent struct {
	Markup string
	HTML   string
}

// Middleware is one render stage. It receives the current page and returns
// the page handed to the next stage.
type Middleware interface {
	Invoke(ctx context.Context, page PageContent) (PageContent, error)
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx context.Context, page PageContent) (PageContent, error)

func (f MiddlewareFunc) Invoke(ctx context.Context, page PageContent) (PageContent, error) {
	return f(ctx, page)
}

// Chain runs stages in registration order. Build it with Use before the
// first Invoke; Invoke may then be called concurrently.
type Chain struct {
	stages []Middleware
}

// NewChain creates a Chain from stages. Nil stages are skipped.
func NewChain(stages ...Middleware) *Chain {
	c := &Chain{}
	for _, s := range stages {
		c.Use(s)
	}
	return c
}

// Use appends a stage and returns c.
func (c *Chain) Use(m Middleware) *Chain {
	if m != nil {
		c.stages = append(c.stages, m)
	}
	return c
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Invoke feeds markup through every stage and returns the final page.
// ctx is checked before each stage.
func (c *Chain) Invoke(ctx context.Context, markup string) (PageContent, error) {
	page := PageContent{Markup: markup}
	for _, stage := range c.stages {
		if err := ctx.Err(); err != nil {
			return PageContent{}, err
		}
		next, err := stage.Invoke(ctx, page)
		if err != nil {
			return PageContent{}, err
		}
		page = next
	}
	return page, nil
}
