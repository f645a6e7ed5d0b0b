package tokens

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
)

// ErrTemplate indicates a token template could not be parsed.
var ErrTemplate = errors.New("invalid token template")

// TemplateData is the value token templates are executed with.
type TemplateData struct {
	Type     string
	Argument template.HTML
}

// TemplateHandler expands a token through an html/template fragment, e.g.
//
//	<div class="warningbox">{{.Argument}}</div>
type TemplateHandler struct {
	tmpl *template.Template
}

// NewTemplateHandler parses text as the template for token type name.
func NewTemplateHandler(name, text string) (*TemplateHandler, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrTemplate, name, err)
	}
	return &TemplateHandler{tmpl: tmpl}, nil
}

// Expand declines when the template fails to execute.
func (h *TemplateHandler) Expand(tok Token, _ string) (string, bool) {
	var buf bytes.Buffer
	data := TemplateData{
		Type: tok.Type,
		// The argument comes from the Markdown renderer and is sanitized
		// afterwards with the rest of the page.
		Argument: template.HTML(tok.Argument), // #nosec G203
	}
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return "", false
	}
	return buf.String(), true
}
