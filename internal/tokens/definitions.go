package tokens

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/alnah/go-wikitext/internal/logging"
	"github.com/alnah/go-wikitext/internal/yamlutil"
)

// Sentinel errors for token definitions.
var (
	ErrNoDefinitions       = errors.New("token definitions file has no tokens")
	ErrInvalidName         = errors.New("invalid token name")
	ErrDuplicateDefinition = errors.New("token is defined more than once")
)

// namePattern is the accepted form of a token type tag.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Definition declares a template token.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	HTML        string `yaml:"html"`
}

type definitionsFile struct {
	Tokens []Definition `yaml:"tokens"`
}

// DefaultDefinitions returns the built-in message box tokens.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:        "warningbox",
			Description: "Highlights a warning",
			HTML:        `<div class="warningbox">{{.Argument}}</div>`,
		},
		{
			Name:        "infobox",
			Description: "Highlights a note",
			HTML:        `<div class="infobox">{{.Argument}}</div>`,
		},
		{
			Name:        "cautionbox",
			Description: "Highlights something to be careful about",
			HTML:        `<div class="cautionbox">{{.Argument}}</div>`,
		},
	}
}

// LoadDefinitions reads token definitions from a YAML file such as
//
//	tokens:
//	  - name: warningbox
//	    description: Highlights a warning
//	    html: <div class="warningbox">{{.Argument}}</div>
//
// It never fails: an empty path yields the defaults, and any problem with
// the file is reported to logger before falling back to the defaults.
func LoadDefinitions(path string, logger logging.Logger) []Definition {
	if path == "" {
		return DefaultDefinitions()
	}

	defs, err := loadDefinitions(path)
	if err == nil {
		return defs
	}

	logger = logging.OrDefault(logger)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warningf("custom tokens file %q does not exist, using the default tokens", path)
	} else {
		logger.Warningf("loading custom tokens file %q failed, using the default tokens: %v", path, err)
	}
	return DefaultDefinitions()
}

func loadDefinitions(path string) (defs []Definition, err error) {
	defer func() {
		if r := recover(); r != nil {
			defs, err = nil, fmt.Errorf("unexpected error: %v", r)
		}
	}()

	var file definitionsFile
	if err := yamlutil.ReadFile(path, &file); err != nil {
		return nil, err
	}
	if len(file.Tokens) == 0 {
		return nil, ErrNoDefinitions
	}
	if _, err := Handlers(file.Tokens); err != nil {
		return nil, err
	}
	return file.Tokens, nil
}

// Handlers builds a TemplateHandler per definition, keyed by lowercase name.
func Handlers(defs []Definition) (map[string]Handler, error) {
	handlers := make(map[string]Handler, len(defs))
	for i, d := range defs {
		name := strings.ToLower(strings.TrimSpace(d.Name))
		if !namePattern.MatchString(name) {
			return nil, fmt.Errorf("%w (token %d): %q", ErrInvalidName, i, d.Name)
		}
		if _, exists := handlers[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDefinition, d.Name)
		}
		h, err := NewTemplateHandler(name, d.HTML)
		if err != nil {
			return nil, err
		}
		handlers[name] = h
	}
	return handlers, nil
}

// NewStandardParser registers one template handler per definition and toc
// under TOCType. A definition named toc replaces the table of contents.
func NewStandardParser(toc *TOCHandler, defs []Definition) (*Parser, error) {
	handlers, err := Handlers(defs)
	if err != nil {
		return nil, err
	}
	if _, overridden := handlers[TOCType]; !overridden && toc != nil {
		handlers[TOCType] = toc
	}
	return NewParser(handlers), nil
}
