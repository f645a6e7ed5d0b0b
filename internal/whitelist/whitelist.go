// Package whitelist models the HTML elements and attributes a rendered page
// may contain.
//
// A Whitelist is built once, from a file or from the built-in default, and is
// immutable afterwards so it can be shared by concurrent renders. Names are
// folded to lowercase at construction; lookups are exact set membership.
package whitelist

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Sentinel errors for whitelist construction.
var (
	ErrNoElements       = errors.New("whitelist has no elements")
	ErrEmptyName        = errors.New("whitelist element has an empty name")
	ErrDuplicateElement = errors.New("whitelist element is declared more than once")
)

// Element is one allowed HTML element and the attributes it may carry.
// Name and attribute case is kept for display; comparisons ignore case.
type Element struct {
	Name       string   `yaml:"name"`
	Attributes []string `yaml:"allowedAttributes"`
}

// ContainsAttribute reports whether name is one of the element's attributes.
func (e Element) ContainsAttribute(name string) bool {
	if name == "" {
		return false
	}
	for _, a := range e.Attributes {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// AttributeSet is the canonical (lowercase) attribute set of one element.
type AttributeSet struct {
	names map[string]struct{}
}

// Has reports whether the canonical name is in the set.
func (s AttributeSet) Has(canonical string) bool {
	_, ok := s.names[canonical]
	return ok
}

// Len returns the number of attributes in the set.
func (s AttributeSet) Len() int {
	return len(s.names)
}

// Whitelist is an ordered, immutable list of allowed elements.
type Whitelist struct {
	elements []Element
	index    map[string]AttributeSet
}

// New validates elements and builds a Whitelist.
// Element names must be non-empty and unique (case-insensitive).
func New(elements []Element) (*Whitelist, error) {
	if len(elements) == 0 {
		return nil, ErrNoElements
	}

	w := &Whitelist{
		elements: make([]Element, 0, len(elements)),
		index:    make(map[string]AttributeSet, len(elements)),
	}
	for i, e := range elements {
		name := Canonical(e.Name)
		if name == "" {
			return nil, fmt.Errorf("%w (element %d)", ErrEmptyName, i)
		}
		if _, exists := w.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateElement, e.Name)
		}

		attrs := make(map[string]struct{}, len(e.Attributes))
		kept := make([]string, 0, len(e.Attributes))
		for _, a := range e.Attributes {
			canonical := Canonical(a)
			if canonical == "" {
				continue
			}
			attrs[canonical] = struct{}{}
			kept = append(kept, strings.TrimSpace(a))
		}

		w.index[name] = AttributeSet{names: attrs}
		w.elements = append(w.elements, Element{Name: strings.TrimSpace(e.Name), Attributes: kept})
	}
	return w, nil
}

// Canonical returns the lookup form of an element or attribute name.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Rules returns the attribute set for the canonical element name.
// ok is false when the element is not whitelisted at all.
func (w *Whitelist) Rules(canonical string) (attrs AttributeSet, ok bool) {
	attrs, ok = w.index[canonical]
	return attrs, ok
}

// Allows reports whether the element is whitelisted.
func (w *Whitelist) Allows(element string) bool {
	_, ok := w.index[Canonical(element)]
	return ok
}

// AllowsAttribute reports whether attr is listed for element.
func (w *Whitelist) AllowsAttribute(element, attr string) bool {
	attrs, ok := w.index[Canonical(element)]
	return ok && attrs.Has(Canonical(attr))
}

// Elements returns a copy of the elements in declaration order.
func (w *Whitelist) Elements() []Element {
	out := make([]Element, len(w.elements))
	for i, e := range w.elements {
		out[i] = Element{Name: e.Name, Attributes: append([]string(nil), e.Attributes...)}
	}
	return out
}

// Len returns the number of whitelisted elements.
func (w *Whitelist) Len() int {
	return len(w.elements)
}

var defaultWhitelist = sync.OnceValue(func() *Whitelist {
	w, err := New(defaultElements())
	if err != nil {
		panic(fmt.Sprintf("whitelist: invalid default whitelist: %v", err))
	}
	return w
})

// Default returns the built-in whitelist. The same instance is returned on
// every call.
func Default() *Whitelist {
	return defaultWhitelist()
}

func defaultElements() []Element {
	headings := []string{"id", "class"}
	return []Element{
		{Name: "strong", Attributes: []string{"style"}},
		{Name: "b", Attributes: []string{"style"}},
		{Name: "em", Attributes: []string{"style"}},
		{Name: "i", Attributes: []string{"style"}},
		{Name: "u", Attributes: []string{"style"}},
		{Name: "strike", Attributes: []string{"style"}},
		{Name: "del", Attributes: []string{"style"}},
		{Name: "mark", Attributes: nil},
		{Name: "kbd", Attributes: nil},
		{Name: "sub", Attributes: nil},
		{Name: "sup", Attributes: nil},
		{Name: "p", Attributes: []string{"style", "align", "dir"}},
		{Name: "ol", Attributes: nil},
		{Name: "li", Attributes: nil},
		{Name: "ul", Attributes: nil},
		{Name: "font", Attributes: []string{"style", "color", "face", "size"}},
		{Name: "blockquote", Attributes: []string{"style", "dir"}},
		{Name: "hr", Attributes: []string{"size", "width"}},
		{Name: "img", Attributes: []string{"src", "width", "height", "alt", "title"}},
		{Name: "div", Attributes: []string{"style", "align", "class"}},
		{Name: "span", Attributes: []string{"style", "class"}},
		{Name: "br", Attributes: []string{"style"}},
		{Name: "center", Attributes: []string{"style"}},
		{Name: "a", Attributes: []string{"rel", "class", "href", "title"}},
		{Name: "pre", Attributes: []string{"id", "class"}},
		{Name: "code", Attributes: []string{"id", "class"}},
		{Name: "h1", Attributes: headings},
		{Name: "h2", Attributes: headings},
		{Name: "h3", Attributes: headings},
		{Name: "h4", Attributes: headings},
		{Name: "h5", Attributes: headings},
		{Name: "h6", Attributes: headings},
		{Name: "table", Attributes: []string{"id", "class"}},
		{Name: "caption", Attributes: []string{"id", "class"}},
		{Name: "thead", Attributes: []string{"id", "class"}},
		{Name: "th", Attributes: []string{"id", "class"}},
		{Name: "tbody", Attributes: []string{"id", "class"}},
		{Name: "tfoot", Attributes: []string{"id", "class"}},
		{Name: "tr", Attributes: []string{"id", "class"}},
		{Name: "td", Attributes: []string{"id", "class"}},
	}
}
