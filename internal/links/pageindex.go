package links

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateTitle is returned when two pages share a title.
var ErrDuplicateTitle = errors.New("page title is listed more than once")

// Page maps a wiki page title to its URL.
type Page struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

// PageIndex is an immutable in-memory PageLookup.
type PageIndex struct {
	urls map[string]string
}

var _ PageLookup = (*PageIndex)(nil)

// NewPageIndex indexes pages by case-folded title. Pages without a URL get
// prefix + "/" + title.
func NewPageIndex(prefix string, pages []Page) (*PageIndex, error) {
	idx := &PageIndex{urls: make(map[string]string, len(pages))}
	for i, p := range pages {
		key := foldTitle(p.Title)
		if key == "" {
			return nil, fmt.Errorf("page %d: empty title", i)
		}
		if _, exists := idx.urls[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, p.Title)
		}
		u := p.URL
		if u == "" {
			u = strings.TrimSuffix(prefix, "/") + "/" + strings.TrimSpace(p.Title)
		}
		idx.urls[key] = u
	}
	return idx, nil
}

// ResolveTitleToURL returns the URL of title, ignoring case.
func (idx *PageIndex) ResolveTitleToURL(title string) (string, bool) {
	if idx == nil {
		return "", false
	}
	u, ok := idx.urls[foldTitle(title)]
	return u, ok
}

// Len returns the number of indexed pages.
func (idx *PageIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.urls)
}

func foldTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
