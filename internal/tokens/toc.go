package tokens

import (
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TOCType is the token type of the table of contents.
const TOCType = "toc"

// TOCHandler renders a numbered table of contents from the headings of the
// page. Headings without an id are skipped.
type TOCHandler struct {
	Title    string
	MinDepth int // Minimum heading level (default: 1)
	MaxDepth int // Maximum heading level (default: 3)
}

// NewTOCHandler creates a TOCHandler listing h1 to maxDepth headings.
func NewTOCHandler(title string, maxDepth int) *TOCHandler {
	return &TOCHandler{Title: title, MinDepth: 1, MaxDepth: maxDepth}
}

type heading struct {
	level int
	id    string
	text  string
}

// Expand returns an empty fragment when the page has no headings.
func (h *TOCHandler) Expand(_ Token, page string) (string, bool) {
	headings, err := h.headings(page)
	if err != nil {
		return "", false
	}
	return renderTOC(headings, h.Title), true
}

func (h *TOCHandler) headings(page string) ([]heading, error) {
	minDepth, maxDepth := h.MinDepth, h.MaxDepth
	if minDepth < 1 {
		minDepth = 1
	}
	if maxDepth < minDepth || maxDepth > 6 {
		maxDepth = 3
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var headings []heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			return
		}
		level, _ := strconv.Atoi(goquery.NodeName(s)[1:])
		if level < minDepth || level > maxDepth {
			return
		}
		headings = append(headings, heading{
			level: level,
			id:    id,
			text:  strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return headings, nil
}

// numbering tracks hierarchical numbers for TOC entries. The first heading
// sets depth 1; a heading nests one step below the closest shallower level
// still open, so skipped levels never stack.
type numbering struct {
	counters   [6]int
	minLevel   int
	levelDepth [7]int // depth assigned to each open heading level
}

// next returns the number string and nesting depth for a heading level.
func (n *numbering) next(level int) (string, int) {
	if n.minLevel == 0 {
		n.minLevel = level
	}
	if level < n.minLevel {
		level = n.minLevel
	}

	depth := 1
	for k := level - 1; k >= n.minLevel; k-- {
		if n.levelDepth[k] > 0 {
			depth = n.levelDepth[k] + 1
			break
		}
	}
	n.levelDepth[level] = depth
	for k := level + 1; k < len(n.levelDepth); k++ {
		n.levelDepth[k] = 0
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++

	parts := make([]string, depth)
	for i := range depth {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}

// renderTOC writes nested lists, one level per heading depth.
func renderTOC(headings []heading, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<div class="toc">`)
	if title != "" {
		buf.WriteString(`<div class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</div>`)
	}

	var num numbering
	open := 0
	for _, h := range headings {
		label, depth := num.next(h.level)
		switch {
		case depth > open:
			buf.WriteString(`<ul><li>`)
		case depth == open:
			buf.WriteString(`</li><li>`)
		default:
			buf.WriteString(strings.Repeat(`</li></ul>`, open-depth))
			buf.WriteString(`</li><li>`)
		}
		open = depth

		buf.WriteString(`<a href="#`)
		buf.WriteString(html.EscapeString(h.id))
		buf.WriteString(`">`)
		buf.WriteString(label)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.text))
		buf.WriteString(`</a>`)
	}
	buf.WriteString(strings.Repeat(`</li></ul>`, open))
	buf.WriteString(`</div>`)
	return buf.String()
}
