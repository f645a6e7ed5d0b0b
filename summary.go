package wikitext

import (
	"context"
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// ellipsis is appended to truncated summaries.
const ellipsis = "…"

var plainTextPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
})

// Summary renders markup and returns its text content, for previews and
// search indexes. The text is cut to at most maxRunes runes at a word
// boundary, followed by an ellipsis. maxRunes <= 0 returns all of it.
func (r *Renderer) Summary(ctx context.Context, markup string, maxRunes int) (string, error) {
	page, err := r.Render(ctx, markup)
	if err != nil {
		return "", err
	}
	return PlainText(page.HTML, maxRunes), nil
}

// PlainText strips every tag from content and collapses whitespace.
// See Summary for maxRunes.
func PlainText(content string, maxRunes int) string {
	text := plainTextPolicy().Sanitize(content)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	return truncateWords(text, maxRunes)
}

func truncateWords(text string, maxRunes int) string {
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return text
	}

	cut := maxRunes
	if !unicode.IsSpace(runes[cut]) {
		for i := cut - 1; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
	}
	return strings.TrimSpace(string(runes[:cut])) + ellipsis
}
