package pipeline

import (
	"regexp"
	"strings"
)

// Highlight placeholders use Unicode Private Use Area characters so they
// pass through goldmark unchanged. ConvertMarkPlaceholders turns them into
// <mark> tags after HTML generation.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==. The text may not contain '=' so setext
	// heading underlines are left alone.
	highlightPattern = regexp.MustCompile(`==([^=\n]+?)==`)

	// Fenced code block delimiters
	fencePattern = regexp.MustCompile("^\\s{0,3}(```|~~~)")
)

// Normalize prepares raw markup for the Markdown parser.
func Normalize(content string) string {
	content = normalizeLineEndings(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers outside
// fenced code blocks and inline code spans.
func convertHighlights(content string) string {
	if !strings.Contains(content, "==") {
		return content
	}

	lines := strings.Split(content, "\n")
	var fence string
	for i, line := range lines {
		if m := fencePattern.FindStringSubmatch(line); m != nil {
			switch fence {
			case "":
				fence = m[1]
			case m[1]:
				fence = ""
			}
			continue
		}
		if fence != "" {
			continue
		}
		lines[i] = highlightOutsideCodeSpans(line)
	}
	return strings.Join(lines, "\n")
}

// highlightOutsideCodeSpans converts highlights in the parts of line that
// are not between backticks.
func highlightOutsideCodeSpans(line string) string {
	if !strings.Contains(line, "`") {
		return highlightPattern.ReplaceAllString(line, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	}
	parts := strings.Split(line, "`")
	for i := 0; i < len(parts); i += 2 {
		parts[i] = highlightPattern.ReplaceAllString(parts[i], MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
	}
	return strings.Join(parts, "`")
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
func ConvertMarkPlaceholders(content string) string {
	if !strings.Contains(content, MarkStartPlaceholder) {
		return content
	}
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
