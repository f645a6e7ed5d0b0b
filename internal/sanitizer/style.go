package sanitizer

import (
	"strings"

	"github.com/aymerick/douceur/parser"
)

// allowedProperties are the CSS properties a style attribute may keep.
var allowedProperties = map[string]bool{
	"background-color": true,
	"border":           true,
	"border-bottom":    true,
	"border-collapse":  true,
	"border-color":     true,
	"border-left":      true,
	"border-right":     true,
	"border-style":     true,
	"border-top":       true,
	"border-width":     true,
	"color":            true,
	"direction":        true,
	"float":            true,
	"font":             true,
	"font-family":      true,
	"font-size":        true,
	"font-style":       true,
	"font-weight":      true,
	"height":           true,
	"letter-spacing":   true,
	"line-height":      true,
	"list-style-type":  true,
	"margin":           true,
	"margin-bottom":    true,
	"margin-left":      true,
	"margin-right":     true,
	"margin-top":       true,
	"padding":          true,
	"padding-bottom":   true,
	"padding-left":     true,
	"padding-right":    true,
	"padding-top":      true,
	"text-align":       true,
	"text-decoration":  true,
	"text-indent":      true,
	"vertical-align":   true,
	"white-space":      true,
	"width":            true,
}

// forbiddenValueParts never appear in a kept declaration value.
var forbiddenValueParts = []string{
	"expression(",
	"javascript:",
	"vbscript:",
	"url(",
	"behavior",
	"-moz-binding",
	"@import",
	"\\",
	"<",
	"/*",
}

// sanitizeStyle keeps the allowed declarations of a style attribute value
// and returns them re-serialized, or "" when nothing survives.
func sanitizeStyle(value string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "; \t\n")
	if value == "" {
		return ""
	}
	// douceur only emits declarations terminated by a semicolon.
	decls, err := parser.ParseDeclarations(value + ";")
	if err != nil {
		return ""
	}

	kept := make([]string, 0, len(decls))
	for _, d := range decls {
		property := strings.ToLower(strings.TrimSpace(d.Property))
		if !allowedProperties[property] {
			continue
		}
		v := strings.TrimSpace(d.Value)
		if v == "" || !safeStyleValue(v) {
			continue
		}
		if d.Important {
			v += " !important"
		}
		kept = append(kept, property+": "+v)
	}
	return strings.Join(kept, "; ")
}

func safeStyleValue(v string) bool {
	lower := strings.ToLower(v)
	for _, part := range forbiddenValueParts {
		if strings.Contains(lower, part) {
			return false
		}
	}
	return true
}
