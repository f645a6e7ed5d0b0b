package links

import (
	"path"
	"strings"
)

// joinUnderBase joins ref onto base, collapsing duplicate separators.
// The query and fragment of ref are kept. ok is false when the joined path
// would escape base.
func joinUnderBase(base, ref string) (joined string, ok bool) {
	refPath, suffix := splitSuffix(ref)
	origin, basePath := splitOrigin(base)

	cleanBase := path.Clean("/" + basePath)
	joinedPath := path.Join(cleanBase, refPath)
	if !isPathUnder(joinedPath, cleanBase) {
		return "", false
	}
	return origin + joinedPath + suffix, true
}

// isPathUnder reports whether p equals dir or lies below it.
func isPathUnder(p, dir string) bool {
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return strings.HasPrefix(p+"/", dir)
}

// splitSuffix separates a reference from its ?query and #fragment.
func splitSuffix(ref string) (string, string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// splitOrigin separates "https://host" or "//host" from the path of base.
func splitOrigin(base string) (origin, p string) {
	start := -1
	switch {
	case strings.HasPrefix(base, "//"):
		start = 2
	case strings.Contains(base, "://"):
		start = strings.Index(base, "://") + 3
	default:
		return "", base
	}
	if i := strings.Index(base[start:], "/"); i >= 0 {
		return base[:start+i], base[start+i:]
	}
	return base, "/"
}
