package aggregate

import (
	"strings"
	"unicode/utf8"
)

// FolderAncestors computes the ancestor folder-key chain of a raw path,
// grounded in original_source's aggregate.rs get_folder_ancestors.
// Backslashes are normalized to '/', repeated separators collapse, and
// the result never contains a trailing '/' except the root itself.
func FolderAncestors(path string) []string {
	norm := strings.ReplaceAll(path, "\\", "/")
	segs := splitNonEmpty(norm)
	if len(segs) == 0 {
		return []string{"/"}
	}
	// Ancestors stop at the parent of the final segment (the file/leaf
	// itself is never included).
	parents := segs[:len(segs)-1]
	ancestors := make([]string, 0, len(parents)+1)
	ancestors = append(ancestors, "/")
	cur := ""
	for _, s := range parents {
		cur += "/" + s
		ancestors = append(ancestors, cur)
	}
	return ancestors
}

func splitNonEmpty(s string) []string {
	parts := strings.Split(s, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// BytesToSafeString converts raw path bytes to UTF-8 with lossy
// replacement of invalid sequences, used only for display/output
// (aggregator CSV); internal comparisons stay on raw bytes elsewhere.
func BytesToSafeString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[1:]
			continue
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
