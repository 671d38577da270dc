package fsindex

import "strings"

// NormalizePath canonicalizes an absolute path: backslashes become '/',
// the result has exactly one leading '/', and no trailing '/' unless
// the whole key is "/". Windows drive letters ("C:\foo") are folded
// into a leading segment so "C:/foo" and "c:/foo" canonicalize the
// same way, mirroring original_source's normalize_path.
func NormalizePath(path string) string {
	p := strings.ReplaceAll(path, "\\", "/")
	if len(p) >= 2 && p[1] == ':' {
		p = "/" + strings.ToUpper(p[:1]) + p[1:]
	}
	segs := PathToComponents(p)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// PathToComponents splits a path into its non-empty segments, collapsing
// repeated separators.
func PathToComponents(path string) []string {
	p := strings.ReplaceAll(path, "\\", "/")
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CanonicalKey is an alias kept for symmetry with original_source's
// naming; it is exactly NormalizePath.
func CanonicalKey(path string) string {
	return NormalizePath(path)
}
