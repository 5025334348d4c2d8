package utils

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts a relative path to forward slashes with no leading
// "./" and no trailing slash. The root itself normalizes to "".
func NormalizePath(p string) string {
	p = strings.ReplaceAll(filepath.ToSlash(p), "\\", "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimSuffix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// Depth is the number of path segments in a normalized relative path.
// "" (the root) has depth 0, "a/b.txt" has depth 2.
func Depth(rel string) int {
	rel = NormalizePath(rel)
	if rel == "" {
		return 0
	}
	return strings.Count(rel, "/") + 1
}
