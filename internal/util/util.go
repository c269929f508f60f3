package util

import (
	"path/filepath"
	"strings"
)

// ComputeBaseHref returns the relative path from a page back to the site
// root, so a page at reference/widget/index.html gets "../../".
func ComputeBaseHref(relPath string) string {
	dir := filepath.ToSlash(filepath.Dir(relPath))
	if dir == "." || dir == "" {
		return ""
	}
	return strings.Repeat("../", strings.Count(dir, "/")+1)
}

// Slugify lowercases s and joins its words with dashes.
func Slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
