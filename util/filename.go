package util

import (
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename strips path components and unsafe characters from a
// client-supplied name so the result is usable as a flat key inside the
// upload directory. Returns "" when nothing safe is left
func SanitizeFilename(name string) string {
	// Windows clients send backslash separated paths
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")

	if name == "" || name == "/" {
		return ""
	}

	return name
}

// TruncateRunes caps s at n runes without splitting a multi-byte character
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}
