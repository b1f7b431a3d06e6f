package utils

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^\w\s-]`)
var slugDashes = regexp.MustCompile(`[\s_-]+`)

// Slugify turns a title into its URL-safe identifier.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
