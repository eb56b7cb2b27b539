package plan

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+`)
	nonSlugChars  = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases s, turns whitespace runs into "-", drops anything outside
// [A-Za-z0-9_-], collapses repeated hyphens and trims them from both ends.
func Slugify(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IdentitySlug is the natural key of a plan: "<destination>-tour-<days>-days".
func IdentitySlug(destination string, days int) string {
	return Slugify(destination) + "-tour-" + strconv.Itoa(days) + "-days"
}
