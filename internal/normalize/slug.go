// Package normalize holds the pure functions that canonicalize the raw,
// loosely-validated values found in the source trees: slugs, color hex
// codes, prices, material family labels, weights, and timestamps.
package normalize

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
	slugTrim       = regexp.MustCompile(`^-+|-+$`)
)

// Slugify converts text to a URL-safe lowercase-hyphenated slug.
// It is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return slugTrim.ReplaceAllString(s, "")
}
