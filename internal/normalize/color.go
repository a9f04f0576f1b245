package normalize

import (
	"regexp"
	"strings"
)

var (
	hex6 = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
	hex3 = regexp.MustCompile(`^#?[0-9A-Fa-f]{3}$`)
)

// ColorHex normalizes a color value to uppercase #RRGGBB form. It accepts
// #RRGGBB, #RGB (each digit doubled), and the bare 6- and 3-digit variants.
// Unparseable input is returned unchanged: curators sometimes record color
// names or multi-color syntax here, and passing those through is the
// documented behavior rather than an error.
func ColorHex(raw string) string {
	color := strings.TrimSpace(raw)
	if color == "" {
		return raw
	}

	switch {
	case hex6.MatchString(color):
		digits := strings.TrimPrefix(color, "#")
		return "#" + strings.ToUpper(digits)
	case hex3.MatchString(color):
		digits := strings.TrimPrefix(color, "#")
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(digits[i])
			b.WriteByte(digits[i])
		}
		return strings.ToUpper(b.String())
	}
	return raw
}
