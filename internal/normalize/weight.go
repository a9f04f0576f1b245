package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var sizeLabel = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(g|kg)`)

// ParseWeight resolves a spool weight in grams. Candidates are the values of
// the recognized weight fields in priority order (weight_g, weight,
// filament_weight, net_weight, spool_weight); the first positive one wins.
// When no field carries a weight, a size label like "1kg" or "750 g" is
// parsed as a last resort. ok is false when nothing resolves.
func ParseWeight(label string, candidates ...any) (grams int, ok bool) {
	for _, c := range candidates {
		if g, valid := asGrams(c); valid {
			return g, true
		}
	}

	m := sizeLabel.FindStringSubmatch(strings.ToLower(label))
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "kg" {
		value *= 1000
	}
	if value <= 0 {
		return 0, false
	}
	return int(value), true
}

func asGrams(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if f <= 0 {
		return 0, false
	}
	return int(f), true
}

// Diameter parses a nominal diameter in millimeters from a metadata value,
// accepting numbers and strings with an optional "mm" suffix. ok is false
// when the value is absent or unparseable, in which case callers apply the
// 1.75 default.
func Diameter(v any) (mm float64, ok bool) {
	switch d := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(d), d != 0
	case int64:
		return float64(d), d != 0
	case float64:
		return d, d != 0
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(d, "mm", ""))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
