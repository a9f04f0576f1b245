package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Prusament PLA":        "prusament-pla",
		"  Galaxy_Black  ":     "galaxy-black",
		"Silk++ Rainbow!!":     "silk-rainbow",
		"--already--slugged--": "already-slugged",
		"ÜmlautBrand":          "mlautbrand",
		"":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, s := range []string{"Prusament PLA", "a__b  c", "##", "MatteFog Grey"} {
		once := Slugify(s)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestSlugify_Alphabet(t *testing.T) {
	out := Slugify(" 90% Gray / matte ")
	for _, r := range out {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, valid, "unexpected rune %q in %q", r, out)
	}
	assert.False(t, len(out) > 0 && (out[0] == '-' || out[len(out)-1] == '-'))
}

func TestColorHex(t *testing.T) {
	cases := map[string]string{
		"#abc":        "#AABBCC",
		"#AABBCC":     "#AABBCC",
		"ABCDEF":      "#ABCDEF",
		"f00":         "#FF0000",
		"  #ff8800  ": "#FF8800",
		"not-a-color": "not-a-color",
		"#12345":      "#12345",
	}
	for in, want := range cases {
		assert.Equal(t, want, ColorHex(in), "ColorHex(%q)", in)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in               string
		amount, currency string
	}{
		{"$19.99", "19.99", "USD"},
		{"€24,99", "24.99", "EUR"},
		{"£9.50", "9.50", "GBP"},
		{"kr249", "249", "SEK"},
		{"19.99 USD", "19.99", "USD"},
		{"EUR 24.99", "24.99", "EUR"},
		{"24.99", "24.99", ""},
		{"garbage", "", ""},
		{"", "", ""},
	}
	for _, tc := range cases {
		amount, currency := ParsePrice(tc.in)
		assert.Equal(t, tc.amount, amount, "amount for %q", tc.in)
		assert.Equal(t, tc.currency, currency, "currency for %q", tc.in)
	}
}

func TestClassifyMaterial(t *testing.T) {
	cases := []struct {
		in   string
		code string
		name string
	}{
		{"PLA", "PLA", "Polylactic Acid"},
		{"PLA+", "PLA", "Polylactic Acid"},
		{"PETG", "PETG", "Polyethylene Terephthalate Glycol"},
		{"PLA-CF", "PLA", "Polylactic Acid"},
		{"Wood PLA", "PLA", "Polylactic Acid"}, // table order: PLA precedes Wood
		{"Obscurium", "OBSCURIUM", "Obscurium"},
	}
	for _, tc := range cases {
		code, name := ClassifyMaterial(tc.in)
		assert.Equal(t, tc.code, code, "code for %q", tc.in)
		assert.Equal(t, tc.name, name, "name for %q", tc.in)
	}
}

func TestParseWeight_FieldPriority(t *testing.T) {
	grams, ok := ParseWeight("", int64(500), int64(999))
	assert.True(t, ok)
	assert.Equal(t, 500, grams)
}

func TestParseWeight_SkipsEmptyCandidates(t *testing.T) {
	grams, ok := ParseWeight("", nil, nil, float64(750))
	assert.True(t, ok)
	assert.Equal(t, 750, grams)
}

func TestParseWeight_SizeLabel(t *testing.T) {
	grams, ok := ParseWeight("1kg")
	assert.True(t, ok)
	assert.Equal(t, 1000, grams)

	grams, ok = ParseWeight("750 g")
	assert.True(t, ok)
	assert.Equal(t, 750, grams)

	grams, ok = ParseWeight("2.5KG")
	assert.True(t, ok)
	assert.Equal(t, 2500, grams)
}

func TestParseWeight_Unresolvable(t *testing.T) {
	_, ok := ParseWeight("jumbo", nil)
	assert.False(t, ok)

	_, ok = ParseWeight("")
	assert.False(t, ok)
}

func TestDiameter(t *testing.T) {
	mm, ok := Diameter("1.75mm")
	assert.True(t, ok)
	assert.Equal(t, 1.75, mm)

	mm, ok = Diameter(float64(2.85))
	assert.True(t, ok)
	assert.Equal(t, 2.85, mm)

	mm, ok = Diameter(int64(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, mm)

	_, ok = Diameter(nil)
	assert.False(t, ok)

	_, ok = Diameter("wide")
	assert.False(t, ok)
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp(time.Date(2025, 6, 1, 12, 30, 45, 999, time.UTC))
	assert.Equal(t, "2025-06-01T12:30:45Z", ts)
}
