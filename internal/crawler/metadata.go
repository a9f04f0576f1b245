package crawler

import (
	"os"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
	"go.uber.org/zap"
)

// The optional metadata files share loose JSON shapes; this file is the
// boundary where they become typed. Unknown keys are ignored, recognized
// keys tolerate missing values, and a malformed or unreadable file is
// treated as no metadata at all (warned, never fatal).

// loadJSON reads and parses a metadata file. ok is false when the file is
// absent, unreadable, or not valid JSON.
func (c *Crawler) loadJSON(path string) (any, bool) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.log.Warn("failed to read metadata file",
				zap.String("path", path), zap.Error(err))
		}
		return nil, false
	}
	data, err := oj.Parse(buf)
	if err != nil {
		c.log.Warn("failed to parse metadata file",
			zap.String("path", path), zap.Error(err))
		return nil, false
	}
	return data, true
}

// loadObject is loadJSON restricted to a top-level JSON object.
func (c *Crawler) loadObject(path string) (map[string]any, bool) {
	data, ok := c.loadJSON(path)
	if !ok {
		return nil, false
	}
	obj, ok := data.(map[string]any)
	if !ok {
		c.log.Warn("metadata file is not a JSON object", zap.String("path", path))
		return nil, false
	}
	return obj, true
}

type brandMeta struct {
	website string
	country string
	origin  string
	logo    string
	aliases []string
}

func brandMetaFrom(m map[string]any) brandMeta {
	country := getString(m, "country")
	if country == "" {
		// Explicit country wins, origin is the legacy key.
		country = getString(m, "origin")
	}
	return brandMeta{
		website: getString(m, "website"),
		country: country,
		origin:  getString(m, "origin"),
		logo:    getString(m, "logo"),
		aliases: stringList(m["aliases"]),
	}
}

// documentRef is one reference document declared in filament metadata.
type documentRef struct {
	docType  string
	url      string
	language string
}

// documentTypes are the recognized reference-document kinds, in the order
// they are synthesized.
var documentTypes = []string{"tds", "sds", "profile", "datasheet"}

// specKeys are the free-form spec fields lifted from filament metadata.
var specKeys = []string{"nozzle_temp", "bed_temp", "density", "printing_speed", "properties"}

type filamentMeta struct {
	description string
	diameters   []float64
	specs       map[string]any
	documents   []documentRef
}

func filamentMetaFrom(m map[string]any) filamentMeta {
	fm := filamentMeta{
		description: getString(m, "description"),
		diameters:   floatList(m["diameters"]),
	}

	for _, key := range specKeys {
		if v, ok := m[key]; ok {
			if fm.specs == nil {
				fm.specs = make(map[string]any)
			}
			fm.specs[key] = v
		}
	}

	for _, docType := range documentTypes {
		url := getString(m, docType)
		if url == "" {
			url = getString(m, docType+"_url")
		}
		if url == "" {
			continue
		}
		language := getString(m, docType+"_language")
		if language == "" {
			language = "en"
		}
		fm.documents = append(fm.documents, documentRef{
			docType:  docType,
			url:      url,
			language: language,
		})
	}

	return fm
}

type variantMeta struct {
	colorValue string
	finish     string
	colorants  []string
	slug       string
	colorName  string
}

func variantMetaFrom(m map[string]any) variantMeta {
	color := getString(m, "color_hex")
	if color == "" {
		color = getString(m, "color")
	}
	return variantMeta{
		colorValue: color,
		finish:     getString(m, "finish"),
		colorants:  stringList(m["colorants"]),
		slug:       getString(m, "slug"),
		colorName:  getString(m, "color_name"),
	}
}

type storeMeta struct {
	name          string
	storefrontURL string
	shipsFrom     any
	shipsTo       any
	logo          string
}

func storeMetaFrom(m map[string]any) storeMeta {
	return storeMeta{
		name:          getString(m, "name"),
		storefrontURL: getString(m, "storefront_url"),
		shipsFrom:     m["ships_from"],
		shipsTo:       m["ships_to"],
		logo:          getString(m, "logo"),
	}
}

// getString returns m[key] when it is a string, else "".
func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// stringValue renders a scalar metadata value as a string. SKUs and GTINs
// in particular show up both quoted and bare in the source files.
func stringValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		return ""
	}
}

// stringList coerces a JSON value into a list of strings, accepting both a
// bare string and an array.
func stringList(v any) []string {
	switch l := v.(type) {
	case nil:
		return nil
	case string:
		return []string{l}
	case []any:
		var out []string
		for _, item := range l {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// floatList coerces a JSON value into a list of floats, wrapping a bare
// scalar into a single-element list.
func floatList(v any) []float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int64:
		return []float64{float64(n)}
	case float64:
		return []float64{n}
	case []any:
		var out []float64
		for _, item := range n {
			switch f := item.(type) {
			case int64:
				out = append(out, float64(f))
			case float64:
				out = append(out, f)
			case string:
				if parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
					out = append(out, parsed)
				}
			}
		}
		return out
	default:
		return nil
	}
}

// intValue extracts an integer from a JSON number, truncating floats.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
