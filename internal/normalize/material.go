package normalize

import "strings"

// familyMapping relates a directory-name fragment to a canonical material
// family. The table is a slice, not a map: substring matching falls through
// in declared order, and that order is the tie-break when a label contains
// more than one known fragment.
type familyMapping struct {
	label string
	code  string
	name  string
}

var materialFamilies = []familyMapping{
	{"PLA", "PLA", "Polylactic Acid"},
	{"PLA+", "PLA", "Polylactic Acid"},
	{"PLA Pro", "PLA", "Polylactic Acid"},
	{"PETG", "PETG", "Polyethylene Terephthalate Glycol"},
	{"ABS", "ABS", "Acrylonitrile Butadiene Styrene"},
	{"ASA", "ASA", "Acrylonitrile Styrene Acrylate"},
	{"TPU", "TPU", "Thermoplastic Polyurethane"},
	{"TPE", "TPE", "Thermoplastic Elastomer"},
	{"PA", "PA", "Polyamide (Nylon)"},
	{"PA6", "PA", "Polyamide (Nylon)"},
	{"PA12", "PA", "Polyamide (Nylon)"},
	{"PC", "PC", "Polycarbonate"},
	{"PP", "PP", "Polypropylene"},
	{"HIPS", "HIPS", "High Impact Polystyrene"},
	{"PVA", "PVA", "Polyvinyl Alcohol"},
	{"PVB", "PVB", "Polyvinyl Butyral"},
	{"PEEK", "PEEK", "Polyether Ether Ketone"},
	{"PEI", "PEI", "Polyetherimide"},
	{"CF", "CF", "Carbon Fiber Composite"},
	{"GF", "GF", "Glass Fiber Composite"},
	{"Wood", "WOOD", "Wood Composite"},
	{"Metal", "METAL", "Metal Composite"},
}

// ClassifyMaterial resolves a raw material directory name to a canonical
// family code and descriptive name. Exact label matches win, then the first
// table entry contained in the raw label, then a family synthesized from the
// label itself so that unknown materials still classify deterministically.
func ClassifyMaterial(raw string) (code, name string) {
	for _, fm := range materialFamilies {
		if fm.label == raw {
			return fm.code, fm.name
		}
	}
	for _, fm := range materialFamilies {
		if strings.Contains(raw, fm.label) {
			return fm.code, fm.name
		}
	}
	return strings.ToUpper(raw), raw
}
