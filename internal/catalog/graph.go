package catalog

// Graph holds every entity discovered by one crawl. Slices preserve
// discovery order (traversal is lexicographic at each directory level) so
// that repeated exports are byte-identical. The graph is append-only during
// the crawl and read-only afterwards.
type Graph struct {
	Brands           []*Brand         `json:"brands"`
	MaterialFamilies []*MaterialFamily `json:"material_families"`
	Filaments        []*Filament      `json:"filaments"`
	Variants         []*Variant       `json:"variants"`
	Sizes            []*Size          `json:"sizes"`
	Stores           []*Store         `json:"stores"`
	PurchaseLinks    []*PurchaseLink  `json:"purchase_links"`
	Documents        []*Document      `json:"documents"`
	Tags             []*Tag           `json:"tags"`
}

// NewGraph returns an empty graph with non-nil collections, so exporters
// always serialize arrays rather than nulls.
func NewGraph() *Graph {
	return &Graph{
		Brands:           []*Brand{},
		MaterialFamilies: []*MaterialFamily{},
		Filaments:        []*Filament{},
		Variants:         []*Variant{},
		Sizes:            []*Size{},
		Stores:           []*Store{},
		PurchaseLinks:    []*PurchaseLink{},
		Documents:        []*Document{},
		Tags:             []*Tag{},
	}
}
