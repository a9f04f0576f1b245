// Package catalog defines the normalized entity graph produced by the
// crawler and consumed, read-only, by every exporter. All identifiers are
// deterministic UUIDs (see internal/ident) and all foreign keys resolve
// within the same graph, with one documented exception: a purchase link's
// StoreID may hold either a store ID or a store slug, because the catalog
// and store trees are crawled independently.
package catalog

// Brand is a filament manufacturer. One row per manufacturer, created
// lazily on first encounter of its directory.
type Brand struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Website    string   `json:"website,omitempty"`
	Logo       string   `json:"logo,omitempty"`
	Country    string   `json:"country,omitempty"`
	Origin     string   `json:"origin,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
	SourcePath string   `json:"source_path,omitempty"`
}

// MaterialFamily is a canonical polymer classification (PLA, PETG, ...).
// Deduplicated globally, not per brand.
type MaterialFamily struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Filament is a named product line from one brand in one material family.
type Filament struct {
	ID               string         `json:"id"`
	BrandID          string         `json:"brand_id"`
	MaterialFamilyID string         `json:"material_family_id"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description,omitempty"`
	Diameters        []float64      `json:"diameters,omitempty"`
	Specs            map[string]any `json:"specs,omitempty"`
	Images           []string       `json:"images,omitempty"`
	SourcePath       string         `json:"source_path,omitempty"`
	CreatedAt        string         `json:"created_at,omitempty"`
	UpdatedAt        string         `json:"updated_at,omitempty"`
}

// Variant is a color/finish instance of a filament.
type Variant struct {
	ID         string   `json:"id"`
	FilamentID string   `json:"filament_id"`
	Slug       string   `json:"slug,omitempty"`
	ColorName  string   `json:"color_name,omitempty"`
	Finish     string   `json:"finish,omitempty"`
	ColorValue string   `json:"color_value,omitempty"`
	Colorants  []string `json:"colorants,omitempty"`
	Images     []string `json:"images,omitempty"`
	SourcePath string   `json:"source_path,omitempty"`
}

// Size is one purchasable SKU of a variant. WeightG is always positive:
// entries without a resolvable weight never become sizes.
type Size struct {
	ID           string  `json:"id"`
	VariantID    string  `json:"variant_id"`
	WeightG      int     `json:"weight_g"`
	DiameterMM   float64 `json:"diameter_mm"`
	SKU          string  `json:"sku,omitempty"`
	GTIN         string  `json:"gtin,omitempty"`
	LengthM      int     `json:"length_m,omitempty"`
	MSRPAmount   string  `json:"msrp_amount,omitempty"`
	MSRPCurrency string  `json:"msrp_currency,omitempty"`
}

// Store is a retailer. ShipsFrom/ShipsTo pass through whatever shape the
// store.json carried (string or list).
type Store struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	StorefrontURL string `json:"storefront_url,omitempty"`
	ShipsFrom     any    `json:"ships_from,omitempty"`
	ShipsTo       any    `json:"ships_to,omitempty"`
	Logo          string `json:"logo,omitempty"`
	SourcePath    string `json:"source_path,omitempty"`
}

// PurchaseLink relates a size to a store listing. StoreID may be a store ID
// or a store slug; consumers must look up both ways.
type PurchaseLink struct {
	ID          string   `json:"id"`
	SizeID      string   `json:"size_id"`
	StoreID     string   `json:"store_id"`
	URL         string   `json:"url"`
	SpoolRefill bool     `json:"spool_refill"`
	ShipsFrom   []string `json:"ships_from,omitempty"`
	ShipsTo     []string `json:"ships_to,omitempty"`
}

// Document is a reference document (TDS, SDS, print profile, datasheet)
// attached to a filament. At most one per (filament, type).
type Document struct {
	ID         string `json:"id"`
	FilamentID string `json:"filament_id"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	Language   string `json:"language,omitempty"`
}

// Tag is a named category label. Present in the schema and exports but not
// populated by the crawl; reserved for manual tagging.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
