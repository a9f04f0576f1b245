package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixtureTree builds the canonical single-brand test tree:
// Acme/PLA/Classic/Red with brand metadata, one size, and one image.
func fixtureTree(t *testing.T) (dataDir, storesDir string) {
	t.Helper()
	root := t.TempDir()
	dataDir = filepath.Join(root, "data")
	storesDir = filepath.Join(root, "stores")

	variantDir := filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red")
	writeFile(t, filepath.Join(dataDir, "Acme", "brand.json"),
		`{"website": "https://acme.test"}`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "filament.json"),
		`{"diameters": [1.75]}`)
	writeFile(t, filepath.Join(variantDir, "filament.json"),
		`{"color_hex": "f00"}`)
	writeFile(t, filepath.Join(variantDir, "sizes.json"),
		`[{"weight_g": 1000, "sku": "R1"}]`)

	writeFile(t, filepath.Join(storesDir, "printed-solid", "store.json"),
		`{"name": "Printed Solid", "storefront_url": "https://printedsolid.test"}`)

	return dataDir, storesDir
}

func TestCrawl_EndToEnd(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	g := New(dataDir, storesDir, nil).Crawl()

	require.Len(t, g.Brands, 1)
	require.Len(t, g.MaterialFamilies, 1)
	require.Len(t, g.Filaments, 1)
	require.Len(t, g.Variants, 1)
	require.Len(t, g.Sizes, 1)
	require.Len(t, g.Stores, 1)
	assert.Empty(t, g.PurchaseLinks)
	assert.Empty(t, g.Documents)

	brand := g.Brands[0]
	assert.Equal(t, "Acme", brand.Name)
	assert.Equal(t, "acme", brand.Slug)
	assert.Equal(t, "https://acme.test", brand.Website)
	assert.Equal(t, "Acme", brand.SourcePath)

	material := g.MaterialFamilies[0]
	assert.Equal(t, "PLA", material.Code)
	assert.Equal(t, "Polylactic Acid", material.Name)

	filament := g.Filaments[0]
	assert.Equal(t, "classic", filament.Slug)
	assert.Equal(t, brand.ID, filament.BrandID)
	assert.Equal(t, material.ID, filament.MaterialFamilyID)
	assert.Equal(t, []float64{1.75}, filament.Diameters)

	variant := g.Variants[0]
	assert.Equal(t, filament.ID, variant.FilamentID)
	assert.Equal(t, "Red", variant.ColorName)
	assert.Equal(t, "#FF0000", variant.ColorValue)
	assert.Equal(t, "red", variant.Slug)

	size := g.Sizes[0]
	assert.Equal(t, variant.ID, size.VariantID)
	assert.Equal(t, 1000, size.WeightG)
	assert.Equal(t, 1.75, size.DiameterMM)
	assert.Equal(t, "R1", size.SKU)

	store := g.Stores[0]
	assert.Equal(t, "Printed Solid", store.Name)
	assert.Equal(t, "printed-solid", store.Slug)
}

func TestCrawl_Deterministic(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)

	first := New(dataDir, storesDir, nil).Crawl()
	second := New(dataDir, storesDir, nil).Crawl()

	require.Len(t, second.Brands, len(first.Brands))
	assert.Equal(t, first.Brands[0].ID, second.Brands[0].ID)
	assert.Equal(t, first.Filaments[0].ID, second.Filaments[0].ID)
	assert.Equal(t, first.Variants[0].ID, second.Variants[0].ID)
	assert.Equal(t, first.Sizes[0].ID, second.Sizes[0].ID)
	assert.Equal(t, first.Stores[0].ID, second.Stores[0].ID)
}

func TestCrawl_RunScopedTimestamp(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	c := New(dataDir, storesDir, nil)
	g := c.Crawl()

	assert.Equal(t, c.Timestamp(), g.Brands[0].CreatedAt)
	assert.Equal(t, c.Timestamp(), g.Brands[0].UpdatedAt)
	assert.Equal(t, g.Brands[0].CreatedAt, g.Filaments[0].CreatedAt)
}

func TestCrawl_BrandDedupByTrimmedName(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	// Two directories whose names differ only by surrounding whitespace.
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"weight_g": 1000}]`)
	writeFile(t, filepath.Join(dataDir, "Acme ", "PETG", "Tough", "Blue", "sizes.json"),
		`[{"weight_g": 500}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	assert.Len(t, g.Brands, 1)
	assert.Len(t, g.Filaments, 2)
	for _, f := range g.Filaments {
		assert.Equal(t, g.Brands[0].ID, f.BrandID)
	}
}

func TestCrawl_MaterialDedupAcrossBrands(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"weight_g": 1000}]`)
	writeFile(t, filepath.Join(dataDir, "Bolt", "PLA", "Basic", "Blue", "sizes.json"),
		`[{"weight_g": 1000}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	assert.Len(t, g.Brands, 2)
	require.Len(t, g.MaterialFamilies, 1)
	assert.Equal(t, "PLA", g.MaterialFamilies[0].Code)
}

func TestCrawl_DroppedSizeKeepsSiblings(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"sku": "X"}, {"weight_g": 1000, "sku": "Y"}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Sizes, 1)
	assert.Equal(t, "Y", g.Sizes[0].SKU)
}

func TestCrawl_SizeLabelWeight(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"size": "1kg"}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Sizes, 1)
	assert.Equal(t, 1000, g.Sizes[0].WeightG)
}

func TestCrawl_WeightFieldPriority(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"weight_g": 500, "weight": 999}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Sizes, 1)
	assert.Equal(t, 500, g.Sizes[0].WeightG)
}

func TestCrawl_SizeDetails(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"), `[
		{
			"weight_g": 1000,
			"diameter_mm": "2.85mm",
			"ean": "0123456789012",
			"length_m": 330,
			"msrp": {"amount": "24.99", "currency": "EUR"},
			"purchase_links": [
				{"store_id": "printed-solid", "url": "https://shop.test/red", "spool_refill": true, "ships_to": "US"},
				{"url": "https://incomplete.test"}
			]
		},
		{"weight": 750, "msrp": 19.99},
		{"spool_weight": 500, "price": "$9.99"}
	]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Sizes, 3)

	first := g.Sizes[0]
	assert.Equal(t, 2.85, first.DiameterMM)
	assert.Equal(t, "0123456789012", first.GTIN)
	assert.Equal(t, 330, first.LengthM)
	assert.Equal(t, "24.99", first.MSRPAmount)
	assert.Equal(t, "EUR", first.MSRPCurrency)

	assert.Equal(t, "19.99", g.Sizes[1].MSRPAmount)
	assert.Equal(t, "", g.Sizes[1].MSRPCurrency)

	assert.Equal(t, "9.99", g.Sizes[2].MSRPAmount)
	assert.Equal(t, "USD", g.Sizes[2].MSRPCurrency)

	// The malformed link (no store_id) is dropped; the complete one stays.
	require.Len(t, g.PurchaseLinks, 1)
	link := g.PurchaseLinks[0]
	assert.Equal(t, first.ID, link.SizeID)
	assert.Equal(t, "printed-solid", link.StoreID)
	assert.True(t, link.SpoolRefill)
	assert.Equal(t, []string{"US"}, link.ShipsTo)
}

func TestCrawl_SizesObjectForm(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`{"weight_g": 1000}`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	assert.Len(t, g.Sizes, 1)
}

func TestCrawl_Documents(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "filament.json"),
		`{"tds": "https://acme.test/tds.pdf", "sds_url": "https://acme.test/sds.pdf", "sds_language": "de"}`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"weight_g": 1000}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Documents, 2)

	tds := g.Documents[0]
	assert.Equal(t, "TDS", tds.Type)
	assert.Equal(t, "en", tds.Language)
	assert.Equal(t, g.Filaments[0].ID, tds.FilamentID)

	sds := g.Documents[1]
	assert.Equal(t, "SDS", sds.Type)
	assert.Equal(t, "de", sds.Language)
}

func TestCrawl_MalformedMetadataIsNotFatal(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, "Acme", "brand.json"), `{not json`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"weight_g": 1000}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Brands, 1)
	assert.Empty(t, g.Brands[0].Website)
	assert.Len(t, g.Sizes, 1)
}

func TestCrawl_MissingRootsYieldEmptyGraph(t *testing.T) {
	root := t.TempDir()
	g := New(filepath.Join(root, "nope"), filepath.Join(root, "also-nope"), nil).Crawl()
	require.NotNil(t, g)
	assert.Empty(t, g.Brands)
	assert.Empty(t, g.Stores)
}

func TestCrawl_HiddenDirectoriesSkipped(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	writeFile(t, filepath.Join(dataDir, ".git", "PLA", "X", "Y", "sizes.json"),
		`[{"weight_g": 1000}]`)
	writeFile(t, filepath.Join(dataDir, "Acme", "PLA", "Classic", "Red", "sizes.json"),
		`[{"weight_g": 1000}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Brands, 1)
	assert.Equal(t, "Acme", g.Brands[0].Name)
}

func TestCrawl_StoreWithoutMetadataSkipped(t *testing.T) {
	root := t.TempDir()
	storesDir := filepath.Join(root, "stores")
	require.NoError(t, os.MkdirAll(filepath.Join(storesDir, "empty-store"), 0o755))
	writeFile(t, filepath.Join(storesDir, "real-store", "store.json"), `{"name": "Real"}`)

	g := New(filepath.Join(root, "data"), storesDir, nil).Crawl()
	require.Len(t, g.Stores, 1)
	assert.Equal(t, "Real", g.Stores[0].Name)
}

func TestCrawl_ImagesDiscovered(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "data")
	filamentDir := filepath.Join(dataDir, "Acme", "PLA", "Classic")
	writeFile(t, filepath.Join(filamentDir, "spool.png"), "png")
	writeFile(t, filepath.Join(filamentDir, "box.jpg"), "jpg")
	writeFile(t, filepath.Join(filamentDir, ".hidden.jpg"), "jpg")
	writeFile(t, filepath.Join(filamentDir, "Red", "swatch.webp"), "webp")
	writeFile(t, filepath.Join(filamentDir, "Red", "sizes.json"), `[{"weight_g": 1000}]`)

	g := New(dataDir, filepath.Join(root, "stores"), nil).Crawl()
	require.Len(t, g.Filaments, 1)
	// Extension-major order: jpg before png.
	assert.Equal(t, []string{"box.jpg", "spool.png"}, g.Filaments[0].Images)
	require.Len(t, g.Variants, 1)
	assert.Equal(t, []string{"swatch.webp"}, g.Variants[0].Images)
}

func TestCrawl_ReferentialIntegrity(t *testing.T) {
	dataDir, storesDir := fixtureTree(t)
	// A second brand with documents and purchase links for coverage.
	writeFile(t, filepath.Join(dataDir, "Bolt", "PETG", "Tough", "filament.json"),
		`{"tds": "https://bolt.test/tds.pdf"}`)
	writeFile(t, filepath.Join(dataDir, "Bolt", "PETG", "Tough", "Blue", "sizes.json"),
		`[{"weight_g": 750, "purchase_links": [{"store_id": "printed-solid", "url": "https://shop.test/blue"}]}]`)

	g := New(dataDir, storesDir, nil).Crawl()

	filamentIDs := make(map[string]bool)
	for _, f := range g.Filaments {
		filamentIDs[f.ID] = true
	}
	variantIDs := make(map[string]bool)
	for _, v := range g.Variants {
		assert.True(t, filamentIDs[v.FilamentID], "variant %s has dangling filament_id", v.ID)
		variantIDs[v.ID] = true
	}
	sizeIDs := make(map[string]bool)
	for _, s := range g.Sizes {
		assert.True(t, variantIDs[s.VariantID], "size %s has dangling variant_id", s.ID)
		sizeIDs[s.ID] = true
	}
	for _, d := range g.Documents {
		assert.True(t, filamentIDs[d.FilamentID], "document %s has dangling filament_id", d.ID)
	}
	for _, pl := range g.PurchaseLinks {
		assert.True(t, sizeIDs[pl.SizeID], "purchase link %s has dangling size_id", pl.ID)
	}

	brandIDs := make(map[string]bool)
	for _, b := range g.Brands {
		brandIDs[b.ID] = true
	}
	materialIDs := make(map[string]bool)
	for _, m := range g.MaterialFamilies {
		materialIDs[m.ID] = true
	}
	for _, f := range g.Filaments {
		assert.True(t, brandIDs[f.BrandID])
		assert.True(t, materialIDs[f.MaterialFamilyID])
	}
}
