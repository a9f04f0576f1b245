// Package crawler walks the catalog and store source trees and builds the
// normalized entity graph. The crawl is single-threaded, visits directories
// in lexicographic order, and never fails: every malformed file or
// unresolvable entry is logged and skipped so that one bad submission cannot
// break the build.
package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/open-filament/ofdb/internal/catalog"
	"github.com/open-filament/ofdb/internal/ident"
	"github.com/open-filament/ofdb/internal/normalize"
)

// imageExts are the recognized image extensions, scanned in this order.
var imageExts = []string{".jpg", ".jpeg", ".png", ".webp"}

// Crawler builds a catalog.Graph from the two source roots. The dedup
// caches are scoped to one Crawler so multiple crawls can run in the same
// process without cross-contamination; create a new Crawler per run.
type Crawler struct {
	dataDir   string
	storesDir string
	log       *zap.Logger

	graph     *catalog.Graph
	timestamp string

	brandIDs    map[string]string // trimmed name -> id
	materialIDs map[string]string // family code -> id
	filamentIDs map[string]string // source path -> id
	variantIDs  map[string]string // source path -> id
	storeIDs    map[string]string // name -> id
}

// New returns a crawler over the given catalog and store roots. A nil
// logger disables warning output.
func New(dataDir, storesDir string, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		dataDir:     dataDir,
		storesDir:   storesDir,
		log:         logger,
		graph:       catalog.NewGraph(),
		timestamp:   normalize.Timestamp(time.Now()),
		brandIDs:    make(map[string]string),
		materialIDs: make(map[string]string),
		filamentIDs: make(map[string]string),
		variantIDs:  make(map[string]string),
		storeIDs:    make(map[string]string),
	}
}

// Crawl walks both source roots and returns the populated graph. It always
// returns a graph; a missing root only produces a warning and an empty
// traversal.
func (c *Crawler) Crawl() *catalog.Graph {
	c.crawlCatalog()
	c.crawlStores()

	c.log.Info("crawl complete",
		zap.Int("brands", len(c.graph.Brands)),
		zap.Int("material_families", len(c.graph.MaterialFamilies)),
		zap.Int("filaments", len(c.graph.Filaments)),
		zap.Int("variants", len(c.graph.Variants)),
		zap.Int("sizes", len(c.graph.Sizes)),
		zap.Int("stores", len(c.graph.Stores)),
		zap.Int("purchase_links", len(c.graph.PurchaseLinks)),
		zap.Int("documents", len(c.graph.Documents)),
	)
	return c.graph
}

// Timestamp is the run-scoped creation timestamp stamped on every entity.
func (c *Crawler) Timestamp() string {
	return c.timestamp
}

// subdirs lists the non-hidden subdirectories of dir in lexicographic
// order. Read errors are warned and yield an empty list.
func (c *Crawler) subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.log.Warn("failed to read directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

// relPath returns dir relative to root with forward slashes, so generated
// IDs are identical across platforms.
func relPath(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = dir
	}
	return filepath.ToSlash(rel)
}

// imageFiles scans dir for image files, extension-major and name-sorted
// within each extension, skipping dotfiles.
func (c *Crawler) imageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var images []string
	for _, ext := range imageExts {
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if strings.HasSuffix(name, ext) {
				images = append(images, name)
			}
		}
	}
	return images
}

// crawlCatalog walks brand -> material -> filament -> variant.
func (c *Crawler) crawlCatalog() {
	if _, err := os.Stat(c.dataDir); err != nil {
		c.log.Warn("catalog root missing, skipping catalog traversal",
			zap.String("dir", c.dataDir), zap.Error(err))
		return
	}
	for _, name := range c.subdirs(c.dataDir) {
		c.processBrandDir(filepath.Join(c.dataDir, name), name)
	}
}

func (c *Crawler) processBrandDir(dir, name string) {
	brandID := c.getOrCreateBrand(name, dir)
	for _, material := range c.subdirs(dir) {
		c.processMaterialDir(filepath.Join(dir, material), material, brandID)
	}
}

func (c *Crawler) processMaterialDir(dir, name, brandID string) {
	materialID := c.getOrCreateMaterialFamily(name)
	for _, filament := range c.subdirs(dir) {
		c.processFilamentDir(filepath.Join(dir, filament), filament, brandID, materialID)
	}
}

func (c *Crawler) processFilamentDir(dir, name, brandID, materialID string) {
	var meta filamentMeta
	if obj, ok := c.loadObject(filepath.Join(dir, "filament.json")); ok {
		meta = filamentMetaFrom(obj)
	}
	filamentID := c.createFilament(dir, name, brandID, materialID, meta)

	for _, variant := range c.subdirs(dir) {
		c.processVariantDir(filepath.Join(dir, variant), variant, filamentID)
	}
}

func (c *Crawler) processVariantDir(dir, name, filamentID string) {
	// Same filename as at the filament level; the nesting depth decides
	// which fields are meaningful.
	var meta variantMeta
	if obj, ok := c.loadObject(filepath.Join(dir, "filament.json")); ok {
		meta = variantMetaFrom(obj)
	}
	variantID := c.createVariant(dir, name, filamentID, meta)

	sizesPath := filepath.Join(dir, "sizes.json")
	if _, err := os.Stat(sizesPath); err == nil {
		c.processSizesFile(sizesPath, variantID)
	}
}

func (c *Crawler) getOrCreateBrand(name, dir string) string {
	normalized := strings.TrimSpace(name)
	if id, ok := c.brandIDs[normalized]; ok {
		return id
	}

	brandID := ident.Brand(normalized)
	var meta brandMeta
	if obj, ok := c.loadObject(filepath.Join(dir, "brand.json")); ok {
		meta = brandMetaFrom(obj)
	}

	c.graph.Brands = append(c.graph.Brands, &catalog.Brand{
		ID:         brandID,
		Name:       normalized,
		Slug:       normalize.Slugify(normalized),
		Website:    meta.website,
		Logo:       meta.logo,
		Country:    meta.country,
		Origin:     meta.origin,
		Aliases:    meta.aliases,
		CreatedAt:  c.timestamp,
		UpdatedAt:  c.timestamp,
		SourcePath: relPath(c.dataDir, dir),
	})
	c.brandIDs[normalized] = brandID
	return brandID
}

func (c *Crawler) getOrCreateMaterialFamily(name string) string {
	code, fullName := normalize.ClassifyMaterial(name)
	if id, ok := c.materialIDs[code]; ok {
		return id
	}

	materialID := ident.MaterialFamily(code)
	c.graph.MaterialFamilies = append(c.graph.MaterialFamilies, &catalog.MaterialFamily{
		ID:   materialID,
		Code: code,
		Name: fullName,
	})
	c.materialIDs[code] = materialID
	return materialID
}

func (c *Crawler) createFilament(dir, name, brandID, materialID string, meta filamentMeta) string {
	rel := relPath(c.dataDir, dir)
	if id, ok := c.filamentIDs[rel]; ok {
		return id
	}

	filamentID := ident.Filament(rel)

	diameters := meta.diameters
	if len(diameters) == 0 {
		diameters = []float64{1.75}
	}

	c.graph.Filaments = append(c.graph.Filaments, &catalog.Filament{
		ID:               filamentID,
		BrandID:          brandID,
		MaterialFamilyID: materialID,
		Name:             name,
		Slug:             normalize.Slugify(name),
		Description:      meta.description,
		Diameters:        diameters,
		Specs:            meta.specs,
		Images:           c.imageFiles(dir),
		SourcePath:       rel,
		CreatedAt:        c.timestamp,
		UpdatedAt:        c.timestamp,
	})
	c.filamentIDs[rel] = filamentID

	for _, doc := range meta.documents {
		c.graph.Documents = append(c.graph.Documents, &catalog.Document{
			ID:         ident.Document(filamentID + ":" + doc.docType),
			FilamentID: filamentID,
			Type:       strings.ToUpper(doc.docType),
			URL:        doc.url,
			Language:   doc.language,
		})
	}

	return filamentID
}

func (c *Crawler) createVariant(dir, colorName, filamentID string, meta variantMeta) string {
	rel := relPath(c.dataDir, dir)
	if id, ok := c.variantIDs[rel]; ok {
		return id
	}

	variantID := ident.Variant(rel)

	colorValue := meta.colorValue
	if colorValue != "" {
		colorValue = normalize.ColorHex(colorValue)
	}

	slug := meta.slug
	if slug == "" {
		nameForSlug := meta.colorName
		if nameForSlug == "" {
			nameForSlug = colorName
		}
		slug = normalize.Slugify(nameForSlug)
	}

	c.graph.Variants = append(c.graph.Variants, &catalog.Variant{
		ID:         variantID,
		FilamentID: filamentID,
		Slug:       slug,
		ColorName:  colorName,
		Finish:     meta.finish,
		ColorValue: colorValue,
		Colorants:  meta.colorants,
		Images:     c.imageFiles(dir),
		SourcePath: rel,
	})
	c.variantIDs[rel] = variantID
	return variantID
}
