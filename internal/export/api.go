package export

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/open-filament/ofdb/internal/catalog"
)

// apiWriter carries the per-run state of the static API export: the graph
// index, resolved paths, and the URL policy for copied assets.
type apiWriter struct {
	g    *catalog.Graph
	ix   *Index
	opts Options

	apiDir    string
	assetsDir string
}

// API writes the split static JSON tree under api/v1. Every collection gets
// an index file plus one file per entity, so the output can be served from
// any static host without a backend.
func API(g *catalog.Graph, opts Options) error {
	w := &apiWriter{
		g:    g,
		ix:   NewIndex(g),
		opts: opts,

		apiDir: filepath.Join(opts.OutputDir, "api", "v1"),
	}
	w.assetsDir = filepath.Join(w.apiDir, "assets")

	if err := os.MkdirAll(filepath.Join(w.assetsDir, "brands"), 0o755); err != nil {
		return fmt.Errorf("mkdir assets: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(w.assetsDir, "stores"), 0o755); err != nil {
		return fmt.Errorf("mkdir assets: %w", err)
	}

	steps := []func() error{
		w.writeRootIndex,
		w.writeBrands,
		w.writeMaterials,
		w.writeSizes,
		w.writeFilaments,
		w.writeStores,
		w.writeSearch,
		w.writeCatalog,
		w.writeRoutes,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	opts.logger().Info("wrote static api",
		zap.String("dir", w.apiDir),
		zap.Int("brands", len(g.Brands)),
		zap.Int("sizes", len(g.Sizes)),
	)
	return nil
}

func (w *apiWriter) writeRootIndex() error {
	return writeJSONFile(filepath.Join(w.apiDir, "index.json"), map[string]any{
		"version":      w.opts.Version,
		"generated_at": w.opts.GeneratedAt,
		"base_url":     w.opts.BaseURL,
		"endpoints": map[string]any{
			"brands":    "brands/index.json",
			"materials": "materials/index.json",
			"filaments": "filaments/index.json",
			"stores":    "stores/index.json",
			"search":    "search/autocomplete.json",
			"catalog":   "catalog/index.json",
			"sizes":     "sizes/index.json",
		},
		"stats": map[string]any{
			"brands":            len(w.g.Brands),
			"material_families": len(w.g.MaterialFamilies),
			"filaments":         len(w.g.Filaments),
			"variants":          len(w.g.Variants),
			"sizes":             len(w.g.Sizes),
			"stores":            len(w.g.Stores),
			"purchase_links":    len(w.g.PurchaseLinks),
		},
	})
}

func (w *apiWriter) writeBrands() error {
	brandsDir := filepath.Join(w.apiDir, "brands")
	indexItems := make([]map[string]any, 0, len(w.g.Brands))

	for _, b := range w.g.Brands {
		filaments := w.ix.FilamentsByBrand[b.ID]

		variantCount, sizeCount := 0, 0
		for _, f := range filaments {
			variants := w.ix.VariantsByFilament[f.ID]
			variantCount += len(variants)
			for _, v := range variants {
				sizeCount += len(w.ix.SizesByVariant[v.ID])
			}
		}

		logoURL := w.brandLogoURL(b)
		indexItems = append(indexItems, map[string]any{
			"id":             b.ID,
			"slug":           b.Slug,
			"name":           b.Name,
			"filament_count": len(filaments),
			"variant_count":  variantCount,
			"size_count":     sizeCount,
			"logo_url":       logoURL,
		})

		brandDoc := asMap(b)
		brandDoc["logo_url"] = logoURL

		filamentDocs := make([]map[string]any, 0, len(filaments))
		for _, f := range filaments {
			doc := asMap(f)
			merge(doc, materialRef(w.ix.MaterialsByID[f.MaterialFamilyID]))
			doc["variant_count"] = len(w.ix.VariantsByFilament[f.ID])
			filamentDocs = append(filamentDocs, doc)
		}

		err := writeJSONFile(filepath.Join(brandsDir, b.Slug+".json"), map[string]any{
			"version":   w.opts.Version,
			"brand":     brandDoc,
			"filaments": filamentDocs,
		})
		if err != nil {
			return err
		}

		// Sitemap-style size listing per brand.
		entries := make([]map[string]any, 0)
		for _, s := range w.g.Sizes {
			if f := w.filamentOfSize(s); f != nil && f.BrandID == b.ID {
				entries = append(entries, w.sizeIndexEntry(s))
			}
		}
		err = writeJSONFile(filepath.Join(brandsDir, b.Slug+"-sizes.json"), map[string]any{
			"version": w.opts.Version,
			"brand":   asMap(b),
			"count":   len(entries),
			"sizes":   entries,
		})
		if err != nil {
			return err
		}
	}

	return writeJSONFile(filepath.Join(brandsDir, "index.json"), map[string]any{
		"version": w.opts.Version,
		"count":   len(w.g.Brands),
		"brands":  indexItems,
	})
}

func (w *apiWriter) writeMaterials() error {
	materialsDir := filepath.Join(w.apiDir, "materials")
	indexItems := make([]map[string]any, 0, len(w.g.MaterialFamilies))

	for _, m := range w.g.MaterialFamilies {
		filaments := w.ix.FilamentsByMaterial[m.ID]

		indexItems = append(indexItems, map[string]any{
			"id":             m.ID,
			"code":           m.Code,
			"name":           m.Name,
			"filament_count": len(filaments),
		})

		filamentDocs := make([]map[string]any, 0, len(filaments))
		for _, f := range filaments {
			doc := asMap(f)
			merge(doc, brandRef(w.ix.BrandsByID[f.BrandID]))
			filamentDocs = append(filamentDocs, doc)
		}

		err := writeJSONFile(filepath.Join(materialsDir, strings.ToLower(m.Code)+".json"), map[string]any{
			"version":   w.opts.Version,
			"material":  asMap(m),
			"filaments": filamentDocs,
		})
		if err != nil {
			return err
		}

		entries := make([]map[string]any, 0)
		for _, s := range w.g.Sizes {
			if f := w.filamentOfSize(s); f != nil && f.MaterialFamilyID == m.ID {
				entries = append(entries, w.sizeIndexEntry(s))
			}
		}
		err = writeJSONFile(filepath.Join(materialsDir, strings.ToLower(m.Code)+"-sizes.json"), map[string]any{
			"version":  w.opts.Version,
			"material": asMap(m),
			"count":    len(entries),
			"sizes":    entries,
		})
		if err != nil {
			return err
		}
	}

	return writeJSONFile(filepath.Join(materialsDir, "index.json"), map[string]any{
		"version":   w.opts.Version,
		"count":     len(w.g.MaterialFamilies),
		"materials": indexItems,
	})
}

func (w *apiWriter) writeSizes() error {
	sizesDir := filepath.Join(w.apiDir, "sizes")

	for _, s := range w.g.Sizes {
		err := writeJSONFile(filepath.Join(sizesDir, s.ID+".json"), map[string]any{
			"version": w.opts.Version,
			"size":    w.sizeView(s),
		})
		if err != nil {
			return err
		}
	}

	entries := make([]map[string]any, 0, len(w.g.Sizes))
	for _, s := range w.g.Sizes {
		entries = append(entries, w.sizeIndexEntry(s))
	}
	return writeJSONFile(filepath.Join(sizesDir, "index.json"), map[string]any{
		"version": w.opts.Version,
		"count":   len(w.g.Sizes),
		"sizes":   entries,
	})
}

// sizeView is the full per-size document: the size itself, its brand and
// material ids, and every purchase link with its store resolved id-then-slug.
func (w *apiWriter) sizeView(s *catalog.Size) map[string]any {
	doc := asMap(s)

	f := w.filamentOfSize(s)
	var brandID, materialID any
	if f != nil {
		if b := w.ix.BrandsByID[f.BrandID]; b != nil {
			brandID = b.ID
		}
		if m := w.ix.MaterialsByID[f.MaterialFamilyID]; m != nil {
			materialID = m.ID
		}
	}
	doc["brand_id"] = brandID
	doc["material_id"] = materialID

	links := make([]map[string]any, 0)
	for _, pl := range w.ix.LinksBySize[s.ID] {
		linkDoc := asMap(pl)
		merge(linkDoc, storeRef(w.ix.StoreByRef(pl.StoreID)))
		links = append(links, linkDoc)
	}
	doc["purchase_links"] = links
	return doc
}

func (w *apiWriter) sizeIndexEntry(s *catalog.Size) map[string]any {
	var variantName, filamentName, brandID, materialID any
	if v := w.ix.VariantsByID[s.VariantID]; v != nil {
		if v.ColorName != "" {
			variantName = v.ColorName
		}
		if f := w.ix.FilamentsByID[v.FilamentID]; f != nil {
			filamentName = f.Name
			if b := w.ix.BrandsByID[f.BrandID]; b != nil {
				brandID = b.ID
			}
			if m := w.ix.MaterialsByID[f.MaterialFamilyID]; m != nil {
				materialID = m.ID
			}
		}
	}
	return map[string]any{
		"id":            s.ID,
		"variant_name":  variantName,
		"filament_name": filamentName,
		"brand_id":      brandID,
		"material_id":   materialID,
	}
}

func (w *apiWriter) filamentOfSize(s *catalog.Size) *catalog.Filament {
	v := w.ix.VariantsByID[s.VariantID]
	if v == nil {
		return nil
	}
	return w.ix.FilamentsByID[v.FilamentID]
}

func (w *apiWriter) writeFilaments() error {
	filamentsDir := filepath.Join(w.apiDir, "filaments")
	indexItems := make([]map[string]any, 0, len(w.g.Filaments))

	for _, f := range w.g.Filaments {
		variants := w.ix.VariantsByFilament[f.ID]
		brand := w.ix.BrandsByID[f.BrandID]
		material := w.ix.MaterialsByID[f.MaterialFamilyID]

		var brandSlug, brandName, materialCode any
		if brand != nil {
			brandSlug, brandName = brand.Slug, brand.Name
		}
		if material != nil {
			materialCode = material.Code
		}
		indexItems = append(indexItems, map[string]any{
			"id":            f.ID,
			"slug":          f.Slug,
			"name":          f.Name,
			"brand_slug":    brandSlug,
			"brand_name":    brandName,
			"material_code": materialCode,
			"variant_count": len(variants),
		})

		variantDocs := make([]map[string]any, 0, len(variants))
		for _, v := range variants {
			vDoc := asMap(v)
			sizeRefs := make([]map[string]any, 0)
			for _, s := range w.ix.SizesByVariant[v.ID] {
				// Sizes are referenced, not embedded: the full document
				// lives in sizes/<id>.json.
				ref := sizeRef(s)
				ref["sku"] = orNull(s.SKU)
				ref["gtin"] = orNull(s.GTIN)
				ref["path"] = "../../sizes/" + s.ID + ".json"
				sizeRefs = append(sizeRefs, ref)
			}
			vDoc["sizes"] = sizeRefs
			variantDocs = append(variantDocs, vDoc)
		}

		docs := make([]map[string]any, 0)
		for _, d := range w.ix.DocumentsByFilament[f.ID] {
			docs = append(docs, asMap(d))
		}

		payload := map[string]any{
			"version":   w.opts.Version,
			"filament":  asMap(f),
			"documents": docs,
			"variants":  variantDocs,
		}
		merge(payload, brandRef(brand))
		merge(payload, materialRef(material))

		if err := writeJSONFile(filepath.Join(filamentsDir, f.ID+".json"), payload); err != nil {
			return err
		}
	}

	return writeJSONFile(filepath.Join(filamentsDir, "index.json"), map[string]any{
		"version":   w.opts.Version,
		"count":     len(w.g.Filaments),
		"filaments": indexItems,
	})
}

func (w *apiWriter) writeStores() error {
	storesDir := filepath.Join(w.apiDir, "stores")
	indexItems := make([]map[string]any, 0, len(w.g.Stores))

	for _, st := range w.g.Stores {
		indexItems = append(indexItems, map[string]any{
			"id":   st.ID,
			"slug": st.Slug,
			"name": st.Name,
		})

		storeDoc := asMap(st)
		storeDoc["logo_url"] = w.storeLogoURL(st)
		err := writeJSONFile(filepath.Join(storesDir, st.Slug+".json"), map[string]any{
			"version": w.opts.Version,
			"store":   storeDoc,
		})
		if err != nil {
			return err
		}
	}

	return writeJSONFile(filepath.Join(storesDir, "index.json"), map[string]any{
		"version": w.opts.Version,
		"count":   len(w.g.Stores),
		"stores":  indexItems,
	})
}

func (w *apiWriter) writeSearch() error {
	items := make([]map[string]any, 0, len(w.g.Brands)+len(w.g.Filaments)+len(w.g.MaterialFamilies))

	for _, b := range w.g.Brands {
		items = append(items, map[string]any{
			"type":        "brand",
			"id":          b.ID,
			"slug":        b.Slug,
			"name":        b.Name,
			"search_text": strings.ToLower(b.Name),
		})
	}
	for _, f := range w.g.Filaments {
		brand := w.ix.BrandsByID[f.BrandID]
		fullName := f.Name
		var brandSlug any
		if brand != nil {
			fullName = brand.Name + " " + f.Name
			brandSlug = brand.Slug
		}
		items = append(items, map[string]any{
			"type":        "filament",
			"id":          f.ID,
			"slug":        f.Slug,
			"name":        f.Name,
			"brand_slug":  brandSlug,
			"full_name":   fullName,
			"search_text": strings.ToLower(fullName),
		})
	}
	for _, m := range w.g.MaterialFamilies {
		items = append(items, map[string]any{
			"type":        "material",
			"id":          m.ID,
			"code":        m.Code,
			"name":        m.Name,
			"search_text": strings.ToLower(m.Code) + " " + strings.ToLower(m.Name),
		})
	}

	return writeJSONFile(filepath.Join(w.apiDir, "search", "autocomplete.json"), map[string]any{
		"version": w.opts.Version,
		"count":   len(items),
		"items":   items,
	})
}

// writeCatalog emits the browseable hierarchy mirroring the source tree:
// catalog/<brand>/<material>/<filament>/<variant>.json.
func (w *apiWriter) writeCatalog() error {
	catalogDir := filepath.Join(w.apiDir, "catalog")

	brandItems := make([]map[string]any, 0, len(w.g.Brands))
	for _, b := range w.g.Brands {
		brandItems = append(brandItems, map[string]any{
			"id":   b.ID,
			"slug": b.Slug,
			"name": b.Name,
			"path": b.Slug + "/index.json",
		})
	}
	err := writeJSONFile(filepath.Join(catalogDir, "index.json"), map[string]any{
		"version": w.opts.Version,
		"count":   len(w.g.Brands),
		"brands":  brandItems,
	})
	if err != nil {
		return err
	}

	for _, b := range w.g.Brands {
		brandDir := filepath.Join(catalogDir, b.Slug)
		filaments := w.ix.FilamentsByBrand[b.ID]

		seen := make(map[string]bool)
		materialIDs := make([]string, 0)
		for _, f := range filaments {
			if !seen[f.MaterialFamilyID] {
				seen[f.MaterialFamilyID] = true
				materialIDs = append(materialIDs, f.MaterialFamilyID)
			}
		}
		sort.Strings(materialIDs)

		materials := make([]*catalog.MaterialFamily, 0, len(materialIDs))
		materialItems := make([]map[string]any, 0, len(materialIDs))
		for _, mid := range materialIDs {
			m := w.ix.MaterialsByID[mid]
			if m == nil {
				continue
			}
			materials = append(materials, m)
			materialItems = append(materialItems, map[string]any{
				"id":   m.ID,
				"code": m.Code,
				"name": m.Name,
				"path": strings.ToLower(m.Code) + "/index.json",
			})
		}

		brandPayload := map[string]any{
			"version":   w.opts.Version,
			"materials": materialItems,
		}
		merge(brandPayload, brandRef(b))
		if err := writeJSONFile(filepath.Join(brandDir, "index.json"), brandPayload); err != nil {
			return err
		}

		for _, m := range materials {
			materialDir := filepath.Join(brandDir, strings.ToLower(m.Code))

			bmf := make([]*catalog.Filament, 0)
			filamentItems := make([]map[string]any, 0)
			for _, f := range filaments {
				if f.MaterialFamilyID != m.ID {
					continue
				}
				bmf = append(bmf, f)
				filamentItems = append(filamentItems, map[string]any{
					"id":            f.ID,
					"slug":          f.Slug,
					"name":          f.Name,
					"path":          f.Slug + "/index.json",
					"variant_count": len(w.ix.VariantsByFilament[f.ID]),
				})
			}

			materialPayload := map[string]any{
				"version":   w.opts.Version,
				"filaments": filamentItems,
			}
			merge(materialPayload, brandRef(b))
			merge(materialPayload, materialRef(m))
			if err := writeJSONFile(filepath.Join(materialDir, "index.json"), materialPayload); err != nil {
				return err
			}

			for _, f := range bmf {
				if err := w.writeCatalogFilament(materialDir, b, m, f); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *apiWriter) writeCatalogFilament(materialDir string, b *catalog.Brand, m *catalog.MaterialFamily, f *catalog.Filament) error {
	filamentDir := filepath.Join(materialDir, f.Slug)
	variants := w.ix.VariantsByFilament[f.ID]

	variantItems := make([]map[string]any, 0, len(variants))
	for _, v := range variants {
		variantItems = append(variantItems, map[string]any{
			"id":         v.ID,
			"slug":       orNull(v.Slug),
			"color_name": orNull(v.ColorName),
			"path":       catalogVariantName(v) + ".json",
		})
	}

	payload := map[string]any{
		"version":  w.opts.Version,
		"variants": variantItems,
	}
	merge(payload, brandRef(b))
	merge(payload, materialRef(m))
	merge(payload, filamentRef(f))
	if err := writeJSONFile(filepath.Join(filamentDir, "index.json"), payload); err != nil {
		return err
	}

	for _, v := range variants {
		sizeRefs := make([]map[string]any, 0)
		for _, s := range w.ix.SizesByVariant[v.ID] {
			ref := sizeRef(s)
			ref["sku"] = orNull(s.SKU)
			ref["gtin"] = orNull(s.GTIN)
			ref["path"] = "../../../../sizes/" + s.ID + ".json"
			sizeRefs = append(sizeRefs, ref)
		}

		vPayload := map[string]any{
			"version": w.opts.Version,
			"variant": asMap(v),
			"sizes":   sizeRefs,
		}
		merge(vPayload, brandRef(b))
		merge(vPayload, materialRef(m))
		merge(vPayload, filamentRef(f))
		if err := writeJSONFile(filepath.Join(filamentDir, catalogVariantName(v)+".json"), vPayload); err != nil {
			return err
		}
	}
	return nil
}

// catalogVariantName picks the file stem for a variant inside the catalog
// tree: slug, else color name, else the variant id.
func catalogVariantName(v *catalog.Variant) string {
	name := strings.TrimSpace(v.Slug)
	if name == "" {
		name = strings.TrimSpace(v.ColorName)
	}
	if name == "" {
		name = v.ID
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func (w *apiWriter) writeRoutes() error {
	return writeJSONFile(filepath.Join(w.apiDir, "routes.json"), map[string]any{
		"version":      w.opts.Version,
		"generated_at": w.opts.GeneratedAt,
		"base_url":     w.opts.BaseURL,
		"routes": map[string]any{
			"index":            "/index.json",
			"brands":           "/brands/index.json",
			"brand":            "/brands/{slug}.json",
			"brand_sizes":      "/brands/{slug}-sizes.json",
			"materials":        "/materials/index.json",
			"material":         "/materials/{code}.json",
			"material_sizes":   "/materials/{code}-sizes.json",
			"filaments":        "/filaments/index.json",
			"filament":         "/filaments/{id}.json",
			"stores":           "/stores/index.json",
			"store":            "/stores/{slug}.json",
			"search":           "/search/autocomplete.json",
			"sizes":            "/sizes/index.json",
			"size":             "/sizes/{id}.json",
			"catalog":          "/catalog/index.json",
			"catalog_brand":    "/catalog/{brand}/index.json",
			"catalog_material": "/catalog/{brand}/{material}/index.json",
			"catalog_filament": "/catalog/{brand}/{material}/{filament}/index.json",
			"catalog_variant":  "/catalog/{brand}/{material}/{filament}/{variant}.json",
		},
	})
}

// brandLogoURL copies the brand's logo file into the assets tree and returns
// its URL, nil when the brand has no logo. A missing source file is not an
// error: the URL is still emitted so the gap is visible downstream.
func (w *apiWriter) brandLogoURL(b *catalog.Brand) any {
	if b.Logo == "" {
		return nil
	}
	var src string
	if w.opts.DataDir != "" && b.SourcePath != "" {
		src = existingPath(filepath.Join(w.opts.DataDir, filepath.FromSlash(b.SourcePath), b.Logo))
	}
	if src == "" && w.opts.DataDir != "" {
		src = existingPath(filepath.Join(w.opts.DataDir, b.Name, b.Logo))
	}
	dst := filepath.Join(w.assetsDir, "brands", b.Slug, b.Logo)
	if src != "" {
		if err := copyFile(src, dst); err != nil {
			w.opts.logger().Warn("copy brand logo failed", zap.String("brand", b.Slug), zap.Error(err))
		}
	}
	return w.makeURL("assets/brands/" + b.Slug + "/" + b.Logo)
}

func (w *apiWriter) storeLogoURL(st *catalog.Store) any {
	if st.Logo == "" {
		return nil
	}
	var src string
	if w.opts.StoresDir != "" && st.SourcePath != "" {
		src = existingPath(filepath.Join(w.opts.StoresDir, filepath.FromSlash(st.SourcePath), st.Logo))
	}
	if src == "" && w.opts.StoresDir != "" {
		src = existingPath(filepath.Join(w.opts.StoresDir, st.Slug, st.Logo))
	}
	dst := filepath.Join(w.assetsDir, "stores", st.Slug, st.Logo)
	if src != "" {
		if err := copyFile(src, dst); err != nil {
			w.opts.logger().Warn("copy store logo failed", zap.String("store", st.Slug), zap.Error(err))
		}
	}
	return w.makeURL("assets/stores/" + st.Slug + "/" + st.Logo)
}

// makeURL applies the asset URL policy: relative paths always in relative
// mode, base-URL-prefixed in absolute mode, and in auto mode absolute only
// when a non-local base URL is configured.
func (w *apiWriter) makeURL(relPath string) string {
	mode := strings.ToLower(w.opts.AssetURLMode)
	switch mode {
	case "relative":
		return relPath
	case "absolute":
		if w.opts.BaseURL != "" {
			return strings.TrimRight(w.opts.BaseURL, "/") + "/" + relPath
		}
		return relPath
	default: // auto
		if w.opts.BaseURL != "" && !isLocalURL(w.opts.BaseURL) {
			return strings.TrimRight(w.opts.BaseURL, "/") + "/" + relPath
		}
		return relPath
	}
}

func isLocalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	return strings.HasSuffix(host, ".local")
}

func existingPath(p string) string {
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Reference makers. Absent targets still emit every key, as null, so
// consumers see a fixed shape.

func brandRef(b *catalog.Brand) map[string]any {
	if b == nil {
		return map[string]any{"brand_id": nil, "brand_name": nil, "brand_slug": nil}
	}
	return map[string]any{"brand_id": b.ID, "brand_name": b.Name, "brand_slug": b.Slug}
}

func materialRef(m *catalog.MaterialFamily) map[string]any {
	if m == nil {
		return map[string]any{"material_id": nil, "material_code": nil, "material_name": nil}
	}
	return map[string]any{"material_id": m.ID, "material_code": m.Code, "material_name": m.Name}
}

func filamentRef(f *catalog.Filament) map[string]any {
	if f == nil {
		return map[string]any{"filament_id": nil, "filament_name": nil, "filament_slug": nil}
	}
	return map[string]any{"filament_id": f.ID, "filament_name": f.Name, "filament_slug": f.Slug}
}

func storeRef(st *catalog.Store) map[string]any {
	if st == nil {
		return map[string]any{"store_id": nil, "store_name": nil, "store_slug": nil, "storefront_url": nil}
	}
	return map[string]any{
		"store_id":       st.ID,
		"store_name":     st.Name,
		"store_slug":     st.Slug,
		"storefront_url": orNull(st.StorefrontURL),
	}
}

func sizeRef(s *catalog.Size) map[string]any {
	return map[string]any{
		"size_id":          s.ID,
		"size_weight_g":    s.WeightG,
		"size_diameter_mm": s.DiameterMM,
	}
}

func merge(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}

// orNull maps the empty string to JSON null.
func orNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
