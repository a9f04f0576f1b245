package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/open-filament/ofdb/internal/catalog"
)

// envelope is the all.json payload: version metadata plus every collection,
// in graph order.
type envelope struct {
	Version     string `json:"version"`
	GeneratedAt string `json:"generated_at"`
	*catalog.Graph
}

// brandBundle is the per-brand JSON payload.
type brandBundle struct {
	Version          string                    `json:"version"`
	GeneratedAt      string                    `json:"generated_at"`
	Brand            *catalog.Brand            `json:"brand"`
	MaterialFamilies []*catalog.MaterialFamily `json:"material_families"`
	Filaments        []*catalog.Filament       `json:"filaments"`
	Variants         []*catalog.Variant        `json:"variants"`
	Sizes            []*catalog.Size           `json:"sizes"`
	PurchaseLinks    []*catalog.PurchaseLink   `json:"purchase_links"`
	Documents        []*catalog.Document       `json:"documents"`
}

type brandIndexEntry struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	FilamentCount int    `json:"filament_count"`
	VariantCount  int    `json:"variant_count"`
	SizeCount     int    `json:"size_count"`
	File          string `json:"file"`
	FileGz        string `json:"file_gz"`
}

// JSON writes the bulk JSON artifacts: all.json (+gz), all.ndjson, and the
// per-brand bundles with their index.
func JSON(g *catalog.Graph, opts Options) error {
	dir := filepath.Join(opts.OutputDir, "json")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	if err := exportAllJSON(g, dir, opts); err != nil {
		return err
	}
	if err := exportNDJSON(g, dir, opts); err != nil {
		return err
	}
	return exportPerBrandJSON(g, dir, opts)
}

func exportAllJSON(g *catalog.Graph, dir string, opts Options) error {
	env := envelope{Version: opts.Version, GeneratedAt: opts.GeneratedAt, Graph: g}
	if err := writeJSONFile(filepath.Join(dir, "all.json"), env); err != nil {
		return err
	}
	if err := writeJSONGzip(filepath.Join(dir, "all.json.gz"), env); err != nil {
		return err
	}
	opts.logger().Info("wrote bulk json", zap.String("dir", dir))
	return nil
}

func exportNDJSON(g *catalog.Graph, dir string, opts Options) error {
	path := filepath.Join(dir, "all.ndjson")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	writeLine := func(record any) error {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal ndjson record: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		return w.WriteByte('\n')
	}
	// "_type" sorts before every entity field, so it leads each line.
	typed := func(kind string, entity any) map[string]any {
		m := asMap(entity)
		m["_type"] = kind
		return m
	}

	err = writeLine(map[string]any{
		"_type":        "meta",
		"version":      opts.Version,
		"generated_at": opts.GeneratedAt,
	})
	for _, b := range g.Brands {
		if err != nil {
			break
		}
		err = writeLine(typed("brand", b))
	}
	for _, m := range g.MaterialFamilies {
		if err != nil {
			break
		}
		err = writeLine(typed("material_family", m))
	}
	for _, fil := range g.Filaments {
		if err != nil {
			break
		}
		err = writeLine(typed("filament", fil))
	}
	for _, v := range g.Variants {
		if err != nil {
			break
		}
		err = writeLine(typed("variant", v))
	}
	for _, s := range g.Sizes {
		if err != nil {
			break
		}
		err = writeLine(typed("size", s))
	}
	for _, st := range g.Stores {
		if err != nil {
			break
		}
		err = writeLine(typed("store", st))
	}
	for _, pl := range g.PurchaseLinks {
		if err != nil {
			break
		}
		err = writeLine(typed("purchase_link", pl))
	}
	for _, d := range g.Documents {
		if err != nil {
			break
		}
		err = writeLine(typed("document", d))
	}
	for _, tag := range g.Tags {
		if err != nil {
			break
		}
		err = writeLine(typed("tag", tag))
	}
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func exportPerBrandJSON(g *catalog.Graph, dir string, opts Options) error {
	brandsDir := filepath.Join(dir, "brands")
	ix := NewIndex(g)

	indexEntries := make([]brandIndexEntry, 0, len(g.Brands))
	for _, brand := range g.Brands {
		// Empty collections serialize as [] rather than null.
		filaments := append([]*catalog.Filament{}, ix.FilamentsByBrand[brand.ID]...)

		variants := []*catalog.Variant{}
		for _, f := range filaments {
			variants = append(variants, ix.VariantsByFilament[f.ID]...)
		}
		sizes := []*catalog.Size{}
		for _, v := range variants {
			sizes = append(sizes, ix.SizesByVariant[v.ID]...)
		}
		links := []*catalog.PurchaseLink{}
		for _, s := range sizes {
			links = append(links, ix.LinksBySize[s.ID]...)
		}
		documents := []*catalog.Document{}
		for _, f := range filaments {
			documents = append(documents, ix.DocumentsByFilament[f.ID]...)
		}

		materialIDs := make(map[string]bool)
		for _, f := range filaments {
			materialIDs[f.MaterialFamilyID] = true
		}
		materials := []*catalog.MaterialFamily{}
		for _, m := range g.MaterialFamilies {
			if materialIDs[m.ID] {
				materials = append(materials, m)
			}
		}

		bundle := brandBundle{
			Version:          opts.Version,
			GeneratedAt:      opts.GeneratedAt,
			Brand:            brand,
			MaterialFamilies: materials,
			Filaments:        filaments,
			Variants:         variants,
			Sizes:            sizes,
			PurchaseLinks:    links,
			Documents:        documents,
		}
		if err := writeJSONFile(filepath.Join(brandsDir, brand.Slug+".json"), bundle); err != nil {
			return err
		}
		if err := writeJSONGzip(filepath.Join(brandsDir, brand.Slug+".json.gz"), bundle); err != nil {
			return err
		}

		indexEntries = append(indexEntries, brandIndexEntry{
			ID:            brand.ID,
			Slug:          brand.Slug,
			Name:          brand.Name,
			FilamentCount: len(filaments),
			VariantCount:  len(variants),
			SizeCount:     len(sizes),
			File:          brand.Slug + ".json",
			FileGz:        brand.Slug + ".json.gz",
		})
	}

	index := map[string]any{
		"version":      opts.Version,
		"generated_at": opts.GeneratedAt,
		"brands":       indexEntries,
	}
	if err := writeJSONFile(filepath.Join(brandsDir, "index.json"), index); err != nil {
		return err
	}
	opts.logger().Info("wrote per-brand json",
		zap.Int("brands", len(g.Brands)), zap.String("dir", brandsDir))
	return nil
}
