package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/open-filament/ofdb/internal/catalog"
)

// CSV writes one flat file per entity plus a denormalized full_sizes.csv
// join and a short README describing the files.
func CSV(g *catalog.Graph, opts Options) error {
	dir := filepath.Join(opts.OutputDir, "csv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	writers := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{"brands.csv", func(w *csv.Writer) error { return writeBrandsCSV(w, g) }},
		{"material_families.csv", func(w *csv.Writer) error { return writeMaterialsCSV(w, g) }},
		{"filaments.csv", func(w *csv.Writer) error { return writeFilamentsCSV(w, g) }},
		{"variants.csv", func(w *csv.Writer) error { return writeVariantsCSV(w, g) }},
		{"sizes.csv", func(w *csv.Writer) error { return writeSizesCSV(w, g) }},
		{"stores.csv", func(w *csv.Writer) error { return writeStoresCSV(w, g) }},
		{"purchase_links.csv", func(w *csv.Writer) error { return writePurchaseLinksCSV(w, g) }},
		{"documents.csv", func(w *csv.Writer) error { return writeDocumentsCSV(w, g) }},
		{"full_sizes.csv", func(w *csv.Writer) error { return writeFullSizesCSV(w, g, opts) }},
	}
	for _, job := range writers {
		if err := writeCSVFile(filepath.Join(dir, job.name), job.write); err != nil {
			return err
		}
	}

	if err := writeCSVReadme(dir, opts); err != nil {
		return err
	}
	opts.logger().Info("wrote csv artifacts", zap.String("dir", dir), zap.Int("files", len(writers)+1))
	return nil
}

func writeCSVFile(path string, fill func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func writeBrandsCSV(w *csv.Writer, g *catalog.Graph) error {
	if err := w.Write([]string{"id", "name", "slug", "website", "logo", "country", "origin", "aliases"}); err != nil {
		return err
	}
	for _, b := range g.Brands {
		if err := w.Write([]string{b.ID, b.Name, b.Slug, b.Website, b.Logo, b.Country, b.Origin, pipeJoin(b.Aliases)}); err != nil {
			return err
		}
	}
	return nil
}

func writeMaterialsCSV(w *csv.Writer, g *catalog.Graph) error {
	if err := w.Write([]string{"id", "code", "name"}); err != nil {
		return err
	}
	for _, m := range g.MaterialFamilies {
		if err := w.Write([]string{m.ID, m.Code, m.Name}); err != nil {
			return err
		}
	}
	return nil
}

func writeFilamentsCSV(w *csv.Writer, g *catalog.Graph) error {
	header := []string{"id", "brand_id", "material_family_id", "name", "slug", "description", "diameters", "specs", "images"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, f := range g.Filaments {
		diameters := make([]string, 0, len(f.Diameters))
		for _, d := range f.Diameters {
			diameters = append(diameters, strconv.FormatFloat(d, 'g', -1, 64))
		}
		row := []string{f.ID, f.BrandID, f.MaterialFamilyID, f.Name, f.Slug, f.Description,
			strings.Join(diameters, "|"), jsonCell(f.Specs), pipeJoin(f.Images)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeVariantsCSV(w *csv.Writer, g *catalog.Graph) error {
	header := []string{"id", "filament_id", "slug", "color_name", "finish", "color_value", "colorants", "images"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, v := range g.Variants {
		row := []string{v.ID, v.FilamentID, v.Slug, v.ColorName, v.Finish, v.ColorValue,
			pipeJoin(v.Colorants), pipeJoin(v.Images)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSizesCSV(w *csv.Writer, g *catalog.Graph) error {
	header := []string{"id", "variant_id", "sku", "gtin", "weight_g", "length_m", "diameter_mm", "msrp_amount", "msrp_currency"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range g.Sizes {
		row := []string{s.ID, s.VariantID, s.SKU, s.GTIN,
			strconv.Itoa(s.WeightG), intCell(s.LengthM),
			strconv.FormatFloat(s.DiameterMM, 'g', -1, 64),
			s.MSRPAmount, s.MSRPCurrency}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeStoresCSV(w *csv.Writer, g *catalog.Graph) error {
	header := []string{"id", "name", "slug", "storefront_url", "ships_from", "ships_to", "logo"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, st := range g.Stores {
		row := []string{st.ID, st.Name, st.Slug, st.StorefrontURL,
			looseCell(st.ShipsFrom), looseCell(st.ShipsTo), st.Logo}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePurchaseLinksCSV(w *csv.Writer, g *catalog.Graph) error {
	header := []string{"id", "size_id", "store_id", "url", "spool_refill", "ships_from", "ships_to"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, pl := range g.PurchaseLinks {
		refill := "0"
		if pl.SpoolRefill {
			refill = "1"
		}
		row := []string{pl.ID, pl.SizeID, pl.StoreID, pl.URL, refill,
			pipeJoin(pl.ShipsFrom), pipeJoin(pl.ShipsTo)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeDocumentsCSV(w *csv.Writer, g *catalog.Graph) error {
	if err := w.Write([]string{"id", "filament_id", "type", "url", "language"}); err != nil {
		return err
	}
	for _, d := range g.Documents {
		if err := w.Write([]string{d.ID, d.FilamentID, d.Type, d.URL, d.Language}); err != nil {
			return err
		}
	}
	return nil
}

// writeFullSizesCSV denormalizes size -> variant -> filament -> brand and
// material. Sizes whose variant or filament cannot be resolved are skipped
// with a warning; a missing brand or material only blanks those columns.
func writeFullSizesCSV(w *csv.Writer, g *catalog.Graph, opts Options) error {
	header := []string{
		"size_id", "sku", "gtin", "weight_g", "length_m", "diameter_mm",
		"msrp_amount", "msrp_currency",
		"variant_id", "color_name", "finish", "color_value",
		"filament_id", "filament_name", "filament_slug",
		"material_code", "material_name",
		"brand_name", "brand_slug",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	idx := NewIndex(g)
	for _, s := range g.Sizes {
		v := idx.VariantsByID[s.VariantID]
		if v == nil {
			opts.logger().Warn("full_sizes: size has no variant", zap.String("size_id", s.ID))
			continue
		}
		f := idx.FilamentsByID[v.FilamentID]
		if f == nil {
			opts.logger().Warn("full_sizes: variant has no filament", zap.String("variant_id", v.ID))
			continue
		}
		var materialCode, materialName string
		if m := idx.MaterialsByID[f.MaterialFamilyID]; m != nil {
			materialCode, materialName = m.Code, m.Name
		}
		var brandName, brandSlug string
		if b := idx.BrandsByID[f.BrandID]; b != nil {
			brandName, brandSlug = b.Name, b.Slug
		}
		row := []string{
			s.ID, s.SKU, s.GTIN,
			strconv.Itoa(s.WeightG), intCell(s.LengthM),
			strconv.FormatFloat(s.DiameterMM, 'g', -1, 64),
			s.MSRPAmount, s.MSRPCurrency,
			v.ID, v.ColorName, v.Finish, v.ColorValue,
			f.ID, f.Name, f.Slug,
			materialCode, materialName,
			brandName, brandSlug,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVReadme(dir string, opts Options) error {
	var b strings.Builder
	b.WriteString("# Open Filament Database — CSV export\n\n")
	fmt.Fprintf(&b, "Dataset version: %s\nGenerated at: %s\n\n", opts.Version, opts.GeneratedAt)
	b.WriteString("One file per entity, UTF-8, header row included.\n")
	b.WriteString("List values are joined with `|`; object values are JSON strings;\n")
	b.WriteString("booleans are 1/0; absent values are empty cells.\n\n")
	b.WriteString("- brands.csv\n- material_families.csv\n- filaments.csv\n- variants.csv\n")
	b.WriteString("- sizes.csv\n- stores.csv\n- purchase_links.csv\n- documents.csv\n")
	b.WriteString("- full_sizes.csv — every size joined with its variant, filament, material family and brand\n")
	return os.WriteFile(filepath.Join(dir, "README.md"), []byte(b.String()), 0o644)
}

func pipeJoin(items []string) string {
	return strings.Join(items, "|")
}

// intCell renders n, or an empty cell when n is zero (optional columns only).
func intCell(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// jsonCell renders an object as a JSON string, empty cell when absent.
func jsonCell(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	data, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(data)
}

// looseCell renders a value that may be a string or a list.
func looseCell(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case []string:
		return pipeJoin(n)
	case []any:
		parts := make([]string, 0, len(n))
		for _, item := range n {
			parts = append(parts, fmt.Sprint(item))
		}
		return pipeJoin(parts)
	default:
		return fmt.Sprint(v)
	}
}
