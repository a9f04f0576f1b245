package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/open-filament/ofdb/internal/catalog"
)

// schemaVersion names the relational schema, not the dataset.
const schemaVersion = "1"

const schemaDDL = `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS brand (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	website TEXT,
	logo TEXT,
	country TEXT,
	origin TEXT,
	aliases TEXT,  -- JSON array
	created_at TEXT,
	updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_brand_slug ON brand(slug);
CREATE UNIQUE INDEX IF NOT EXISTS ux_brand_name ON brand(name);

CREATE TABLE IF NOT EXISTS material_family (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	name TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_material_code ON material_family(code);

CREATE TABLE IF NOT EXISTS filament (
	id TEXT PRIMARY KEY,
	brand_id TEXT NOT NULL REFERENCES brand(id) ON DELETE CASCADE,
	material_family_id TEXT NOT NULL REFERENCES material_family(id),
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	description TEXT,
	diameters TEXT,  -- JSON array
	specs TEXT,      -- JSON object
	images TEXT,     -- JSON array
	source_path TEXT,
	created_at TEXT,
	updated_at TEXT
);
CREATE INDEX IF NOT EXISTS ix_filament_brand ON filament(brand_id);
CREATE INDEX IF NOT EXISTS ix_filament_material ON filament(material_family_id);

CREATE TABLE IF NOT EXISTS variant (
	id TEXT PRIMARY KEY,
	filament_id TEXT NOT NULL REFERENCES filament(id) ON DELETE CASCADE,
	slug TEXT,
	color_name TEXT,
	finish TEXT,
	color_value TEXT,
	colorants TEXT,  -- JSON array
	images TEXT,     -- JSON array
	source_path TEXT
);
CREATE INDEX IF NOT EXISTS ix_variant_filament ON variant(filament_id);

CREATE TABLE IF NOT EXISTS size (
	id TEXT PRIMARY KEY,
	variant_id TEXT NOT NULL REFERENCES variant(id) ON DELETE CASCADE,
	sku TEXT,
	gtin TEXT,
	weight_g INTEGER NOT NULL,
	length_m INTEGER,
	diameter_mm REAL NOT NULL,
	msrp_amount TEXT,
	msrp_currency TEXT
);
CREATE INDEX IF NOT EXISTS ix_size_variant ON size(variant_id);
CREATE INDEX IF NOT EXISTS ix_size_sku ON size(sku);
CREATE INDEX IF NOT EXISTS ix_size_gtin ON size(gtin);

CREATE TABLE IF NOT EXISTS store (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	storefront_url TEXT,
	ships_from TEXT,
	ships_to TEXT,
	logo TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_store_slug ON store(slug);

-- store_id is deliberately not a foreign key: it may hold a store slug
-- instead of an id (the two source trees are only loosely coupled).
CREATE TABLE IF NOT EXISTS purchase_link (
	id TEXT PRIMARY KEY,
	size_id TEXT NOT NULL REFERENCES size(id) ON DELETE CASCADE,
	store_id TEXT NOT NULL,
	url TEXT NOT NULL,
	spool_refill INTEGER DEFAULT 0,
	ships_from TEXT,  -- JSON array
	ships_to TEXT     -- JSON array
);
CREATE INDEX IF NOT EXISTS ix_purchase_link_size ON purchase_link(size_id);
CREATE INDEX IF NOT EXISTS ix_purchase_link_store ON purchase_link(store_id);

CREATE TABLE IF NOT EXISTS document (
	id TEXT PRIMARY KEY,
	filament_id TEXT NOT NULL REFERENCES filament(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	url TEXT NOT NULL,
	language TEXT
);
CREATE INDEX IF NOT EXISTS ix_document_filament ON document(filament_id);

CREATE TABLE IF NOT EXISTS tag (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS filament_tag (
	filament_id TEXT NOT NULL REFERENCES filament(id) ON DELETE CASCADE,
	tag_id TEXT NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
	PRIMARY KEY (filament_id, tag_id)
);

CREATE TABLE IF NOT EXISTS variant_tag (
	variant_id TEXT NOT NULL REFERENCES variant(id) ON DELETE CASCADE,
	tag_id TEXT NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
	PRIMARY KEY (variant_id, tag_id)
);

CREATE VIEW IF NOT EXISTS v_full_size AS
SELECT
	s.id AS size_id,
	s.sku,
	s.gtin,
	s.weight_g,
	s.length_m,
	s.diameter_mm,
	s.msrp_amount,
	s.msrp_currency,
	v.id AS variant_id,
	v.color_name,
	v.finish,
	v.color_value,
	f.id AS filament_id,
	f.name AS filament_name,
	f.slug AS filament_slug,
	f.description AS filament_description,
	mf.id AS material_family_id,
	mf.code AS material_code,
	mf.name AS material_name,
	b.id AS brand_id,
	b.name AS brand_name,
	b.slug AS brand_slug
FROM size s
JOIN variant v ON v.id = s.variant_id
JOIN filament f ON f.id = v.filament_id
JOIN material_family mf ON mf.id = f.material_family_id
JOIN brand b ON b.id = f.brand_id;
`

// SQLite writes the relational artifact and its zstd-compressed twin.
func SQLite(g *catalog.Graph, opts Options) error {
	dir := filepath.Join(opts.OutputDir, "sqlite")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	dbPath := filepath.Join(dir, "open_filament_db_v"+schemaVersion+".sqlite")
	_ = os.Remove(dbPath) // overwrite any previous build

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	// Bulk-insert tuning; the artifact is rebuilt from scratch each run.
	if _, err := db.Exec("PRAGMA synchronous = OFF"); err != nil {
		return err
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := insertAll(tx, g, opts); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	if err := db.Close(); err != nil {
		return err
	}

	opts.logger().Info("wrote sqlite artifact",
		zap.String("path", dbPath),
		zap.Int("brands", len(g.Brands)),
		zap.Int("filaments", len(g.Filaments)),
		zap.Int("sizes", len(g.Sizes)),
	)

	return compressZstd(dbPath, dbPath+".zst")
}

func insertAll(tx *sql.Tx, g *catalog.Graph, opts Options) error {
	metaStmt, err := tx.Prepare("INSERT INTO meta (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = metaStmt.Close() }()
	for _, kv := range [][2]string{
		{"schema_version", schemaVersion},
		{"dataset_version", opts.Version},
		{"generated_at", opts.GeneratedAt},
	} {
		if _, err := metaStmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("insert meta %s: %w", kv[0], err)
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO brand (id, name, slug, website, logo, country, origin, aliases, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	for _, b := range g.Brands {
		if _, err := stmt.Exec(b.ID, b.Name, b.Slug, nullStr(b.Website), nullStr(b.Logo),
			nullStr(b.Country), nullStr(b.Origin), jsonText(b.Aliases),
			nullStr(b.CreatedAt), nullStr(b.UpdatedAt)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert brand %s: %w", b.Slug, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare("INSERT INTO material_family (id, code, name) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	for _, m := range g.MaterialFamilies {
		if _, err := stmt.Exec(m.ID, m.Code, m.Name); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert material %s: %w", m.Code, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare(`
		INSERT INTO filament (id, brand_id, material_family_id, name, slug, description,
			diameters, specs, images, source_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	for _, f := range g.Filaments {
		if _, err := stmt.Exec(f.ID, f.BrandID, f.MaterialFamilyID, f.Name, f.Slug,
			nullStr(f.Description), jsonText(f.Diameters), jsonText(f.Specs),
			jsonText(f.Images), nullStr(f.SourcePath),
			nullStr(f.CreatedAt), nullStr(f.UpdatedAt)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert filament %s: %w", f.Slug, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare(`
		INSERT INTO variant (id, filament_id, slug, color_name, finish, color_value, colorants, images, source_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	for _, v := range g.Variants {
		if _, err := stmt.Exec(v.ID, v.FilamentID, nullStr(v.Slug), nullStr(v.ColorName),
			nullStr(v.Finish), nullStr(v.ColorValue), jsonText(v.Colorants),
			jsonText(v.Images), nullStr(v.SourcePath)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert variant %s: %w", v.ID, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare(`
		INSERT INTO size (id, variant_id, sku, gtin, weight_g, length_m, diameter_mm, msrp_amount, msrp_currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	for _, s := range g.Sizes {
		if _, err := stmt.Exec(s.ID, s.VariantID, nullStr(s.SKU), nullStr(s.GTIN),
			s.WeightG, nullInt(s.LengthM), s.DiameterMM,
			nullStr(s.MSRPAmount), nullStr(s.MSRPCurrency)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert size %s: %w", s.ID, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare(`
		INSERT INTO store (id, name, slug, storefront_url, ships_from, ships_to, logo)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	for _, st := range g.Stores {
		if _, err := stmt.Exec(st.ID, st.Name, st.Slug, nullStr(st.StorefrontURL),
			looseText(st.ShipsFrom), looseText(st.ShipsTo), nullStr(st.Logo)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert store %s: %w", st.Slug, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare(`
		INSERT INTO purchase_link (id, size_id, store_id, url, spool_refill, ships_from, ships_to)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	for _, pl := range g.PurchaseLinks {
		refill := 0
		if pl.SpoolRefill {
			refill = 1
		}
		if _, err := stmt.Exec(pl.ID, pl.SizeID, pl.StoreID, pl.URL, refill,
			jsonText(pl.ShipsFrom), jsonText(pl.ShipsTo)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert purchase link %s: %w", pl.ID, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare("INSERT INTO document (id, filament_id, type, url, language) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	for _, d := range g.Documents {
		if _, err := stmt.Exec(d.ID, d.FilamentID, d.Type, d.URL, nullStr(d.Language)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
	}
	_ = stmt.Close()

	stmt, err = tx.Prepare("INSERT INTO tag (id, name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, t := range g.Tags {
		if _, err := stmt.Exec(t.ID, t.Name); err != nil {
			return fmt.Errorf("insert tag %s: %w", t.Name, err)
		}
	}
	return nil
}

// nullStr maps "" to SQL NULL.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt maps 0 to SQL NULL; used only for optional columns where zero is
// not a meaningful value.
func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// jsonText stores a list or object as JSON text, NULL when absent.
func jsonText(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case []string:
		if n == nil {
			return nil
		}
	case []float64:
		if n == nil {
			return nil
		}
	case map[string]any:
		if n == nil {
			return nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(data)
}

// looseText renders a value that may be a bare string or a list: strings
// are stored as-is, anything else as JSON text.
func looseText(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case string:
		return n
	default:
		return jsonText(v)
	}
}

func compressZstd(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	enc, err := zstd.NewWriter(out)
	if err != nil {
		_ = out.Close()
		return err
	}
	if _, err := io.Copy(enc, in); err != nil {
		_ = enc.Close()
		_ = out.Close()
		return fmt.Errorf("compress %s: %w", dst, err)
	}
	if err := enc.Close(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
