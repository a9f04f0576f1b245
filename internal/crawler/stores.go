package crawler

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/open-filament/ofdb/internal/catalog"
	"github.com/open-filament/ofdb/internal/ident"
	"github.com/open-filament/ofdb/internal/normalize"
)

// crawlStores walks the flat store tree. A directory without a store.json
// is not a store and is skipped without comment.
func (c *Crawler) crawlStores() {
	if _, err := os.Stat(c.storesDir); err != nil {
		c.log.Warn("stores root missing, skipping store traversal",
			zap.String("dir", c.storesDir), zap.Error(err))
		return
	}
	for _, name := range c.subdirs(c.storesDir) {
		c.processStoreDir(filepath.Join(c.storesDir, name), name)
	}
}

func (c *Crawler) processStoreDir(dir, dirName string) {
	path := filepath.Join(dir, "store.json")
	if _, err := os.Stat(path); err != nil {
		return
	}
	obj, ok := c.loadObject(path)
	if !ok {
		return
	}

	meta := storeMetaFrom(obj)
	name := meta.name
	if name == "" {
		name = dirName
	}
	c.getOrCreateStore(name, meta, relPath(c.storesDir, dir))
}

// getOrCreateStore dedupes on the exact store name. Unlike brands this is
// case-sensitive: the store tree is the authoritative spelling.
func (c *Crawler) getOrCreateStore(name string, meta storeMeta, sourcePath string) string {
	if id, ok := c.storeIDs[name]; ok {
		return id
	}

	storeID := ident.Store(name)
	c.graph.Stores = append(c.graph.Stores, &catalog.Store{
		ID:            storeID,
		Name:          name,
		Slug:          normalize.Slugify(name),
		StorefrontURL: meta.storefrontURL,
		ShipsFrom:     meta.shipsFrom,
		ShipsTo:       meta.shipsTo,
		Logo:          meta.logo,
		SourcePath:    sourcePath,
	})
	c.storeIDs[name] = storeID
	return storeID
}
