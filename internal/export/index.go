package export

import "github.com/open-filament/ofdb/internal/catalog"

// Index is the set of secondary lookups an exporter derives from the graph
// for its own run. Grouped slices preserve the graph's discovery order.
type Index struct {
	BrandsByID    map[string]*catalog.Brand
	MaterialsByID map[string]*catalog.MaterialFamily
	FilamentsByID map[string]*catalog.Filament
	VariantsByID  map[string]*catalog.Variant
	SizesByID     map[string]*catalog.Size
	StoresByID    map[string]*catalog.Store
	StoresBySlug  map[string]*catalog.Store

	FilamentsByBrand    map[string][]*catalog.Filament
	FilamentsByMaterial map[string][]*catalog.Filament
	VariantsByFilament  map[string][]*catalog.Variant
	SizesByVariant      map[string][]*catalog.Size
	LinksBySize         map[string][]*catalog.PurchaseLink
	DocumentsByFilament map[string][]*catalog.Document
}

// NewIndex builds the lookups for one export run without touching the graph.
func NewIndex(g *catalog.Graph) *Index {
	ix := &Index{
		BrandsByID:    make(map[string]*catalog.Brand, len(g.Brands)),
		MaterialsByID: make(map[string]*catalog.MaterialFamily, len(g.MaterialFamilies)),
		FilamentsByID: make(map[string]*catalog.Filament, len(g.Filaments)),
		VariantsByID:  make(map[string]*catalog.Variant, len(g.Variants)),
		SizesByID:     make(map[string]*catalog.Size, len(g.Sizes)),
		StoresByID:    make(map[string]*catalog.Store, len(g.Stores)),
		StoresBySlug:  make(map[string]*catalog.Store, len(g.Stores)),

		FilamentsByBrand:    make(map[string][]*catalog.Filament),
		FilamentsByMaterial: make(map[string][]*catalog.Filament),
		VariantsByFilament:  make(map[string][]*catalog.Variant),
		SizesByVariant:      make(map[string][]*catalog.Size),
		LinksBySize:         make(map[string][]*catalog.PurchaseLink),
		DocumentsByFilament: make(map[string][]*catalog.Document),
	}

	for _, b := range g.Brands {
		ix.BrandsByID[b.ID] = b
	}
	for _, m := range g.MaterialFamilies {
		ix.MaterialsByID[m.ID] = m
	}
	for _, f := range g.Filaments {
		ix.FilamentsByID[f.ID] = f
		ix.FilamentsByBrand[f.BrandID] = append(ix.FilamentsByBrand[f.BrandID], f)
		ix.FilamentsByMaterial[f.MaterialFamilyID] = append(ix.FilamentsByMaterial[f.MaterialFamilyID], f)
	}
	for _, v := range g.Variants {
		ix.VariantsByID[v.ID] = v
		ix.VariantsByFilament[v.FilamentID] = append(ix.VariantsByFilament[v.FilamentID], v)
	}
	for _, s := range g.Sizes {
		ix.SizesByID[s.ID] = s
		ix.SizesByVariant[s.VariantID] = append(ix.SizesByVariant[s.VariantID], s)
	}
	for _, st := range g.Stores {
		ix.StoresByID[st.ID] = st
		ix.StoresBySlug[st.Slug] = st
	}
	for _, pl := range g.PurchaseLinks {
		ix.LinksBySize[pl.SizeID] = append(ix.LinksBySize[pl.SizeID], pl)
	}
	for _, d := range g.Documents {
		ix.DocumentsByFilament[d.FilamentID] = append(ix.DocumentsByFilament[d.FilamentID], d)
	}

	return ix
}

// StoreByRef resolves a purchase link's store reference, which may hold a
// store ID or a store slug. Returns nil when neither resolves.
func (ix *Index) StoreByRef(ref string) *catalog.Store {
	if st, ok := ix.StoresByID[ref]; ok {
		return st
	}
	return ix.StoresBySlug[ref]
}
