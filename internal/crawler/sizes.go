package crawler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/open-filament/ofdb/internal/catalog"
	"github.com/open-filament/ofdb/internal/ident"
	"github.com/open-filament/ofdb/internal/normalize"
)

// weightFields document the recognized weight keys; createSize passes their
// values to normalize.ParseWeight in exactly this priority order.
var weightFields = []string{"weight_g", "weight", "filament_weight", "net_weight", "spool_weight"}

// processSizesFile turns a sizes.json into Size entities. The file may hold
// a list of entries or one bare object.
func (c *Crawler) processSizesFile(path, variantID string) {
	data, ok := c.loadJSON(path)
	if !ok {
		return
	}

	entries, ok := data.([]any)
	if !ok {
		entries = []any{data}
	}

	for idx, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			c.log.Warn("size entry is not a JSON object",
				zap.String("path", path), zap.Int("index", idx))
			continue
		}
		c.createSize(entry, variantID, idx)
	}
}

// createSize builds one Size from a sizes.json entry. Entries without a
// resolvable weight are dropped, not defaulted.
func (c *Crawler) createSize(entry map[string]any, variantID string, index int) {
	candidates := make([]any, 0, len(weightFields))
	for _, field := range weightFields {
		candidates = append(candidates, entry[field])
	}
	weightG, ok := normalize.ParseWeight(getString(entry, "size"), candidates...)
	if !ok {
		c.log.Warn("no weight found in size entry, dropping",
			zap.String("variant_id", variantID), zap.Any("entry", entry))
		return
	}

	diameter, ok := normalize.Diameter(entry["diameter_mm"])
	if !ok {
		diameter, ok = normalize.Diameter(entry["diameter"])
	}
	if !ok {
		diameter = 1.75
	}

	sku := stringValue(entry["sku"])

	// SKU and positional index keep sizes distinct when several entries
	// share a weight and diameter; source ordering is the stability anchor.
	sizeKey := fmt.Sprintf("%s:%d:%v:%s:%d", variantID, weightG, diameter, sku, index)
	sizeID := ident.Size(sizeKey)

	gtin := stringValue(entry["gtin"])
	if gtin == "" {
		gtin = stringValue(entry["ean"])
	}
	if gtin == "" {
		gtin = stringValue(entry["upc"])
	}

	lengthM, _ := intValue(entry["length_m"])
	if lengthM == 0 {
		lengthM, _ = intValue(entry["length"])
	}

	msrpAmount, msrpCurrency := parseMSRP(entry)

	c.graph.Sizes = append(c.graph.Sizes, &catalog.Size{
		ID:           sizeID,
		VariantID:    variantID,
		WeightG:      weightG,
		DiameterMM:   diameter,
		SKU:          sku,
		GTIN:         gtin,
		LengthM:      lengthM,
		MSRPAmount:   msrpAmount,
		MSRPCurrency: msrpCurrency,
	})

	links, _ := entry["purchase_links"].([]any)
	for linkIdx, raw := range links {
		link, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		c.createPurchaseLink(link, sizeID, linkIdx)
	}
}

// parseMSRP handles the three MSRP shapes found in the wild: an object with
// amount/currency, a bare number, or a price string; "price" is the legacy
// key for the string form.
func parseMSRP(entry map[string]any) (amount, currency string) {
	if raw, ok := entry["msrp"]; ok {
		switch msrp := raw.(type) {
		case map[string]any:
			return stringValue(msrp["amount"]), getString(msrp, "currency")
		case int64, float64:
			return stringValue(msrp), ""
		case string:
			return normalize.ParsePrice(msrp)
		}
		return "", ""
	}
	if price, ok := entry["price"].(string); ok {
		return normalize.ParsePrice(price)
	}
	return "", ""
}

// createPurchaseLink builds one PurchaseLink. store_id and url are both
// required; entries missing either are dropped with a warning. The store_id
// value is not resolved here: it may be a store ID or slug, and consumers
// look it up both ways.
func (c *Crawler) createPurchaseLink(entry map[string]any, sizeID string, index int) {
	storeID := stringValue(entry["store_id"])
	url := getString(entry, "url")
	if storeID == "" || url == "" {
		c.log.Warn("purchase link missing store_id or url, dropping",
			zap.String("size_id", sizeID), zap.Any("entry", entry))
		return
	}

	spoolRefill, _ := entry["spool_refill"].(bool)

	c.graph.PurchaseLinks = append(c.graph.PurchaseLinks, &catalog.PurchaseLink{
		ID:          ident.PurchaseLink(fmt.Sprintf("%s:%s:%d", sizeID, storeID, index)),
		SizeID:      sizeID,
		StoreID:     storeID,
		URL:         url,
		SpoolRefill: spoolRefill,
		ShipsFrom:   stringList(entry["ships_from"]),
		ShipsTo:     stringList(entry["ships_to"]),
	})
}
