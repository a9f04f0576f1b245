// Package ident derives stable, content-addressed identifiers for catalog
// entities. The same (kind, key) pair always yields the same UUID, so
// repeated crawls over unchanged input produce byte-identical IDs.
package ident

import (
	"strings"

	"github.com/google/uuid"
)

// namespace seeds every generated ID. Changing it invalidates all
// previously published identifiers, so it is fixed forever.
var namespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// For returns a deterministic UUIDv5 for the given kind tag and key.
// The kind tag namespaces the key so that identical keys of different
// entity kinds never collide.
func For(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+"::"+key)).String()
}

// Brand derives an ID from the brand's display name.
func Brand(name string) string {
	return For("Brand", strings.ToLower(strings.TrimSpace(name)))
}

// MaterialFamily derives an ID from the canonical family code.
func MaterialFamily(code string) string {
	return For("MaterialFamily", strings.ToUpper(strings.TrimSpace(code)))
}

// Filament derives an ID from the filament's source path, so renaming the
// metadata inside a directory does not change the identity of the line.
func Filament(path string) string {
	return For("Filament", path)
}

// Variant derives an ID from the variant's source path.
func Variant(path string) string {
	return For("Variant", path)
}

// Size derives an ID from a composite key assembled by the crawler
// (variant id, weight, diameter, SKU, positional index).
func Size(key string) string {
	return For("Size", key)
}

// Store derives an ID from the store's display name.
func Store(name string) string {
	return For("Store", strings.ToLower(strings.TrimSpace(name)))
}

// Document derives an ID from "<filament id>:<document type>".
func Document(key string) string {
	return For("Document", key)
}

// PurchaseLink derives an ID from "<size id>:<store>:<index>".
func PurchaseLink(key string) string {
	return For("PurchaseLink", key)
}

// Tag derives an ID from the tag's name.
func Tag(name string) string {
	return For("Tag", strings.ToLower(strings.TrimSpace(name)))
}
