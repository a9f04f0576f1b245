package normalize

import "time"

// Timestamp formats t as ISO-8601 UTC with second precision and a literal
// Z suffix. The crawler computes this once per run so that every entity from
// one crawl shares the same created_at/updated_at value.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
