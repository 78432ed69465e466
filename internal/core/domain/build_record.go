package domain

import "time"

// BuildRecord represents the outcome of the last successful build of a bundle.
// Fingerprint covers the cache key, the bundle's own sources and the compiler settings.
type BuildRecord struct {
	Route       string    `json:"route,omitzero"`
	CacheKey    string    `json:"cache_key,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	OutputHash  string    `json:"output_hash,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
