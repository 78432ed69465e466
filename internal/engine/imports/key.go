package imports

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// KeyBuilder folds the version tokens of a bundle's import closure into a cache key.
type KeyBuilder struct {
	walker   *Walker
	versions ports.VersionProvider
}

// NewKeyBuilder creates a KeyBuilder.
func NewKeyBuilder(walker *Walker, versions ports.VersionProvider) *KeyBuilder {
	return &KeyBuilder{walker: walker, versions: versions}
}

// BuildKey walks the imports of roots and returns the URL-safe base64 SHA-256 digest of the
// concatenated version tokens of every discovered stylesheet, in discovery order.
// Roots are not part of the digest; their own versions are tracked by whoever serves them.
func (b *KeyBuilder) BuildKey(roots []domain.SourceRoute) (domain.CacheKey, error) {
	graph, err := b.walker.Walk(roots)
	if err != nil {
		return "", err
	}
	return b.KeyFor(graph)
}

// KeyFor computes the cache key of an already walked graph.
func (b *KeyBuilder) KeyFor(graph *domain.ImportGraph) (domain.CacheKey, error) {
	var sb strings.Builder
	for route := range graph.All() {
		token, err := b.versions.TokenFor(route)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrVersionFailed.Error()), "route", route.String())
		}
		sb.WriteString(token)
	}
	return Digest(sb.String()), nil
}

// Digest hashes s into a cache key.
func Digest(s string) domain.CacheKey {
	sum := sha256.Sum256([]byte(s))
	return domain.CacheKey(base64.RawURLEncoding.EncodeToString(sum[:]))
}
