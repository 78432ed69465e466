// Package imports discovers the stylesheets a bundle transitively imports and derives its cache key.
package imports

import (
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
)

// Resolver maps import references to stylesheets using Sass's partial and extension conventions.
type Resolver struct {
	files ports.FileProvider
}

// NewResolver creates a Resolver that probes files for candidates.
func NewResolver(files ports.FileProvider) *Resolver {
	return &Resolver{files: files}
}

// Resolve returns the stylesheet ref refers to when imported from a file in directory base.
//
// ".scss" is appended to references without an extension. The plain candidate is tried first,
// then the partial form with "_" prefixed to the final segment. It reports false when neither exists.
func (r *Resolver) Resolve(base domain.SourceRoute, ref string) (domain.SourceRoute, bool) {
	candidate := domain.MakeAbsolute(base.String(), domain.WithDefaultExtension(ref))
	if r.files.Exists(candidate) {
		return candidate, true
	}

	partial := candidate.Partial()
	if r.files.Exists(partial) {
		return partial, true
	}

	return "", false
}
