package ports

import "go.trai.ch/sasspipe/internal/core/domain"

// ImportResolver maps an import reference written inside a stylesheet to the stylesheet it loads.
//
//go:generate go run go.uber.org/mock/mockgen -source=imports.go -destination=mocks/mock_imports.go -package=mocks
type ImportResolver interface {
	// Resolve resolves ref relative to the directory base.
	// It reports false when no candidate file exists.
	Resolve(base domain.SourceRoute, ref string) (domain.SourceRoute, bool)
}

// KeyBuilder derives the cache key of a bundle from the import closure of its roots.
type KeyBuilder interface {
	// BuildKey walks the imports of roots and folds the version token of every imported
	// stylesheet into a single key.
	BuildKey(roots []domain.SourceRoute) (domain.CacheKey, error)
}
