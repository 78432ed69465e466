package ports

import "go.trai.ch/sasspipe/internal/core/domain"

// VersionProvider supplies an opaque version token for a stylesheet. A token changes
// if and only if the file's content changes.
//
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=version_provider.go -destination=mocks/mock_version_provider.go -package=mocks
type VersionProvider interface {
	// TokenFor returns the current version token for route.
	TokenFor(route domain.SourceRoute) (string, error)

	// Changed returns a channel that is closed the next time any cached token is invalidated.
	// Callers that memoize values derived from tokens should re-fetch the channel after it fires.
	Changed() <-chan struct{}
}
