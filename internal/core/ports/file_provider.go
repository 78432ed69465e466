// Package ports defines the core interfaces for the application.
package ports

import (
	"io"

	"go.trai.ch/sasspipe/internal/core/domain"
)

// FileProvider gives read access to the stylesheets below a pipeline root.
// Implementations are responsible for sandboxing routes to that root.
//
//go:generate go run go.uber.org/mock/mockgen -source=file_provider.go -destination=mocks/mock_file_provider.go -package=mocks
type FileProvider interface {
	// Exists reports whether route names an existing regular file.
	Exists(route domain.SourceRoute) bool

	// Open opens route for reading. The caller must close the returned stream.
	Open(route domain.SourceRoute) (io.ReadCloser, error)
}
