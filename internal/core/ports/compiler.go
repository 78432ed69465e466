package ports

import (
	"context"

	"go.trai.ch/sasspipe/internal/core/domain"
)

// CompileRequest is a single stylesheet handed to the external Sass compiler.
type CompileRequest struct {
	// Source is the full stylesheet text.
	Source string
	// Route identifies the stylesheet; relative imports are resolved against its directory.
	Route domain.SourceRoute
	// Settings are the validated compiler settings.
	Settings domain.CompileSettings
}

// CompileResult is the compiler output for one stylesheet.
type CompileResult struct {
	// CSS is the compiled stylesheet.
	CSS string
	// SourceMap is the JSON source map, empty unless source maps were requested.
	SourceMap string
}

// Compiler turns Sass source text into CSS.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile compiles a single stylesheet.
	Compile(ctx context.Context, req CompileRequest) (CompileResult, error)

	// Close releases the compiler process, if any.
	Close() error
}
