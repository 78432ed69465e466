// Package pipeline compiles bundles and decides when their outputs need rebuilding.
package pipeline

import (
	"context"
	"io"
	"path"
	"strings"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Output is the compiled form of a bundle.
type Output struct {
	// CSS is the concatenated output of every source, in declaration order.
	CSS string
	// SourceMap is set only for single-source bundles compiled with a separate map file.
	SourceMap string
}

// Processor compiles the stylesheets of bundles and derives their cache keys.
type Processor struct {
	files    ports.FileProvider
	compiler ports.Compiler
	keys     ports.KeyBuilder
	settings domain.CompileSettings
}

// NewProcessor creates a Processor. Options are validated here so that a bad line feed
// or indent fails before anything is compiled.
func NewProcessor(
	files ports.FileProvider,
	compiler ports.Compiler,
	keys ports.KeyBuilder,
	options domain.Options,
) (*Processor, error) {
	settings, err := options.Settings()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigInvalid.Error())
	}
	return &Processor{
		files:    files,
		compiler: compiler,
		keys:     keys,
		settings: settings,
	}, nil
}

// Settings returns the validated compiler settings.
func (p *Processor) Settings() domain.CompileSettings {
	return p.settings
}

// CacheKey returns the key of bundle's import closure. It is recomputed on every call.
func (p *Processor) CacheKey(bundle domain.Bundle) (domain.CacheKey, error) {
	key, err := p.keys.BuildKey(bundle.RootRoutes())
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrCacheKeyFailed.Error()), "bundle", bundle.Route)
	}
	return key, nil
}

// Execute compiles every entry of contents and returns the compiled entries in the same order.
// Each entry is compiled with its route made absolute so relative imports resolve from its directory.
func (p *Processor) Execute(ctx context.Context, contents []domain.Content) ([]domain.Content, error) {
	compiled := make([]domain.Content, 0, len(contents))
	for _, content := range contents {
		route := domain.MakeAbsolute("/", content.Route)
		result, err := p.compile(ctx, route, string(content.Data))
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, domain.Content{Route: content.Route, Data: []byte(result.CSS)})
	}
	return compiled, nil
}

// CompileBundle compiles the sources of bundle and joins the results with the configured line feed.
func (p *Processor) CompileBundle(ctx context.Context, bundle domain.Bundle) (Output, error) {
	sources := bundle.Sources()
	if len(sources) == 0 {
		return Output{}, zerr.With(domain.ErrEmptyBundle, "bundle", bundle.Route)
	}

	parts := make([]string, 0, len(sources))
	var sourceMap string
	for _, source := range sources {
		route := domain.MakeAbsolute("/", source)
		data, err := p.read(route)
		if err != nil {
			return Output{}, err
		}

		result, err := p.compile(ctx, route, data)
		if err != nil {
			return Output{}, zerr.With(err, "bundle", bundle.Route)
		}
		parts = append(parts, result.CSS)
		if len(sources) == 1 {
			sourceMap = result.SourceMap
		}
	}

	return Output{
		CSS:       strings.Join(parts, p.settings.LineFeed.String()),
		SourceMap: sourceMap,
	}, nil
}

// CSS compiles bundle for serving. A separate source map is not served, so only an
// embedded map reaches the response.
func (p *Processor) CSS(ctx context.Context, bundle domain.Bundle) (string, error) {
	out, err := p.CompileBundle(ctx, bundle)
	if err != nil {
		return "", err
	}
	return out.CSS, nil
}

func (p *Processor) compile(ctx context.Context, route domain.SourceRoute, source string) (ports.CompileResult, error) {
	settings := p.settings
	if path.Ext(route.String()) == ".sass" {
		settings.IndentedSyntax = true
	}
	return p.compiler.Compile(ctx, ports.CompileRequest{
		Source:   source,
		Route:    route,
		Settings: settings,
	})
}

func (p *Processor) read(route domain.SourceRoute) (string, error) {
	rc, err := p.files.Open(route)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "route", route.String())
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "route", route.String())
	}
	return string(data), nil
}
