package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// BuildOptions controls a build run.
type BuildOptions struct {
	// Routes restricts the build to these bundles. Empty means every bundle.
	Routes []string
	// NoCache rebuilds bundles even when their build record is current.
	NoCache bool
	// Jobs limits how many bundles are compiled at once. Zero means one per CPU.
	Jobs int
}

// Result describes what happened to one bundle.
type Result struct {
	Route  string
	Output string
	Key    domain.CacheKey
	Cached bool
}

// Builder writes compiled bundles to the output directory and skips bundles whose
// inputs have not changed since the last build.
type Builder struct {
	processor *Processor
	versions  ports.VersionProvider
	store     ports.BuildRecordStore
	hasher    ports.Hasher
	tracer    ports.Tracer
}

// NewBuilder creates a Builder.
func NewBuilder(
	processor *Processor,
	versions ports.VersionProvider,
	store ports.BuildRecordStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
) *Builder {
	return &Builder{
		processor: processor,
		versions:  versions,
		store:     store,
		hasher:    hasher,
		tracer:    tracer,
	}
}

// Build compiles the selected bundles of p concurrently. A failing bundle does not stop
// the others; all failures are returned together.
func (b *Builder) Build(ctx context.Context, p *domain.Pipeline, opts BuildOptions) ([]Result, error) {
	bundles, err := selectBundles(p, opts.Routes)
	if err != nil {
		return nil, err
	}

	planned := make([]string, len(bundles))
	for i, bundle := range bundles {
		planned[i] = bundle.Route
	}
	b.tracer.EmitPlan(ctx, planned)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(bundles))
	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, bundle := range bundles {
		g.Go(func() error {
			res, buildErr := b.buildBundle(gctx, p, bundle, opts.NoCache)
			if buildErr != nil {
				mu.Lock()
				errs = errors.Join(errs, zerr.With(
					zerr.Wrap(buildErr, domain.ErrBuildExecutionFailed.Error()), "bundle", bundle.Route))
				mu.Unlock()
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		errs = errors.Join(errs, ctx.Err())
	}
	if errs != nil {
		return nil, errs
	}
	return results, nil
}

func selectBundles(p *domain.Pipeline, routes []string) ([]domain.Bundle, error) {
	if len(routes) == 0 {
		return p.Bundles, nil
	}
	bundles := make([]domain.Bundle, 0, len(routes))
	for _, route := range routes {
		bundle, err := p.Bundle(route)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

func (b *Builder) buildBundle(
	ctx context.Context,
	p *domain.Pipeline,
	bundle domain.Bundle,
	noCache bool,
) (Result, error) {
	ctx, span := b.tracer.Start(ctx, bundle.Route)
	defer span.End()

	res, err := b.build(ctx, span, p, bundle, noCache)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	span.SetAttribute("sasspipe.cached", res.Cached)
	span.SetAttribute("sasspipe.cache_key", res.Key.String())
	return res, nil
}

func (b *Builder) build(
	ctx context.Context,
	span ports.Span,
	p *domain.Pipeline,
	bundle domain.Bundle,
	noCache bool,
) (Result, error) {
	key, err := b.processor.CacheKey(bundle)
	if err != nil {
		return Result{}, err
	}
	fingerprint, err := b.fingerprint(key, bundle)
	if err != nil {
		return Result{}, err
	}

	output := OutputPath(p.Output, bundle.Route)
	res := Result{Route: bundle.Route, Output: output, Key: key}

	if !noCache {
		current, err := b.isCurrent(p.Root, bundle.Route, fingerprint, output)
		if err != nil {
			return Result{}, err
		}
		if current {
			_, _ = fmt.Fprintf(span, "%s is up to date\n", bundle.Route)
			res.Cached = true
			return res, nil
		}
	}

	compiled, err := b.processor.CompileBundle(ctx, bundle)
	if err != nil {
		return Result{}, err
	}

	css := compiled.CSS
	if compiled.SourceMap != "" {
		mapName := path.Base(bundle.Route) + ".map"
		if err := writeOutput(output+".map", compiled.SourceMap); err != nil {
			return Result{}, err
		}
		if !b.processor.Settings().OmitSourceMapURL {
			css += b.processor.Settings().LineFeed.String() + SourceMappingURL(mapName)
		}
	}

	if err := writeOutput(output, css); err != nil {
		return Result{}, err
	}
	_, _ = fmt.Fprintf(span, "wrote %s\n", output)

	record := domain.BuildRecord{
		Route:       bundle.Route,
		CacheKey:    key.String(),
		Fingerprint: fingerprint,
		OutputHash:  b.hasher.ComputeOutputHash([]byte(css)),
		Timestamp:   time.Now(),
	}
	if err := b.store.Put(p.Root, record); err != nil {
		// Best effort: without a record the bundle is rebuilt next time.
		_, _ = fmt.Fprintf(span, "failed to store build record: %v\n", err)
	}

	return res, nil
}

// fingerprint combines the import closure key with the bundle's own sources and the
// compiler settings, none of which the cache key covers.
func (b *Builder) fingerprint(key domain.CacheKey, bundle domain.Bundle) (string, error) {
	sources := bundle.Sources()
	parts := make([]string, 0, len(sources)+2)
	parts = append(parts, key.String())
	for _, source := range sources {
		route := domain.MakeAbsolute("/", source)
		token, err := b.versions.TokenFor(route)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrVersionFailed.Error()), "route", route.String())
		}
		parts = append(parts, token)
	}
	parts = append(parts, fmt.Sprintf("%+v", b.processor.Settings()))
	return b.hasher.Fingerprint(parts), nil
}

func (b *Builder) isCurrent(root, route, fingerprint, output string) (bool, error) {
	record, err := b.store.Get(root, route)
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if record == nil || record.Fingerprint != fingerprint {
		return false, nil
	}

	// #nosec G304 -- output is derived from the configured output directory
	data, err := os.ReadFile(output)
	if err != nil {
		return false, nil //nolint:nilerr // a missing output is rebuilt
	}
	return b.hasher.ComputeOutputHash(data) == record.OutputHash, nil
}

// OutputPath maps a bundle route to its file below the output directory.
func OutputPath(outputDir, route string) string {
	return filepath.Join(outputDir, filepath.FromSlash(domain.MakeAbsolute("/", route).Relative()))
}

// SourceMappingURL returns the comment that links a stylesheet to its map file.
func SourceMappingURL(mapName string) string {
	return "/*# sourceMappingURL=" + mapName + " */"
}

func writeOutput(file, content string) error {
	if err := os.MkdirAll(filepath.Dir(file), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "file", file)
	}
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "file", file)
	}
	if err := os.Rename(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "file", file)
	}
	return nil
}
