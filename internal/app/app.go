// Package app implements the application layer for sasspipe.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/adapters/linear"
	"go.trai.ch/sasspipe/internal/adapters/sass"
	"go.trai.ch/sasspipe/internal/adapters/telemetry"
	"go.trai.ch/sasspipe/internal/adapters/watcher"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/sasspipe/internal/engine/imports"
	"go.trai.ch/sasspipe/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	store        ports.BuildRecordStore
	hasher       *fs.Hasher
	compilers    sass.Factory
	watchers     watcher.Factory

	stdout   io.Writer
	stderr   io.Writer
	onListen func(net.Addr)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	store ports.BuildRecordStore,
	hasher *fs.Hasher,
	compilers sass.Factory,
	watchers watcher.Factory,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		store:        store,
		hasher:       hasher,
		compilers:    compilers,
		watchers:     watchers,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
	}
}

// WithOutput redirects build progress output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithListenHook registers fn to be called with the address the server listens on.
// This is primarily used for testing with a random port.
func (a *App) WithListenHook(fn func(net.Addr)) *App {
	a.onListen = fn
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Config  string
	Routes  []string
	NoCache bool
	Jobs    int
}

// Build compiles the configured bundles into the output directory.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	s, err := a.open(opts.Config)
	if err != nil {
		return err
	}
	defer s.close()

	renderer := linear.NewRenderer(a.stdout, a.stderr)
	tp := setupOTel(renderer)
	defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()
	tracer := telemetry.NewOTelTracer(tp, "sasspipe").WithRenderer(renderer)
	builder := pipeline.NewBuilder(s.processor, s.tokens, a.store, a.hasher, tracer)

	var results []pipeline.Result
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() { _ = renderer.Stop() }()

		var buildErr error
		results, buildErr = builder.Build(ctx, s.pipeline, pipeline.BuildOptions{
			Routes:  opts.Routes,
			NoCache: opts.NoCache,
			Jobs:    opts.Jobs,
		})
		if buildErr != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, buildErr)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	cached := 0
	for _, res := range results {
		if res.Cached {
			cached++
		}
	}
	a.logger.Info(fmt.Sprintf("built %d bundle(s), %d up to date", len(results)-cached, cached))
	return nil
}

// KeyOptions configuration for the Key method.
type KeyOptions struct {
	Config string
	Route  string
}

// Key returns the cache key of a bundle.
func (a *App) Key(_ context.Context, opts KeyOptions) (domain.CacheKey, error) {
	s, err := a.open(opts.Config)
	if err != nil {
		return "", err
	}
	defer s.close()

	bundle, err := s.pipeline.Bundle(domain.MakeAbsolute("/", opts.Route).String())
	if err != nil {
		return "", err
	}
	return s.processor.CacheKey(bundle)
}

// GraphOptions configuration for the Graph method.
type GraphOptions struct {
	Config string
	File   string
}

// Graph returns every stylesheet imported by a file, in discovery order.
func (a *App) Graph(_ context.Context, opts GraphOptions) ([]domain.SourceRoute, error) {
	s, err := a.open(opts.Config)
	if err != nil {
		return nil, err
	}
	defer s.close()

	graph, err := s.walker.Walk([]domain.SourceRoute{domain.MakeAbsolute("/", filepath.ToSlash(opts.File))})
	if err != nil {
		return nil, err
	}
	return graph.Routes(), nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Config string
	// Output also removes the compiled bundles.
	Output bool
}

// Clean removes the build records and, optionally, the output directory.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	p, err := a.load(opts.Config)
	if err != nil {
		return err
	}

	var errs error
	a.logger.Info("removing build records...")
	if err := a.store.Clear(p.Root); err != nil {
		errs = errors.Join(errs, err)
	}

	if opts.Output {
		a.logger.Info(fmt.Sprintf("removing %s...", p.Output))
		if err := os.RemoveAll(p.Output); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove output directory"), "path", p.Output))
		}
	}
	return errs
}

// session holds the components bound to one loaded pipeline.
type session struct {
	pipeline  *domain.Pipeline
	files     *fs.OSProvider
	tokens    *watcher.TokenCache
	walker    *imports.Walker
	compiler  ports.Compiler
	processor *pipeline.Processor
}

func (a *App) load(config string) (*domain.Pipeline, error) {
	if config == "" {
		config = "."
	}
	abs, err := filepath.Abs(config)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "path", config)
	}
	p, err := a.configLoader.Load(abs)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return p, nil
}

func (a *App) open(config string) (*session, error) {
	p, err := a.load(config)
	if err != nil {
		return nil, err
	}

	files, err := fs.NewOSProvider(p.Root)
	if err != nil {
		return nil, err
	}

	resolver := imports.NewResolver(files)
	walker := imports.NewWalker(files, resolver)
	tokens := watcher.NewTokenCache(files, a.hasher)
	compiler := a.compilers(files, resolver)

	processor, err := pipeline.NewProcessor(files, compiler, imports.NewKeyBuilder(walker, tokens), p.Options)
	if err != nil {
		_ = compiler.Close()
		_ = files.Close()
		return nil, err
	}

	return &session{
		pipeline:  p,
		files:     files,
		tokens:    tokens,
		walker:    walker,
		compiler:  compiler,
		processor: processor,
	}, nil
}

func (s *session) close() {
	_ = s.compiler.Close()
	_ = s.files.Close()
}

// setupOTel configures the OpenTelemetry SDK to report spans to renderer.
func setupOTel(renderer ports.Renderer) *sdktrace.TracerProvider {
	tp := telemetry.NewProvider(renderer)
	otel.SetTracerProvider(tp)
	return tp
}
