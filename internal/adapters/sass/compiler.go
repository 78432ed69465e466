// Package sass compiles stylesheets through the Dart Sass embedded protocol.
package sass

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultBinary is the Dart Sass executable looked up on PATH.
	DefaultBinary = "sass"
	// DefaultTimeout bounds a single compilation.
	DefaultTimeout = 30 * time.Second
)

// Compiler implements ports.Compiler on top of a long-lived Dart Sass process.
// The process is started on first use and restarted if it shuts down.
type Compiler struct {
	binary   string
	timeout  time.Duration
	files    ports.FileProvider
	resolver ports.ImportResolver
	logger   ports.Logger

	// mu serializes compilations so log events can be attributed to a single request.
	mu      sync.Mutex
	session *session

	futureOnce sync.Once
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithBinary overrides the Dart Sass executable.
func WithBinary(binary string) Option {
	return func(c *Compiler) {
		c.binary = binary
	}
}

// WithTimeout overrides how long a single compilation may take.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Compiler) {
		c.timeout = timeout
	}
}

// NewCompiler creates a Compiler that loads imports from files.
func NewCompiler(
	files ports.FileProvider,
	resolver ports.ImportResolver,
	logger ports.Logger,
	opts ...Option,
) *Compiler {
	c := &Compiler{
		binary:   DefaultBinary,
		timeout:  DefaultTimeout,
		files:    files,
		resolver: resolver,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type session struct {
	transpiler *godartsass.Transpiler

	mu     sync.Mutex
	events []godartsass.LogEvent
}

func (s *session) collect(event godartsass.LogEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *session) drain() []godartsass.LogEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

type execution struct {
	result godartsass.Result
	err    error
}

// Compile compiles a single stylesheet.
func (c *Compiler) Compile(ctx context.Context, req ports.CompileRequest) (ports.CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return ports.CompileResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.start()
	if err != nil {
		return ports.CompileResult{}, err
	}
	c.warnFutureDeprecations(req.Settings)
	s.drain()

	done := make(chan execution, 1)
	args := c.args(req)
	go func() {
		result, execErr := s.transpiler.Execute(args)
		done <- execution{result: result, err: execErr}
	}()

	var out execution
	select {
	case <-ctx.Done():
		_ = s.transpiler.Close()
		c.session = nil
		return ports.CompileResult{}, ctx.Err()
	case out = <-done:
	}

	fatal := report(c.logger, req.Route, req.Settings, s.drain())
	if out.err != nil {
		if errors.Is(out.err, godartsass.ErrShutdown) {
			c.session = nil
		}
		return ports.CompileResult{}, compileError(out.err, req.Route)
	}
	if fatal != nil {
		return ports.CompileResult{}, fatal
	}

	css, sourceMap, err := AttachSourceMap(FormatCSS(out.result.CSS, req.Settings), out.result.SourceMap, req.Settings)
	if err != nil {
		return ports.CompileResult{}, zerr.With(err, "route", req.Route.String())
	}
	return ports.CompileResult{CSS: css, SourceMap: sourceMap}, nil
}

// Close stops the Dart Sass process.
func (c *Compiler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	err := c.session.transpiler.Close()
	c.session = nil
	if errors.Is(err, godartsass.ErrShutdown) {
		return nil
	}
	return err
}

func (c *Compiler) start() (*session, error) {
	if c.session != nil && !c.session.transpiler.IsShutDown() {
		return c.session, nil
	}

	binary, err := exec.LookPath(c.binary)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerNotFound.Error()), "binary", c.binary)
	}

	s := &session{}
	transpiler, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: binary,
		Timeout:                  c.timeout,
		LogEventHandler:          s.collect,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerNotFound.Error()), "binary", binary)
	}
	s.transpiler = transpiler
	c.session = s
	return s, nil
}

func (c *Compiler) args(req ports.CompileRequest) godartsass.Args {
	settings := req.Settings

	syntax := godartsass.SourceSyntaxSCSS
	if settings.IndentedSyntax {
		syntax = godartsass.SourceSyntaxSASS
	}

	style := godartsass.OutputStyleExpanded
	if settings.OutputStyle == domain.OutputStyleCompressed {
		style = godartsass.OutputStyleCompressed
	}

	return godartsass.Args{
		Source:                        req.Source,
		URL:                           routeURL(req.Route),
		SourceSyntax:                  syntax,
		OutputStyle:                   style,
		EnableSourceMap:               settings.SourceMap,
		SourceMapIncludeSources:       settings.SourceMapIncludeContents,
		ImportResolver:                newImporter(c.files, c.resolver, req.Route, settings.IncludePaths),
		SilenceDeprecations:           settings.SilenceDeprecations,
		SilenceDependencyDeprecations: settings.QuietDependencies,
	}
}

// warnFutureDeprecations reports once that opting into future deprecations is not available
// over the embedded protocol.
func (c *Compiler) warnFutureDeprecations(settings domain.CompileSettings) {
	if len(settings.FutureDeprecations) == 0 {
		return
	}
	c.futureOnce.Do(func() {
		c.logger.Warn("futureDeprecations is not supported by the embedded compiler and is ignored: " +
			strings.Join(settings.FutureDeprecations, ", "))
	})
}
