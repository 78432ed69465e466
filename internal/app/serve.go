package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.trai.ch/sasspipe/internal/adapters/server"
	"go.trai.ch/sasspipe/internal/adapters/watcher"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAddr is the address serve listens on when none is given.
	DefaultAddr = "localhost:8080"

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	Config string
	Addr   string
}

// Serve serves the web root with bundles compiled on request until ctx is done.
// Stylesheet changes on disk invalidate the compiled bundles.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	s, err := a.open(opts.Config)
	if err != nil {
		return err
	}
	defer s.close()

	w, err := a.watchers()
	if err != nil {
		return err
	}
	if err := w.Start(ctx, s.files.Dir()); err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	addr := opts.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	handler := server.NewHandler(s.pipeline, s.processor, s.tokens, a.hasher, a.logger, http.FileServerFS(s.files.FS()))
	compressed, err := server.Compress(handler)
	if err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}

	srv := &http.Server{
		Handler:           compressed,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	a.logger.Info("serving " + s.files.Dir() + " on http://" + ln.Addr().String())
	if a.onListen != nil {
		a.onListen(ln.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.tokens.Follow(gctx, w, s.files.RouteFor, watcher.DefaultDebounceWindow)
		return nil
	})

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		_ = w.Stop()
		return err
	})

	return g.Wait()
}
