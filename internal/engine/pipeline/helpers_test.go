package pipeline_test

import (
	"context"
	"testing"
	"testing/fstest"

	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/adapters/watcher"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/sasspipe/internal/core/ports/mocks"
	"go.trai.ch/sasspipe/internal/engine/imports"
	"go.uber.org/mock/gomock"
)

// fixture wires the real import walker and token cache over an in-memory tree.
type fixture struct {
	fsys     fstest.MapFS
	files    *fs.FSProvider
	tokens   *watcher.TokenCache
	keys     *imports.KeyBuilder
	compiler *mocks.MockCompiler
}

func newFixture(t *testing.T, fsys fstest.MapFS) *fixture {
	t.Helper()
	files := fs.NewFSProvider(fsys)
	tokens := watcher.NewTokenCache(files, fs.NewHasher())
	walker := imports.NewWalker(files, imports.NewResolver(files))
	return &fixture{
		fsys:     fsys,
		files:    files,
		tokens:   tokens,
		keys:     imports.NewKeyBuilder(walker, tokens),
		compiler: mocks.NewMockCompiler(gomock.NewController(t)),
	}
}

// expandedOptions returns the defaults without minification.
func expandedOptions() domain.Options {
	opts := domain.DefaultOptions()
	opts.MinifyCSS = false
	return opts
}

// echo compiles by echoing the source with its route, so tests can see which
// sources were compiled and in what order.
func echo(_ context.Context, req ports.CompileRequest) (ports.CompileResult, error) {
	return ports.CompileResult{CSS: "/* " + req.Route.String() + " */ " + req.Source}, nil
}

// quietTracer returns a tracer mock that accepts any span activity.
func quietTracer(t *testing.T) *mocks.MockTracer {
	t.Helper()
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().Write(gomock.Any()).DoAndReturn(func(p []byte) (int, error) { return len(p), nil }).AnyTimes()

	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span }).
		AnyTimes()
	return tracer
}
