package pipeline_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/sasspipe/internal/core/ports/mocks"
	"go.trai.ch/sasspipe/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func TestNewProcessor_ValidatesEagerly(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{})

	opts := expandedOptions()
	opts.Linefeed = "\t"
	_, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, opts)
	require.ErrorContains(t, err, domain.ErrUnsupportedLinefeed.Error())

	opts = expandedOptions()
	opts.Indent = " \t"
	_, err = pipeline.NewProcessor(f.files, f.compiler, f.keys, opts)
	require.ErrorContains(t, err, domain.ErrInvalidIndent.Error())
}

func TestProcessor_Settings(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{})
	opts := expandedOptions()
	opts.Indent = "\t"
	opts.Linefeed = "\r\n"

	p, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, opts)
	require.NoError(t, err)

	settings := p.Settings()
	assert.Equal(t, domain.OutputStyleExpanded, settings.OutputStyle)
	assert.Equal(t, domain.IndentTab, settings.IndentType)
	assert.Equal(t, 1, settings.IndentWidth)
	assert.Equal(t, domain.LineFeedCRLF, settings.LineFeed)

	p, err = pipeline.NewProcessor(f.files, f.compiler, f.keys, domain.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, domain.OutputStyleCompressed, p.Settings().OutputStyle, "minification forces compressed output")
}

func TestProcessor_CacheKey(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	keys := mocks.NewMockKeyBuilder(ctrl)
	f := newFixture(t, fstest.MapFS{})

	p, err := pipeline.NewProcessor(f.files, f.compiler, keys, expandedOptions())
	require.NoError(t, err)

	bundle := domain.NewBundle("/css/site.css", "scss/site.scss", "css/plain.css", "scss/theme.scss")
	keys.EXPECT().
		BuildKey([]domain.SourceRoute{"/scss/site.scss", "/scss/theme.scss"}).
		Return(domain.CacheKey("k3y"), nil)

	key, err := p.CacheKey(bundle)
	require.NoError(t, err)
	assert.Equal(t, domain.CacheKey("k3y"), key)

	keys.EXPECT().BuildKey(gomock.Any()).Return(domain.CacheKey(""), domain.ErrRootNotFound)
	_, err = p.CacheKey(bundle)
	require.ErrorContains(t, err, domain.ErrCacheKeyFailed.Error())
	require.ErrorIs(t, err, domain.ErrRootNotFound)
}

func TestProcessor_CacheKeyFollowsImports(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{
		"scss/site.scss":  {Data: []byte("@import 'vars';\n")},
		"scss/_vars.scss": {Data: []byte("$c: red;\n")},
	})
	p, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, expandedOptions())
	require.NoError(t, err)

	bundle := domain.NewBundle("/css/site.css", "scss/site.scss")
	before, err := p.CacheKey(bundle)
	require.NoError(t, err)

	again, err := p.CacheKey(bundle)
	require.NoError(t, err)
	assert.Equal(t, before, again)

	f.fsys["scss/_vars.scss"] = &fstest.MapFile{Data: []byte("$c: blue;\n")}
	f.tokens.Invalidate([]domain.SourceRoute{"/scss/_vars.scss"})

	after, err := p.CacheKey(bundle)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestProcessor_Execute(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{})
	p, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, expandedOptions())
	require.NoError(t, err)

	f.compiler.EXPECT().
		Compile(gomock.Any(), ports.CompileRequest{Source: "a {}", Route: "/css/a.scss", Settings: p.Settings()}).
		DoAndReturn(echo)
	f.compiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(echo)

	out, err := p.Execute(context.Background(), []domain.Content{
		{Route: "css/a.scss", Data: []byte("a {}")},
		{Route: "/css/b.scss", Data: []byte("b {}")},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "css/a.scss", out[0].Route, "routes are kept as given")
	assert.Equal(t, "/* /css/a.scss */ a {}", string(out[0].Data))
	assert.Equal(t, "/* /css/b.scss */ b {}", string(out[1].Data))
}

func TestProcessor_ExecuteFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{})
	p, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, expandedOptions())
	require.NoError(t, err)

	f.compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{}, domain.ErrCompileFailed)

	_, err = p.Execute(context.Background(), []domain.Content{{Route: "a.scss", Data: []byte("a {")}})
	require.ErrorIs(t, err, domain.ErrCompileFailed)
}

func TestProcessor_CompileBundle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{
		"scss/a.scss":    {Data: []byte("a {}")},
		"scss/b.sass":    {Data: []byte("b\n  c: d")},
		"scss/only.scss": {Data: []byte("only {}")},
	})
	p, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, expandedOptions())
	require.NoError(t, err)

	f.compiler.EXPECT().
		Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req ports.CompileRequest) (ports.CompileResult, error) {
			assert.Equal(t, req.Route == "/scss/b.sass", req.Settings.IndentedSyntax)
			res, err := echo(ctx, req)
			res.SourceMap = `{"version":3}`
			return res, err
		}).
		Times(3)

	out, err := p.CompileBundle(context.Background(), domain.NewBundle("/css/all.css", "scss/a.scss", "scss/b.sass"))
	require.NoError(t, err)
	assert.Equal(t, "/* /scss/a.scss */ a {}\n/* /scss/b.sass */ b\n  c: d", out.CSS)
	assert.Empty(t, out.SourceMap, "multi-source bundles carry no separate map")

	out, err = p.CompileBundle(context.Background(), domain.NewBundle("/css/only.css", "scss/only.scss"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":3}`, out.SourceMap)
}

func TestProcessor_CompileBundleErrors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, fstest.MapFS{})
	p, err := pipeline.NewProcessor(f.files, f.compiler, f.keys, expandedOptions())
	require.NoError(t, err)

	_, err = p.CompileBundle(context.Background(), domain.NewBundle("/css/x.css", "scss/missing.scss"))
	require.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())

	_, err = p.CompileBundle(context.Background(), domain.NewBundle("/css/empty.css"))
	require.ErrorContains(t, err, domain.ErrEmptyBundle.Error())
}
