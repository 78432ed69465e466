package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sasspipe/internal/adapters/cas"
	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/app"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/sasspipe/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newComponents(loader ports.ConfigLoader, log ports.Logger, compiler ports.Compiler) *app.Components {
	application := app.New(
		loader,
		log,
		cas.NewStore(),
		fs.NewHasher(),
		func(ports.FileProvider, ports.ImportResolver) ports.Compiler { return compiler },
		func() (ports.Watcher, error) { return nil, errors.New("not watching") },
	)
	return &app.Components{App: application, Logger: log}
}

func provide(c *app.Components) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return c, func() {}, nil
	}
}

// TestRun_Success verifies that run returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newComponents(mocks.NewMockConfigLoader(ctrl), mocks.NewMockLogger(ctrl), mocks.NewMockCompiler(ctrl))

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provide(c))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged and return 1.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	c := newComponents(loader, log, mocks.NewMockCompiler(ctrl))

	loader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("load failed"))
	log.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"key", "/css/site.css"}, io.Discard, provide(c))
	assert.Equal(t, 1, exitCode)
}

// TestRun_BuildFailure verifies that failed builds return 1 without logging again.
func TestRun_BuildFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	compiler := mocks.NewMockCompiler(ctrl)
	c := newComponents(loader, log, compiler)

	root := t.TempDir()
	source := filepath.Join(root, "site.scss")
	if err := os.WriteFile(source, []byte("a { b: c; }"), domain.FilePerm); err != nil {
		t.Fatal(err)
	}
	loader.EXPECT().Load(gomock.Any()).Return(&domain.Pipeline{
		Root:    root,
		Output:  filepath.Join(root, "dist"),
		Options: domain.DefaultOptions(),
		Bundles: []domain.Bundle{domain.NewBundle("/site.css", "site.scss")},
	}, nil)
	compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).Return(ports.CompileResult{}, errors.New("boom"))
	compiler.EXPECT().Close().Return(nil)
	log.EXPECT().Error(gomock.Any()).Times(0)

	exitCode := run(context.Background(), []string{"build"}, io.Discard, provide(c), func(a *app.App) {
		a.WithOutput(io.Discard, io.Discard)
	})
	assert.Equal(t, 1, exitCode)
}
