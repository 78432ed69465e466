package fs_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestOSProvider(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "wwwroot")
	writeFile(t, filepath.Join(root, "css", "site.scss"), "@import 'vars';")
	writeFile(t, filepath.Join(tmpDir, "secret.scss"), "nope")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css", "dir.scss"), domain.DirPerm))

	provider, err := fs.NewOSProvider(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	assert.True(t, provider.Exists("/css/site.scss"))
	assert.True(t, provider.Exists("css/site.scss"), "routes without a leading slash resolve the same way")
	assert.False(t, provider.Exists("/css/missing.scss"))
	assert.False(t, provider.Exists("/css/dir.scss"), "directories are not stylesheets")
	assert.False(t, provider.Exists("/../secret.scss"))

	rc, err := provider.Open("/css/site.scss")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "@import 'vars';", string(data))

	_, err = provider.Open("/css/missing.scss")
	require.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())

	assert.Equal(t, filepath.Join(root, "css", "site.scss"), provider.PhysicalPath("/css/site.scss"))

	route, ok := provider.RouteFor(filepath.Join(root, "css", "site.scss"))
	require.True(t, ok)
	assert.Equal(t, domain.SourceRoute("/css/site.scss"), route)

	_, ok = provider.RouteFor(filepath.Join(tmpDir, "secret.scss"))
	assert.False(t, ok)
}

func TestOSProvider_SymlinkEscape(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "wwwroot")
	writeFile(t, filepath.Join(tmpDir, "outside.scss"), "secret")
	require.NoError(t, os.MkdirAll(root, domain.DirPerm))
	if err := os.Symlink(filepath.Join(tmpDir, "outside.scss"), filepath.Join(root, "link.scss")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	provider, err := fs.NewOSProvider(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Close() })

	_, err = provider.Open("/link.scss")
	require.Error(t, err)
}

func TestNewOSProvider_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := fs.NewOSProvider(filepath.Join(t.TempDir(), "missing"))
	require.ErrorContains(t, err, "failed to open root directory")
}

func TestFSProvider(t *testing.T) {
	t.Parallel()

	provider := fs.NewFSProvider(fstest.MapFS{
		"css/_vars.scss": &fstest.MapFile{Data: []byte("$a: 1;")},
	})

	assert.True(t, provider.Exists("/css/_vars.scss"))
	assert.False(t, provider.Exists("/css"))
	assert.False(t, provider.Exists("/css/vars.scss"))

	rc, err := provider.Open("/css/_vars.scss")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "$a: 1;", string(data))

	_, err = provider.Open("/css/vars.scss")
	require.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
}
