package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.FileProvider = (*OSProvider)(nil)
	_ ports.FileProvider = (*FSProvider)(nil)
)

// OSProvider serves stylesheets from a directory on disk. Every access goes through an
// os.Root, so routes can never reach outside the directory, not even through symlinks.
type OSProvider struct {
	dir  string
	root *os.Root
}

// NewOSProvider opens dir as the pipeline root.
func NewOSProvider(dir string) (*OSProvider, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve root directory"), "dir", dir)
	}
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open root directory"), "dir", abs)
	}
	return &OSProvider{dir: abs, root: root}, nil
}

// Dir returns the absolute root directory.
func (p *OSProvider) Dir() string {
	return p.dir
}

// FS returns a file system rooted at the root directory.
func (p *OSProvider) FS() iofs.FS {
	return p.root.FS()
}

// Exists reports whether route is a regular file below the root.
func (p *OSProvider) Exists(route domain.SourceRoute) bool {
	info, err := p.root.Stat(route.Relative())
	return err == nil && info.Mode().IsRegular()
}

// Open opens route for reading.
func (p *OSProvider) Open(route domain.SourceRoute) (io.ReadCloser, error) {
	f, err := p.root.Open(route.Relative())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "route", route.String())
	}
	return f, nil
}

// PhysicalPath returns the absolute path of route on disk.
func (p *OSProvider) PhysicalPath(route domain.SourceRoute) string {
	return filepath.Join(p.dir, filepath.FromSlash(route.Relative()))
}

// RouteFor maps an absolute path on disk back to its route.
// It reports false for paths outside the root.
func (p *OSProvider) RouteFor(path string) (domain.SourceRoute, bool) {
	rel, err := filepath.Rel(p.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return domain.MakeAbsolute("/", filepath.ToSlash(rel)), true
}

// Close releases the root directory handle.
func (p *OSProvider) Close() error {
	return p.root.Close()
}

// FSProvider serves stylesheets from any fs.FS, such as an embedded file system.
type FSProvider struct {
	fsys iofs.FS
}

// NewFSProvider creates a provider over fsys.
func NewFSProvider(fsys iofs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

// FS returns the underlying file system.
func (p *FSProvider) FS() iofs.FS {
	return p.fsys
}

// Exists reports whether route is a regular file.
func (p *FSProvider) Exists(route domain.SourceRoute) bool {
	info, err := iofs.Stat(p.fsys, route.Relative())
	return err == nil && info.Mode().IsRegular()
}

// Open opens route for reading.
func (p *FSProvider) Open(route domain.SourceRoute) (io.ReadCloser, error) {
	f, err := p.fsys.Open(route.Relative())
	if err != nil {
		if errors.Is(err, iofs.ErrInvalid) {
			return nil, zerr.With(domain.ErrPathOutsideRoot, "route", route.String())
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "route", route.String())
	}
	return f, nil
}
