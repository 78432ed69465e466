// Package fs provides file system adapters for reading, walking and hashing stylesheets.
package fs

import (
	"io/fs"
	"iter"
	"path"
	"slices"
	"strings"
)

// skippedDirs are never descended into.
var skippedDirs = []string{".git", ".jj", "node_modules", ".sasspipe"}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the slash-separated paths of all files in fsys, in lexical order,
// skipping VCS metadata, node_modules and the sasspipe state directory.
func (w *Walker) WalkFiles(fsys fs.FS) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if p != "." && slices.Contains(skippedDirs, d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if !yield(p) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// IsCompilable reports whether p names a Sass stylesheet meant to be compiled on its own,
// that is a ".scss" or ".sass" file that is not a partial.
func IsCompilable(p string) bool {
	name := path.Base(p)
	ext := path.Ext(name)
	return (ext == ".scss" || ext == ".sass") && !strings.HasPrefix(name, "_")
}
