package domain

import "path/filepath"

const (
	// DirName is the name of the internal state directory.
	DirName = ".sasspipe"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the pipeline configuration file.
	ConfigFileName = "sasspipe.yaml"

	// CSSContentType is the content type of compiled bundles.
	CSSContentType = "text/css; charset=UTF-8"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default root directory for sasspipe metadata.
func DefaultStatePath() string {
	return DirName
}

// DefaultStorePath returns the default path for the build record store.
// It joins .sasspipe and store.
func DefaultStorePath() string {
	return filepath.Join(DirName, StoreDirName)
}
