package domain

import "go.trai.ch/zerr"

var (
	// ErrRootNotFound is returned when a root stylesheet of a bundle does not exist.
	ErrRootNotFound = zerr.New("root stylesheet not found")

	// ErrFileOpenFailed is returned when a stylesheet cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileReadFailed is returned when reading a stylesheet stream fails.
	ErrFileReadFailed = zerr.New("failed to read file")

	// ErrMalformedSource is returned when a stylesheet contains bytes that are not valid UTF-8.
	ErrMalformedSource = zerr.New("stylesheet is not valid UTF-8")

	// ErrPathOutsideRoot is returned when a path escapes the pipeline root.
	ErrPathOutsideRoot = zerr.New("path is outside the pipeline root")

	// ErrVersionFailed is returned when a file version token cannot be computed.
	ErrVersionFailed = zerr.New("failed to compute file version")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrUnsupportedLinefeed is returned when the configured line feed is not one of LF, CR, CRLF or LFCR.
	ErrUnsupportedLinefeed = zerr.New("unsupported linefeed")

	// ErrInvalidOutputStyle is returned when the configured output style is unknown.
	ErrInvalidOutputStyle = zerr.New("invalid output style, expected 'expanded' or 'compressed'")

	// ErrInvalidIndent is returned when the indent string is empty or mixes tabs and spaces.
	ErrInvalidIndent = zerr.New("invalid indent, expected only spaces or only tabs")

	// ErrInvalidWarningLevel is returned when the configured warning level is unknown.
	ErrInvalidWarningLevel = zerr.New("invalid warning level, expected 'quiet', 'default' or 'verbose'")

	// ErrCompilerNotFound is returned when the external Sass compiler binary cannot be located.
	ErrCompilerNotFound = zerr.New("sass compiler not found")

	// ErrCompileFailed is returned when the external Sass compiler rejects a stylesheet.
	ErrCompileFailed = zerr.New("sass compilation failed")

	// ErrBundleNotFound is returned when a requested bundle route is not configured.
	ErrBundleNotFound = zerr.New("bundle not found")

	// ErrDuplicateBundle is returned when two bundles share the same route.
	ErrDuplicateBundle = zerr.New("duplicate bundle route")

	// ErrEmptyBundle is returned when a bundle declares no source files.
	ErrEmptyBundle = zerr.New("bundle has no source files")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no config file can be found.
	ErrConfigNotFound = zerr.New("could not find " + ConfigFileName)

	// ErrConfigInvalid is returned when the config file is well-formed but semantically invalid.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrOutputWriteFailed is returned when compiled CSS cannot be written to the output directory.
	ErrOutputWriteFailed = zerr.New("failed to write compiled output")

	// ErrCacheKeyFailed is returned when a bundle cache key cannot be computed.
	ErrCacheKeyFailed = zerr.New("failed to compute cache key")

	// ErrBuildExecutionFailed is returned when one or more bundles fail to build.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrWatcherFailed is returned when the file watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to start file watcher")

	// ErrServerFailed is returned when the development server cannot be started or stops unexpectedly.
	ErrServerFailed = zerr.New("failed to serve bundles")
)
