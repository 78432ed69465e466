package domain

import "strings"

// Bundle is a named, routable group of stylesheets compiled and served as one CSS output.
type Bundle struct {
	// Route is the URL path the compiled CSS is served from, e.g. "/css/site.css".
	Route string
	// ContentType is the media type of the compiled output.
	ContentType string
	// SourceFiles are the declared sources, relative to the pipeline root.
	SourceFiles []string
	// PhysicalFiles, when set, is the expanded list of files the bundle is built from.
	// It takes precedence over SourceFiles when scanning imports.
	PhysicalFiles []string
}

// NewBundle creates a CSS bundle served from route.
func NewBundle(route string, sourceFiles ...string) Bundle {
	return Bundle{
		Route:       route,
		ContentType: CSSContentType,
		SourceFiles: sourceFiles,
	}
}

// Sources returns the files the bundle is compiled from, in declaration order.
func (b Bundle) Sources() []string {
	if len(b.PhysicalFiles) > 0 {
		return b.PhysicalFiles
	}
	return b.SourceFiles
}

// RootRoutes returns the normalized roots whose imports feed the bundle's cache key.
// Declared source files are filtered to ".scss"; an explicit physical file list is used as is.
func (b Bundle) RootRoutes() []SourceRoute {
	files := b.PhysicalFiles
	filter := false
	if len(files) == 0 {
		files = b.SourceFiles
		filter = true
	}

	routes := make([]SourceRoute, 0, len(files))
	for _, f := range files {
		if filter && !strings.HasSuffix(f, DefaultExtension) {
			continue
		}
		routes = append(routes, MakeAbsolute("/", f))
	}
	return routes
}

// Content is one stylesheet flowing through the processor, keyed by its route.
type Content struct {
	Route string
	Data  []byte
}
