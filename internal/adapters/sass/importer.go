package sass

import (
	"io"
	"path"
	"strings"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

const fileScheme = "file://"

// importer serves @use and @import loads from the pipeline's file provider.
// Canonical URLs are "file://" followed by the stylesheet's route.
type importer struct {
	files    ports.FileProvider
	resolver ports.ImportResolver
	dirs     []domain.SourceRoute
}

func newImporter(
	files ports.FileProvider,
	resolver ports.ImportResolver,
	entry domain.SourceRoute,
	includePaths []string,
) *importer {
	dirs := make([]domain.SourceRoute, 0, len(includePaths)+1)
	dirs = append(dirs, entry.Dir())
	for _, p := range includePaths {
		dirs = append(dirs, domain.MakeAbsolute("/", p))
	}
	return &importer{files: files, resolver: resolver, dirs: dirs}
}

// CanonicalizeURL resolves url to a canonical "file://" URL, or returns "" so the compiler
// can try its other importers.
func (i *importer) CanonicalizeURL(url string) (string, error) {
	if strings.HasPrefix(url, fileScheme) {
		if route, ok := i.resolver.Resolve("/", strings.TrimPrefix(url, fileScheme)); ok {
			return routeURL(route), nil
		}
		return "", nil
	}

	if domain.IsExternalReference(url) {
		return "", nil
	}

	for _, dir := range i.dirs {
		if route, ok := i.resolver.Resolve(dir, url); ok {
			return routeURL(route), nil
		}
	}
	return "", nil
}

// Load reads the stylesheet behind a canonical URL.
func (i *importer) Load(canonicalizedURL string) (godartsass.Import, error) {
	route := urlRoute(canonicalizedURL)

	rc, err := i.files.Open(route)
	if err != nil {
		return godartsass.Import{}, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "route", route.String())
	}
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(rc)
	if err != nil {
		return godartsass.Import{}, zerr.With(zerr.Wrap(err, domain.ErrFileReadFailed.Error()), "route", route.String())
	}

	return godartsass.Import{
		Content:      string(content),
		SourceSyntax: syntaxFor(route),
	}, nil
}

func routeURL(route domain.SourceRoute) string {
	return fileScheme + route.String()
}

func urlRoute(url string) domain.SourceRoute {
	return domain.MakeAbsolute("/", strings.TrimPrefix(url, fileScheme))
}

func syntaxFor(route domain.SourceRoute) godartsass.SourceSyntax {
	switch path.Ext(route.String()) {
	case ".sass":
		return godartsass.SourceSyntaxSASS
	case ".css":
		return godartsass.SourceSyntaxCSS
	default:
		return godartsass.SourceSyntaxSCSS
	}
}
