package domain

import (
	"path"
	"regexp"
	"strings"
)

// DefaultExtension is appended to references that carry no extension.
const DefaultExtension = ".scss"

// PartialPrefix marks a stylesheet that is only meant to be imported.
const PartialPrefix = "_"

// SourceRoute is a slash-separated, pipeline-relative stylesheet path such as "/css/app.scss".
// A normalized route always begins with "/".
type SourceRoute string

// MakeAbsolute joins route onto base and normalizes the result into a SourceRoute.
// Backslashes are treated as separators and ".." segments never climb above "/".
func MakeAbsolute(base, route string) SourceRoute {
	base = strings.ReplaceAll(base, `\`, "/")
	route = strings.ReplaceAll(route, `\`, "/")
	return SourceRoute(path.Clean("/" + path.Join(base, route)))
}

// String returns the route as a string.
func (r SourceRoute) String() string {
	return string(r)
}

// Dir returns the directory containing the route.
func (r SourceRoute) Dir() SourceRoute {
	return SourceRoute(path.Dir(string(r)))
}

// Base returns the final segment of the route.
func (r SourceRoute) Base() string {
	return path.Base(string(r))
}

// Relative returns the route without its leading slash, as expected by io/fs.
// The root route maps to ".".
func (r SourceRoute) Relative() string {
	rel := strings.TrimPrefix(path.Clean("/"+string(r)), "/")
	if rel == "" {
		return "."
	}
	return rel
}

// IsPartial reports whether the final segment starts with an underscore.
func (r SourceRoute) IsPartial() bool {
	return strings.HasPrefix(r.Base(), PartialPrefix)
}

// Partial returns the route with its final segment prefixed by an underscore.
func (r SourceRoute) Partial() SourceRoute {
	dir, file := path.Split(string(r))
	return SourceRoute(dir + PartialPrefix + file)
}

// HasExtension reports whether the final segment of p carries a file extension.
// A trailing dot does not count as an extension.
func HasExtension(p string) bool {
	ext := path.Ext(path.Base(strings.ReplaceAll(p, `\`, "/")))
	return ext != "" && ext != "."
}

// WithDefaultExtension appends DefaultExtension when p has no extension.
func WithDefaultExtension(p string) string {
	if HasExtension(p) {
		return p
	}
	return p + DefaultExtension
}

var uriSchemeRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// IsExternalReference reports whether ref is an absolute URI (for example "http://host/x.css"
// or "//cdn/x.css") that must never be resolved against the file provider.
func IsExternalReference(ref string) bool {
	return strings.HasPrefix(ref, "//") || uriSchemeRegex.MatchString(ref)
}
