package fs

import (
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Resolver expands file patterns relative to a pipeline root.
// Patterns use path.Match syntax per segment, and a "**" segment matches any number of directories.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveInputs expands patterns against fsys and returns the matched files in pattern order.
// Matches of a single pattern are sorted; files matched twice are reported once.
// A pattern without wildcards must name an existing file.
func (r *Resolver) ResolveInputs(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var result []string

	for _, pattern := range patterns {
		clean := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(pattern, `\`, "/")), "/")
		if _, err := path.Match(clean, ""); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid file pattern"), "pattern", pattern)
		}

		var matches []string
		if !hasMeta(clean) {
			info, err := fs.Stat(fsys, clean)
			if err != nil || info.IsDir() {
				return nil, zerr.With(zerr.New("input not found"), "path", pattern)
			}
			matches = []string{clean}
		} else {
			for p := range r.walker.WalkFiles(fsys) {
				if matchSegments(strings.Split(clean, "/"), strings.Split(p, "/")) {
					matches = append(matches, p)
				}
			}
			slices.Sort(matches)
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			result = append(result, m)
		}
	}

	return result, nil
}

func hasMeta(p string) bool {
	return strings.ContainsAny(p, `*?[\`)
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			for i := 0; i <= len(name); i++ {
				if matchSegments(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
