package imports

import (
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

// Walker performs a depth-first walk over the import references of a set of root stylesheets.
type Walker struct {
	files    ports.FileProvider
	resolver ports.ImportResolver
}

// NewWalker creates a Walker reading stylesheets from files and resolving references with resolver.
func NewWalker(files ports.FileProvider, resolver ports.ImportResolver) *Walker {
	return &Walker{files: files, resolver: resolver}
}

// Walk returns every stylesheet reachable from roots through @import and @use, in the order
// each was first discovered. Roots themselves are never part of the graph, and every root is
// considered visited before the walk starts, so each file is scanned at most once.
//
// Unresolvable references are skipped. A missing root, an unreadable file or a file that
// is not valid UTF-8 aborts the walk.
func (w *Walker) Walk(roots []domain.SourceRoute) (*domain.ImportGraph, error) {
	state := &walk{
		graph:   domain.NewImportGraph(),
		visited: make(map[domain.SourceRoute]struct{}, len(roots)),
	}
	for _, root := range roots {
		state.visited[root] = struct{}{}
	}

	for _, root := range roots {
		if !w.files.Exists(root) {
			return nil, zerr.With(domain.ErrRootNotFound, "route", root.String())
		}
		if err := w.visit(state, root); err != nil {
			return nil, err
		}
	}
	return state.graph, nil
}

type walk struct {
	graph   *domain.ImportGraph
	visited map[domain.SourceRoute]struct{}
}

func (w *Walker) visit(state *walk, route domain.SourceRoute) error {
	refs, err := w.references(route)
	if err != nil {
		return err
	}

	base := route.Dir()
	for _, ref := range refs {
		resolved, ok := w.resolver.Resolve(base, ref)
		if !ok {
			continue
		}
		if _, seen := state.visited[resolved]; seen {
			continue
		}
		state.visited[resolved] = struct{}{}
		state.graph.Add(resolved)

		if err := w.visit(state, resolved); err != nil {
			return err
		}
	}
	return nil
}

// references reads route and closes it before any import is followed.
func (w *Walker) references(route domain.SourceRoute) ([]string, error) {
	rc, err := w.files.Open(route)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "route", route.String())
	}
	defer func() {
		_ = rc.Close()
	}()

	refs, err := scanReferences(rc)
	if err != nil {
		return nil, zerr.With(err, "route", route.String())
	}
	return refs, nil
}
