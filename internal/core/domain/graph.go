package domain

import (
	"iter"
	"slices"
)

// ImportGraph is the ordered, deduplicated set of stylesheets discovered while walking the
// imports of a bundle. Routes keep their first-visit order.
type ImportGraph struct {
	routes []SourceRoute
	index  map[SourceRoute]struct{}
}

// NewImportGraph creates an empty ImportGraph.
func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		routes: make([]SourceRoute, 0),
		index:  make(map[SourceRoute]struct{}),
	}
}

// Add appends route if it is not yet part of the graph.
// It reports whether the route was added.
func (g *ImportGraph) Add(route SourceRoute) bool {
	if _, ok := g.index[route]; ok {
		return false
	}
	g.index[route] = struct{}{}
	g.routes = append(g.routes, route)
	return true
}

// Contains reports whether route is part of the graph.
func (g *ImportGraph) Contains(route SourceRoute) bool {
	_, ok := g.index[route]
	return ok
}

// Len returns the number of routes in the graph.
func (g *ImportGraph) Len() int {
	return len(g.routes)
}

// Routes returns a copy of the routes in discovery order.
func (g *ImportGraph) Routes() []SourceRoute {
	return slices.Clone(g.routes)
}

// All yields the routes in discovery order.
func (g *ImportGraph) All() iter.Seq[SourceRoute] {
	return slices.Values(g.routes)
}
