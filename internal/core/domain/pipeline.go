package domain

import "go.trai.ch/zerr"

// Pipeline is a fully resolved sasspipe configuration.
type Pipeline struct {
	// Root is the absolute directory all stylesheet routes are relative to.
	Root string
	// Output is the absolute directory compiled bundles are written to.
	Output string
	// Options configures the Sass compiler.
	Options Options
	// Bundles are the configured bundles followed by one bundle per compiled file, in order.
	Bundles []Bundle
}

// Bundle returns the bundle served from route.
func (p *Pipeline) Bundle(route string) (Bundle, error) {
	for _, b := range p.Bundles {
		if b.Route == route {
			return b, nil
		}
	}
	return Bundle{}, zerr.With(ErrBundleNotFound, "route", route)
}

// Routes returns the routes of all bundles.
func (p *Pipeline) Routes() []string {
	routes := make([]string, len(p.Bundles))
	for i, b := range p.Bundles {
		routes[i] = b.Route
	}
	return routes
}
