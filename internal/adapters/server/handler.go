// Package server serves compiled bundles over HTTP.
package server

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// minCompressSize is the smallest response that is gzip-compressed.
const minCompressSize = 512

// Source compiles bundles and derives their cache keys.
type Source interface {
	CacheKey(bundle domain.Bundle) (domain.CacheKey, error)
	CSS(ctx context.Context, bundle domain.Bundle) (string, error)
}

// Handler serves the bundles of a pipeline. Compiled output is kept in memory until
// the version provider reports that a stylesheet changed.
type Handler struct {
	pipeline *domain.Pipeline
	source   Source
	versions ports.VersionProvider
	hasher   ports.Hasher
	logger   ports.Logger
	next     http.Handler

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	changed <-chan struct{}
}

type entry struct {
	etag string
	css  []byte
}

// NewHandler creates a Handler. Requests for routes that are not bundles go to next,
// or receive 404 when next is nil.
func NewHandler(
	p *domain.Pipeline,
	source Source,
	versions ports.VersionProvider,
	hasher ports.Hasher,
	logger ports.Logger,
	next http.Handler,
) *Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return &Handler{
		pipeline: p,
		source:   source,
		versions: versions,
		hasher:   hasher,
		logger:   logger,
		next:     next,
		entries:  make(map[string]*entry),
		changed:  versions.Changed(),
	}
}

// Compress wraps h with gzip content encoding.
func Compress(h http.Handler) (http.Handler, error) {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minCompressSize))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return wrap(h), nil
}

// ServeHTTP serves the compiled bundle at the request path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.pipeline.Bundle(r.URL.Path)
	if err != nil {
		h.next.ServeHTTP(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	e, err := h.lookup(r.Context(), bundle)
	if err != nil {
		h.logger.Error(zerr.With(err, "bundle", bundle.Route))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", bundle.ContentType)
	header.Set("X-Content-Type-Options", "nosniff")
	header.Set("Cache-Control", "no-cache")
	header.Set("ETag", e.etag)
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(e.css))
}

func (h *Handler) lookup(ctx context.Context, bundle domain.Bundle) (*entry, error) {
	h.mu.Lock()
	select {
	case <-h.changed:
		h.entries = make(map[string]*entry)
		h.changed = h.versions.Changed()
	default:
	}
	e, ok := h.entries[bundle.Route]
	changed := h.changed
	h.mu.Unlock()

	if ok {
		return e, nil
	}

	v, err, _ := h.group.Do(bundle.Route, func() (any, error) {
		return h.compile(ctx, bundle, changed)
	})
	if err != nil {
		return nil, err
	}
	return v.(*entry), nil
}

func (h *Handler) compile(ctx context.Context, bundle domain.Bundle, changed <-chan struct{}) (*entry, error) {
	key, err := h.source.CacheKey(bundle)
	if err != nil {
		return nil, err
	}
	css, err := h.source.CSS(ctx, bundle)
	if err != nil {
		return nil, err
	}
	e := &entry{etag: h.etag(key, []byte(css)), css: []byte(css)}

	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-changed:
	default:
		if changed == h.changed {
			h.entries[bundle.Route] = e
		}
	}
	return e, nil
}

// etag validates a response. The cache key leaves the bundle's own sources out, so the
// compiled bytes are folded in as well.
func (h *Handler) etag(key domain.CacheKey, css []byte) string {
	return `"` + h.hasher.Fingerprint([]string{key.String(), h.hasher.ComputeOutputHash(css)}) + `"`
}
