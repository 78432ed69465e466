package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unique"

	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionProvider = (*TokenCache)(nil)

// TokenCache implements ports.VersionProvider by memoizing a content hash per stylesheet.
// Entries live until Invalidate drops them, which also closes the current Changed channel.
type TokenCache struct {
	mu         sync.RWMutex
	tokens     map[unique.Handle[string]]string
	generation uint64
	changed    chan struct{}
	files      ports.FileProvider
	hasher     *fs.Hasher
}

// NewTokenCache creates a token cache reading stylesheets from files.
func NewTokenCache(files ports.FileProvider, hasher *fs.Hasher) *TokenCache {
	return &TokenCache{
		tokens:  make(map[unique.Handle[string]]string),
		changed: make(chan struct{}),
		files:   files,
		hasher:  hasher,
	}
}

// TokenFor returns "<route>?v=<hash>" for an existing stylesheet.
// A missing file yields the bare route so that its later creation changes the token.
func (c *TokenCache) TokenFor(route domain.SourceRoute) (string, error) {
	key := unique.Make(route.String())

	c.mu.RLock()
	token, ok := c.tokens[key]
	generation := c.generation
	c.mu.RUnlock()
	if ok {
		return token, nil
	}

	token = route.String()
	if c.files.Exists(route) {
		sum, err := c.hasher.ComputeFileHash(c.files, route)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrVersionFailed.Error()), "route", route.String())
		}
		token = fmt.Sprintf("%s?v=%016x", route, sum)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// An invalidation raced with the hash; the result may already be stale.
	if c.generation == generation {
		c.tokens[key] = token
	}
	return token, nil
}

// Changed returns a channel that is closed on the next invalidation.
func (c *TokenCache) Changed() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.changed
}

// Invalidate drops the tokens of routes and notifies Changed subscribers.
// Subscribers are notified even when none of the routes was cached, since a newly
// created file can change how imports resolve.
func (c *TokenCache) Invalidate(routes []domain.SourceRoute) {
	if len(routes) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, route := range routes {
		delete(c.tokens, unique.Make(route.String()))
	}
	c.generation++
	close(c.changed)
	c.changed = make(chan struct{})
}

// Len returns the number of cached tokens.
func (c *TokenCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tokens)
}

// Follow feeds events from w into the cache until the event stream ends or ctx is done.
// routeFor maps an absolute path to its route; paths it rejects are ignored.
// Events are coalesced over window before being applied.
func (c *TokenCache) Follow(
	ctx context.Context,
	w ports.Watcher,
	routeFor func(path string) (domain.SourceRoute, bool),
	window time.Duration,
) {
	debouncer := NewDebouncer(window, func(paths []string) {
		routes := make([]domain.SourceRoute, 0, len(paths))
		for _, p := range paths {
			if route, ok := routeFor(p); ok {
				routes = append(routes, route)
			}
		}
		c.Invalidate(routes)
	})
	defer debouncer.Flush()

	for event := range w.Events() {
		if ctx.Err() != nil {
			return
		}
		debouncer.Add(event.Path)
	}
}
