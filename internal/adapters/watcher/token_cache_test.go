package watcher_test

import (
	"context"
	"fmt"
	"io"
	"iter"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sasspipe/internal/adapters/fs"
	"go.trai.ch/sasspipe/internal/adapters/watcher"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
)

// countingFiles counts how often stylesheets are opened.
type countingFiles struct {
	*fs.FSProvider
	opens atomic.Int64
}

func (c *countingFiles) Open(route domain.SourceRoute) (io.ReadCloser, error) {
	c.opens.Add(1)
	return c.FSProvider.Open(route)
}

func newFiles(mapFS fstest.MapFS) *countingFiles {
	return &countingFiles{FSProvider: fs.NewFSProvider(mapFS)}
}

func tokenOf(route, content string) string {
	return fmt.Sprintf("%s?v=%016x", route, xxhash.Sum64String(content))
}

func TestTokenCache_TokenFor(t *testing.T) {
	t.Parallel()

	files := newFiles(fstest.MapFS{"css/a.scss": {Data: []byte("a {}")}})
	cache := watcher.NewTokenCache(files, fs.NewHasher())

	token, err := cache.TokenFor("/css/a.scss")
	require.NoError(t, err)
	assert.Equal(t, tokenOf("/css/a.scss", "a {}"), token)

	again, err := cache.TokenFor("/css/a.scss")
	require.NoError(t, err)
	assert.Equal(t, token, again)
	assert.Equal(t, int64(1), files.opens.Load(), "tokens are memoized")
	assert.Equal(t, 1, cache.Len())
}

func TestTokenCache_MissingFile(t *testing.T) {
	t.Parallel()

	cache := watcher.NewTokenCache(newFiles(fstest.MapFS{}), fs.NewHasher())

	token, err := cache.TokenFor("/css/missing.scss")
	require.NoError(t, err)
	assert.Equal(t, "/css/missing.scss", token)
}

func TestTokenCache_Invalidate(t *testing.T) {
	t.Parallel()

	mapFS := fstest.MapFS{
		"css/a.scss": {Data: []byte("a {}")},
		"css/b.scss": {Data: []byte("b {}")},
	}
	cache := watcher.NewTokenCache(newFiles(mapFS), fs.NewHasher())

	_, err := cache.TokenFor("/css/a.scss")
	require.NoError(t, err)
	_, err = cache.TokenFor("/css/b.scss")
	require.NoError(t, err)
	changed := cache.Changed()

	mapFS["css/a.scss"] = &fstest.MapFile{Data: []byte("a { color: red; }")}
	cache.Invalidate([]domain.SourceRoute{"/css/a.scss"})

	select {
	case <-changed:
	default:
		t.Fatal("Changed channel was not closed")
	}
	assert.NotEqual(t, changed, cache.Changed(), "a fresh channel is handed out after invalidation")
	assert.Equal(t, 1, cache.Len())

	token, err := cache.TokenFor("/css/a.scss")
	require.NoError(t, err)
	assert.Equal(t, tokenOf("/css/a.scss", "a { color: red; }"), token)
}

func TestTokenCache_InvalidateUncachedRouteStillNotifies(t *testing.T) {
	t.Parallel()

	cache := watcher.NewTokenCache(newFiles(fstest.MapFS{}), fs.NewHasher())
	changed := cache.Changed()

	cache.Invalidate(nil)
	select {
	case <-changed:
		t.Fatal("an empty invalidation must not notify")
	default:
	}

	cache.Invalidate([]domain.SourceRoute{"/css/new.scss"})
	select {
	case <-changed:
	default:
		t.Fatal("Changed channel was not closed")
	}
}

func TestTokenCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := watcher.NewTokenCache(newFiles(fstest.MapFS{
		"a.scss": {Data: []byte("a")},
		"b.scss": {Data: []byte("b")},
	}), fs.NewHasher())

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			route := domain.SourceRoute("/a.scss")
			if i%2 == 1 {
				route = "/b.scss"
			}
			_, err := cache.TokenFor(route)
			assert.NoError(t, err)
			if i%8 == 0 {
				cache.Invalidate([]domain.SourceRoute{route})
			}
		})
	}
	wg.Wait()

	token, err := cache.TokenFor("/a.scss")
	require.NoError(t, err)
	assert.Equal(t, tokenOf("/a.scss", "a"), token)
}

// sliceWatcher replays a fixed list of events.
type sliceWatcher struct {
	events []ports.WatchEvent
}

func (w *sliceWatcher) Start(context.Context, string) error { return nil }

func (w *sliceWatcher) Stop() error { return nil }

func (w *sliceWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, e := range w.events {
			if !yield(e) {
				return
			}
		}
	}
}

func TestTokenCache_Follow(t *testing.T) {
	t.Parallel()

	cache := watcher.NewTokenCache(newFiles(fstest.MapFS{
		"css/a.scss": {Data: []byte("a")},
		"css/b.scss": {Data: []byte("b")},
	}), fs.NewHasher())
	_, err := cache.TokenFor("/css/a.scss")
	require.NoError(t, err)
	_, err = cache.TokenFor("/css/b.scss")
	require.NoError(t, err)
	changed := cache.Changed()

	w := &sliceWatcher{events: []ports.WatchEvent{
		{Path: "/srv/www/css/a.scss", Operation: ports.OpWrite},
		{Path: "/tmp/elsewhere.scss", Operation: ports.OpWrite},
		{Path: "/srv/www/css/a.scss", Operation: ports.OpWrite},
	}}
	routeFor := func(path string) (domain.SourceRoute, bool) {
		const root = "/srv/www"
		if len(path) <= len(root) || path[:len(root)] != root {
			return "", false
		}
		return domain.SourceRoute(path[len(root):]), true
	}

	cache.Follow(context.Background(), w, routeFor, time.Hour)

	select {
	case <-changed:
	default:
		t.Fatal("Follow did not invalidate on stream end")
	}
	assert.Equal(t, 1, cache.Len(), "only the watched route was dropped")
}

func TestTokenCache_FollowStopsOnCancel(t *testing.T) {
	t.Parallel()

	cache := watcher.NewTokenCache(newFiles(fstest.MapFS{}), fs.NewHasher())
	changed := cache.Changed()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &sliceWatcher{events: []ports.WatchEvent{{Path: "/a.scss", Operation: ports.OpWrite}}}
	cache.Follow(ctx, w, func(p string) (domain.SourceRoute, bool) { return domain.SourceRoute(p), true }, time.Hour)

	select {
	case <-changed:
		t.Fatal("a canceled follow must not invalidate")
	default:
	}
}
