package imports_test

import (
	"errors"
	"io"
	"strings"
	"sync"

	"go.trai.ch/sasspipe/internal/core/domain"
)

// memFiles is an in-memory FileProvider that tracks open handles.
type memFiles struct {
	mu      sync.Mutex
	files   map[domain.SourceRoute]string
	open    int
	maxOpen int
	opened  []domain.SourceRoute
	failing map[domain.SourceRoute]error
}

func newMemFiles(files map[string]string) *memFiles {
	m := &memFiles{
		files:   make(map[domain.SourceRoute]string, len(files)),
		failing: make(map[domain.SourceRoute]error),
	}
	for p, content := range files {
		m.files[domain.MakeAbsolute("/", p)] = content
	}
	return m
}

func (m *memFiles) set(p, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[domain.MakeAbsolute("/", p)] = content
}

func (m *memFiles) Exists(route domain.SourceRoute) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[route]
	return ok
}

func (m *memFiles) Open(route domain.SourceRoute) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failing[route]; ok {
		return nil, err
	}
	content, ok := m.files[route]
	if !ok {
		return nil, errors.New("file does not exist")
	}
	m.open++
	m.maxOpen = max(m.maxOpen, m.open)
	m.opened = append(m.opened, route)
	return &memHandle{Reader: strings.NewReader(content), files: m}, nil
}

type memHandle struct {
	io.Reader
	files *memFiles
}

func (h *memHandle) Close() error {
	h.files.mu.Lock()
	defer h.files.mu.Unlock()
	h.files.open--
	return nil
}

// contentVersions derives tokens from file content, like a content-hashing version provider.
type contentVersions struct {
	files *memFiles
}

func (v contentVersions) TokenFor(route domain.SourceRoute) (string, error) {
	v.files.mu.Lock()
	defer v.files.mu.Unlock()
	return route.String() + "?v=" + v.files.files[route], nil
}

func (v contentVersions) Changed() <-chan struct{} {
	return make(chan struct{})
}

func routes(paths ...string) []domain.SourceRoute {
	out := make([]domain.SourceRoute, len(paths))
	for i, p := range paths {
		out[i] = domain.SourceRoute(p)
	}
	return out
}
