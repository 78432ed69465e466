// Package cas implements the build record store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildRecordStore = (*Store)(nil)

// Store implements ports.BuildRecordStore with one JSON file per bundle route, named by the
// SHA-256 of the route, below <root>/.sasspipe/store.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build record of route. It returns nil, nil if none was stored.
func (s *Store) Get(root, route string) (*domain.BuildRecord, error) {
	filename := s.filename(root, route)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "route", route)
	}

	var record domain.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "route", route)
	}
	return &record, nil
}

// Put stores record, replacing any previous record of the same route.
func (s *Store) Put(root string, record domain.BuildRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(root, record.Route)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "route", record.Route)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "route", record.Route)
	}
	return nil
}

// Clear removes every stored record below root.
func (s *Store) Clear(root string) error {
	if err := os.RemoveAll(filepath.Join(root, domain.DefaultStorePath())); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(root, route string) string {
	hash := sha256.Sum256([]byte(route))
	return filepath.Join(root, domain.DefaultStorePath(), hex.EncodeToString(hash[:])+".json")
}
