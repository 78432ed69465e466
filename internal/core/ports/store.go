package ports

import "go.trai.ch/sasspipe/internal/core/domain"

// BuildRecordStore defines the interface for storing and retrieving bundle build records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the build record for a bundle route below root.
	// Returns nil, nil if not found.
	Get(root, route string) (*domain.BuildRecord, error)

	// Put stores the build record below root.
	Put(root string, record domain.BuildRecord) error

	// Clear removes every record stored below root.
	Clear(root string) error
}
