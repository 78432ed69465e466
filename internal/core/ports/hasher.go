package ports

// Hasher fingerprints build inputs and compiled outputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeOutputHash returns a stable hash of compiled output.
	ComputeOutputHash(data []byte) string

	// Fingerprint folds parts into a single hash.
	Fingerprint(parts []string) string
}
