package fs

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sasspipe/internal/core/domain"
	"go.trai.ch/sasspipe/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints stylesheets and build outputs with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of route's content.
func (h *Hasher) ComputeFileHash(files ports.FileProvider, route domain.SourceRoute) (uint64, error) {
	rc, err := files.Open(route)
	if err != nil {
		return 0, err
	}
	defer rc.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, rc); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "route", route.String())
	}
	return hasher.Sum64(), nil
}

// ComputeOutputHash returns the hex XXHash of compiled output.
func (h *Hasher) ComputeOutputHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Fingerprint folds parts into a single hex hash. Parts are separated so that
// ("ab", "c") and ("a", "bc") differ.
func (h *Hasher) Fingerprint(parts []string) string {
	hasher := xxhash.New()
	for _, p := range parts {
		_, _ = hasher.WriteString(p)
		_, _ = hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
