package domain

// CacheKey is an opaque, URL-safe token identifying the state of a bundle's import closure.
type CacheKey string

// String returns the key as a string.
func (k CacheKey) String() string {
	return string(k)
}

// IsZero reports whether the key is empty.
func (k CacheKey) IsZero() bool {
	return k == ""
}
