package storage

import "context"

// System defines the blob storage operations interface. Implementations
// store opaque objects under slash-separated keys and serve them back
// through stable public URLs.
type System interface {
	// Upload stores data at the specified key and returns its public URL.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object at the specified key.
	// Returns nil if the object does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// PublicURL returns the public URL an object at key would be served from.
	PublicURL(key string) string

	// KeyFromURL derives the storage key from a public URL previously
	// returned by Upload. The second return is false when the URL does not
	// match this store's public URL shape.
	KeyFromURL(publicURL string) (string, bool)
}
