// Package storage provides blob storage abstractions for article assets.
// It defines a System interface for storage operations and includes a client
// for bucket-style object stores exposing a storage/v1 HTTP API.
package storage

import "errors"

// Storage errors returned by System implementations.
var (
	// ErrInvalidKey indicates the key is malformed or contains invalid characters.
	// This includes empty keys and path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrUploadRejected indicates the store refused the object write.
	ErrUploadRejected = errors.New("storage: upload rejected")

	// ErrDeleteRejected indicates the store refused the object delete.
	ErrDeleteRejected = errors.New("storage: delete rejected")
)
