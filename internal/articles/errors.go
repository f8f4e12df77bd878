package articles

import (
	"errors"
	"net/http"
)

// Domain errors for article operations.
var (
	// ErrValidation indicates bad input rejected before any remote call
	// for the offending field. No compensation is ever required for it.
	ErrValidation = errors.New("invalid article input")

	// ErrUpload indicates a blob store write failed.
	ErrUpload = errors.New("asset upload failed")

	// ErrDuplicate indicates an article with the requested id already exists.
	ErrDuplicate = errors.New("article id already exists")

	// ErrNotFound indicates the operation target does not exist.
	ErrNotFound = errors.New("article not found")

	// ErrCommit indicates a repository write failed for a reason other
	// than id duplication.
	ErrCommit = errors.New("article commit failed")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
