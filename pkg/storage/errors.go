package storage

import (
	"errors"
	"net/http"
)

// Sentinel errors returned by every Store implementation.
var (
	ErrNotFound   = errors.New("asset not found")
	ErrEmptyKey   = errors.New("asset key is empty")
	ErrInvalidKey = errors.New("asset key escapes the storage root")
)

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
