package assignments

import (
	"errors"
	"net/http"
)

// Domain errors for assignment operations.
var (
	ErrEmptyAnnotator = errors.New("annotator is required")
	ErrInvalidFile    = errors.New("invalid assignment file")
)

// MapHTTPStatus maps assignment domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyAnnotator) || errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
