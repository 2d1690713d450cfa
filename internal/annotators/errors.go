package annotators

import (
	"errors"
	"net/http"
)

// ErrEmptyIdentity indicates an issuer that is blank after normalization.
var ErrEmptyIdentity = errors.New("classification issuer is empty")

// MapHTTPStatus maps annotator domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyIdentity) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
