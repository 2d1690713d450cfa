package classifications

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for classification operations.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNoRecordUpdated = errors.New("no record updated")
	ErrStorage         = errors.New("storage error")
)

// Validation failures. Each wraps ErrValidation.
var (
	ErrMissingFilepath = fmt.Errorf("%w: filepath is required", ErrValidation)
	ErrMissingLabel    = fmt.Errorf("%w: classification is required", ErrValidation)
	ErrInvalidLabel    = fmt.Errorf("%w: invalid classification", ErrValidation)
	ErrInvalidBody     = fmt.Errorf("%w: invalid request body", ErrValidation)
)

// MapHTTPStatus maps classification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrValidation) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrNoRecordUpdated) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
