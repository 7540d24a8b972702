package results

import (
	"errors"
	"net/http"
)

// Domain errors for result operations.
var (
	ErrMissingName = errors.New("both names are required")
	ErrNameTooLong = errors.New("names must be at most 80 characters")
	ErrNotFound    = errors.New("result not found")
	ErrInvalidID   = errors.New("result id must be a positive integer")
	ErrDuplicate   = errors.New("result already exists")
)

// MapHTTPStatus maps result domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingName),
		errors.Is(err, ErrNameTooLong),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
