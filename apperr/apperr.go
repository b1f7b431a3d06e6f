package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for the failure kinds the handlers know how to map.
// Anything else is treated as an unhandled server failure.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// E wraps one of the sentinel kinds with a request-specific message.
type E struct {
	Kind error
	Msg  string
}

func (e *E) Error() string { return e.Msg }
func (e *E) Unwrap() error { return e.Kind }

func Validation(msg string) error { return &E{Kind: ErrValidation, Msg: msg} }
func NotFound(msg string) error   { return &E{Kind: ErrNotFound, Msg: msg} }
func Conflict(msg string) error   { return &E{Kind: ErrConflict, Msg: msg} }

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
