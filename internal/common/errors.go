package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrForbidden      = errors.New("forbidden access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., name already exists
	ErrInternalServer = errors.New("internal server error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes. Conflicts map
// to 400 rather than 409: the public API has always answered duplicates with
// 400 ("Vehicle already exists" etc.) and clients depend on it.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

type apiError struct {
	msg  string
	kind error
}

func (e *apiError) Error() string { return e.msg }
func (e *apiError) Unwrap() error { return e.kind }

// NewError builds an error that matches kind under errors.Is but surfaces
// msg verbatim to the client. The wire messages are part of the API contract
// ("Admin not found", "Vehicle already exists", ...), so they must not carry
// the sentinel text along.
func NewError(kind error, msg string) error {
	return &apiError{msg: msg, kind: kind}
}
