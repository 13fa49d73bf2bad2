package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDateParse indicates that a date or date range could not be parsed as yyyy-MM-dd.
var ErrDateParse = errors.New("invalid date")

// ErrNetwork indicates that the exchange provider was unreachable, answered with a
// non-2xx status or reported an unsuccessful response.
var ErrNetwork = errors.New("exchange provider unavailable")

// ErrDecode indicates that the exchange provider response was malformed.
var ErrDecode = errors.New("malformed exchange provider response")

// ErrStore indicates a persistence failure.
var ErrStore = errors.New("store failure")

// AppError carries an HTTP status code and a client-safe message alongside the
// underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. A 5xx code without a sentinel cause is
// tagged as ErrStore so callers can still match it with errors.Is.
func NewAppError(code int, message string, err error) *AppError {
	if code >= http.StatusInternalServerError && !isKnown(err) {
		if err == nil {
			err = ErrStore
		} else {
			err = fmt.Errorf("%w: %w", ErrStore, err)
		}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns a 404 AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns a 400 AppError wrapping ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewDateParseError returns a 400 AppError wrapping ErrDateParse.
func NewDateParseError(value string, err error) *AppError {
	cause := ErrDateParse
	if err != nil {
		cause = fmt.Errorf("%w: %w", ErrDateParse, err)
	}
	return &AppError{Code: http.StatusBadRequest, Message: fmt.Sprintf("cannot parse date %q, expected yyyy-MM-dd", value), Err: cause}
}

func isKnown(err error) bool {
	for _, sentinel := range []error{ErrNotFound, ErrValidation, ErrDuplicate, ErrDateParse, ErrNetwork, ErrDecode, ErrStore} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
