package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, "unauthorized", err)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, "forbidden", err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, "not_found", err)
}

func InvalidInput(err error) *Error {
	return New(http.StatusBadRequest, "invalid_input", err)
}

func Precondition(err error) *Error {
	return New(http.StatusBadRequest, "precondition_failed", err)
}

func GenerationFailed(err error) *Error {
	return New(http.StatusInternalServerError, "generation_failed", err)
}

func InvalidAIResponse(err error) *Error {
	return New(http.StatusInternalServerError, "invalid_ai_response", err)
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal_error", err)
}

// From pulls an *Error out of an error chain, wrapping anything else as a
// generic internal error so handlers always have a status to respond with.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
