package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Resolution and routing errors.
var (
	ErrInvalidHandler     = errors.New("rex: invalid handler reference")
	ErrControllerNotFound = errors.New("rex: controller not found")
	ErrClassNotFound      = errors.New("rex: controller export not found")
	ErrMethodNotFound     = errors.New("rex: controller method not found")

	ErrRouteNotFound      = errors.New("rex: route not found")
	ErrMissingRouteParam  = errors.New("rex: missing route parameter")
	ErrUnsupportedMethod  = errors.New("rex: unsupported http method")
	ErrRouteConflict      = errors.New("rex: route already registered")
	ErrInvalidRoutesFile  = errors.New("rex: invalid routes file")
	ErrValidatorNotLoaded = errors.New("rex: validator is not configured")
)

// HTTPError is an error with an HTTP status code and a user-facing message.
// The error handler renders it into the response envelope.
type HTTPError struct {
	// Err is the underlying error. It is logged, never shown.
	Err error

	// Errors is an optional field -> messages map rendered as "errors".
	Errors map[string][]string

	Message string
	Code    int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError. An empty message falls back to the status text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithError attaches the underlying cause.
func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// WithErrors attaches a field -> messages map.
func WithErrors(errs map[string][]string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Errors = errs
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrTooManyRequests(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusTooManyRequests, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts an HTTPError from the chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// ResolutionError reports a string handler that could not be turned into a callable.
// Kind is one of the resolution sentinels and matches with errors.Is.
type ResolutionError struct {
	Kind    error
	Err     error
	Locator string
	Method  string
}

func (e *ResolutionError) Error() string {
	msg := e.Kind.Error()
	switch {
	case e.Locator != "" && e.Method != "":
		msg = fmt.Sprintf("%s: %s@%s", msg, e.Locator, e.Method)
	case e.Locator != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Locator)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Is(target error) bool {
	return e.Kind == target
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// PanicError is a recovered panic. It renders as 500.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) StatusCode() int {
	return http.StatusInternalServerError
}

func (e *PanicError) StackTrace() []byte {
	return e.Stack
}

// Unwrap exposes a panic value that is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
