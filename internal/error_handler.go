package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/rex/pkg/validator"
)

// ErrorResponse is the body written by the default error handlers.
type ErrorResponse struct {
	Errors    map[string][]string `json:"errors,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Message   string              `json:"message"`
	Path      string              `json:"path"`
	Method    string              `json:"method"`
	Stack     string              `json:"stack,omitempty"`
	Success   bool                `json:"success"`
}

type statusCoder interface {
	StatusCode() int
}

type stackTracer interface {
	StackTrace() []byte
}

// ErrorStatus maps an error to its HTTP status code:
// validation errors are 422, errors with a StatusCode method use it,
// everything else is 500.
func ErrorStatus(err error) int {
	if validator.IsValidationError(err) {
		return http.StatusUnprocessableEntity
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// defaultErrorHandler renders err into the error envelope.
// Messages of 5xx errors are hidden unless debug is on.
func (a *App) defaultErrorHandler(c Context, err error) error {
	resp := ErrorResponse{
		Timestamp: time.Now().UTC(),
		Path:      c.Request().URL.Path,
		Method:    c.Request().Method,
	}
	code := ErrorStatus(err)

	if verrs, ok := validator.AsErrors(err); ok {
		resp.Message = msgValidationFailed
		resp.Errors = verrs
	} else if he, ok := AsHTTPError(err); ok {
		resp.Message = he.Message
		resp.Errors = he.Errors
	} else {
		resp.Message = err.Error()
	}

	if code >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", code),
			slog.String("method", resp.Method),
			slog.String("path", resp.Path),
			slog.Any("error", err),
		)
		if _, ok := AsHTTPError(err); !ok && !a.debug {
			resp.Message = http.StatusText(http.StatusInternalServerError)
		}
	}

	if a.debug {
		var st stackTracer
		if errors.As(err, &st) {
			resp.Stack = string(st.StackTrace())
		}
	}

	return c.JSON(code, resp)
}

func (a *App) defaultNotFoundHandler(c Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Message:   "Route not found",
		Path:      c.Request().URL.Path,
		Method:    c.Request().Method,
		Timestamp: time.Now().UTC(),
	})
}

func (a *App) defaultMethodNotAllowedHandler(c Context) error {
	return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Message:   "Method not allowed",
		Path:      c.Request().URL.Path,
		Method:    c.Request().Method,
		Timestamp: time.Now().UTC(),
	})
}
