package middlewares

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/rex/internal"
)

// PanicError is returned by Recover. It reports status 500.
type PanicError = internal.PanicError

// RateLimitError is returned by RateLimit when a client is over its limit.
type RateLimitError struct {
	RetryAfter time.Duration
	Limit      int
}

func (e *RateLimitError) Error() string {
	return "Too many requests from this IP, please try again later."
}

func (e *RateLimitError) StatusCode() int {
	return http.StatusTooManyRequests
}

func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func IsRateLimitError(err error) bool {
	_, ok := AsRateLimitError(err)
	return ok
}

func AsRateLimitError(err error) (*RateLimitError, bool) {
	var re *RateLimitError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
