package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/rex/internal"
)

// DefaultBodyLimit matches UPLOAD_MAX_BODY's default of 10MB.
const DefaultBodyLimit int64 = 10 << 20

// BodyLimit caps the request body at limit bytes. Requests that declare a
// larger Content-Length are rejected with 413 up front; others fail with 413
// when the input is parsed past the limit.
func BodyLimit(limit int64) internal.Middleware {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if r.ContentLength > limit {
				return internal.NewHTTPError(http.StatusRequestEntityTooLarge, "")
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(c.Response(), r.Body, limit)
			}
			return next(c)
		}
	}
}
