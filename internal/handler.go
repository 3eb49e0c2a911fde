package internal

// Handler declares routes on a Router.
//
// Example:
//
//	type PostHandler struct{ store *PostStore }
//
//	func (h *PostHandler) Routes(r *rex.Router) {
//	    r.Get("/posts", h.list)
//	    r.Post("/posts", h.create, "auth").Name("posts.create")
//	}
type Handler interface {
	Routes(r *Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Auth(next rex.HandlerFunc) rex.HandlerFunc {
//	    return func(c rex.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Unauthorized("")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
