// Package internal holds the implementation of the rex framework.
//
// Import "github.com/dmitrymomot/rex" instead; it re-exports the public API.
//
// # Request flow
//
// Routes are declared on a [Router] into a plain table of [RouteDefinition]
// values. Declaring never fails. When [New] builds the application it hands
// the table to a [Dispatcher], which for every route:
//
//   - resolves the middleware names against the [MiddlewareRegistry],
//     dropping unknown names with a warning
//   - resolves the handler through the [Resolver]
//   - registers the result on chi under the route's verb
//
// A route that cannot be resolved is skipped and recorded in the
// [DispatchReport]; the remaining routes are still served.
//
// # Handler references
//
// Handlers may be functions, http.Handlers or "[Namespace/]Name@method"
// strings. A string is resolved against the [ControllerRegistry] by trying
// each [ModuleStrategy] in order:
//
//	"Admin/User@index"  ->  Admin/User, Admin/UserController, User
//
// The controller is built per request by its factory, and the action is
// the exported method whose name matches ("send_report" -> SendReport).
//
// # Context
//
// [Context] embeds context.Context and adds input helpers and envelope
// writers. Errors returned by handlers are rendered by the error handler:
//
//	{"success": false, "message": "...", "errors": {...}, "path": "/x", "method": "GET", "timestamp": "..."}
package internal
