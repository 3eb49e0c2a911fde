// Package rex is a convention-driven framework for JSON APIs in Go:
// routes reference controllers by name, requests declare their validation
// rules, and every response uses one envelope.
//
// # Quick Start
//
//	app := rex.New(
//	    rex.WithLogger(log),
//	    rex.WithAppInfo("acme", "1.0.0"),
//	    rex.WithController("UserController", func(c rex.Context) any {
//	        return &UserController{Ctx: c, Store: store}
//	    }),
//	    rex.WithNamedMiddleware("validate.user.create", rex.Validate[CreateUserRequest]()),
//	    rex.WithRoutes(func(r *rex.Router) {
//	        r.Get("/ping", func(c rex.Context) error { return c.Success("pong", "") })
//	        r.Group("/api", func(r *rex.Router) {
//	            r.APIResource("users", "UserController")
//	        }, "auth")
//	    }),
//	)
//
//	if err := app.Run(":3000", rex.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Routes
//
// Declarations only record definitions. When New returns, every route has
// been resolved and mounted on chi; routes that could not be resolved are
// logged, listed in [App.DispatchReport], and skipped.
//
// A handler is a [HandlerFunc], an http.Handler, or a reference of the form
// "[Namespace/]Name@method". The resolver tries the locator as written,
// then with a "Controller" suffix, then without the namespace, so
// "Admin/User@show" can find "Admin/UserController". The method is mapped
// to a Go method name: "show" calls Show, "send_reset_link" calls
// SendResetLink.
//
// Routes can also come from a YAML file, see [WithRoutesFile].
//
// # Controllers
//
// A controller factory receives the request [Context] and returns a fresh
// controller for every request:
//
//	type UserController struct {
//	    rex.Context
//	    Store Store
//	}
//
//	func (uc *UserController) Show() error {
//	    user, err := uc.Store.Find(uc, rex.Param[int64](uc, "id"))
//	    if err != nil {
//	        return err
//	    }
//	    return uc.Success(UserResource(user), "")
//	}
//
// # Requests
//
// A [FormRequest] lists its rules; [Validate] turns it into middleware that
// answers 422 with every failing field, and [Validated] returns the decoded
// request to the handler.
//
// # Responses and errors
//
// Success, Created and Fail write {success, message, data, errors}.
// Errors returned from handlers are rendered by the error handler: an
// [HTTPError] keeps its status and message, anything else is a 500 whose
// details are shown only with [WithDebug].
package rex
