package internal

import (
	"encoding/json"
	"reflect"

	"github.com/dmitrymomot/rex/pkg/sanitizer"
	"github.com/dmitrymomot/rex/pkg/validator"
)

// FormRequest declares the validation rules for a request.
//
// Example:
//
//	type CreatePostRequest struct {
//	    Title string `json:"title"`
//	    Body  string `json:"body"`
//	}
//
//	func (CreatePostRequest) Rules() validator.Rules {
//	    return validator.Rules{
//	        "title": validator.MustParse("required|min:3|max:255"),
//	        "body":  validator.MustParse("required"),
//	    }
//	}
type FormRequest interface {
	Rules() validator.Rules
}

// MessageProvider overrides messages, keyed by "field.rule" or "rule".
type MessageProvider interface {
	Messages() map[string]string
}

// AttributeProvider overrides field display names in messages.
type AttributeProvider interface {
	Attributes() map[string]string
}

// ValidateRequest validates the request input against req's rules.
// It returns validator.Errors listing every failing field.
func ValidateRequest(c Context, req FormRequest) error {
	input, err := c.ParseInput()
	if err != nil {
		return err
	}
	return validateInput(c, input, req)
}

func validateInput(c Context, input map[string]any, req FormRequest) error {
	v := c.Validator()
	if v == nil {
		return ErrValidatorNotLoaded
	}

	var opts []validator.ValidateOption
	if mp, ok := req.(MessageProvider); ok {
		opts = append(opts, validator.Messages(mp.Messages()))
	}
	if ap, ok := req.(AttributeProvider); ok {
		opts = append(opts, validator.Attributes(ap.Attributes()))
	}
	return v.Validate(c, input, req.Rules(), opts...)
}

type validatedKey struct{}

type validateConfig struct {
	skipStrip []string
	strip     bool
}

// ValidateOption configures the Validate middleware.
type ValidateOption func(*validateConfig)

// StripHTML removes HTML tags from string input before validation.
// Fields in except are left as sent.
func StripHTML(except ...string) ValidateOption {
	return func(c *validateConfig) {
		c.strip = true
		c.skipStrip = except
	}
}

// Validate returns middleware that validates the request input against T's rules.
// On failure it writes 422 with every field error and does not call the handler.
// On success it decodes the input into a T, available through Validated[T].
//
// Example:
//
//	registry.Register("validate.post", rex.Validate[CreatePostRequest]())
//	r.Post("/posts", "PostController@store", "validate.post")
func Validate[T FormRequest](opts ...ValidateOption) Middleware {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			input, err := c.ParseInput()
			if err != nil {
				return err
			}
			if cfg.strip {
				input = sanitizer.StripInput(input, cfg.skipStrip...)
			}

			req := newRequest[T]()
			if err := validateInput(c, input, req); err != nil {
				if verrs, ok := validator.AsErrors(err); ok {
					return c.ValidationError(verrs)
				}
				return err
			}

			if err := decodeInput(input, &req); err != nil {
				return ErrBadRequest("Invalid request payload", WithError(err))
			}
			c.Set(validatedKey{}, req)
			return next(c)
		}
	}
}

// Validated returns the request decoded by Validate[T].
// The zero value is returned when the middleware did not run.
func Validated[T FormRequest](c Context) T {
	return ContextValue[T](c, validatedKey{})
}

// newRequest returns a usable T; pointer types get a fresh element.
func newRequest[T any]() T {
	var req T
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
		req = reflect.New(t.Elem()).Interface().(T)
	}
	return req
}

func decodeInput[T any](input map[string]any, into *T) error {
	data, err := json.Marshal(input)
	if err != nil {
		return err
	}
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
		return json.Unmarshal(data, *into)
	}
	return json.Unmarshal(data, into)
}
