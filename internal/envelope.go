package internal

import (
	"net/http"
)

// Envelope is the JSON body of every framework response.
type Envelope struct {
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Message string              `json:"message"`
	Success bool                `json:"success"`
}

const (
	msgSuccess          = "Success"
	msgCreated          = "Created successfully"
	msgError            = "Error"
	msgValidationFailed = "Validation failed"
	msgNotFound         = "Not found"
	msgUnauthorized     = "Unauthorized"
	msgForbidden        = "Forbidden"
	msgConflict         = "Conflict"
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (c *requestContext) Success(data any, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: orDefault(message, msgSuccess), Data: data})
}

func (c *requestContext) Created(data any, message string) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Message: orDefault(message, msgCreated), Data: data})
}

func (c *requestContext) Fail(code int, message string, errs map[string][]string) error {
	if code == 0 {
		code = http.StatusBadRequest
	}
	return c.JSON(code, Envelope{Message: orDefault(message, msgError), Errors: errs})
}

func (c *requestContext) ValidationError(errs map[string][]string) error {
	return c.Fail(http.StatusUnprocessableEntity, msgValidationFailed, errs)
}

func (c *requestContext) NotFound(message string) error {
	return c.Fail(http.StatusNotFound, orDefault(message, msgNotFound), nil)
}

func (c *requestContext) Unauthorized(message string) error {
	return c.Fail(http.StatusUnauthorized, orDefault(message, msgUnauthorized), nil)
}

func (c *requestContext) Forbidden(message string) error {
	return c.Fail(http.StatusForbidden, orDefault(message, msgForbidden), nil)
}

func (c *requestContext) Conflict(message string) error {
	return c.Fail(http.StatusConflict, orDefault(message, msgConflict), nil)
}
