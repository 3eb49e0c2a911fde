package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Multipart bodies beyond this are spilled to disk by net/http.
const maxMultipartMemory = 32 << 20

// parsedInputKey stores the parsed body and query on the request context,
// so middleware and handlers share one parse.
type parsedInputKey struct{}

type parsedInput struct {
	err    error
	values map[string]any
}

func (c *requestContext) ParseInput() (map[string]any, error) {
	parsed, ok := c.Get(parsedInputKey{}).(*parsedInput)
	if !ok {
		parsed = parseRequestInput(c.request)
		c.Set(parsedInputKey{}, parsed)
	}

	out := maps.Clone(parsed.values)
	// Path params are read per call: global middleware runs before routing.
	if rctx := chi.RouteContext(c.request.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key != "" && key != "*" && i < len(rctx.URLParams.Values) {
				out[key] = rctx.URLParams.Values[i]
			}
		}
	}
	return out, parsed.err
}

func (c *requestContext) All() map[string]any {
	input, _ := c.ParseInput()
	return input
}

func (c *requestContext) Input(key string, def any) any {
	if v, ok := c.All()[key]; ok && v != nil {
		return v
	}
	return def
}

func (c *requestContext) Only(keys ...string) map[string]any {
	all := c.All()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out
}

func (c *requestContext) Except(keys ...string) map[string]any {
	all := c.All()
	for _, k := range keys {
		delete(all, k)
	}
	return all
}

func (c *requestContext) Has(key string) bool {
	v, ok := c.All()[key]
	return ok && v != nil
}

func (c *requestContext) Filled(key string) bool {
	v, ok := c.All()[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func parseRequestInput(r *http.Request) *parsedInput {
	values := map[string]any{}
	err := parseBody(r, values)
	mergeValues(values, r.URL.Query())
	return &parsedInput{values: values, err: err}
}

func parseBody(r *http.Request, into map[string]any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json", "":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return NewHTTPError(http.StatusRequestEntityTooLarge, "", WithError(err))
			}
			return ErrBadRequest("Unable to read request body", WithError(err))
		}
		// Later readers still see the body.
		r.Body = io.NopCloser(bytes.NewReader(data))
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		var body any
		if err := json.Unmarshal(data, &body); err != nil {
			if mediaType == "" {
				return nil
			}
			return ErrBadRequest("Malformed JSON body", WithError(err))
		}
		if obj, ok := body.(map[string]any); ok {
			maps.Copy(into, obj)
		}
		return nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return ErrBadRequest("Malformed form body", WithError(err))
		}
		mergeValues(into, r.PostForm)
		return nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return NewHTTPError(http.StatusRequestEntityTooLarge, "", WithError(err))
			}
			return ErrBadRequest("Malformed multipart body", WithError(err))
		}
		mergeValues(into, url.Values(r.MultipartForm.Value))
		return nil
	}
	return nil
}

// mergeValues copies form-style values: one value as a string, several as a list.
func mergeValues(into map[string]any, values url.Values) {
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			into[k] = vs[0]
		default:
			list := make([]any, len(vs))
			for i, v := range vs {
				list[i] = v
			}
			into[k] = list
		}
	}
}
