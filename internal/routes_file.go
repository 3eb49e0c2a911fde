package internal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// routesDocument is the YAML route file layout:
//
//	routes:
//	  - get: /health/db
//	    handler: HealthController@db
//	  - method: POST
//	    path: /login
//	    handler: Auth/SessionController@store
//	    middleware: [throttle]
//	    name: login
//	  - group:
//	      prefix: /api
//	      middleware: [auth]
//	      routes:
//	        - apiResource: users
//	          controller: UserController
//	  - resource: photos
//	    controller: PhotoController
type routesDocument struct {
	Routes []routeEntry `yaml:"routes"`
}

type routeEntry struct {
	Group       *groupEntry `yaml:"group"`
	Method      string      `yaml:"method"`
	Path        string      `yaml:"path"`
	Get         string      `yaml:"get"`
	Post        string      `yaml:"post"`
	Put         string      `yaml:"put"`
	Patch       string      `yaml:"patch"`
	Delete      string      `yaml:"delete"`
	Any         string      `yaml:"any"`
	Handler     string      `yaml:"handler"`
	Name        string      `yaml:"name"`
	Resource    string      `yaml:"resource"`
	APIResource string      `yaml:"apiResource"`
	Controller  string      `yaml:"controller"`
	Middleware  []string    `yaml:"middleware"`
}

type groupEntry struct {
	Prefix     string       `yaml:"prefix"`
	Middleware []string     `yaml:"middleware"`
	Routes     []routeEntry `yaml:"routes"`
}

// LoadRoutes declares the routes of a YAML document on r.
// Unknown keys and entries that are neither a route, a group nor a
// resource are rejected with ErrInvalidRoutesFile.
func LoadRoutes(r *Router, src io.Reader) error {
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)

	var doc routesDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrInvalidRoutesFile, err)
	}

	// Declare into a scratch router so a bad entry leaves r untouched.
	scratch := NewRouter()
	if err := declareEntries(scratch, doc.Routes, "routes"); err != nil {
		return err
	}
	for _, def := range scratch.routes {
		r.add(def)
	}
	return nil
}

// LoadRoutesFile reads a YAML route file from fsys.
func LoadRoutesFile(r *Router, fsys fs.FS, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoutesFile, err)
	}
	defer f.Close()
	return LoadRoutes(r, f)
}

func declareEntries(r *Router, entries []routeEntry, at string) error {
	for i, e := range entries {
		where := fmt.Sprintf("%s[%d]", at, i)
		if err := declareEntry(r, e, where); err != nil {
			return err
		}
	}
	return nil
}

func declareEntry(r *Router, e routeEntry, where string) error {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidRoutesFile, where, reason)
	}

	switch {
	case e.Group != nil:
		var nestedErr error
		r.Group(e.Group.Prefix, func(sub *Router) {
			nestedErr = declareEntries(sub, e.Group.Routes, where+".group.routes")
		}, e.Group.Middleware...)
		return nestedErr

	case e.Resource != "" || e.APIResource != "":
		if e.Controller == "" {
			return invalid("resource requires a controller")
		}
		if e.Resource != "" {
			r.Resource(e.Resource, e.Controller, e.Middleware...)
		} else {
			r.APIResource(e.APIResource, e.Controller, e.Middleware...)
		}
		return nil
	}

	method, path := e.Method, e.Path
	for verb, p := range map[string]string{
		MethodGet: e.Get, MethodPost: e.Post, MethodPut: e.Put,
		MethodPatch: e.Patch, MethodDelete: e.Delete, MethodAny: e.Any,
	} {
		if p == "" {
			continue
		}
		if method != "" {
			return invalid("more than one method given")
		}
		method, path = verb, p
	}
	if method == "" {
		return invalid("entry is not a route, group or resource")
	}
	if e.Handler == "" {
		return invalid("route requires a handler")
	}

	route := r.Handle(method, path, e.Handler, e.Middleware...)
	if e.Name != "" {
		route.Name(e.Name)
	}
	return nil
}
