// Package routes provides HTTP route registration and handler building.
package routes

import (
	"log/slog"
	"net/http"
)

// Route binds a method and pattern to a handler function.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

type mount struct {
	pattern string
	handler http.Handler
}

// Registry collects routes, groups, and mounted handlers and builds the
// final request multiplexer.
type Registry struct {
	routes []Route
	groups []Group
	mounts []mount
	logger *slog.Logger
}

// NewRegistry creates a route registry with the specified logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		routes: []Route{},
		groups: []Group{},
	}
}

// Register adds a single route to the registry.
func (r *Registry) Register(route Route) {
	r.routes = append(r.routes, route)
}

// RegisterGroup adds a route group to the registry.
func (r *Registry) RegisterGroup(group Group) {
	r.groups = append(r.groups, group)
}

// Mount attaches a raw http.Handler at the given pattern, for handlers
// that are not method-scoped such as static file servers.
func (r *Registry) Mount(pattern string, handler http.Handler) {
	r.mounts = append(r.mounts, mount{pattern: pattern, handler: handler})
}

// Build constructs an http.Handler from all registered routes and groups.
func (r *Registry) Build() http.Handler {
	mux := http.NewServeMux()

	for _, route := range r.routes {
		r.handle(mux, route.Method, route.Pattern, route.Handler)
	}

	for _, group := range r.groups {
		r.registerGroup(mux, "", group)
	}

	for _, m := range r.mounts {
		mux.Handle(m.pattern, m.handler)
	}

	return mux
}

func (r *Registry) registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		r.handle(mux, route.Method, fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		r.registerGroup(mux, fullPrefix, child)
	}
}

func (r *Registry) handle(mux *http.ServeMux, method, pattern string, handler http.HandlerFunc) {
	mux.HandleFunc(method+" "+pattern, handler)
	r.logger.Debug("route registered", "method", method, "pattern", pattern)
}
