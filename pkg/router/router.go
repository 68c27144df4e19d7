// Package router wraps chi with nested groups, per-route middleware
// and a registry of named routes. Names feed the route:list CLI
// command and URL building.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo is one row in the route registry.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes []RouteInfo
	named  map[string]string
}

func New() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		named: map[string]string{},
	}
}

// Handler exposes the underlying mux for http.Server and tests.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends router-wide middleware. Must be called before any route
// is mounted, per chi's rules.
func (r *Router) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(m)
	}
}

// HandleFunc mounts a handler for every method on path, used for the
// metrics scrape endpoint.
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.HandleFunc(normalize(path), handler)
}

// register is the single place routes hit the mux and the registry.
func (r *Router) register(method, path, name string, handler http.Handler, mw []Middleware) {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	r.mux.Method(method, path, handler)

	if name == "" {
		return
	}
	r.mu.Lock()
	r.routes = append(r.routes, RouteInfo{Method: method, Path: path, Name: name})
	r.named[name] = path
	r.mu.Unlock()
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.register(http.MethodGet, normalize(path), name, h, mw)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.register(http.MethodPost, normalize(path), name, h, mw)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.register(http.MethodPut, normalize(path), name, h, mw)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.register(http.MethodPatch, normalize(path), name, h, mw)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	r.register(http.MethodDelete, normalize(path), name, h, mw)
}

// Routes snapshots the registry.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RouteInfo, len(r.routes))
	copy(out, r.routes)
	return out
}

// Path looks a route up by name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.named[name]
	return p, ok
}

// URL fills {param} segments of a named route's path.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: no route named %q", name)
	}
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("router: route %q has unfilled parameters", name)
	}
	return path, nil
}

// Group scopes a path prefix and a middleware stack. Groups nest, and
// a child inherits its parent's prefix and middleware.
type Group struct {
	router *Router
	prefix string
	mw     []Middleware
}

func (r *Router) Group(prefix string, mw ...Middleware) *Group {
	return &Group{router: r, prefix: normalize(prefix), mw: clone(mw)}
}

func (g *Group) Group(prefix string, mw ...Middleware) *Group {
	return &Group{
		router: g.router,
		prefix: join(g.prefix, prefix),
		mw:     append(clone(g.mw), mw...),
	}
}

func (g *Group) handle(method, path, name string, h http.HandlerFunc, mw []Middleware) {
	g.router.register(method, join(g.prefix, path), name, h, append(clone(g.mw), mw...))
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodGet, path, name, h, mw)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodPost, path, name, h, mw)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodPut, path, name, h, mw)
}

func (g *Group) Patch(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodPatch, path, name, h, mw)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mw ...Middleware) {
	g.handle(http.MethodDelete, path, name, h, mw)
}

func clone(mw []Middleware) []Middleware {
	return append([]Middleware(nil), mw...)
}

func join(parts ...string) string {
	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.Trim(p, "/"); t != "" {
			segs = append(segs, t)
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

func normalize(path string) string { return join(path) }
