// Package navigation resolves client paths to views and keeps protected
// views behind a session.
package navigation

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	PathHome      = "/"
	PathMap       = "/mapa"
	PathContact   = "/contacto"
	PathMyReviews = "/mis-resenas"
	PathLogin     = "/login"
	PathRegister  = "/registro"
)

type Access int

const (
	Public Access = iota
	Protected
)

// View renders one screen.
type View func(ctx context.Context) error

type Route struct {
	Path   string
	Access Access
	View   View
}

type Authenticator interface {
	Authenticated() bool
}

// Outcome says which route actually ran.
type Outcome struct {
	Path string
	// From is the originally requested path when a protected route redirected to login.
	From string
}

func (o Outcome) Redirected() bool { return o.From != "" }

type ErrUnknownRoute struct {
	Path string
}

func (e *ErrUnknownRoute) Error() string {
	return fmt.Sprintf("ruta desconocida: %s", e.Path)
}

type Router struct {
	mu     sync.RWMutex
	auth   Authenticator
	routes map[string]Route
}

func NewRouter(auth Authenticator) *Router {
	return &Router{auth: auth, routes: make(map[string]Route)}
}

func (r *Router) Handle(path string, access Access, view View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[normalize(path)] = Route{Path: normalize(path), Access: access, View: view}
}

func (r *Router) Route(path string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.routes[normalize(path)]
	return route, ok
}

// Navigate runs the view for path. A protected path without a session runs
// the login view instead and reports the original path in Outcome.From.
func (r *Router) Navigate(ctx context.Context, path string) (Outcome, error) {
	path = normalize(path)
	route, ok := r.Route(path)
	if !ok {
		return Outcome{}, &ErrUnknownRoute{Path: path}
	}

	if route.Access == Protected && !r.auth.Authenticated() {
		login, ok := r.Route(PathLogin)
		if !ok {
			return Outcome{}, &ErrUnknownRoute{Path: PathLogin}
		}
		return Outcome{Path: PathLogin, From: path}, login.View(ctx)
	}

	return Outcome{Path: path}, route.View(ctx)
}

func normalize(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
