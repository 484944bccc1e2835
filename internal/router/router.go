// Package router implements the navigation model of the app: named routes,
// a history stack with back/forward movement, per-route titles and view
// lifecycle (teardown of the outgoing view before the next one mounts).
package router

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"sync"
)

const appTitle = "Travel Budget Tracker"

// View renders a page for the current route.
type View interface {
	Render(ctx context.Context, w io.Writer, query url.Values) error
}

// Teardowner is implemented by views that hold state which must be released
// when the user navigates away, such as in-flight conversion requests.
type Teardowner interface {
	Teardown()
}

// Factory builds the view for a route each time it is mounted.
type Factory func() View

// Route describes one navigable page.
type Route struct {
	Path    string
	Title   string
	factory Factory
}

// Router resolves paths to views and tracks navigation history. All methods
// are safe for concurrent use.
type Router struct {
	mu       sync.Mutex
	routes   map[string]*Route
	fallback string
	history  []string
	position int
	current  View
	logger   *slog.Logger
}

// New returns a router whose unknown paths resolve to fallbackPath.
func New(fallbackPath string, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		routes:   make(map[string]*Route),
		fallback: fallbackPath,
		position: -1,
		logger:   logger,
	}
}

// Handle registers a route. Registering the same path twice replaces the
// earlier registration.
func (r *Router) Handle(path, title string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = &Route{Path: path, Title: title, factory: factory}
}

// Navigate mounts the view for path, pushing it onto the history stack.
// Any forward history beyond the current position is discarded. Unknown
// paths fall back to the configured default route.
func (r *Router) Navigate(path string) (View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, ok := r.routes[path]
	if !ok {
		r.logger.Warn("Unknown route, falling back", "path", path, "fallback", r.fallback)
		path = r.fallback
		route, ok = r.routes[path]
		if !ok {
			return nil, fmt.Errorf("no route registered for fallback %q", r.fallback)
		}
	}

	r.history = r.history[:r.position+1]
	r.history = append(r.history, path)
	r.position = len(r.history) - 1

	return r.mount(route), nil
}

// Back moves one step back in history. It returns false when already at the
// oldest entry.
func (r *Router) Back() (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.position <= 0 {
		return nil, false
	}
	r.position--
	return r.mount(r.routes[r.history[r.position]]), true
}

// Forward moves one step forward in history. It returns false when already
// at the newest entry.
func (r *Router) Forward() (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.position < 0 || r.position >= len(r.history)-1 {
		return nil, false
	}
	r.position++
	return r.mount(r.routes[r.history[r.position]]), true
}

// mount tears down the current view and builds the next one.
// Caller must hold r.mu.
func (r *Router) mount(route *Route) View {
	if td, ok := r.current.(Teardowner); ok {
		td.Teardown()
	}
	r.current = route.factory()
	r.logger.Debug("Route mounted", "path", route.Path, "title", route.Title)
	return r.current
}

// Current returns the path of the active route, or the fallback path when
// nothing has been navigated to yet.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.position < 0 {
		return r.fallback
	}
	return r.history[r.position]
}

// Title returns the document title for path, in the form
// "<route title> - Travel Budget Tracker".
func (r *Router) Title(path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.routes[path]
	if !ok {
		return appTitle
	}
	return route.Title + " - " + appTitle
}
