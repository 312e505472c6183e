package router

import (
	"context"
	"sync"
	"sync/atomic"
)

// Component is an opaque reference to a page or layout.
type Component interface {
	ComponentName() string
}

// Page is a component that is available without loading.
type Page string

// ComponentName implements Component.
func (p Page) ComponentName() string { return string(p) }

// LoadFunc loads a lazy component's resources.
type LoadFunc func(ctx context.Context) (any, error)

// LazyComponent is loaded on first demand. The loader runs at most once; its
// result, including a failure, is kept for every later call.
type LazyComponent struct {
	name  string
	load  LoadFunc
	once  sync.Once
	value any
	err   error
	loads atomic.Int32
}

// Lazy returns a component whose loader runs on first Load.
func Lazy(name string, load LoadFunc) *LazyComponent {
	return &LazyComponent{name: name, load: load}
}

// ComponentName implements Component.
func (l *LazyComponent) ComponentName() string { return l.name }

// Load runs the loader once and returns its result. Concurrent callers wait
// for the single load. The loader sees ctx's values but not its
// cancellation, since its result is kept for every later caller.
func (l *LazyComponent) Load(ctx context.Context) (any, error) {
	l.once.Do(func() {
		l.loads.Add(1)
		if l.load != nil {
			l.value, l.err = l.load(context.WithoutCancel(ctx))
		}
	})
	return l.value, l.err
}

// Loaded reports whether the loader has run.
func (l *LazyComponent) Loaded() bool {
	return l.loads.Load() > 0
}

// Loads returns how many times the loader ran (0 or 1).
func (l *LazyComponent) Loads() int {
	return int(l.loads.Load())
}

// Route is one entry of a declarative route table.
type Route struct {
	// Path is the pattern, absolute at the top level and relative to the
	// parent for children. An empty child path matches the parent's own path.
	Path string

	// Name optionally identifies the route.
	Name string

	// Component renders the route. For a route with children it is the layout
	// wrapping them.
	Component Component

	// Redirect, when set, sends the navigation to another absolute path.
	// A redirect entry has no component and no children.
	Redirect string

	// Children are nested routes, matched in order.
	Children []Route
}

// Match is the result of resolving a path.
type Match struct {
	// Route is the matched leaf entry.
	Route *Route

	// Pattern is the full pattern of the leaf (e.g., "/main/project/:projectName").
	Pattern string

	// Chain holds the components to compose, outermost layout first and the
	// leaf component last. It is empty for a redirect without layouts.
	Chain []Component

	// Params are the captured parameters, decoded.
	Params map[string]string

	// Redirect is the redirect target, if the leaf is a redirect entry.
	Redirect string

	// Fallback reports whether the global fallback matched.
	Fallback bool

	// Path is the canonical path that was matched.
	Path string

	// Query is the raw query string of the request.
	Query string
}

// Leaf returns the leaf component, or nil for a redirect.
func (m *Match) Leaf() Component {
	if m == nil || m.Route == nil || m.Route.Component == nil {
		return nil
	}
	return m.Route.Component
}

// RouteInfo describes one compiled route for display.
type RouteInfo struct {
	Pattern   string
	Name      string
	Component string
	Layouts   []string
	Redirect  string
	Fallback  bool
	Lazy      bool
}
