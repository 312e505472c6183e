package router

import (
	"log/slog"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/routepath"
)

// Router matches canonical paths against a compiled route table.
type Router struct {
	root    *node
	entries []*entry
}

// Option configures Compile.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report the compiled table.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Compile validates routes and builds a router. Validation failures are
// returned as an E200 error wrapping a *MultiValidationError.
func Compile(routes []Route, opts ...Option) (*Router, error) {
	o := options{logger: slog.Default().With("component", "router")}
	for _, opt := range opts {
		opt(&o)
	}

	v := NewValidator(routes)
	if err := v.Validate(); err != nil {
		o.logger.Error("route table rejected", "errors", len(v.errors))
		return nil, portalerrors.New("E200").
			WithDetail(err.Error()).
			WithSuggestion("Reorder the routes so specific entries come before general ones and the fallback comes last.").
			Wrap(err)
	}

	r := &Router{root: newNode(""), entries: v.entries}
	for _, e := range v.entries {
		r.root.insert(e)
		o.logger.Debug("route compiled", "pattern", e.pattern, "fallback", e.fallback)
	}
	return r, nil
}

// MustCompile is like Compile but panics on an invalid table.
func MustCompile(routes []Route, opts ...Option) *Router {
	r, err := Compile(routes, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// flatten walks the table depth first and returns one entry per terminal.
// A parent with a component is a terminal for its own path unless one of
// its children has an empty path.
func flatten(routes []Route) []*entry {
	var out []*entry
	var walk func(routes []Route, parent string, chain []Component, top bool)
	walk = func(routes []Route, parent string, chain []Component, top bool) {
		for i := range routes {
			r := &routes[i]
			pattern := joinPattern(parent, r.Path)

			own := chain
			if r.Component != nil {
				own = append(append([]Component(nil), chain...), r.Component)
			}

			if len(r.Children) == 0 {
				if r.Component == nil && r.Redirect == "" {
					continue
				}
				out = append(out, &entry{
					route:      r,
					pattern:    pattern,
					chain:      own,
					paramNames: paramNames(pattern),
					fallback:   top && isFallbackPattern(pattern),
					order:      len(out),
				})
				continue
			}

			if r.Component != nil && !hasIndexChild(r.Children) {
				out = append(out, &entry{
					route:      r,
					pattern:    pattern,
					chain:      own,
					paramNames: paramNames(pattern),
					order:      len(out),
				})
			}
			walk(r.Children, pattern, own, false)
		}
	}
	walk(routes, "", nil, true)
	return out
}

func hasIndexChild(children []Route) bool {
	for _, c := range children {
		if c.Path == "" {
			return true
		}
	}
	return false
}

// Resolve canonicalizes raw and matches it. A path that cannot be
// canonicalized is an E201 error; a path no route matches is E205.
func (r *Router) Resolve(raw string) (*Match, error) {
	res, err := routepath.Canonicalize(raw)
	if err != nil {
		return nil, portalerrors.New("E201").WithDetailf("%q: %v", raw, err).Wrap(err)
	}
	m, ok := r.Match(res.Segments)
	if !ok {
		return nil, portalerrors.New("E205").WithDetailf("No route matches %s.", res.Path)
	}
	m.Path = res.Path
	m.Query = res.Query
	return m, nil
}

// Match matches decoded, canonical segments. Path and Query of the result
// are left empty.
func (r *Router) Match(segments []string) (*Match, bool) {
	e, values, ok := r.root.match(segments, nil)
	if !ok {
		return nil, false
	}

	params := make(map[string]string, len(e.paramNames))
	for i, name := range e.paramNames {
		if i < len(values) {
			params[name] = values[i]
		}
	}

	return &Match{
		Route:    e.route,
		Pattern:  e.pattern,
		Chain:    append([]Component(nil), e.chain...),
		Params:   params,
		Redirect: e.route.Redirect,
		Fallback: e.fallback,
	}, true
}

// Routes describes every compiled terminal in table order.
func (r *Router) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.entries))
	for _, e := range r.entries {
		info := RouteInfo{
			Pattern:  e.pattern,
			Name:     e.route.Name,
			Redirect: e.route.Redirect,
			Fallback: e.fallback,
		}
		layouts := e.chain
		if e.route.Component != nil {
			info.Component = e.route.Component.ComponentName()
			_, info.Lazy = e.route.Component.(*LazyComponent)
			layouts = e.chain[:len(e.chain)-1]
		}
		for _, c := range layouts {
			info.Layouts = append(info.Layouts, c.ComponentName())
		}
		infos = append(infos, info)
	}
	return infos
}

// Len returns the number of compiled terminals.
func (r *Router) Len() int {
	return len(r.entries)
}
