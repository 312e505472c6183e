package navigation

import (
	"context"
	"log/slog"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/router"
)

// DefaultMaxRedirects bounds redirect chains followed by Resolve.
const DefaultMaxRedirects = 8

// Resolution is the outcome of resolving a path against the table.
type Resolution struct {
	// State is the navigation state of the final page.
	State State `json:"state"`

	// Requested is the path as given.
	Requested string `json:"requested"`

	// Path is the canonical path of the final page.
	Path string `json:"path"`

	// Query is the raw query string, carried across redirects.
	Query string `json:"query,omitempty"`

	// Redirects lists the canonical paths that redirected, in order.
	Redirects []string `json:"redirects,omitempty"`

	// Chain holds the component names outermost first.
	Chain []string `json:"chain"`

	// Component is the leaf component name.
	Component string `json:"component"`

	// Params are the captured parameters.
	Params map[string]string `json:"params"`

	// Pattern is the matched route pattern.
	Pattern string `json:"pattern"`

	// View is the loaded value of a lazy leaf component.
	View any `json:"-"`
}

// URL returns the final path with its query string.
func (r *Resolution) URL() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Redirected reports whether any redirect was followed.
func (r *Resolution) Redirected() bool {
	return len(r.Redirects) > 0
}

// SubPath returns the file explorer sub-path, empty outside the explorer.
func (r *Resolution) SubPath() string {
	return r.Params[SubPathParam]
}

// ProjectName returns the dashboard's project name, empty elsewhere.
func (r *Resolution) ProjectName() string {
	return r.Params[ProjectNameParam]
}

// Table is the compiled application route table.
type Table struct {
	router       *router.Router
	maxRedirects int
	logger       *slog.Logger
}

// Option configures a Table.
type Option func(*tableOptions)

type tableOptions struct {
	maxRedirects int
	logger       *slog.Logger
	notFound     router.LoadFunc
	routes       []router.Route
}

// WithMaxRedirects sets how many redirects Resolve follows before failing.
func WithMaxRedirects(n int) Option {
	return func(o *tableOptions) {
		o.maxRedirects = n
	}
}

// WithLogger sets the table's logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *tableOptions) {
		o.logger = l
	}
}

// WithNotFoundLoader replaces the not-found page loader.
func WithNotFoundLoader(load router.LoadFunc) Option {
	return func(o *tableOptions) {
		o.notFound = load
	}
}

// WithRoutes replaces the application table. Route names must be State names;
// unnamed routes resolve to NotFound.
func WithRoutes(routes []router.Route) Option {
	return func(o *tableOptions) {
		o.routes = routes
	}
}

// New compiles the application table.
func New(opts ...Option) (*Table, error) {
	o := tableOptions{
		maxRedirects: DefaultMaxRedirects,
		notFound:     loadDefaultNotFound,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default().With("component", "navigation")
	}
	if o.routes == nil {
		o.routes = routes(o.notFound)
	}

	r, err := router.Compile(o.routes, router.WithLogger(o.logger))
	if err != nil {
		return nil, err
	}
	return &Table{router: r, maxRedirects: o.maxRedirects, logger: o.logger}, nil
}

// Router returns the compiled router.
func (t *Table) Router() *router.Router {
	return t.router
}

// Resolve resolves path, following redirects up to the table's bound. A lazy
// leaf is loaded before returning; the load happens once per table.
func (t *Table) Resolve(ctx context.Context, path string) (*Resolution, error) {
	res := &Resolution{Requested: path}

	var lazy *router.LazyComponent
	target := path
	for {
		m, err := t.router.Resolve(target)
		if err != nil {
			return nil, err
		}
		if res.Query == "" {
			res.Query = m.Query
		}

		if m.Redirect == "" {
			lazy = t.fill(res, m)
			break
		}

		res.Redirects = append(res.Redirects, m.Path)
		if len(res.Redirects) > t.maxRedirects {
			return nil, portalerrors.New("E202").WithDetailf("Gave up after %d redirects starting at %s.", t.maxRedirects, path)
		}
		t.logger.Debug("following redirect", "from", m.Path, "to", m.Redirect)
		target = m.Redirect
	}

	if lazy != nil {
		view, err := lazy.Load(ctx)
		if err != nil {
			return nil, portalerrors.New("E203").WithDetailf("Loading %s failed.", lazy.ComponentName()).Wrap(err)
		}
		res.View = view
	}
	return res, nil
}

// fill copies the final match into res and returns its lazy leaf, if any.
func (t *Table) fill(res *Resolution, m *router.Match) *router.LazyComponent {
	res.Path = m.Path
	res.Pattern = m.Pattern
	res.Params = m.Params
	res.State = NotFound
	if s, ok := ParseState(m.Route.Name); ok {
		res.State = s
	}
	for _, c := range m.Chain {
		res.Chain = append(res.Chain, c.ComponentName())
	}
	c := m.Leaf()
	if c == nil {
		return nil
	}
	res.Component = c.ComponentName()
	lazy, _ := c.(*router.LazyComponent)
	return lazy
}
