package navigation

import (
	"context"
	"net/url"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/routepath"
)

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Query holds query parameters to add to the URL.
	Query map[string]string
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithQuery adds query parameters to the navigation URL.
func WithQuery(query map[string]string) NavigateOption {
	return func(o *NavigateOptions) {
		o.Query = query
	}
}

// DefaultMaxHistory bounds a navigator's history.
const DefaultMaxHistory = 100

// Navigator keeps one session's navigation history. It is not safe for
// concurrent use; a session processes its messages in order.
type Navigator struct {
	table      *Table
	history    []*Resolution
	index      int
	maxHistory int
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithMaxHistory keeps at most n entries, dropping the oldest ones.
// Values below 1 select DefaultMaxHistory.
func WithMaxHistory(n int) NavigatorOption {
	return func(nav *Navigator) {
		nav.maxHistory = n
	}
}

// NewNavigator creates a navigator with an empty history.
func NewNavigator(t *Table, opts ...NavigatorOption) *Navigator {
	nav := &Navigator{table: t, index: -1}
	for _, opt := range opts {
		opt(nav)
	}
	if nav.maxHistory < 1 {
		nav.maxHistory = DefaultMaxHistory
	}
	return nav
}

// Navigate resolves path and pushes it onto the history, dropping any
// forward entries. Navigating to the current URL leaves the history as is.
func (n *Navigator) Navigate(ctx context.Context, path string, opts ...NavigateOption) (*Resolution, error) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	if _, err := routepath.NavigationTarget(path); err != nil {
		return nil, portalerrors.New("E201").WithDetailf("%q: %v", path, err).Wrap(err)
	}
	target, err := buildURL(path, options.Query)
	if err != nil {
		return nil, err
	}

	res, err := n.table.Resolve(ctx, target)
	if err != nil {
		return nil, err
	}

	if cur, ok := n.Current(); ok && cur.URL() == res.URL() {
		return cur, nil
	}

	if options.Replace && n.index >= 0 {
		n.history[n.index] = res
		return res, nil
	}
	n.history = append(n.history[:n.index+1], res)
	n.index++
	if drop := len(n.history) - n.maxHistory; drop > 0 {
		copy(n.history, n.history[drop:])
		clear(n.history[n.maxHistory:])
		n.history = n.history[:n.maxHistory]
		n.index -= drop
	}
	return res, nil
}

// Back moves one entry back. It fails with E204 at the oldest entry.
func (n *Navigator) Back() (*Resolution, error) {
	if n.index <= 0 {
		return nil, portalerrors.New("E204").WithDetail("Already at the oldest history entry.")
	}
	n.index--
	return n.history[n.index], nil
}

// Forward moves one entry forward. It fails with E204 at the newest entry.
func (n *Navigator) Forward() (*Resolution, error) {
	if n.index >= len(n.history)-1 {
		return nil, portalerrors.New("E204").WithDetail("Already at the newest history entry.")
	}
	n.index++
	return n.history[n.index], nil
}

// Current returns the current entry, if any.
func (n *Navigator) Current() (*Resolution, bool) {
	if n.index < 0 {
		return nil, false
	}
	return n.history[n.index], true
}

// History returns the URLs of every entry, oldest first, and the index of
// the current one.
func (n *Navigator) History() ([]string, int) {
	urls := make([]string, len(n.history))
	for i, r := range n.history {
		urls[i] = r.URL()
	}
	return urls, n.index
}

// buildURL adds query parameters to path. Encode sorts them by key.
func buildURL(path string, query map[string]string) (string, error) {
	if len(query) == 0 {
		return path, nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", portalerrors.New("E201").WithDetailf("%q: %v", path, err).Wrap(err)
	}

	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
