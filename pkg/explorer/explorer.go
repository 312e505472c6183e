package explorer

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/icon"
)

// DefaultRoutePrefix is the page path the file explorer is mounted under.
const DefaultRoutePrefix = "/main/files"

// Entry is one decorated folder entry.
type Entry struct {
	Name     string     `json:"name"`
	IsDir    bool       `json:"is_dir"`
	Size     *int64     `json:"size"`
	ModTime  *time.Time `json:"mod_time,omitempty"`
	Icon     string     `json:"icon"`
	Category string     `json:"category"`

	// Path is relative to the file space root.
	Path string `json:"path"`

	// Link is the explorer page URL for folders, empty for files.
	Link string `json:"link,omitempty"`
}

// Crumb is one step of the breadcrumb trail.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Link string `json:"link"`
}

// Listing is a browsed folder.
type Listing struct {
	Path        string  `json:"path"`
	Parent      string  `json:"parent"`
	HasParent   bool    `json:"has_parent"`
	Breadcrumbs []Crumb `json:"breadcrumbs"`
	Entries     []Entry `json:"entries"`
}

// Explorer browses a Lister.
type Explorer struct {
	lister      Lister
	routePrefix string
	logger      *slog.Logger
	tracer      trace.Tracer
}

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = l
	}
}

// WithRoutePrefix sets the page path used to build folder links.
func WithRoutePrefix(prefix string) Option {
	return func(e *Explorer) {
		e.routePrefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithTracer sets the tracer used for Browse spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Explorer) {
		e.tracer = t
	}
}

// New returns an explorer over lister.
func New(lister Lister, opts ...Option) *Explorer {
	e := &Explorer{
		lister:      lister,
		routePrefix: DefaultRoutePrefix,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default().With("component", "explorer")
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer("portal/explorer")
	}
	return e
}

// Browse lists the folder at subPath. Folders come first, then files, each
// group ordered by name ignoring case. Traversal attempts are E400, missing
// folders E402 and backend failures E401.
func (e *Explorer) Browse(ctx context.Context, subPath string) (*Listing, error) {
	ctx, span := e.tracer.Start(ctx, "explorer.Browse", trace.WithAttributes(
		attribute.String("explorer.sub_path", subPath),
	))
	defer span.End()

	dir, err := CleanSubPath(subPath)
	if err != nil {
		span.SetStatus(codes.Error, "invalid path")
		return nil, err
	}

	items, err := e.lister.List(ctx, dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrNotFound) {
			return nil, portalerrors.New("E402").WithDetailf("Folder %q does not exist.", dir)
		}
		e.logger.Error("listing failed", "dir", dir, "error", err)
		return nil, portalerrors.New("E401").WithDetailf("Listing %q failed.", dir).Wrap(err)
	}

	sortItems(items)

	listing := &Listing{
		Path:        dir,
		Breadcrumbs: e.breadcrumbs(dir),
		Entries:     make([]Entry, 0, len(items)),
	}
	listing.Parent, listing.HasParent = parentOf(dir)

	for _, it := range items {
		listing.Entries = append(listing.Entries, e.entry(dir, it))
	}

	span.SetAttributes(attribute.Int("explorer.entries", len(listing.Entries)))
	e.logger.Debug("folder listed", "dir", dir, "entries", len(listing.Entries))
	return listing, nil
}

func (e *Explorer) entry(dir string, it Item) Entry {
	fd := icon.FileDescriptor{Name: it.Name, IsDir: it.IsDir}
	out := Entry{
		Name:     it.Name,
		IsDir:    it.IsDir,
		Icon:     icon.Resolve(fd),
		Category: icon.Classify(fd).String(),
		Path:     joinPath(dir, it.Name),
	}
	if !it.ModTime.IsZero() {
		t := it.ModTime
		out.ModTime = &t
	}
	if it.IsDir {
		out.Category = "folder"
		out.Link = e.link(out.Path)
	} else {
		size := it.Size
		out.Size = &size
	}
	return out
}

func (e *Explorer) breadcrumbs(dir string) []Crumb {
	crumbs := []Crumb{{Name: "", Path: "", Link: e.link("")}}
	if dir == "" {
		return crumbs
	}
	var acc string
	for _, seg := range strings.Split(dir, "/") {
		acc = joinPath(acc, seg)
		crumbs = append(crumbs, Crumb{Name: seg, Path: acc, Link: e.link(acc)})
	}
	return crumbs
}

// link returns the explorer page URL for a folder, escaping each segment.
func (e *Explorer) link(p string) string {
	if p == "" {
		return e.routePrefix
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return e.routePrefix + "/" + strings.Join(segs, "/")
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
