package explorer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

type fakeLister struct {
	items map[string][]Item
	err   error
	calls []string
}

func (f *fakeLister) List(_ context.Context, dir string) ([]Item, error) {
	f.calls = append(f.calls, dir)
	if f.err != nil {
		return nil, f.err
	}
	items, ok := f.items[dir]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]Item(nil), items...), nil
}

func names(l *Listing) []string {
	var out []string
	for _, e := range l.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestBrowseSortsAndDecorates(t *testing.T) {
	lister := &fakeLister{items: map[string][]Item{
		"projects": {
			{Name: "site.IFC", Size: 2048},
			{Name: "archive", IsDir: true},
			{Name: "Budget.xlsx", Size: 10},
			{Name: "Drawings", IsDir: true},
			{Name: "notes", Size: 1},
		},
	}}
	ex := New(lister)

	l, err := ex.Browse(context.Background(), "/projects/")
	if err != nil {
		t.Fatalf("Browse error: %v", err)
	}

	if diff := cmp.Diff([]string{"archive", "Drawings", "Budget.xlsx", "notes", "site.IFC"}, names(l)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if lister.calls[0] != "projects" {
		t.Errorf("lister got %q, want cleaned path", lister.calls[0])
	}

	byName := map[string]Entry{}
	for _, e := range l.Entries {
		byName[e.Name] = e
	}

	if e := byName["Drawings"]; e.Icon != "📁" || e.Size != nil || e.Link != "/main/files/projects/Drawings" || e.Category != "folder" {
		t.Errorf("folder entry = %+v", e)
	}
	if e := byName["site.IFC"]; e.Icon != "🏗️" || e.Size == nil || *e.Size != 2048 || e.Link != "" || e.Path != "projects/site.IFC" {
		t.Errorf("model entry = %+v", e)
	}
	if e := byName["Budget.xlsx"]; e.Icon != "📊" || e.Category != "spreadsheet" {
		t.Errorf("spreadsheet entry = %+v", e)
	}
	if e := byName["notes"]; e.Icon != "📄" {
		t.Errorf("extensionless entry icon = %q", e.Icon)
	}

	if l.Path != "projects" || l.Parent != "" || !l.HasParent {
		t.Errorf("path/parent = %q/%q/%v", l.Path, l.Parent, l.HasParent)
	}
}

func TestBrowseBreadcrumbs(t *testing.T) {
	lister := &fakeLister{items: map[string][]Item{"a/b c": nil, "": nil}}
	ex := New(lister, WithRoutePrefix("/files/"))

	l, err := ex.Browse(context.Background(), "a/b c")
	if err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	want := []Crumb{
		{Name: "", Path: "", Link: "/files"},
		{Name: "a", Path: "a", Link: "/files/a"},
		{Name: "b c", Path: "a/b c", Link: "/files/a/b%20c"},
	}
	if diff := cmp.Diff(want, l.Breadcrumbs); diff != "" {
		t.Errorf("breadcrumbs mismatch (-want +got):\n%s", diff)
	}
	if l.Parent != "a" || !l.HasParent {
		t.Errorf("parent = %q, %v", l.Parent, l.HasParent)
	}
	if l.Entries == nil {
		t.Error("Entries is nil for an empty folder")
	}

	root, err := ex.Browse(context.Background(), "")
	if err != nil {
		t.Fatalf("Browse(root) error: %v", err)
	}
	if root.HasParent || len(root.Breadcrumbs) != 1 {
		t.Errorf("root listing = %+v", root)
	}
}

func TestBrowseErrors(t *testing.T) {
	ex := New(&fakeLister{items: map[string][]Item{}})

	if _, err := ex.Browse(context.Background(), "../secret"); portalerrors.CodeOf(err) != "E400" {
		t.Errorf("traversal code = %q, want E400", portalerrors.CodeOf(err))
	}
	if _, err := ex.Browse(context.Background(), "missing"); portalerrors.CodeOf(err) != "E402" {
		t.Errorf("missing code = %q, want E402", portalerrors.CodeOf(err))
	}

	boom := errors.New("backend down")
	ex = New(&fakeLister{err: boom})
	_, err := ex.Browse(context.Background(), "x")
	if portalerrors.CodeOf(err) != "E401" {
		t.Errorf("backend failure code = %q, want E401", portalerrors.CodeOf(err))
	}
	if !errors.Is(err, boom) {
		t.Error("backend failure does not wrap the cause")
	}
}

func TestLocalLister(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "docs", "plans"))
	mustWrite(t, filepath.Join(root, "docs", "spec.pdf"), "12345")
	mustWrite(t, filepath.Join(root, "readme.md"), "hi")

	lister := NewLocalLister(root)
	ctx := context.Background()

	items, err := lister.List(ctx, "docs")
	if err != nil {
		t.Fatalf("List(docs) error: %v", err)
	}
	sortItems(items)
	if len(items) != 2 || items[0].Name != "plans" || !items[0].IsDir || items[1].Name != "spec.pdf" || items[1].Size != 5 {
		t.Errorf("List(docs) = %+v", items)
	}

	items, err = lister.List(ctx, "")
	if err != nil {
		t.Fatalf("List(root) error: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("List(root) returned %d items, want 2", len(items))
	}

	if _, err := lister.List(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("List(nope) error = %v, want ErrNotFound", err)
	}
	if _, err := lister.List(ctx, "readme.md"); !errors.Is(err, ErrNotFound) {
		t.Errorf("List(file) error = %v, want ErrNotFound", err)
	}
	if _, err := NewLocalLister(filepath.Join(root, "absent")).List(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing root error = %v, want ErrNotFound", err)
	}
}

func TestLocalListerStaysInRoot(t *testing.T) {
	outside := t.TempDir()
	root := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, err := NewLocalLister(root).List(context.Background(), "escape"); err == nil {
		t.Error("listing through a symlink leaving the root succeeded")
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
