package router

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

func testTable() []Route {
	return []Route{
		{Path: "/", Component: Page("LoginPage")},
		{Path: "/create_account", Component: Page("CreateAccountPage")},
		{Path: "/main", Component: Page("MainPage"), Children: []Route{
			{Path: "project", Component: Page("ProjectList")},
			{Path: "project/:projectName", Component: Page("ProjectDashboard")},
			{Path: "files/*subPath", Component: Page("FileExplorer")},
			{Path: "", Redirect: "/main/project"},
		}},
		{Path: "/*pathMatch", Component: Lazy("NotFound", func(context.Context) (any, error) { return "nf", nil })},
	}
}

func chainNames(m *Match) []string {
	var names []string
	for _, c := range m.Chain {
		names = append(names, c.ComponentName())
	}
	return names
}

func TestRouterResolve(t *testing.T) {
	r := MustCompile(testTable())

	tests := []struct {
		path     string
		pattern  string
		chain    []string
		params   map[string]string
		redirect string
		fallback bool
	}{
		{"/", "/", []string{"LoginPage"}, map[string]string{}, "", false},
		{"/create_account", "/create_account", []string{"CreateAccountPage"}, map[string]string{}, "", false},
		{"/main/project", "/main/project", []string{"MainPage", "ProjectList"}, map[string]string{}, "", false},
		{"/main/project/Tower%20A", "/main/project/:projectName", []string{"MainPage", "ProjectDashboard"}, map[string]string{"projectName": "Tower A"}, "", false},
		{"/main/files/a/b/c", "/main/files/*subPath", []string{"MainPage", "FileExplorer"}, map[string]string{"subPath": "a/b/c"}, "", false},
		{"/main/files", "/main/files/*subPath", []string{"MainPage", "FileExplorer"}, map[string]string{"subPath": ""}, "", false},
		{"/main", "/main", []string{"MainPage"}, map[string]string{}, "/main/project", false},
		{"/main/", "/main", []string{"MainPage"}, map[string]string{}, "/main/project", false},
		{"/zzz", "/*pathMatch", []string{"NotFound"}, map[string]string{"pathMatch": "zzz"}, "", true},
		{"/main/unknown/x", "/*pathMatch", []string{"NotFound"}, map[string]string{"pathMatch": "main/unknown/x"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, err := r.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.path, err)
			}
			if m.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", m.Pattern, tt.pattern)
			}
			if diff := cmp.Diff(tt.chain, chainNames(m)); diff != "" {
				t.Errorf("chain mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.params, m.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
			if m.Redirect != tt.redirect {
				t.Errorf("Redirect = %q, want %q", m.Redirect, tt.redirect)
			}
			if m.Fallback != tt.fallback {
				t.Errorf("Fallback = %v, want %v", m.Fallback, tt.fallback)
			}
		})
	}
}

func TestRouterResolveKeepsQuery(t *testing.T) {
	r := MustCompile(testTable())

	m, err := r.Resolve("/main//project/?tab=recent")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if m.Path != "/main/project" {
		t.Errorf("Path = %q, want /main/project", m.Path)
	}
	if m.Query != "tab=recent" {
		t.Errorf("Query = %q, want tab=recent", m.Query)
	}
}

func TestRouterResolveInvalidPath(t *testing.T) {
	r := MustCompile(testTable())

	_, err := r.Resolve("/main/../../etc")
	if err == nil {
		t.Fatal("expected an error for a path escaping root")
	}
	if code := portalerrors.CodeOf(err); code != "E201" {
		t.Errorf("code = %q, want E201", code)
	}
}

func TestRouterResolveNoFallback(t *testing.T) {
	r := MustCompile([]Route{{Path: "/", Component: Page("Home")}})

	_, err := r.Resolve("/missing")
	if code := portalerrors.CodeOf(err); code != "E205" {
		t.Errorf("code = %q, want E205", code)
	}
}

func TestCompileInvalidTable(t *testing.T) {
	_, err := Compile([]Route{
		{Path: "/*rest", Component: Page("NotFound")},
		{Path: "/", Component: Page("Home")},
	})
	if err == nil {
		t.Fatal("expected an error for a fallback that is not last")
	}
	if code := portalerrors.CodeOf(err); code != "E200" {
		t.Errorf("code = %q, want E200", code)
	}
	var multi *MultiValidationError
	if !errors.As(err, &multi) {
		t.Fatalf("expected a wrapped *MultiValidationError, got %T", err)
	}
}

func TestParentWithoutIndexIsTerminal(t *testing.T) {
	r := MustCompile([]Route{
		{Path: "/main", Component: Page("MainPage"), Children: []Route{
			{Path: "setting", Component: Page("Setting")},
		}},
	})

	m, err := r.Resolve("/main")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if diff := cmp.Diff([]string{"MainPage"}, chainNames(m)); diff != "" {
		t.Errorf("chain mismatch (-want +got):\n%s", diff)
	}
	if m.Leaf().ComponentName() != "MainPage" {
		t.Errorf("Leaf = %q, want MainPage", m.Leaf().ComponentName())
	}
}

func TestRoutesInfo(t *testing.T) {
	r := MustCompile(testTable())

	infos := r.Routes()
	if len(infos) != r.Len() {
		t.Fatalf("Routes() returned %d entries, Len() = %d", len(infos), r.Len())
	}

	var patterns []string
	for _, info := range infos {
		patterns = append(patterns, info.Pattern)
	}
	want := []string{"/", "/create_account", "/main/project", "/main/project/:projectName", "/main/files/*subPath", "/main", "/*pathMatch"}
	if diff := cmp.Diff(want, patterns); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}

	last := infos[len(infos)-1]
	if !last.Fallback || !last.Lazy || last.Component != "NotFound" {
		t.Errorf("fallback info = %+v", last)
	}
	redirect := infos[5]
	if redirect.Redirect != "/main/project" || redirect.Component != "" {
		t.Errorf("redirect info = %+v", redirect)
	}
	if diff := cmp.Diff([]string{"MainPage"}, redirect.Layouts); diff != "" {
		t.Errorf("redirect layouts mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchReturnsCopyOfChain(t *testing.T) {
	r := MustCompile(testTable())

	m1, _ := r.Resolve("/main/project")
	m1.Chain[0] = Page("Mutated")

	m2, _ := r.Resolve("/main/project")
	if m2.Chain[0].ComponentName() != "MainPage" {
		t.Error("mutating a match changed the compiled chain")
	}
}

func TestLazyComponentLoadsOnce(t *testing.T) {
	calls := 0
	lazy := Lazy("NotFound", func(context.Context) (any, error) {
		calls++
		return nil, errors.New("boom")
	})

	if lazy.Loaded() {
		t.Fatal("Loaded() before Load")
	}
	for i := 0; i < 3; i++ {
		if _, err := lazy.Load(context.Background()); err == nil {
			t.Fatal("expected the cached load error")
		}
	}
	if calls != 1 || lazy.Loads() != 1 {
		t.Errorf("loader ran %d times (Loads=%d), want 1", calls, lazy.Loads())
	}
	if !lazy.Loaded() {
		t.Error("Loaded() = false after Load")
	}
}

func TestLazyComponentIgnoresCallerCancellation(t *testing.T) {
	lazy := Lazy("NotFound", func(ctx context.Context) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return "view", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if v, err := lazy.Load(ctx); err != nil || v != "view" {
		t.Fatalf("Load(cancelled) = %v, %v; want view, nil", v, err)
	}
	if v, err := lazy.Load(context.Background()); err != nil || v != "view" {
		t.Fatalf("Load() = %v, %v; want view, nil", v, err)
	}
}
