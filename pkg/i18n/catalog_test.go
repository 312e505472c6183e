package i18n

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(map[Locale]Messages{
		English: {"hello": "Hello {name}", "bye": "Goodbye", "only_en": "English only"},
		French:  {"hello": "Bonjour {name}", "bye": "Au revoir"},
		Arabic:  {"hello": "مرحبا {name}", "bye": "وداعا", "extra": "x"},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func TestEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if diff := cmp.Diff([]Locale{English, Arabic, Spanish, French, Japanese, Portuguese, Russian}, c.Locales()); diff != "" {
		t.Errorf("locales mismatch (-want +got):\n%s", diff)
	}
	if mismatches := c.Check(); len(mismatches) != 0 {
		t.Errorf("embedded locales differ: %v", mismatches)
	}
	if err := c.CheckError(); err != nil {
		t.Errorf("CheckError() = %v", err)
	}

	got := c.Localizer(French).T("explorer_btn_download", map[string]any{"name": "plan.pdf"})
	if got != "Télécharger plan.pdf" {
		t.Errorf("T() = %q", got)
	}
	if got := c.Localizer(Arabic).T("sidebar_files", nil); got != "الملفات" {
		t.Errorf("ar sidebar_files = %q", got)
	}
}

func TestLookupFallsBack(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		locale Locale
		key    string
		text   string
		from   Locale
		ok     bool
	}{
		{French, "bye", "Au revoir", French, true},
		{French, "only_en", "English only", English, true},
		{Japanese, "bye", "Goodbye", English, true},
		{French, "nowhere", "", "", false},
	}
	for _, tt := range tests {
		text, from, ok := c.Lookup(tt.locale, tt.key)
		if text != tt.text || from != tt.from || ok != tt.ok {
			t.Errorf("Lookup(%s, %s) = %q, %q, %v; want %q, %q, %v", tt.locale, tt.key, text, from, ok, tt.text, tt.from, tt.ok)
		}
	}
}

func TestLocalizer(t *testing.T) {
	c := testCatalog(t)

	fr := c.Localizer(French)
	if got := fr.T("hello", map[string]any{"name": "Ana"}); got != "Bonjour Ana" {
		t.Errorf("T(hello) = %q", got)
	}
	if got := fr.T("hello", nil); got != "Bonjour {name}" {
		t.Errorf("T(hello) without args = %q", got)
	}
	if got := fr.T("missing_key", nil); got != "missing_key" {
		t.Errorf("T(missing_key) = %q, want the key", got)
	}

	unknown := c.Localizer("de")
	if unknown.Locale() != English {
		t.Errorf("unknown locale selected %q, want en", unknown.Locale())
	}
	if c.Localizer(Arabic).Direction() != RTL || fr.Direction() != LTR {
		t.Error("wrong writing direction")
	}
}

func TestInterpolate(t *testing.T) {
	tests := []struct {
		text string
		args map[string]any
		want string
	}{
		{"Delete {name}", map[string]any{"name": "a.ifc"}, "Delete a.ifc"},
		{"{a} and {b}", map[string]any{"a": 1, "b": true}, "1 and true"},
		{"{ name }", map[string]any{"name": "x"}, "x"},
		{"keep {other}", map[string]any{"name": "x"}, "keep {other}"},
		{"unclosed {name", map[string]any{"name": "x"}, "unclosed {name"},
		{"no placeholders", map[string]any{"name": "x"}, "no placeholders"},
	}
	for _, tt := range tests {
		if got := interpolate(tt.text, tt.args); got != tt.want {
			t.Errorf("interpolate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestMessagesMergesFallback(t *testing.T) {
	c := testCatalog(t)

	got, err := c.Messages(French)
	if err != nil {
		t.Fatalf("Messages error: %v", err)
	}
	want := Messages{"hello": "Bonjour {name}", "bye": "Au revoir", "only_en": "English only"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Messages("de"); portalerrors.CodeOf(err) != "E301" {
		t.Errorf("Messages(de) code = %q, want E301", portalerrors.CodeOf(err))
	}
}

func TestCheck(t *testing.T) {
	c := testCatalog(t)

	want := []Mismatch{
		{Locale: Arabic, Missing: []string{"only_en"}, Extra: []string{"extra"}},
		{Locale: French, Missing: []string{"only_en"}},
	}
	if diff := cmp.Diff(want, c.Check()); diff != "" {
		t.Errorf("Check mismatch (-want +got):\n%s", diff)
	}
	if code := portalerrors.CodeOf(c.CheckError()); code != "E302" {
		t.Errorf("CheckError code = %q, want E302", code)
	}
	if got := want[0].String(); got != "ar: missing only_en; extra extra" {
		t.Errorf("String() = %q", got)
	}
}

func TestNegotiate(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		header string
		want   Locale
	}{
		{"", English},
		{"fr-FR,fr;q=0.9,en;q=0.8", French},
		{"pt-BR", Portuguese},
		{"de-DE, ja;q=0.5", Japanese},
		{"ar-EG", Arabic},
		{"not a header;;", English},
	}
	for _, tt := range tests {
		if got := c.Negotiate(tt.header); got != tt.want {
			t.Errorf("Negotiate(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestNewRejectsUnknownDefault(t *testing.T) {
	_, err := New(map[Locale]Messages{English: {}}, WithDefault(French))
	if code := portalerrors.CodeOf(err); code != "E301" {
		t.Errorf("code = %q, want E301", code)
	}
	_, err = New(map[Locale]Messages{English: {}}, WithFallback(Japanese))
	if code := portalerrors.CodeOf(err); code != "E301" {
		t.Errorf("code = %q, want E301", code)
	}
}

func TestNewCopiesMessages(t *testing.T) {
	src := map[Locale]Messages{English: {"k": "v"}}
	c, err := New(src)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	src[English]["k"] = "changed"
	if text, _, _ := c.Lookup(English, "k"); text != "v" {
		t.Errorf("catalog changed with its source: %q", text)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"loc/en.yaml":    {Data: []byte("greet: \"Hi\"\n")},
		"loc/fr-FR.yaml": {Data: []byte("greet: \"Salut\"\n")},
		"loc/README.md":  {Data: []byte("ignored")},
	}
	got, err := LoadFS(fsys, "loc")
	if err != nil {
		t.Fatalf("LoadFS error: %v", err)
	}
	want := map[Locale]Messages{English: {"greet": "Hi"}, French: {"greet": "Salut"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadFS mismatch (-want +got):\n%s", diff)
	}

	bad := fstest.MapFS{"loc/en.yaml": {Data: []byte("greet: [unclosed")}}
	if _, err := LoadFS(bad, "loc"); portalerrors.CodeOf(err) != "E300" {
		t.Errorf("bad yaml code = %q, want E300", portalerrors.CodeOf(err))
	}
	if _, err := LoadFS(fstest.MapFS{}, "missing"); portalerrors.CodeOf(err) != "E300" {
		t.Errorf("missing dir code = %q, want E300", portalerrors.CodeOf(err))
	}
}

func TestLoadWithDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "es.yaml"), []byte("k: \"hola\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(WithDir(dir), WithDefault(Spanish))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if c.Default() != Spanish || c.Fallback() != Spanish {
		t.Errorf("default/fallback = %q/%q, want es/es", c.Default(), c.Fallback())
	}
	if got := c.Localizer(Spanish).T("k", nil); got != "hola" {
		t.Errorf("T(k) = %q", got)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		ok   bool
	}{
		{"fr", French, true},
		{"FR", French, true},
		{"fr-CA", French, true},
		{" ja ", Japanese, true},
		{"", "", false},
		{"!!", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLocale(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLocale(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
