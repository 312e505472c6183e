package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/systra-connect/portal/internal/config"
	portalerrors "github.com/systra-connect/portal/internal/errors"
)

// run executes the CLI with args against an empty config directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", t.TempDir(), "--no-color"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("output = %q, want %q", out, version)
	}
}

func TestRoutesList(t *testing.T) {
	out, err := run(t, "routes")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"/main/files/*subPath",
		"-> /main/project",
		"NotFound (lazy)",
		"MainPage",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("routes output missing %q:\n%s", want, out)
		}
	}
}

func TestRoutesResolve(t *testing.T) {
	out, err := run(t, "routes", "--resolve", "/main/files/a/b")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "State:     file-explorer") || !strings.Contains(out, `subPath="a/b"`) {
		t.Errorf("unexpected resolution:\n%s", out)
	}

	out, err = run(t, "routes", "--resolve", "/main", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"state": "project-list"`) {
		t.Errorf("unexpected JSON:\n%s", out)
	}

	if _, err := run(t, "routes", "--resolve", `/a\b`); portalerrors.CodeOf(err) != "E201" {
		t.Errorf("bad path error = %v, want E201", err)
	}
}

func TestIconCommand(t *testing.T) {
	out, err := run(t, "icon", "plan.pdf", "Makefile")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "plan.pdf") || !strings.Contains(out, "pdf") || !strings.Contains(out, "other") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "icon", "--dir", "archive.zip")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "folder") {
		t.Errorf("--dir output = %q", out)
	}

	if _, err := run(t, "icon"); portalerrors.CodeOf(err) != "E500" {
		t.Errorf("no names error = %v, want E500", err)
	}
}

func TestI18nCommands(t *testing.T) {
	out, err := run(t, "i18n", "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "7 locales") {
		t.Errorf("check output = %q", out)
	}

	out, err = run(t, "i18n", "get", "explorer_btn_download", "--param", "name=plan.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "Download plan.pdf" {
		t.Errorf("get output = %q", out)
	}

	if _, err := run(t, "i18n", "get", "explorer_btn_download", "--locale", "de"); portalerrors.CodeOf(err) != "E301" {
		t.Errorf("unknown locale error = %v, want E301", err)
	}
	if _, err := run(t, "i18n", "get", "x", "--param", "novalue"); portalerrors.CodeOf(err) != "E500" {
		t.Errorf("bad param error = %v, want E500", err)
	}

	out, err = run(t, "i18n", "locales")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "default,fallback") || !strings.Contains(out, "rtl") {
		t.Errorf("locales output:\n%s", out)
	}
}

func TestNoColorStripsStatusMarkers(t *testing.T) {
	t.Cleanup(portalerrors.EnableColors)
	out, err := run(t, "i18n", "check")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("output contains ANSI escapes: %q", out)
	}
	if !strings.HasPrefix(out, "✓ ") {
		t.Errorf("output = %q, want plain success marker", out)
	}
}

func TestI18nCheckReportsMismatch(t *testing.T) {
	dir := t.TempDir()
	locales := filepath.Join(dir, "locales")
	if err := os.MkdirAll(locales, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"en.yaml": "a: A\nb: B\n",
		"fr.yaml": "a: A\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(locales, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(`{"i18n": {"dir": "locales"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", dir, "i18n", "check"})
	err := root.Execute()
	if portalerrors.CodeOf(err) != "E302" {
		t.Fatalf("error = %v, want E302", err)
	}
	if !strings.Contains(out.String(), "fr: missing b") {
		t.Errorf("output = %q", out.String())
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", "json")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("log output = %q", buf.String())
	}

	if _, err := newLogger(&buf, "loud", "text"); portalerrors.CodeOf(err) != "E105" {
		t.Errorf("bad level error = %v", err)
	}
	if _, err := newLogger(&buf, "info", "xml"); portalerrors.CodeOf(err) != "E105" {
		t.Errorf("bad format error = %v", err)
	}
}

func TestServeFlagsApply(t *testing.T) {
	cmd := serveCmd()
	if err := cmd.ParseFlags([]string{"--port", "9000", "--backend", "s3", "--no-metrics", "--log-format", "json"}); err != nil {
		t.Fatal(err)
	}
	var f serveFlags
	f.port, _ = cmd.Flags().GetInt("port")
	f.backend, _ = cmd.Flags().GetString("backend")
	f.noMetrics, _ = cmd.Flags().GetBool("no-metrics")
	f.logFormat, _ = cmd.Flags().GetString("log-format")

	cfg := config.New()
	f.apply(cmd, cfg)
	if cfg.Server.Port != 9000 || cfg.Explorer.Backend != config.BackendS3 || cfg.Telemetry.Metrics || cfg.Log.Format != "json" {
		t.Errorf("config after apply = %+v", cfg)
	}
	if cfg.Server.Host != config.DefaultHost {
		t.Errorf("host changed to %q", cfg.Server.Host)
	}
}

func TestBuildServer(t *testing.T) {
	cfg := config.New()
	cfg.Explorer.Root = t.TempDir()
	logger, _ := newLogger(io.Discard, "error", "text")

	srv, err := buildServer(context.Background(), cfg, logger)
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range []struct {
		path   string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/files", http.StatusOK},
		{"/main", http.StatusFound},
	} {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rr.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.path, rr.Code, tt.status)
		}
	}
}
