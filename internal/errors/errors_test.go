package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "E100",
			wantMsg: "Config file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "routing error",
			code:    "E200",
			wantMsg: "Invalid route table",
			wantCat: CategoryRouting,
		},
		{
			name:    "explorer error",
			code:    "E400",
			wantMsg: "Path escapes the explorer root",
			wantCat: CategoryExplorer,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown command %q", "serv")
	if err.Message != `unknown command "serv"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
	if err.Error() != `unknown command "serv"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapAndIs(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New("E401").WithDetail("folder /a").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find wrapped cause")
	}
	if !stderrors.Is(err, New("E401")) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, New("E402")) {
		t.Error("errors.Is should not match a different code")
	}

	outer := fmt.Errorf("browse: %w", err)
	if CodeOf(outer) != "E401" {
		t.Errorf("CodeOf = %q, want E401", CodeOf(outer))
	}
	if got := err.Error(); got != "E401: Folder could not be listed: folder /a: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E101") != nil {
		t.Error("FromError(nil) should be nil")
	}

	plain := fmt.Errorf("boom")
	pe := FromError(plain, "E101")
	if pe.Code != "E101" || pe.Wrapped != plain {
		t.Errorf("FromError wrapped = %+v", pe)
	}

	existing := New("E300")
	wrapped := fmt.Errorf("context: %w", existing)
	if FromError(wrapped, "E101") != existing {
		t.Error("FromError should return the existing PortalError")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E200").
		WithDetail(`catch-all "files/*p" declared before "files/recent"`).
		WithSuggestion("Move the catch-all entry last")
	out := err.Format()

	for _, want := range []string{
		"ERROR E200: Invalid route table",
		`catch-all "files/*p" declared before "files/recent"`,
		"Hint: Move the catch-all entry last",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "E200: Invalid route table" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestStatusMarkersFollowColorSwitch(t *testing.T) {
	if got := Success("ok"); got != "\033[32mok\033[0m" {
		t.Errorf("Success() colored = %q", got)
	}
	DisableColors()
	defer EnableColors()
	if got := Success("ok"); got != "ok" {
		t.Errorf("Success() plain = %q", got)
	}
	if got := Warning("careful"); got != "careful" {
		t.Errorf("Warning() plain = %q", got)
	}
}

func TestMarshalJSONHidesCause(t *testing.T) {
	err := New("E401").Wrap(fmt.Errorf("secret bucket name"))
	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatal(jerr)
	}
	if bytes.Contains(data, []byte("secret")) {
		t.Errorf("JSON leaks cause: %s", data)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["code"] != "E401" || decoded["category"] != "explorer" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, fmt.Errorf("load: %w", New("E100")))
	if !strings.Contains(buf.String(), "ERROR E100: Config file not found") {
		t.Errorf("Fprint coded = %q", buf.String())
	}

	buf.Reset()
	Fprint(&buf, fmt.Errorf("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Fprint plain = %q", buf.String())
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" || tmpl.Category == "" {
			t.Errorf("template %s incomplete: %+v", code, tmpl)
		}
	}
}
