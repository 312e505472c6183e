package server

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/i18n"
	"github.com/systra-connect/portal/pkg/navigation"
	"github.com/systra-connect/portal/pkg/routepath"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// LangCookie stores an explicitly chosen locale.
const LangCookie = "lang"

// LoadNotFoundTemplate parses the not-found page. It is meant as the lazy
// loader of the route table's fallback component.
func LoadNotFoundTemplate(context.Context) (any, error) {
	return template.ParseFS(templateFS, "templates/notfound.html")
}

// pageData feeds page.html.
type pageData struct {
	AppName    string
	Title      string
	Lang       i18n.Locale
	Dir        i18n.Direction
	Resolution *navigation.Resolution
}

// notFoundData feeds notfound.html.
type notFoundData struct {
	pageData
	Heading   string
	Message   string
	HomeLabel string
	HomeURL   string
}

// handlePage serves the HTML shell for any page path.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.RawQuery
	}

	canon, err := routepath.Canonicalize(raw)
	if err != nil {
		s.writeError(w, r, portalerrors.New("E201").WithDetailf("%v", err).Wrap(err))
		return
	}
	if canon.Changed {
		http.Redirect(w, r, canon.String(), http.StatusPermanentRedirect)
		return
	}

	res, err := s.table.Resolve(r.Context(), canon.String())
	if err != nil {
		s.metrics.RecordNavigationError(portalerrors.CodeOf(err))
		s.writeError(w, r, err)
		return
	}
	if res.Redirected() {
		http.Redirect(w, r, res.URL(), http.StatusFound)
		return
	}
	s.metrics.RecordNavigation(res.State.String())

	loc := s.catalog.Localizer(s.locale(w, r))
	data := pageData{
		AppName:    s.config.AppName,
		Title:      s.config.AppName + " | " + res.Component,
		Lang:       loc.Locale(),
		Dir:        loc.Direction(),
		Resolution: res,
	}

	if res.State == navigation.NotFound {
		if tmpl, ok := res.View.(*template.Template); ok {
			s.render(w, r, http.StatusNotFound, tmpl, notFoundData{
				pageData:  data,
				Heading:   loc.T("not_found_title", nil),
				Message:   loc.T("not_found_message", map[string]any{"path": res.Requested}),
				HomeLabel: loc.T("not_found_home", nil),
				HomeURL:   "/",
			})
			return
		}
		s.render(w, r, http.StatusNotFound, pageTemplate, data)
		return
	}
	s.render(w, r, http.StatusOK, pageTemplate, data)
}

// render executes tmpl into a buffer so a template error still yields a
// clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		s.logger.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// locale picks the page locale from ?lang=, then the lang cookie, then
// Accept-Language. An explicit ?lang= is remembered in the cookie.
func (s *Server) locale(w http.ResponseWriter, r *http.Request) i18n.Locale {
	if l, ok := s.known(r.URL.Query().Get("lang")); ok {
		http.SetCookie(w, &http.Cookie{
			Name:     LangCookie,
			Value:    string(l),
			Path:     "/",
			Expires:  time.Now().Add(365 * 24 * time.Hour),
			SameSite: http.SameSiteLaxMode,
		})
		return l
	}
	if c, err := r.Cookie(LangCookie); err == nil {
		if l, ok := s.known(c.Value); ok {
			return l
		}
	}
	return s.catalog.Negotiate(r.Header.Get("Accept-Language"))
}

func (s *Server) known(raw string) (i18n.Locale, bool) {
	l, ok := i18n.ParseLocale(raw)
	if !ok || !s.catalog.Has(l) {
		return "", false
	}
	return l, true
}
