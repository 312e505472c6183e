package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	portalerrors "github.com/systra-connect/portal/internal/errors"
	"github.com/systra-connect/portal/pkg/i18n"
	"github.com/systra-connect/portal/pkg/icon"
)

// iconResponse is returned by /api/icon.
type iconResponse struct {
	Name     string `json:"name"`
	IsDir    bool   `json:"is_dir"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
}

// localesResponse is returned by /api/i18n.
type localesResponse struct {
	Default    i18n.Locale                    `json:"default"`
	Fallback   i18n.Locale                    `json:"fallback"`
	Locales    []i18n.Locale                  `json:"locales"`
	Directions map[i18n.Locale]i18n.Direction `json:"directions"`
}

// messagesResponse is returned by /api/i18n/{locale}.
type messagesResponse struct {
	Locale    i18n.Locale    `json:"locale"`
	Direction i18n.Direction `json:"direction"`
	Messages  i18n.Messages  `json:"messages"`
}

// handleResolve resolves ?path= against the route table.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeError(w, r, portalerrors.New("E600").WithDetail("The path parameter is required."))
		return
	}
	res, err := s.table.Resolve(r.Context(), path)
	if err != nil {
		s.metrics.RecordNavigationError(portalerrors.CodeOf(err))
		s.writeError(w, r, err)
		return
	}
	s.metrics.RecordNavigation(res.State.String())
	writeJSON(w, http.StatusOK, res)
}

// handleIcon resolves the glyph for ?name=&is_dir=.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fd := icon.FileDescriptor{Name: q.Get("name")}
	if raw := q.Get("is_dir"); raw != "" {
		isDir, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, portalerrors.New("E600").WithDetailf("is_dir must be a boolean, got %q", raw))
			return
		}
		fd.IsDir = isDir
	}

	category := icon.Classify(fd).String()
	if fd.IsDir {
		category = "folder"
	}
	writeJSON(w, http.StatusOK, iconResponse{
		Name:     fd.Name,
		IsDir:    fd.IsDir,
		Icon:     icon.Resolve(fd),
		Category: category,
	})
}

// handleLocales lists the catalog's locales.
func (s *Server) handleLocales(w http.ResponseWriter, _ *http.Request) {
	locales := s.catalog.Locales()
	dirs := make(map[i18n.Locale]i18n.Direction, len(locales))
	for _, l := range locales {
		dirs[l] = s.catalog.Direction(l)
	}
	writeJSON(w, http.StatusOK, localesResponse{
		Default:    s.catalog.Default(),
		Fallback:   s.catalog.Fallback(),
		Locales:    locales,
		Directions: dirs,
	})
}

// handleMessages returns the merged messages of one locale.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Locale(chi.URLParam(r, "locale"))
	if parsed, ok := i18n.ParseLocale(string(locale)); ok {
		locale = parsed
	}
	msgs, err := s.catalog.Messages(locale)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messagesResponse{
		Locale:    locale,
		Direction: s.catalog.Direction(locale),
		Messages:  msgs,
	})
}

// handleFiles lists ?folder= through the explorer.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	listing, err := s.explorer.Browse(r.Context(), r.URL.Query().Get("folder"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}
