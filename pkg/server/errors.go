package server

import (
	"encoding/json"
	"errors"
	"net/http"

	portalerrors "github.com/systra-connect/portal/internal/errors"
)

// statusByCode maps error codes to HTTP statuses. Unlisted codes are 500.
var statusByCode = map[string]int{
	"E201": http.StatusBadRequest, // invalid path
	"E205": http.StatusNotFound,
	"E301": http.StatusNotFound, // unknown locale
	"E400": http.StatusBadRequest,
	"E402": http.StatusNotFound,
	"E401": http.StatusBadGateway,
	"E600": http.StatusBadRequest,
	"E601": http.StatusBadRequest,
}

// errorBody is the JSON error response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if status, ok := statusByCode[portalerrors.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// bodyOf converts err into a response body without exposing wrapped causes.
func bodyOf(err error) errorBody {
	var pe *portalerrors.PortalError
	if errors.As(err, &pe) {
		return errorBody{Code: pe.Code, Message: pe.Message, Detail: pe.Detail}
	}
	return errorBody{Code: "E000", Message: http.StatusText(http.StatusInternalServerError)}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", portalerrors.CodeOf(err))
	}
	writeJSON(w, status, bodyOf(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
