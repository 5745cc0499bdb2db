package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"

	"pilana/internal/backend"
	"pilana/internal/entity"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondError maps service errors onto status codes. Validation and save
// messages are meant for users and are passed through.
func respondError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	var ve *entity.ValidationError
	var se *entity.StoreError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, backend.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, backend.ErrDuplicate):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.Is(err, entity.ErrDeleteDeclined):
		http.Error(w, "delete requires confirm=true", http.StatusPreconditionRequired)
	case errors.As(err, &se):
		http.Error(w, se.Message, http.StatusInternalServerError)
	default:
		lg.Errorw("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
