package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"pilana/internal/audit"
	"pilana/internal/auth"
)

// MyLogs returns the caller's audit entries; admins may pass all=1 for
// everyone's.
func MyLogs(al *audit.Logger, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		uid := p.UserID
		if r.URL.Query().Get("all") == "1" && p.IsAdmin() {
			uid = ""
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		logs, err := al.Recent(r.Context(), uid, limit)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, logs)
	}
}

// AuditLog is the admin view over every user's activity.
func AuditLog(al *audit.Logger, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		logs, err := al.Recent(r.Context(), r.URL.Query().Get("user_id"), limit)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, logs)
	}
}
