package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"pilana/internal/auth"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(svc *auth.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sess, err := svc.Login(r.Context(), req.Email, req.Password, clientIP(r))
		if errors.Is(err, auth.ErrInvalidCredentials) {
			http.Error(w, auth.InvalidCredentialsMessage, http.StatusUnauthorized)
			return
		}
		if err != nil {
			lg.Errorw("login failed", "error", err)
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{
			"token":      sess.Token,
			"expires_at": sess.ExpiresAt,
			"user":       principalJSON(sess.Principal),
		})
	}
}

func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, principalJSON(auth.FromContext(r.Context())))
	}
}

func Logout(svc *auth.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), auth.FromContext(r.Context())); err != nil {
			lg.Warnw("logout failed", "error", err)
			http.Error(w, "logout failed", http.StatusInternalServerError)
			return
		}
		respondJSON(w, map[string]any{"ok": true})
	}
}

func principalJSON(p auth.Principal) map[string]any {
	return map[string]any{
		"id":          p.UserID,
		"username":    p.Username,
		"email":       p.Email,
		"role":        p.Role,
		"permissions": p.Permissions.Strings(),
	}
}
