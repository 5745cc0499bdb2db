package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pilana/internal/audit"
	"pilana/internal/auth"
	"pilana/internal/backend"
	"pilana/internal/models"
)

func ListUsers(users backend.UserStore, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, list)
	}
}

func CreateUser(users backend.UserStore, al *audit.Logger, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username    string   `json:"username"`
			Email       string   `json:"email"`
			Password    string   `json:"password"`
			Role        string   `json:"role"`
			Permissions []string `json:"permissions"`
		}
		if err := decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			http.Error(w, "email/password required", http.StatusBadRequest)
			return
		}
		if !auth.ValidPermissions(req.Permissions) {
			http.Error(w, "unknown permission", http.StatusBadRequest)
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}
		if req.Username == "" {
			req.Username = strings.SplitN(req.Email, "@", 2)[0]
		}
		if req.Permissions == nil {
			req.Permissions = []string{}
		}
		u := models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         string(auth.ParseRole(req.Role)),
			Permissions:  req.Permissions,
			IsActive:     true,
		}
		if err := users.Insert(r.Context(), &u); err != nil {
			respondError(w, lg, err)
			return
		}
		actor := auth.FromContext(r.Context())
		al.Record(r.Context(), audit.Entry{
			UserID: actor.UserID, Username: actor.Username, Action: "korisnik:kreiranje",
			Details: map[string]any{"id": u.ID, "email": u.Email, "role": u.Role}, IP: clientIP(r),
		})
		respondJSON(w, map[string]any{"id": u.ID})
	}
}

func UpdateUser(users backend.UserStore, al *audit.Logger, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Username    *string  `json:"username"`
			Email       *string  `json:"email"`
			IsActive    *bool    `json:"is_active"`
			Password    *string  `json:"password"`
			Role        *string  `json:"role"`
			Permissions []string `json:"permissions"`
		}
		if err := decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u, err := users.Get(r.Context(), id)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if req.Username != nil {
			u.Username = *req.Username
		}
		if req.Email != nil {
			u.Email = strings.TrimSpace(strings.ToLower(*req.Email))
		}
		if req.IsActive != nil {
			u.IsActive = *req.IsActive
		}
		if req.Password != nil && *req.Password != "" {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				http.Error(w, "hash error", http.StatusInternalServerError)
				return
			}
			u.PasswordHash = hash
		}
		if req.Role != nil {
			u.Role = string(auth.ParseRole(*req.Role))
		}
		if req.Permissions != nil {
			if !auth.ValidPermissions(req.Permissions) {
				http.Error(w, "unknown permission", http.StatusBadRequest)
				return
			}
			u.Permissions = req.Permissions
		}
		if err := users.Update(r.Context(), id, &u); err != nil {
			respondError(w, lg, err)
			return
		}
		actor := auth.FromContext(r.Context())
		al.Record(r.Context(), audit.Entry{
			UserID: actor.UserID, Username: actor.Username, Action: "korisnik:izmjena",
			Details: map[string]any{"id": id}, IP: clientIP(r),
		})
		respondJSON(w, map[string]any{"updated": true})
	}
}

func DeleteUser(users backend.UserStore, al *audit.Logger, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		actor := auth.FromContext(r.Context())
		if id == actor.UserID {
			http.Error(w, "cannot delete yourself", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("confirm") != "true" {
			http.Error(w, "delete requires confirm=true", http.StatusPreconditionRequired)
			return
		}
		if err := users.Delete(r.Context(), id); err != nil {
			respondError(w, lg, err)
			return
		}
		al.Record(r.Context(), audit.Entry{
			UserID: actor.UserID, Username: actor.Username, Action: "korisnik:brisanje",
			Details: map[string]any{"id": id}, IP: clientIP(r),
		})
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// ListPermissions returns the module keys an admin can grant, plus the
// all-permissions grant.
func ListPermissions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys := []string{auth.AllPermissions().Strings()[0]}
		for _, p := range auth.KnownPermissions() {
			keys = append(keys, string(p))
		}
		respondJSON(w, keys)
	}
}
