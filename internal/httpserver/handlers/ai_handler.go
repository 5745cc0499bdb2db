package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pilana/internal/ai"
)

func AIChat(p ai.Provider, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
			System string `json:"system"`
		}
		if err := decode(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "Nedostaje prompt"})
			return
		}
		answer, err := p.Ask(r.Context(), req.Prompt, req.System)
		if err != nil {
			lg.Warnw("ai request failed", "error", err)
			respondStatus(w, http.StatusInternalServerError, map[string]string{"error": "Greška pri komunikaciji sa AI"})
			return
		}
		if answer == "" {
			answer = ai.NoAnswer
		}
		respondJSON(w, map[string]string{"answer": answer})
	}
}
