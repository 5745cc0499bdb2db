package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pilana/internal/panels"
)

func panelError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, panels.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, panels.ErrDeleteDeclined):
		http.Error(w, "delete requires confirm=true", http.StatusPreconditionRequired)
	default:
		lg.Debugw("workflow rejected", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func ListWorkflows(wf *panels.Workflows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, wf.List())
	}
}

func CreateWorkflow(wf *panels.Workflows, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panels.Workflow
		if err := decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created, err := wf.Create(req)
		if err != nil {
			panelError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, created)
	}
}

func UpdateWorkflow(wf *panels.Workflows, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panels.Workflow
		if err := decode(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updated, err := wf.Update(chi.URLParam(r, "id"), req)
		if err != nil {
			panelError(w, lg, err)
			return
		}
		respondJSON(w, updated)
	}
}

func DeleteWorkflow(wf *panels.Workflows, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := wf.Delete(chi.URLParam(r, "id"), r.URL.Query().Get("confirm") == "true"); err != nil {
			panelError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

func RunWorkflow(wf *panels.Workflows, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ran, err := wf.Run(chi.URLParam(r, "id"))
		if err != nil {
			panelError(w, lg, err)
			return
		}
		respondJSON(w, ran)
	}
}

func ToggleWorkflow(wf *panels.Workflows, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := wf.Toggle(chi.URLParam(r, "id"))
		if err != nil {
			panelError(w, lg, err)
			return
		}
		respondJSON(w, t)
	}
}

func ListPredictions(p *panels.Predictions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, p.List())
	}
}
