package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pilana/internal/entity"
)

// SaveFunc creates (id == "") or updates one record.
type SaveFunc[T any] func(ctx context.Context, id string, rec *T) (T, error)

// FormSave adapts a plain entity form to a SaveFunc.
func FormSave[T any](f *entity.Form[T]) SaveFunc[T] {
	return func(ctx context.Context, id string, rec *T) (T, error) {
		return f.Submit(ctx, id, rec, nil)
	}
}

func ListRecords[T any](l *entity.List[T], lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := l.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, rows)
	}
}

func GetRecord[T any](l *entity.List[T], lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := l.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, rec)
	}
}

// SaveRecord serves both POST (no id in the path) and PUT /{id}.
func SaveRecord[T any](save SaveFunc[T], lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec T
		if err := decode(r, &rec); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id := chi.URLParam(r, "id")
		saved, err := save(r.Context(), id, &rec)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		if id == "" {
			respondStatus(w, http.StatusCreated, saved)
			return
		}
		respondJSON(w, saved)
	}
}

// DeleteRecord deletes only when the request carries confirm=true.
func DeleteRecord[T any](l *entity.List[T], lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		confirm := entity.Confirmed(r.URL.Query().Get("confirm") == "true")
		if err := l.Delete(r.Context(), chi.URLParam(r, "id"), confirm); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
