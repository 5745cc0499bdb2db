package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"pilana/internal/export"
	"pilana/internal/settings"
)

func GetExportSettings(svc *settings.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		es, err := svc.Export(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, es)
	}
}

func PutExportSettings(svc *settings.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var es settings.ExportSettings
		if err := decode(r, &es); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := svc.SetExport(r.Context(), es); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, es)
	}
}

func GetPrintSettings(svc *settings.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := svc.Print(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, ps)
	}
}

func PutPrintSettings(svc *settings.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ps export.PrintSettings
		if err := decode(r, &ps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := ps.NetworkPrinter.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := svc.SetPrint(r.Context(), ps); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, ps)
	}
}

func CheckPrinter(svc *settings.Service, d *export.Dispatcher, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := svc.Print(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, d.TestPrinter(ps.NetworkPrinter))
	}
}
