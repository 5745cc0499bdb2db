package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pilana/internal/auth"
	"pilana/internal/services/production"
)

func WorkOrderFromOffer(svc *production.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wo, err := svc.WorkOrderFromOffer(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, wo)
	}
}

func RecordCut(svc *production.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c production.Cut
		if err := decode(r, &c); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if c.Operator == "" {
			c.Operator = auth.FromContext(r.Context()).Username
		}
		pkg, err := svc.RecordCut(r.Context(), c)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, pkg)
	}
}

func FinishPackage(svc *production.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkg, err := svc.FinishPackage(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, pkg)
	}
}

func ReceiveLog(svc *production.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e production.LogEntry
		if err := decode(r, &e); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user := auth.Subject(r.Context())
		saved, err := svc.Intake.Receive(r.Context(), user, e)
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, map[string]any{
			"trupac":    saved,
			"zaglavlje": svc.Intake.Header(user),
		})
	}
}

func IntakeHeader(svc *production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, svc.Intake.Header(auth.Subject(r.Context())))
	}
}

func ResetIntakeHeader(svc *production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, svc.Intake.ResetHeader(auth.Subject(r.Context())))
	}
}

func CashSummary(svc *production.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.CashSummary(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, sum)
	}
}

func Dashboard(svc *production.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Dashboard(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, st)
	}
}

func QRCode(svc *production.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := r.URL.Query().Get("data")
		if data == "" {
			http.Error(w, "data required", http.StatusBadRequest)
			return
		}
		respondJSON(w, map[string]any{"qr_kod": svc.QRCode(data)})
	}
}
