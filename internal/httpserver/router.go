package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"pilana/internal/ai"
	"pilana/internal/audit"
	"pilana/internal/auth"
	"pilana/internal/backend"
	"pilana/internal/entity"
	"pilana/internal/httpserver/handlers"
	"pilana/internal/panels"
	"pilana/internal/realtime"
	"pilana/internal/services/production"
	"pilana/internal/settings"
)

// Deps are the services the router exposes. All are required.
type Deps struct {
	Backend     backend.Backend
	Auth        *auth.Service
	Audit       *audit.Logger
	Production  *production.Service
	Hub         *realtime.Hub
	Settings    *settings.Service
	Output      *handlers.Output
	Workflows   *panels.Workflows
	Predictions *panels.Predictions
	AI          ai.Provider
	Lg          *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	lg := d.Lg
	p := d.Production
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, auth.WebSocketToken, middleware.Recoverer, middleware.Logger)
	r.Post("/v1/auth/login", handlers.Login(d.Auth, lg))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(d.Auth))
		protected.Get("/v1/me", handlers.Me())
		protected.Post("/v1/auth/logout", handlers.Logout(d.Auth, lg))
		protected.Get("/v1/logs", handlers.MyLogs(d.Audit, lg))
		protected.Get("/v1/ws", d.Hub.ServeWS)
		protected.Post("/v1/ai/chat", handlers.AIChat(d.AI, lg))
		protected.Get("/v1/qr", handlers.QRCode(p))
		protected.Get("/v1/dashboard", handlers.Dashboard(p, lg))

		mount(protected, "ponude", auth.PermOffers, "Ponude", p.Offers, handlers.FormSave(p.OfferForm), d.Output, lg, func(m chi.Router) {
			m.Post("/{id}/radni-nalog", handlers.WorkOrderFromOffer(p, lg))
		})
		mount(protected, "radni-nalozi", auth.PermWorkOrders, "Radni nalozi", p.WorkOrders, handlers.FormSave(p.WorkOrderForm), d.Output, lg, nil)
		mount(protected, "pilana", auth.PermSawmill, "Pilana", p.Sawmill, handlers.FormSave(p.SawmillForm), d.Output, lg, func(m chi.Router) {
			m.Post("/prorez", handlers.RecordCut(p, lg))
			m.Post("/{id}/zavrsi", handlers.FinishPackage(p, lg))
		})
		mount(protected, "dorada", auth.PermRefinish, "Dorada", p.Refinish, p.SaveRefinish, d.Output, lg, nil)
		mount(protected, "trupci", auth.PermLogIntake, "Prijem trupaca", p.Logs, handlers.FormSave(p.LogForm), d.Output, lg, func(m chi.Router) {
			m.Post("/prijem", handlers.ReceiveLog(p, lg))
			m.Get("/prijem/zaglavlje", handlers.IntakeHeader(p))
			m.Delete("/prijem/zaglavlje", handlers.ResetIntakeHeader(p))
		})
		mount(protected, "otpremnice", auth.PermCashRegister, "Otpremnice", p.ShippingNotes, p.SaveShippingNote, d.Output, lg, nil)
		mount(protected, "blagajna", auth.PermCashRegister, "Blagajna", p.Cash, handlers.FormSave(p.CashForm), d.Output, lg, func(m chi.Router) {
			m.Get("/stanje", handlers.CashSummary(p, lg))
		})

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(auth.RoleAdmin))
			users := d.Backend.Users()
			admin.Get("/v1/admin/users", handlers.ListUsers(users, lg))
			admin.Post("/v1/admin/users", handlers.CreateUser(users, d.Audit, lg))
			admin.Patch("/v1/admin/users/{id}", handlers.UpdateUser(users, d.Audit, lg))
			admin.Delete("/v1/admin/users/{id}", handlers.DeleteUser(users, d.Audit, lg))
			admin.Get("/v1/admin/permissions", handlers.ListPermissions())
			admin.Get("/v1/admin/audit", handlers.AuditLog(d.Audit, lg))

			admin.Get("/v1/admin/settings/export", handlers.GetExportSettings(d.Settings, lg))
			admin.Put("/v1/admin/settings/export", handlers.PutExportSettings(d.Settings, lg))
			admin.Get("/v1/admin/settings/print", handlers.GetPrintSettings(d.Settings, lg))
			admin.Put("/v1/admin/settings/print", handlers.PutPrintSettings(d.Settings, lg))
			admin.Post("/v1/admin/settings/print/test", handlers.CheckPrinter(d.Settings, d.Output.Printer, lg))

			admin.Get("/v1/admin/workflows", handlers.ListWorkflows(d.Workflows))
			admin.Post("/v1/admin/workflows", handlers.CreateWorkflow(d.Workflows, lg))
			admin.Put("/v1/admin/workflows/{id}", handlers.UpdateWorkflow(d.Workflows, lg))
			admin.Delete("/v1/admin/workflows/{id}", handlers.DeleteWorkflow(d.Workflows, lg))
			admin.Post("/v1/admin/workflows/{id}/run", handlers.RunWorkflow(d.Workflows, lg))
			admin.Post("/v1/admin/workflows/{id}/toggle", handlers.ToggleWorkflow(d.Workflows, lg))
			admin.Get("/v1/admin/ai/predictions", handlers.ListPredictions(d.Predictions))
			admin.Get("/v1/admin/analytics", handlers.Dashboard(p, lg))
		})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

// mount registers the list, form, export and print routes of one module
// under /v1/<name>, guarded by perm. extra adds module specific routes.
func mount[T any](r chi.Router, name string, perm auth.Permission, title string, l *entity.List[T], save handlers.SaveFunc[T], o *handlers.Output, lg *zap.SugaredLogger, extra func(chi.Router)) {
	r.Route("/v1/"+name, func(m chi.Router) {
		m.Use(auth.RequirePermission(perm))
		m.Get("/", handlers.ListRecords(l, lg))
		m.Post("/", handlers.SaveRecord(save, lg))
		m.Get("/export", handlers.ExportRecords(l, name, title, o))
		m.Get("/print", handlers.PrintRecords(l, name, title, o))
		m.Post("/print", handlers.DispatchPrint(l, name, title, o))
		if extra != nil {
			extra(m)
		}
		m.Get("/{id}", handlers.GetRecord(l, lg))
		m.Put("/{id}", handlers.SaveRecord(save, lg))
		m.Delete("/{id}", handlers.DeleteRecord(l, lg))
	})
}
