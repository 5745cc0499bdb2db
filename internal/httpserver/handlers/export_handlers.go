package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pilana/internal/audit"
	"pilana/internal/auth"
	"pilana/internal/entity"
	"pilana/internal/export"
	"pilana/internal/settings"
)

// Output bundles what export and print handlers need besides the rows.
type Output struct {
	Settings *settings.Service
	Printer  *export.Dispatcher
	Audit    *audit.Logger
	Client   *http.Client
	Lg       *zap.SugaredLogger
}

func (o *Output) document(ctx context.Context, title string, headers []string, rows [][]string, withLogo bool) export.Document {
	doc := export.Document{Title: title, Headers: headers, Rows: rows, Created: time.Now()}
	es, err := o.Settings.Export(ctx)
	if err != nil {
		o.Lg.Warnw("export settings unavailable", "error", err)
		return doc
	}
	doc.Header, doc.Footer, doc.LogoURL = es.Header, es.Footer, es.LogoURL
	if withLogo && es.LogoURL != "" {
		logo, err := export.FetchLogo(ctx, o.Client, es.LogoURL)
		if err != nil {
			o.Lg.Warnw("logo fetch failed", "url", es.LogoURL, "error", err)
		} else {
			doc.Logo = logo
		}
	}
	return doc
}

func (o *Output) record(r *http.Request, action string, details map[string]any) {
	p := auth.FromContext(r.Context())
	o.Audit.Record(r.Context(), audit.Entry{
		UserID: p.UserID, Username: p.Username, Action: action, Details: details, IP: clientIP(r),
	})
}

// ExportRecords streams the filtered list as csv, xlsx or pdf.
func ExportRecords[T any](l *entity.List[T], module, title string, o *Output) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := r.URL.Query().Get("format")
		if format == "" {
			format = export.FormatCSV
		}
		rows, err := l.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respondError(w, o.Lg, err)
			return
		}
		headers, cells := l.Rows(rows)
		doc := o.document(r.Context(), title, headers, cells, format == export.FormatPDF)

		var buf bytes.Buffer
		if err := export.Write(&buf, format, doc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		o.record(r, "export:"+module, map[string]any{"format": format, "rows": len(cells)})

		w.Header().Set("Content-Type", export.ContentType(format))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(module, format, doc.Created)))
		_, _ = w.Write(buf.Bytes())
	}
}

// PrintRecords returns the printable HTML page for the browser print dialog.
func PrintRecords[T any](l *entity.List[T], module, title string, o *Output) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := l.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respondError(w, o.Lg, err)
			return
		}
		headers, cells := l.Rows(rows)
		doc := o.document(r.Context(), title, headers, cells, false)
		var buf bytes.Buffer
		if err := export.WriteHTML(&buf, doc); err != nil {
			respondError(w, o.Lg, err)
			return
		}
		o.record(r, "print:"+module, map[string]any{"method": export.MethodBrowser, "rows": len(cells)})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

// DispatchPrint hands the printable page to the configured network printer,
// or tells the client to fall back to the browser.
func DispatchPrint[T any](l *entity.List[T], module, title string, o *Output) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := l.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respondError(w, o.Lg, err)
			return
		}
		headers, cells := l.Rows(rows)
		doc := o.document(r.Context(), title, headers, cells, false)
		var buf bytes.Buffer
		if err := export.WriteHTML(&buf, doc); err != nil {
			respondError(w, o.Lg, err)
			return
		}
		ps, err := o.Settings.Print(r.Context())
		if err != nil {
			respondError(w, o.Lg, err)
			return
		}
		res, err := o.Printer.Dispatch(r.Context(), ps, module, buf.String())
		o.record(r, "print:"+module, map[string]any{"method": res.Method, "success": res.Success, "job_id": res.JobID})
		if err != nil {
			o.Lg.Warnw("print dispatch failed", "module", module, "error", err)
			respondStatus(w, http.StatusBadGateway, res)
			return
		}
		respondJSON(w, res)
	}
}
