package settings

import (
	"context"
	"testing"

	"pilana/internal/backend/gormstore"
	"pilana/internal/export"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	b, err := OpenBadger("")
	if err != nil {
		t.Fatalf("badger: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	db, err := gormstore.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	gs, err := gormstore.New(db)
	if err != nil {
		t.Fatalf("gormstore: %v", err)
	}
	t.Cleanup(func() { _ = gs.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": b,
		"db":     NewDBStore(db),
	}
}

func TestServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range stores(t) {
		t.Run(name, func(t *testing.T) {
			svc := NewService(st)

			p, err := svc.Print(ctx)
			if err != nil {
				t.Fatalf("print defaults: %v", err)
			}
			if p.PrintOptions.PaperSize != "A4" || p.PrintOptions.Copies != 1 {
				t.Fatalf("defaults = %+v", p)
			}

			want := ExportSettings{Header: "Pilana d.o.o.", Footer: "Hvala", LogoURL: "https://example.com/logo.png"}
			if err := svc.SetExport(ctx, want); err != nil {
				t.Fatalf("set export: %v", err)
			}
			if err := svc.SetExport(ctx, want); err != nil {
				t.Fatalf("overwrite export: %v", err)
			}
			got, err := svc.Export(ctx)
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if got != want {
				t.Fatalf("export = %+v, want %+v", got, want)
			}

			p.NetworkPrinter = export.NetworkPrinter{Enabled: true, IP: "10.0.0.5", Protocol: "ipp"}
			p.PrintOptions.Copies = 0
			if err := svc.SetPrint(ctx, p); err != nil {
				t.Fatalf("set print: %v", err)
			}
			p2, err := svc.Print(ctx)
			if err != nil {
				t.Fatalf("print: %v", err)
			}
			if p2.NetworkPrinter.IP != "10.0.0.5" || p2.PrintOptions.Copies != 1 {
				t.Fatalf("print = %+v", p2)
			}
		})
	}
}

func TestSetPrintRejectsProtocol(t *testing.T) {
	svc := NewService(NewMemoryStore())
	p := export.DefaultPrintSettings()
	p.NetworkPrinter.Protocol = "lpd"
	if err := svc.SetPrint(context.Background(), p); err == nil {
		t.Fatalf("expected error for unsupported protocol")
	}
}
