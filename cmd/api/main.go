package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pilana/internal/ai"
	"pilana/internal/audit"
	"pilana/internal/auth"
	"pilana/internal/backend"
	"pilana/internal/backend/gormstore"
	"pilana/internal/backend/mockstore"
	"pilana/internal/config"
	"pilana/internal/export"
	"pilana/internal/httpserver"
	"pilana/internal/httpserver/handlers"
	"pilana/internal/logger"
	"pilana/internal/panels"
	"pilana/internal/realtime"
	"pilana/internal/services/production"
	"pilana/internal/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()
	ctx := context.Background()

	b, db, err := openBackend(ctx, cfg, lg)
	if err != nil {
		lg.Fatalw("backend init failed", "backend", cfg.Backend, "error", err)
	}
	defer b.Close()
	store, err := openSettings(ctx, cfg, db)
	if err != nil {
		lg.Fatalw("settings store init failed", "store", cfg.SettingsStore, "error", err)
	}
	defer closeIfCloser(store, lg)

	al := audit.New(b.Audit(), lg)
	authSvc := auth.NewService(b, al, auth.NewSigner(cfg.JWTSecret, cfg.JWTTTL), lg)
	hub := realtime.NewHub(lg)
	workflows, err := panels.NewWorkflows(time.Now)
	if err != nil {
		lg.Fatalw("workflow fixtures failed", "error", err)
	}
	predictions, err := panels.NewPredictions()
	if err != nil {
		lg.Fatalw("prediction fixtures failed", "error", err)
	}
	provider, err := ai.New(ctx, cfg.AIProvider, cfg.DeepSeekKey, cfg.GeminiKey, lg)
	if err != nil {
		lg.Fatalw("ai provider init failed", "provider", cfg.AIProvider, "error", err)
	}
	defer closeIfCloser(provider, lg)
	settingsSvc := settings.NewService(store)

	router := httpserver.NewRouter(httpserver.Deps{
		Backend:     b,
		Auth:        authSvc,
		Audit:       al,
		Production:  production.New(b, al, hub, lg),
		Hub:         hub,
		Settings:    settingsSvc,
		Output: &handlers.Output{
			Settings: settingsSvc,
			Printer:  export.NewDispatcher(&export.SimulatedSender{}),
			Audit:    al,
			Client:   &http.Client{Timeout: 10 * time.Second},
			Lg:       lg,
		},
		Workflows:   workflows,
		Predictions: predictions,
		AI:          provider,
		Lg:          lg,
	})
	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	lg.Infow("listening", "port", cfg.HTTPPort, "backend", cfg.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Errorw("server stopped", "error", err)
	}
}

// openBackend returns the configured backend and, for the database
// backends, the underlying handle.
func openBackend(ctx context.Context, cfg config.Config, lg *zap.SugaredLogger) (backend.Backend, *gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Backend {
	case config.BackendMock:
		s, err := mockstore.New()
		return s, nil, err
	case config.BackendSQLite:
		db, err = gormstore.OpenSQLite(cfg.SQLitePath)
	case config.BackendPostgres:
		db, err = gormstore.OpenPostgres(cfg.DatabaseURL)
	}
	if err != nil {
		return nil, nil, err
	}
	s, err := gormstore.New(db)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AdminPassword == "" {
		lg.Warnw("ADMIN_PASSWORD is empty, default admin not seeded")
		return s, db, nil
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, nil, err
	}
	if err := s.SeedAdmin(ctx, cfg.AdminEmail, hash, lg); err != nil {
		return nil, nil, err
	}
	return s, db, nil
}

func openSettings(ctx context.Context, cfg config.Config, db *gorm.DB) (settings.Store, error) {
	switch cfg.SettingsStore {
	case config.SettingsDB:
		return settings.NewDBStore(db), nil
	case config.SettingsRedis:
		return settings.NewRedisStore(ctx, cfg.RedisAddr)
	case config.SettingsBadger:
		return settings.OpenBadger(cfg.BadgerPath)
	}
	return settings.NewMemoryStore(), nil
}

// closeIfCloser releases stores and clients that hold connections or files.
func closeIfCloser(v any, lg *zap.SugaredLogger) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			lg.Warnw("close failed", "error", err)
		}
	}
}
