// Package audit records user activity. Recording is best effort: a failed
// insert is logged and never fails the operation being audited.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pilana/internal/backend"
	"pilana/internal/models"
)

type Entry struct {
	UserID   string
	Username string
	Action   string
	Details  any
	IP       string
	Location string
}

type Logger struct {
	store backend.AuditStore
	lg    *zap.SugaredLogger
	now   func() time.Time
}

func New(store backend.AuditStore, lg *zap.SugaredLogger) *Logger {
	return &Logger{store: store, lg: lg, now: time.Now}
}

func (l *Logger) Record(ctx context.Context, e Entry) {
	row := models.AuditLog{
		Username:  e.Username,
		Action:    e.Action,
		Details:   models.MustJSON(e.Details),
		IP:        e.IP,
		Location:  e.Location,
		CreatedAt: l.now(),
	}
	if row.Location == "" {
		row.Location = "N/A"
	}
	if e.UserID != "" {
		uid := e.UserID
		row.UserID = &uid
	}
	if err := l.store.Insert(ctx, &row); err != nil {
		l.lg.Warnw("audit insert failed", "action", e.Action, "error", err)
	}
}

func (l *Logger) Recent(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	return l.store.Recent(ctx, userID, limit)
}
