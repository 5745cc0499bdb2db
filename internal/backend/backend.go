// Package backend defines the data-store contract shared by the relational
// store and the in-memory development fixture store.
package backend

import (
	"context"
	"errors"
	"time"

	"pilana/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the table-scoped CRUD surface of one business entity.
// List returns every row ordered by the entity's date column, newest first.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Insert(ctx context.Context, rec *T) error
	Update(ctx context.Context, id string, rec *T) error
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	Repository[models.User]
	ByEmail(ctx context.Context, email string) (models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *models.Session) error
	Find(ctx context.Context, jti string) (models.Session, error)
	Revoke(ctx context.Context, jti string, at time.Time) error
}

type AuditStore interface {
	Insert(ctx context.Context, e *models.AuditLog) error
	// Recent returns up to limit entries, newest first. An empty userID
	// returns entries for everyone.
	Recent(ctx context.Context, userID string, limit int) ([]models.AuditLog, error)
}

type Backend interface {
	Users() UserStore
	Sessions() SessionStore
	Audit() AuditStore
	Offers() Repository[models.Offer]
	WorkOrders() Repository[models.WorkOrder]
	Sawmill() Repository[models.SawmillPackage]
	Refinish() Repository[models.RefinishProcess]
	Logs() Repository[models.Log]
	ShippingNotes() Repository[models.ShippingNote]
	Cash() Repository[models.CashEntry]
	Close() error
}
