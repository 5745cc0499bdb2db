// Package mockstore is the development backend: in-memory tables seeded from
// embedded fixtures. Nothing is persisted across restarts.
package mockstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pilana/internal/backend"
	"pilana/internal/models"
)

type Store struct {
	users    *userTable
	sessions *sessionTable
	audit    *auditTable
	offers   *table[models.Offer]
	orders   *table[models.WorkOrder]
	sawmill  *table[models.SawmillPackage]
	refinish *table[models.RefinishProcess]
	logs     *table[models.Log]
	notes    *table[models.ShippingNote]
	cash     *table[models.CashEntry]
}

var _ backend.Backend = (*Store)(nil)

// NewEmpty returns a store with no rows at all.
func NewEmpty() *Store {
	now := time.Now
	return &Store{
		users:    &userTable{table: newTable(userAcc, now)},
		sessions: &sessionTable{rows: map[string]models.Session{}},
		audit:    &auditTable{},
		offers:   newTable(offerAcc, now),
		orders:   newTable(workOrderAcc, now),
		sawmill:  newTable(packageAcc, now),
		refinish: newTable(refinishAcc, now),
		logs:     newTable(logAcc, now),
		notes:    newTable(shippingAcc, now),
		cash:     newTable(cashAcc, now),
	}
}

// New returns a store seeded with the embedded fixtures.
func New() (*Store, error) {
	s := NewEmpty()
	if err := s.seed(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Users() backend.UserStore { return s.users }
func (s *Store) Sessions() backend.SessionStore { return s.sessions }
func (s *Store) Audit() backend.AuditStore { return s.audit }
func (s *Store) Offers() backend.Repository[models.Offer] { return s.offers }
func (s *Store) WorkOrders() backend.Repository[models.WorkOrder] { return s.orders }
func (s *Store) Sawmill() backend.Repository[models.SawmillPackage] { return s.sawmill }
func (s *Store) Refinish() backend.Repository[models.RefinishProcess] { return s.refinish }
func (s *Store) Logs() backend.Repository[models.Log] { return s.logs }
func (s *Store) ShippingNotes() backend.Repository[models.ShippingNote] { return s.notes }
func (s *Store) Cash() backend.Repository[models.CashEntry] { return s.cash }
func (s *Store) Close() error { return nil }

type userTable struct {
	*table[models.User]
}

func (u *userTable) ByEmail(ctx context.Context, email string) (models.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, r := range u.rows {
		if strings.EqualFold(r.Email, email) {
			return r, nil
		}
	}
	return models.User{}, backend.ErrNotFound
}

func (u *userTable) Insert(ctx context.Context, rec *models.User) error {
	if _, err := u.ByEmail(ctx, rec.Email); err == nil {
		return backend.ErrDuplicate
	}
	return u.table.Insert(ctx, rec)
}

type sessionTable struct {
	mu   sync.RWMutex
	rows map[string]models.Session
}

func (t *sessionTable) Create(ctx context.Context, s *models.Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[s.JTI] = *s
	return nil
}

func (t *sessionTable) Find(ctx context.Context, jti string) (models.Session, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.rows[jti]
	if !ok {
		return models.Session{}, backend.ErrNotFound
	}
	return s, nil
}

func (t *sessionTable) Revoke(ctx context.Context, jti string, at time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.rows[jti]
	if !ok {
		return backend.ErrNotFound
	}
	s.RevokedAt = &at
	t.rows[jti] = s
	return nil
}

type auditTable struct {
	mu   sync.RWMutex
	rows []models.AuditLog
}

func (t *auditTable) Insert(ctx context.Context, e *models.AuditLog) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	e.ID = int64(len(t.rows) + 1)
	t.rows = append(t.rows, *e)
	return nil
}

func (t *auditTable) Recent(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	t.mu.RLock()
	out := make([]models.AuditLog, 0, len(t.rows))
	for _, r := range t.rows {
		if userID == "" || (r.UserID != nil && *r.UserID == userID) {
			out = append(out, r)
		}
	}
	t.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
