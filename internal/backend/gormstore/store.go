// Package gormstore is the relational backend. It runs on Postgres in
// production and on SQLite for local runs and tests.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pilana/internal/backend"
	"pilana/internal/models"
)

type Store struct {
	db *gorm.DB
}

var _ backend.Backend = (*Store)(nil)

func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Warn)})
}

// OpenSQLite opens a file database, or a private in-memory one for ":memory:".
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// New migrates the schema and returns the store.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Users() backend.UserStore { return userRepo{repo[models.User]{s.db, "created_at"}} }
func (s *Store) Sessions() backend.SessionStore { return sessionRepo{s.db} }
func (s *Store) Audit() backend.AuditStore { return auditRepo{s.db} }
func (s *Store) Offers() backend.Repository[models.Offer] {
	return repo[models.Offer]{s.db, "datum"}
}
func (s *Store) WorkOrders() backend.Repository[models.WorkOrder] {
	return repo[models.WorkOrder]{s.db, "created_at"}
}
func (s *Store) Sawmill() backend.Repository[models.SawmillPackage] {
	return repo[models.SawmillPackage]{s.db, "datum"}
}
func (s *Store) Refinish() backend.Repository[models.RefinishProcess] {
	return repo[models.RefinishProcess]{s.db, "datum"}
}
func (s *Store) Logs() backend.Repository[models.Log] {
	return repo[models.Log]{s.db, "datum_prijema"}
}
func (s *Store) ShippingNotes() backend.Repository[models.ShippingNote] {
	return repo[models.ShippingNote]{s.db, "datum"}
}
func (s *Store) Cash() backend.Repository[models.CashEntry] {
	return repo[models.CashEntry]{s.db, "datum"}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedAdmin creates the default administrator when no user with that email
// exists yet.
func (s *Store) SeedAdmin(ctx context.Context, email, passwordHash string, lg *zap.SugaredLogger) error {
	email = strings.ToLower(email)
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	u := models.User{
		Username:     "admin",
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
		Permissions:  []string{"all"},
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return err
	}
	lg.Infow("seeded default admin", "email", email)
	return nil
}

type repo[T any] struct {
	db      *gorm.DB
	orderBy string
}

func (r repo[T]) List(ctx context.Context) ([]T, error) {
	var rows []T
	if err := r.db.WithContext(ctx).Order(r.orderBy + " desc").Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r repo[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return rec, translate(err)
}

func (r repo[T]) Insert(ctx context.Context, rec *T) error {
	return translate(r.db.WithContext(ctx).Create(rec).Error)
}

// Update overwrites every column of the row. There is no version check, so
// concurrent edits resolve as last write wins.
func (r repo[T]) Update(ctx context.Context, id string, rec *T) error {
	stmt := &gorm.Statement{DB: r.db}
	if err := stmt.Parse(rec); err != nil {
		return err
	}
	if err := stmt.Schema.PrioritizedPrimaryField.Set(ctx, reflect.ValueOf(rec).Elem(), id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(rec).Select("*").Omit("id", "created_at").Updates(rec)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return translate(r.db.WithContext(ctx).First(rec, "id = ?", id).Error)
}

func (r repo[T]) Delete(ctx context.Context, id string) error {
	var rec T
	res := r.db.WithContext(ctx).Delete(&rec, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return backend.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return backend.ErrDuplicate
	}
	return err
}

type userRepo struct {
	repo[models.User]
}

func (u userRepo) ByEmail(ctx context.Context, email string) (models.User, error) {
	var rec models.User
	err := u.db.WithContext(ctx).First(&rec, "LOWER(email) = ?", strings.ToLower(email)).Error
	return rec, translate(err)
}

type sessionRepo struct {
	db *gorm.DB
}

func (s sessionRepo) Create(ctx context.Context, sess *models.Session) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

func (s sessionRepo) Find(ctx context.Context, jti string) (models.Session, error) {
	var sess models.Session
	err := s.db.WithContext(ctx).First(&sess, "jti = ?", jti).Error
	return sess, translate(err)
}

func (s sessionRepo) Revoke(ctx context.Context, jti string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Session{}).Where("jti = ?", jti).Update("revoked_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return backend.ErrNotFound
	}
	return nil
}

type auditRepo struct {
	db *gorm.DB
}

func (a auditRepo) Insert(ctx context.Context, e *models.AuditLog) error {
	return a.db.WithContext(ctx).Create(e).Error
}

func (a auditRepo) Recent(ctx context.Context, userID string, limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	q := a.db.WithContext(ctx).Order("created_at desc").Order("id desc").Limit(limit)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
