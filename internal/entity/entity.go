// Package entity holds the create/edit form and list behaviour shared by
// every business table: validation, one write per submit, search, confirmed
// delete and export columns.
package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pilana/internal/backend"
)

var ErrDeleteDeclined = errors.New("delete not confirmed")

// ValidationError is returned before any backend call when a record is
// incomplete. Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(msg string) *ValidationError { return &ValidationError{Message: msg} }

// StoreError carries the user-facing message for a failed backend write.
type StoreError struct {
	Message string
	Err     error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Message, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// Confirmer asks whether the row with the given id may be deleted.
type Confirmer func(ctx context.Context, id string) bool

// Confirmed answers every confirmation with v.
func Confirmed(v bool) Confirmer {
	return func(context.Context, string) bool { return v }
}

// Notifier is told about every successful write so open lists can refresh.
type Notifier interface {
	Changed(table, action, id string)
}

type Column[T any] struct {
	Key   string
	Label string
	Value func(T) string
}

// Spec describes one table to the generic form and list.
type Spec[T any] struct {
	Table       string
	SaveError   string
	DeleteError string
	ID          func(*T) string
	Validate    func(*T) error
	Derive      func(*T)
	Search      func(T) []string
	Columns     []Column[T]
}

type Form[T any] struct {
	repo   backend.Repository[T]
	spec   *Spec[T]
	notify Notifier
	lg     *zap.SugaredLogger
}

func NewForm[T any](repo backend.Repository[T], spec *Spec[T], notify Notifier, lg *zap.SugaredLogger) *Form[T] {
	return &Form[T]{repo: repo, spec: spec, notify: notify, lg: lg}
}

// Submit validates rec, recomputes its derived fields and writes it: one Update
// when id is set, one Insert otherwise. onSuccess may be nil.
func (f *Form[T]) Submit(ctx context.Context, id string, rec *T, onSuccess func(T)) (T, error) {
	var zero T
	if f.spec.Validate != nil {
		if err := f.spec.Validate(rec); err != nil {
			return zero, err
		}
	}
	if f.spec.Derive != nil {
		f.spec.Derive(rec)
	}

	action := "insert"
	var err error
	if id != "" {
		action = "update"
		err = f.repo.Update(ctx, id, rec)
	} else {
		err = f.repo.Insert(ctx, rec)
	}
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return zero, err
		}
		f.lg.Errorw("save failed", "table", f.spec.Table, "action", action, "id", id, "error", err)
		return zero, &StoreError{Message: f.spec.SaveError, Err: err}
	}

	if f.notify != nil {
		f.notify.Changed(f.spec.Table, action, f.spec.ID(rec))
	}
	if onSuccess != nil {
		onSuccess(*rec)
	}
	return *rec, nil
}

type List[T any] struct {
	repo   backend.Repository[T]
	spec   *Spec[T]
	notify Notifier
	lg     *zap.SugaredLogger
}

func NewList[T any](repo backend.Repository[T], spec *Spec[T], notify Notifier, lg *zap.SugaredLogger) *List[T] {
	return &List[T]{repo: repo, spec: spec, notify: notify, lg: lg}
}

func (l *List[T]) Table() string { return l.spec.Table }

func (l *List[T]) Fetch(ctx context.Context) ([]T, error) {
	rows, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.spec.Table, err)
	}
	return rows, nil
}

func (l *List[T]) Get(ctx context.Context, id string) (T, error) {
	return l.repo.Get(ctx, id)
}

// Filter returns the rows whose searchable fields contain q, ignoring case.
// rows is never modified.
func (l *List[T]) Filter(rows []T, q string) []T {
	q = strings.ToLower(q)
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if q == "" || l.matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func (l *List[T]) matches(r T, q string) bool {
	if l.spec.Search == nil {
		return false
	}
	for _, field := range l.spec.Search(r) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Search fetches and filters in one step.
func (l *List[T]) Search(ctx context.Context, q string) ([]T, error) {
	rows, err := l.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return l.Filter(rows, q), nil
}

func (l *List[T]) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm(ctx, id) {
		return ErrDeleteDeclined
	}
	if err := l.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return err
		}
		l.lg.Errorw("delete failed", "table", l.spec.Table, "id", id, "error", err)
		return &StoreError{Message: l.spec.DeleteError, Err: err}
	}
	if l.notify != nil {
		l.notify.Changed(l.spec.Table, "delete", id)
	}
	return nil
}

// Rows renders rows into labelled string cells for export and print.
func (l *List[T]) Rows(rows []T) (headers []string, cells [][]string) {
	for _, c := range l.spec.Columns {
		headers = append(headers, c.Label)
	}
	cells = make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(l.spec.Columns))
		for i, c := range l.spec.Columns {
			line[i] = c.Value(r)
		}
		cells = append(cells, line)
	}
	return headers, cells
}
