package main

import (
	"errors"
	"io"
	"testing"

	"pilana/internal/ai"
	"pilana/internal/logger"
	"pilana/internal/settings"
)

type closeCounter struct {
	closed int
	err    error
}

func (c *closeCounter) Close() error {
	c.closed++
	return c.err
}

func TestCloseIfCloser(t *testing.T) {
	c := &closeCounter{}
	closeIfCloser(c, logger.Nop())
	if c.closed != 1 {
		t.Fatalf("closed %d times, want 1", c.closed)
	}
	failing := &closeCounter{err: errors.New("boom")}
	closeIfCloser(failing, logger.Nop())
	if failing.closed != 1 {
		t.Fatalf("failing closer closed %d times", failing.closed)
	}
	closeIfCloser(settings.NewMemoryStore(), logger.Nop())
}

func TestLongLivedClientsAreClosers(t *testing.T) {
	var _ io.Closer = (*ai.Gemini)(nil)
	var _ io.Closer = (*settings.RedisStore)(nil)
	var _ io.Closer = (*settings.BadgerStore)(nil)

	store, err := settings.OpenBadger("")
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	var s settings.Store = store
	if _, ok := s.(io.Closer); !ok {
		t.Fatal("badger store opened for SETTINGS_STORE=badger would never be closed")
	}
	closeIfCloser(s, logger.Nop())
}
