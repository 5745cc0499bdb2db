package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pilana/internal/models"
)

// ErrNotSet is returned by a Store for a key that was never written.
var ErrNotSet = errors.New("setting not set")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

type MemoryStore struct {
	mu   sync.RWMutex
	vals map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vals: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, ErrNotSet
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.vals[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

const redisPrefix = "pilana:settings:"

type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to addr and pings it once.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotSet
	}
	return v, err
}

func (r *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, redisPrefix+key, value, 0).Err()
}

func (r *RedisStore) Close() error { return r.rdb.Close() }

type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens the store at dir, or an in-memory one when dir is empty.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotSet
	}
	return out, err
}

func (b *BadgerStore) Put(_ context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *BadgerStore) Close() error { return b.db.Close() }

// DBStore keeps settings in the settings table of the relational backend.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore { return &DBStore{db: db} }

func (d *DBStore) Get(ctx context.Context, key string) ([]byte, error) {
	var s models.Setting
	err := d.db.WithContext(ctx).First(&s, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotSet
	}
	if err != nil {
		return nil, err
	}
	return []byte(s.Value), nil
}

func (d *DBStore) Put(ctx context.Context, key string, value []byte) error {
	s := models.Setting{Key: key, Value: string(value), UpdatedAt: time.Now()}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}
