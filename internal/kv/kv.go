// Package kv is the key-value primitive collections are persisted through:
// synchronous string get/set, namespaced by a store identifier.
package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/jask/studybunny/internal/database"
	"github.com/jask/studybunny/internal/database/bolt"
	"github.com/jask/studybunny/internal/database/repository"
)

// Store reads and writes opaque string values inside one namespace.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Backend hands out one Store per namespace.
type Backend interface {
	Namespace(id string) Store
	Close() error
}

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverMemory = "memory"
)

// Open builds the backend selected by driver. path is ignored for memory.
func Open(driver, path string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "":
		db, err := database.OpenMigrated(path)
		if err != nil {
			return nil, err
		}
		return NewSQLite(db), nil
	case DriverBolt:
		s, err := bolt.Open(path)
		if err != nil {
			return nil, err
		}
		return NewBolt(s), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// SQLite keeps values in the blobs table.
type SQLite struct {
	db    *sql.DB
	blobs *repository.BlobRepo
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, blobs: repository.NewBlobRepo(db)}
}

func (b *SQLite) Namespace(id string) Store { return sqliteStore{repo: b.blobs, ns: id} }
func (b *SQLite) Close() error              { return b.db.Close() }

type sqliteStore struct {
	repo *repository.BlobRepo
	ns   string
}

func (s sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	blob, err := s.repo.Get(ctx, s.ns, key)
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", s.ns, key, err)
	}
	if blob == nil {
		return "", false, nil
	}
	return blob.Value, true, nil
}

func (s sqliteStore) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Put(ctx, s.ns, key, value); err != nil {
		return fmt.Errorf("set %s/%s: %w", s.ns, key, err)
	}
	return nil
}

// Bolt keeps values in a bbolt file, one bucket per namespace.
type Bolt struct {
	store *bolt.Store
}

func NewBolt(s *bolt.Store) *Bolt { return &Bolt{store: s} }

func (b *Bolt) Namespace(id string) Store { return boltStore{store: b.store, ns: id} }
func (b *Bolt) Close() error              { return b.store.Close() }

type boltStore struct {
	store *bolt.Store
	ns    string
}

func (s boltStore) Get(_ context.Context, key string) (string, bool, error) {
	return s.store.Get(s.ns, key)
}

func (s boltStore) Set(_ context.Context, key, value string) error {
	return s.store.Put(s.ns, key, value)
}

// Memory is an in-process backend for tests and throwaway sessions.
type Memory struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]map[string]string{}}
}

func (m *Memory) Namespace(id string) Store { return memStore{m: m, ns: id} }
func (m *Memory) Close() error              { return nil }

type memStore struct {
	m  *Memory
	ns string
}

func (s memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	v, ok := s.m.values[s.ns][key]
	return v, ok, nil
}

func (s memStore) Set(_ context.Context, key, value string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.values[s.ns] == nil {
		s.m.values[s.ns] = map[string]string{}
	}
	s.m.values[s.ns][key] = value
	return nil
}
