// Package bolt keeps namespaced string values in a bbolt file, one bucket per namespace.
package bolt

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"
)

type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the bbolt file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "mkdir bolt dir")
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt %s", path)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get reports ok=false when the bucket or key does not exist.
func (s *Store) Get(namespace, key string) (value string, ok bool, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(namespace))
		if b == nil {
			return nil
		}
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction
		value, ok = string(v), true
		return nil
	})
	if err != nil {
		return "", false, errors.Wrapf(err, "get %s/%s", namespace, key)
	}
	return value, ok, nil
}

func (s *Store) Put(namespace, key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(namespace))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	return errors.Wrapf(err, "put %s/%s", namespace, key)
}
