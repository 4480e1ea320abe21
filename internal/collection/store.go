// Package collection persists one ordered collection of records as a single
// JSON blob under a fixed key.
package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jask/studybunny/internal/kv"
	"github.com/jask/studybunny/internal/record"
)

// Location is where a schema's collection lives in the kv backend.
type Location struct {
	Namespace string
	Key       string
}

// LocationOf maps a schema to its namespace and key.
func LocationOf(kind record.Kind) Location {
	switch kind {
	case record.KindMark:
		return Location{Namespace: "app_marks", Key: "marks"}
	case record.KindHomework:
		return Location{Namespace: "app_homework", Key: "homework"}
	case record.KindTeacher:
		return Location{Namespace: "app_teachers", Key: "teachers"}
	default:
		panic(fmt.Sprintf("collection: unknown record kind %q", kind))
	}
}

// Store is the persisted collection of one schema. It holds no records in
// memory; every call goes to the kv store.
type Store[R record.Record] struct {
	kv  kv.Store
	key string
}

func New[R record.Record](s kv.Store, key string) *Store[R] {
	return &Store[R]{kv: s, key: key}
}

// Open returns the store for kind inside backend.
func Open[R record.Record](backend kv.Backend, kind record.Kind) *Store[R] {
	loc := LocationOf(kind)
	return New[R](backend.Namespace(loc.Namespace), loc.Key)
}

func (s *Store[R]) Key() string { return s.key }

// Load returns the stored records in append order. A missing, unreadable or
// malformed blob loads as an empty collection.
func (s *Store[R]) Load(ctx context.Context) []R {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Printf("warn: load %s: %v", s.key, err)
		return []R{}
	}
	if !ok || raw == "" {
		return []R{}
	}
	var out []R
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("warn: decode %s: %v", s.key, err)
		return []R{}
	}
	if out == nil {
		out = []R{}
	}
	return out
}

// SaveAll overwrites the stored collection with records.
func (s *Store[R]) SaveAll(ctx context.Context, records []R) error {
	if records == nil {
		records = []R{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

// Append adds r at the end of the stored collection.
func (s *Store[R]) Append(ctx context.Context, r R) error {
	records := s.Load(ctx)
	return s.SaveAll(ctx, append(records, r))
}

// ReplaceByID swaps the record with the given id for r. It reports false and
// writes nothing when no record has that id.
func (s *Store[R]) ReplaceByID(ctx context.Context, id string, r R) (bool, error) {
	records := s.Load(ctx)
	idx := IndexOf(records, id)
	if idx < 0 {
		return false, nil
	}
	records[idx] = r
	return true, s.SaveAll(ctx, records)
}

// IndexOf finds id by linear scan, -1 when absent.
func IndexOf[R record.Record](records []R, id string) int {
	for i, r := range records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}
