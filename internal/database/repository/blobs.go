package repository

import (
	"context"
	"database/sql"
)

// BlobRepo handles serialized collection blobs, one row per (namespace, key).
type BlobRepo struct {
	db *sql.DB
}

func NewBlobRepo(db *sql.DB) *BlobRepo { return &BlobRepo{db: db} }

func (r *BlobRepo) Put(ctx context.Context, namespace, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO blobs(namespace, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(namespace, key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP;
	`, namespace, key, value)
	return err
}

// Get returns nil when no blob is stored under the key.
func (r *BlobRepo) Get(ctx context.Context, namespace, key string) (*Blob, error) {
	row := r.db.QueryRowContext(ctx, `SELECT namespace, key, value, updated_at FROM blobs WHERE namespace = ? AND key = ?`, namespace, key)
	var b Blob
	if err := row.Scan(&b.Namespace, &b.Key, &b.Value, &b.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
