package repository

import "time"

// Blob represents a blobs row: one serialized value under a namespaced key.
type Blob struct {
	Namespace string
	Key       string
	Value     string
	UpdatedAt time.Time
}
