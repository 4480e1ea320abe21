package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/studybunny/internal/database"
	"github.com/jask/studybunny/internal/database/repository"
)

func TestBlobRepoPutGet(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewBlobRepo(db)

	missing, err := repo.Get(ctx, "app_marks", "marks")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, repo.Put(ctx, "app_marks", "marks", `[{"id":"1"}]`))
	require.NoError(t, repo.Put(ctx, "app_homework", "marks", `[]`))
	got, err := repo.Get(ctx, "app_marks", "marks")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, `[{"id":"1"}]`, got.Value)
	require.False(t, got.UpdatedAt.IsZero())

	// overwrite in full
	require.NoError(t, repo.Put(ctx, "app_marks", "marks", `[]`))
	got, err = repo.Get(ctx, "app_marks", "marks")
	require.NoError(t, err)
	require.Equal(t, `[]`, got.Value)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "twice.db")
	require.NoError(t, database.RunMigrations(path))
	require.NoError(t, database.RunMigrations(path))

	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='blobs'`).Scan(&count))
	require.Equal(t, 1, count)
}
