package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackendsIsolateNamespaces(t *testing.T) {
	t.Parallel()

	for _, driver := range []string{DriverSQLite, DriverBolt, DriverMemory} {
		driver := driver
		t.Run(driver, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			backend, err := Open(driver, filepath.Join(t.TempDir(), "store."+driver))
			require.NoError(t, err)
			t.Cleanup(func() { _ = backend.Close() })

			marks := backend.Namespace("app_marks")
			teachers := backend.Namespace("app_teachers")

			_, ok, err := marks.Get(ctx, "marks")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, marks.Set(ctx, "marks", "a"))
			require.NoError(t, teachers.Set(ctx, "marks", "b"))
			require.NoError(t, marks.Set(ctx, "marks", "c"))

			v, ok, err := marks.Get(ctx, "marks")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "c", v)

			v, ok, err = teachers.Get(ctx, "marks")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "b", v)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open("redis", "")
	require.ErrorContains(t, err, `unknown store driver "redis"`)
}
