package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreNamespaces(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "store.bolt")
	s, err := Open(path)
	require.NoError(t, err)

	_, ok, err := s.Get("app_marks", "marks")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Put("app_marks", "marks", "[1]"))
	require.NoError(t, s.Put("app_teachers", "marks", "[2]"))

	v, ok, err := s.Get("app_marks", "marks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[1]", v)

	v, ok, err = s.Get("app_teachers", "marks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[2]", v)
	require.NoError(t, s.Close())

	// values survive reopening
	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	v, ok, err = s.Get("app_marks", "marks")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[1]", v)
}
