package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STUDYBUNNY_CONFIG", filepath.Join(home, "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Store.Driver)
	require.Equal(t, filepath.Join(home, ".local", "share", "studybunny", "studybunny.db"), cfg.Store.Path)
	require.Equal(t, "Jan 2", cfg.UI.HeaderDateFormat)
	require.False(t, cfg.Settings.Notifications)

	loc, err := cfg.Location()
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "cfg", "config.toml")
	t.Setenv("STUDYBUNNY_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Store.Driver = "bolt"
	cfg.Store.Path = filepath.Join(home, "data.bolt")
	cfg.UI.Timezone = "Australia/Melbourne"
	cfg.Settings.Notifications = true
	require.NoError(t, Save(cfg))

	_, err = os.Stat(path)
	require.NoError(t, err)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, got)

	loc, err := got.Location()
	require.NoError(t, err)
	require.Equal(t, "Australia/Melbourne", loc.String())
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STUDYBUNNY_CONFIG", filepath.Join(home, "missing.toml"))
	t.Setenv("STUDYBUNNY_STORE_DRIVER", "memory")
	t.Setenv("STUDYBUNNY_UI_TIMEZONE", "Nowhere/Special")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Store.Driver)

	loc, err := cfg.Location()
	require.Error(t, err)
	require.Equal(t, time.Local, loc)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\ndriver = "), 0o600))
	t.Setenv("STUDYBUNNY_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}
