package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
	Settings SettingsConfig `mapstructure:"settings"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone         string `mapstructure:"timezone"`
	HeaderDateFormat string `mapstructure:"header_date_format"`
}

// LogConfig holds the log file location; stdout belongs to the TUI.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

// SettingsConfig holds the toggles of the settings screen.
type SettingsConfig struct {
	Notifications bool `mapstructure:"notifications"`
}

// Location resolves the configured timezone, falling back to local time.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.UI.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", c.UI.Timezone, err)
	}
	return loc, nil
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "studybunny")
}

// Path is the config file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("STUDYBUNNY_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "studybunny", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// STUDYBUNNY_; a .env file in the working directory is loaded first.
func Load() (Config, error) {
	// optional
	_ = godotenv.Load()

	v := viper.New()

	// default values
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", filepath.Join(dataDir(), "studybunny.db"))
	v.SetDefault("ui.timezone", "Local")
	v.SetDefault("ui.header_date_format", "Jan 2")
	v.SetDefault("log.path", filepath.Join(dataDir(), "studybunny.log"))
	v.SetDefault("settings.notifications", false)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("STUDYBUNNY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if _, err := os.Stat(Path()); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to Path, creating the config directory if needed. Used by
// the settings screen.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.driver", cfg.Store.Driver)
	v.Set("store.path", cfg.Store.Path)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.header_date_format", cfg.UI.HeaderDateFormat)
	v.Set("log.path", cfg.Log.Path)
	v.Set("settings.notifications", cfg.Settings.Notifications)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
