package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blocks/pkg/bookmark"
	"github.com/matzehuels/blocks/pkg/errors"
)

// Bookmark backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Settings is the user's config.toml.
type Settings struct {
	Bookmarks BookmarkSettings `toml:"bookmarks"`
	Printer   PrinterSettings  `toml:"printer"`
	Server    ServerSettings   `toml:"server"`
}

// BookmarkSettings selects and configures the bookmark store.
type BookmarkSettings struct {
	Backend string `toml:"backend"`
	// Path is the JSON file for the file backend or the database for sqlite.
	// Empty means the default location.
	Path          string `toml:"path,omitempty"`
	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
	RedisKey      string `toml:"redis_key,omitempty"`
}

// PrinterSettings configures the headless Chrome printer.
type PrinterSettings struct {
	// ControlURL connects to a running browser instead of launching one.
	ControlURL string        `toml:"control_url,omitempty"`
	Settle     time.Duration `toml:"settle"`
}

// ServerSettings configures `blocks serve`.
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Bookmarks: BookmarkSettings{Backend: BackendFile},
		Printer:   PrinterSettings{Settle: 500 * time.Millisecond},
		Server:    ServerSettings{Addr: "localhost:8080"},
	}
}

// Dir returns $XDG_CONFIG_HOME/blocks, falling back to ~/.config/blocks.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "blocks"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "blocks"), nil
}

// SettingsPath returns the default config.toml location.
func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadSettings reads settings from path on top of the defaults. A missing
// file yields the defaults. Environment overrides are applied last.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &s); err != nil {
				return s, errors.Wrap(errors.ErrCodeInvalidInput, err, "load settings %s", path)
			}
		}
	}
	s.applyEnv()
	return s, s.Validate()
}

// applyEnv overrides settings from BLOCKS_* environment variables.
func (s *Settings) applyEnv() {
	if v := os.Getenv("BLOCKS_BOOKMARKS"); v != "" {
		s.Bookmarks.Backend = v
	}
	if v := os.Getenv("BLOCKS_REDIS_ADDR"); v != "" {
		s.Bookmarks.RedisAddr = v
	}
	if v := os.Getenv("BLOCKS_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Bookmarks.RedisDB = n
		}
	}
	if v := os.Getenv("BLOCKS_CHROME_URL"); v != "" {
		s.Printer.ControlURL = v
	}
	if v := os.Getenv("BLOCKS_ADDR"); v != "" {
		s.Server.Addr = v
	}
}

// Validate checks enum fields and required combinations.
func (s Settings) Validate() error {
	switch s.Bookmarks.Backend {
	case BackendFile, BackendSQLite:
	case BackendRedis:
		if s.Bookmarks.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "bookmarks.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown bookmarks.backend %q (want file, sqlite or redis)", s.Bookmarks.Backend)
	}
	if s.Printer.Settle < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "printer.settle must not be negative")
	}
	return nil
}

// SaveSettings writes s to path, creating its directory.
func SaveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "# blocks configuration")
	fmt.Fprintln(f)
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

// Open returns the bookmark store these settings select.
func (b BookmarkSettings) Open(ctx context.Context) (bookmark.Store, error) {
	switch b.Backend {
	case BackendSQLite:
		path := b.Path
		if path == "" {
			dir, err := Dir()
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create config dir: %w", err)
			}
			path = filepath.Join(dir, "bookmarks.db")
		}
		return bookmark.NewSQLiteStore(ctx, path)
	case BackendRedis:
		return bookmark.NewRedisStore(ctx, bookmark.RedisConfig{
			Addr:     b.RedisAddr,
			Password: b.RedisPassword,
			DB:       b.RedisDB,
			Key:      b.RedisKey,
		})
	default:
		path := b.Path
		if path == "" {
			dir, err := Dir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, bookmark.Key+".json")
		}
		return bookmark.NewFileStore(path)
	}
}
