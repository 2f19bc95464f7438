package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/blocks/pkg/bookmark"
	"github.com/matzehuels/blocks/pkg/errors"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("LoadSettings(missing) = %+v, want defaults", s)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `[bookmarks]
backend = "sqlite"
path = "/tmp/bm.db"

[printer]
settle = "2s"
`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Bookmarks.Backend != BackendSQLite || s.Bookmarks.Path != "/tmp/bm.db" {
		t.Errorf("Bookmarks = %+v", s.Bookmarks)
	}
	if s.Printer.Settle != 2*time.Second {
		t.Errorf("Settle = %v, want 2s", s.Printer.Settle)
	}
	if s.Server.Addr != DefaultSettings().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", s.Server.Addr)
	}
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("BLOCKS_BOOKMARKS", BackendRedis)
	t.Setenv("BLOCKS_REDIS_ADDR", "cache:6379")
	t.Setenv("BLOCKS_ADDR", ":9000")

	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Bookmarks.Backend != BackendRedis || s.Bookmarks.RedisAddr != "cache:6379" {
		t.Errorf("Bookmarks = %+v", s.Bookmarks)
	}
	if s.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", s.Server.Addr)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"unknown backend", func(s *Settings) { s.Bookmarks.Backend = "mongo" }, true},
		{"redis without addr", func(s *Settings) { s.Bookmarks.Backend = BackendRedis }, true},
		{"redis with addr", func(s *Settings) { s.Bookmarks.Backend = BackendRedis; s.Bookmarks.RedisAddr = "x:1" }, false},
		{"negative settle", func(s *Settings) { s.Printer.Settle = -time.Second }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := DefaultSettings()
	want.Bookmarks.Backend = BackendSQLite
	want.Printer.Settle = 750 * time.Millisecond

	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestBookmarkSettingsOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  BookmarkSettings
	}{
		{"file", BookmarkSettings{Backend: BackendFile, Path: filepath.Join(dir, "bm.json")}},
		{"sqlite", BookmarkSettings{Backend: BackendSQLite, Path: filepath.Join(dir, "bm.db")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := tt.cfg.Open(ctx)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer store.Close()
			if _, err := bookmark.Toggle(ctx, store, "waves"); err != nil {
				t.Fatal(err)
			}
			if has, _ := store.Has(ctx, "waves"); !has {
				t.Error("toggled bookmark missing")
			}
		})
	}
}
