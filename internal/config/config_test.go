package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events-board.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	v, err := New(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.ListenAddress != ":8080" {
		t.Errorf("ListenAddress = %q, want :8080", cfg.ListenAddress)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout)
	}
	if cfg.IdleTimeout != 60*time.Second {
		t.Errorf("IdleTimeout = %v, want 60s", cfg.IdleTimeout)
	}
	if cfg.Source != SourceStatic {
		t.Errorf("Source = %q, want static", cfg.Source)
	}
	if !cfg.ShowTime {
		t.Error("ShowTime should default to true")
	}
	if want := filepath.Join(cfg.DataDir, "events.db"); cfg.SQLiteDSN != want {
		t.Errorf("SQLiteDSN = %q, want %q", cfg.SQLiteDSN, want)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
listen_address: "127.0.0.1:9000"
read_timeout: 2s
source: SQLite
sqlite_dsn: /tmp/board.db
show_time: false
log_level: debug
`)
	v, err := New(path)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.ListenAddress != "127.0.0.1:9000" {
		t.Errorf("ListenAddress = %q", cfg.ListenAddress)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want 2s", cfg.ReadTimeout)
	}
	if cfg.Source != SourceSQLite {
		t.Errorf("Source = %q, want sqlite", cfg.Source)
	}
	if cfg.SQLiteDSN != "/tmp/board.db" {
		t.Errorf("SQLiteDSN = %q", cfg.SQLiteDSN)
	}
	if cfg.ShowTime {
		t.Error("ShowTime should be false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "source: json\n")
	t.Setenv("EVENTS_BOARD_SOURCE", "static")
	t.Setenv("EVENTS_BOARD_SHOW_TIME", "false")

	v, err := New(path)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Source != SourceStatic {
		t.Errorf("Source = %q, want static from env", cfg.Source)
	}
	if cfg.ShowTime {
		t.Error("ShowTime should be false from env")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{
			name:    "unknown source",
			body:    "source: postgres\n",
			wantErr: ErrUnknownSource,
		},
		{
			name: "zero timeout",
			body: "write_timeout: 0s\n",
		},
		{
			name: "empty listen address",
			body: "listen_address: \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}

			_, err = Load(v)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_MissingExplicitFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
