package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MediaDir != "songs" {
		t.Errorf("MediaDir = %q, want songs", cfg.MediaDir)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != "8000" {
		t.Errorf("bind = %s:%s, want 0.0.0.0:8000", cfg.Host, cfg.Port)
	}
	if cfg.ChunkSize != 1<<20 {
		t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, 1<<20)
	}
	if !cfg.WatchLibrary {
		t.Error("WatchLibrary should default to true")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MUSIC_DIR", "/srv/media")
	t.Setenv("PORT", "9000")
	t.Setenv("CHUNK_SIZE", "65536")
	t.Setenv("WATCH_LIBRARY", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.MediaDir != "/srv/media" {
		t.Errorf("MediaDir = %q", cfg.MediaDir)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ChunkSize != 65536 {
		t.Errorf("ChunkSize = %d", cfg.ChunkSize)
	}
	if cfg.WatchLibrary {
		t.Error("WatchLibrary = true, want false")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "lots")
	t.Setenv("WATCH_LIBRARY", "sure")

	cfg := Load()

	if cfg.ChunkSize != 1<<20 {
		t.Errorf("ChunkSize = %d, want default on malformed input", cfg.ChunkSize)
	}
	if !cfg.WatchLibrary {
		t.Error("WatchLibrary should fall back to default on malformed input")
	}
}
