package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeoutDuration() != 120*time.Second {
		t.Errorf("RequestTimeout = %v, want 2m", cfg.Server.RequestTimeoutDuration())
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("LLM.Model = %q, want gpt-4o", cfg.LLM.Model)
	}
	if cfg.LLM.TimeoutDuration() != 30*time.Second {
		t.Errorf("LLM timeout = %v, want 30s", cfg.LLM.TimeoutDuration())
	}
	if cfg.Session.MaxAge() != time.Hour {
		t.Errorf("Session.MaxAge() = %v, want 1h", cfg.Session.MaxAge())
	}
	if cfg.Session.CleanupInterval() != 10*time.Minute {
		t.Errorf("Session.CleanupInterval() = %v, want 10m", cfg.Session.CleanupInterval())
	}
	if cfg.Archive.Path != "./data/interviews.db" {
		t.Errorf("Archive.Path = %q", cfg.Archive.Path)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("INTERVIEW_SERVER__PORT", "9090")
	t.Setenv("INTERVIEW_LLM__API_KEY", "test-key")
	t.Setenv("INTERVIEW_LLM__MODEL", "gpt-4o-mini")
	t.Setenv("INTERVIEW_ARCHIVE__ENABLED", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.LLM.APIKey != "test-key" {
		t.Errorf("LLM.APIKey = %q, want test-key", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q, want gpt-4o-mini", cfg.LLM.Model)
	}
	if !cfg.Archive.Enabled {
		t.Error("Archive.Enabled = false, want true")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
server:
  port: 7070
llm:
  model: gpt-4.1
  timeout: 45
session:
  max_age_minutes: 120
archive:
  enabled: true
  path: /tmp/test-archive.db
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.LLM.Model != "gpt-4.1" {
		t.Errorf("LLM.Model = %q, want gpt-4.1", cfg.LLM.Model)
	}
	if cfg.LLM.TimeoutDuration() != 45*time.Second {
		t.Errorf("LLM timeout = %v, want 45s", cfg.LLM.TimeoutDuration())
	}
	if cfg.Session.MaxAge() != 2*time.Hour {
		t.Errorf("Session.MaxAge() = %v, want 2h", cfg.Session.MaxAge())
	}
	if cfg.Archive.Path != "/tmp/test-archive.db" {
		t.Errorf("Archive.Path = %q", cfg.Archive.Path)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	content := "server:\n  port: 7070\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("INTERVIEW_SERVER__PORT", "9191")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, want 9191 (env wins)", cfg.Server.Port)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}
