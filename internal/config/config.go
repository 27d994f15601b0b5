// Package config loads engine configuration from an optional YAML file
// layered under INTERVIEW_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	LLM     LLMConfig     `koanf:"llm"`
	Session SessionConfig `koanf:"session"`
	Archive ArchiveConfig `koanf:"archive"`
}

type ServerConfig struct {
	Port           int `koanf:"port"`
	RequestTimeout int `koanf:"request_timeout"` // seconds
}

type LLMConfig struct {
	APIKey      string  `koanf:"api_key"`
	BaseURL     string  `koanf:"base_url"`
	Model       string  `koanf:"model"`
	Temperature float32 `koanf:"temperature"`
	Timeout     int     `koanf:"timeout"` // seconds
}

type SessionConfig struct {
	MaxAgeMinutes          int `koanf:"max_age_minutes"`
	CleanupIntervalMinutes int `koanf:"cleanup_interval_minutes"`
}

type ArchiveConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// RequestTimeoutDuration returns the HTTP request timeout.
func (c ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// TimeoutDuration returns the per-call LLM timeout.
func (c LLMConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// MaxAge returns the session expiry age for the cleanup sweep.
func (c SessionConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeMinutes) * time.Minute
}

// CleanupInterval returns how often the cleanup sweep runs.
func (c SessionConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalMinutes) * time.Minute
}

// Load reads configuration: YAML file (if path is non-empty and exists),
// then environment variables, then defaults for anything still unset.
// Env keys map INTERVIEW_LLM__API_KEY -> llm.api_key.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("INTERVIEW_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "INTERVIEW_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	defaults := map[string]interface{}{
		"server.port":                      8080,
		"server.request_timeout":           120,
		"llm.model":                        "gpt-4o",
		"llm.temperature":                  0.7,
		"llm.timeout":                      30,
		"session.max_age_minutes":          60,
		"session.cleanup_interval_minutes": 10,
		"archive.path":                     "./data/interviews.db",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
