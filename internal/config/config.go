package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Default configuration values
const (
	DefaultAPIURL   = "http://localhost:3000"
	DefaultAddr     = ":3000"
	DefaultTokenTTL = 15 * time.Minute
)

// Config holds application configuration
type Config struct {
	// ServerURL is the LiveKit server address. It is read once and not
	// validated here; an empty value fails when a room is joined.
	ServerURL string

	// APIURL is the base URL of the connection-details endpoint
	APIURL string

	// Credentials used by the local endpoint to mint access tokens
	APIKey    string
	APISecret string
	TokenTTL  time.Duration

	// Addr is the listen address for the local endpoint
	Addr string

	DataDir string
	LogFile string
}

// Options for loading config with CLI flag overrides
type Options struct {
	ServerURL string
	APIURL    string
	Addr      string
}

type rawEnv struct {
	ServerURL string        `env:"LIVEKIT_URL"`
	APIKey    string        `env:"LIVEKIT_API_KEY"`
	APISecret string        `env:"LIVEKIT_API_SECRET"`
	APIURL    string        `env:"WELLNESS_API_URL"`
	Addr      string        `env:"WELLNESS_ADDR"`
	TokenTTL  time.Duration `env:"WELLNESS_TOKEN_TTL" envDefault:"15m"`
	DataDir   string        `env:"WELLNESS_DATA_DIR"`
	LogFile   string        `env:"WELLNESS_LOG_FILE"`
}

// Load reads configuration with the following priority:
// 1. CLI flags (passed via Options) - highest priority
// 2. Environment variables
// 3. Hardcoded defaults - lowest priority
func Load(opts Options) (*Config, error) {
	var raw rawEnv
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg := &Config{
		ServerURL: firstNonEmpty(opts.ServerURL, raw.ServerURL),
		APIURL:    strings.TrimRight(firstNonEmpty(opts.APIURL, raw.APIURL, DefaultAPIURL), "/"),
		APIKey:    strings.TrimSpace(raw.APIKey),
		APISecret: strings.TrimSpace(raw.APISecret),
		TokenTTL:  raw.TokenTTL,
		Addr:      firstNonEmpty(opts.Addr, raw.Addr, DefaultAddr),
		DataDir:   raw.DataDir,
		LogFile:   raw.LogFile,
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	if cfg.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(dir, "wellness")
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, "wellness.log")
	}

	return cfg, nil
}

// JournalPath returns the path of the check-in history database
func (c *Config) JournalPath() string {
	return filepath.Join(c.DataDir, "journal.db")
}

// HasTokenCredentials reports whether the local endpoint can mint tokens
func (c *Config) HasTokenCredentials() bool {
	return c.APIKey != "" && c.APISecret != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
