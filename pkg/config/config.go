// Package config loads progcompare settings from a TOML file and the
// environment.
//
// The file lives at $XDG_CONFIG_HOME/progcompare/config.toml (falling back to
// ~/.config/progcompare/config.toml). Every field has a default, so a missing
// file is not an error. Environment variables win over the file:
//
//	DATABASE_URL              database.url
//	REDIS_URL                 redis.url
//	OPENAI_API_KEY            openai.api_key
//	PROGCOMPARE_ADDR          server.addr
//	PROGCOMPARE_OPENAI_MODEL  openai.model
//	PROGCOMPARE_CACHE         cache.backend
//	PROGCOMPARE_CACHE_DIR     cache.dir
//	PROGCOMPARE_CATALOG       database.catalog
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete progcompare configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	OpenAI   OpenAIConfig   `toml:"openai"`
	Cache    CacheConfig    `toml:"cache"`
	Export   ExportConfig   `toml:"export"`
}

// ServerConfig configures `progcompare serve`.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// DatabaseConfig selects where programs are read from. URL takes precedence
// over Catalog.
type DatabaseConfig struct {
	URL     string `toml:"url"`
	Catalog string `toml:"catalog"`
}

// RedisConfig configures the shared cache.
type RedisConfig struct {
	URL    string `toml:"url"`
	Prefix string `toml:"prefix"`
}

// OpenAIConfig configures the comparison explainer.
type OpenAIConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	Temperature float64 `toml:"temperature"`
	MaxTokens   int64   `toml:"max_tokens"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// ExportConfig holds document defaults.
type ExportConfig struct {
	Format   string `toml:"format"`
	Compress bool   `toml:"compress"`
	Producer string `toml:"producer"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
			MaxBodyBytes:    1 << 20,
		},
		Redis: RedisConfig{
			Prefix: "progcompare:",
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   1000,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
		},
		Export: ExportConfig{
			Format:   "pdf",
			Compress: true,
			Producer: "progcompare",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "progcompare"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "progcompare"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the default config file if it exists, applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	path, err := Path()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}
	return finish(Default())
}

// LoadFromPath reads the config file at path. Missing keys keep their
// defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML with owner-only permissions.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return f.Close()
}

// ApplyEnvOverrides copies set environment variables over the loaded values.
func (c *Config) ApplyEnvOverrides() {
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Catalog, "PROGCOMPARE_CATALOG")
	setString(&c.Redis.URL, "REDIS_URL")
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "PROGCOMPARE_OPENAI_MODEL")
	setString(&c.Server.Addr, "PROGCOMPARE_ADDR")
	setString(&c.Cache.Backend, "PROGCOMPARE_CACHE")
	setString(&c.Cache.Dir, "PROGCOMPARE_CACHE_DIR")
	if v := os.Getenv("PROGCOMPARE_NO_CACHE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Cache.Disabled = b
		}
	}
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Server.Addr == "" {
		add("server.addr", "must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		add("server.max_body_bytes", "must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		add("openai.temperature", "must be between 0 and 2, got %v", c.OpenAI.Temperature)
	}
	if c.OpenAI.MaxTokens <= 0 {
		add("openai.max_tokens", "must be positive, got %d", c.OpenAI.MaxTokens)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Redis.URL == "" {
			add("redis.url", "required when cache.backend is %q", CacheRedis)
		}
	default:
		add("cache.backend", "invalid backend %q, must be one of: file, redis, none", c.Cache.Backend)
	}
	switch c.Export.Format {
	case "pdf", "json":
	default:
		add("export.format", "invalid format %q, must be pdf or json", c.Export.Format)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CacheBackend returns the effective backend, honouring Cache.Disabled.
func (c *Config) CacheBackend() string {
	if c.Cache.Disabled {
		return CacheNone
	}
	return c.Cache.Backend
}
