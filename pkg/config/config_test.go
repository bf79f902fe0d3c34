package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DATABASE_URL", "REDIS_URL", "OPENAI_API_KEY",
		"PROGCOMPARE_ADDR", "PROGCOMPARE_OPENAI_MODEL", "PROGCOMPARE_CACHE",
		"PROGCOMPARE_CACHE_DIR", "PROGCOMPARE_CATALOG", "PROGCOMPARE_NO_CACHE",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
[server]
addr = "127.0.0.1:9000"
write_timeout = "2m"

[openai]
model = "gpt-4o"
temperature = 0.2

[cache]
backend = "none"
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.WriteTimeout.Duration != 2*time.Minute {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout.Duration != 15*time.Second {
		t.Errorf("unset read_timeout should keep its default, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.OpenAI.Model != "gpt-4o" || cfg.OpenAI.Temperature != 0.2 || cfg.OpenAI.MaxTokens != 1000 {
		t.Errorf("OpenAI = %+v", cfg.OpenAI)
	}
	if cfg.CacheBackend() != CacheNone {
		t.Errorf("CacheBackend() = %q", cfg.CacheBackend())
	}
}

func TestLoadFromPathRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[server]\nport = 80\n")
	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "server.port") {
		t.Errorf("LoadFromPath() error = %v, want unknown key server.port", err)
	}
}

func TestLoadFromPathBadDuration(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "[server]\nread_timeout = \"soon\"\n")
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/programs")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROGCOMPARE_CACHE", "redis")
	t.Setenv("PROGCOMPARE_NO_CACHE", "true")

	path := writeFile(t, "[database]\nurl = \"postgres://file/ignored\"\n")
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/programs" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.Cache.Backend != CacheRedis {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.CacheBackend() != CacheNone {
		t.Errorf("PROGCOMPARE_NO_CACHE should disable caching, got %q", cfg.CacheBackend())
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ""
	cfg.OpenAI.Temperature = 3
	cfg.Cache.Backend = "redis"
	cfg.Export.Format = "svg"

	err := cfg.Validate()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Validate() = %v, want ValidationErrors", err)
	}
	fields := map[string]bool{}
	for _, e := range verrs {
		fields[e.Field] = true
	}
	for _, want := range []string{"server.addr", "openai.temperature", "redis.url", "export.format"} {
		if !fields[want] {
			t.Errorf("missing error for %s in %v", want, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Database.Catalog = "programs.json"
	cfg.Server.ShutdownTimeout = Duration{3 * time.Second}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %o, want 600", info.Mode().Perm())
	}

	got, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if got.Database.Catalog != "programs.json" || got.Server.ShutdownTimeout.Duration != 3*time.Second {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestDirHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "progcompare") {
		t.Errorf("Dir() = %q", dir)
	}
}
