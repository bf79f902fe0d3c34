package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backtoschool/progcompare/pkg/config"
)

func TestMaskSecret(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"abc":              "****",
		"sk-proj-abcd1234": "****1234",
	}
	for in, want := range tests {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgres://app:s3cret@db:5432/backtoschool", "postgres://app:****@db:5432/backtoschool"},
		{"redis://localhost:6379/0", "redis://localhost:6379/0"},
		{"postgres://app@db/backtoschool", "postgres://app@db/backtoschool"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := maskURL(tt.in); got != tt.want {
			t.Errorf("maskURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigRowsHideSecrets(t *testing.T) {
	cfg := config.Default()
	cfg.OpenAI.APIKey = "sk-live-0123456789"
	cfg.Database.URL = "postgres://app:s3cret@db/backtoschool"

	for _, kv := range configRows(cfg) {
		for _, secret := range []string{"sk-live-0123456789", "s3cret"} {
			if strings.Contains(kv[1], secret) {
				t.Errorf("%s shows secret %q", kv[0], kv[1])
			}
		}
	}
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config", appName, "config.toml")

	if err := runCLI(t, "config", "init"); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	if _, err := config.LoadFromPath(path); err != nil {
		t.Fatalf("written config does not load: %v", err)
	}

	if err := os.WriteFile(path, []byte("[server]\naddr = \":9999\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, "config", "init"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Error("config init without --force must not overwrite")
	}

	if err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Fatal(err)
	}
	cfg, err = config.LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("config init --force kept addr %q", cfg.Server.Addr)
	}
}

func TestConfigFlag(t *testing.T) {
	home := isolate(t)
	path := writeTestFile(t, home, "custom.toml", "[export]\nformat = \"json\"\n")

	c := New(os.Stderr, LogInfo)
	c.configPath = path
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Export.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Export.Format)
	}

	bad := writeTestFile(t, home, "bad.toml", "[export]\nformats = \"json\"\n")
	if err := runCLI(t, "--config", bad, "config", "show"); err == nil {
		t.Error("unknown keys should fail config show")
	}
}
