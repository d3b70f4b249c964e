package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Site.Brand != "Craft Burger Co." {
		t.Errorf("expected default brand, got %q", cfg.Site.Brand)
	}
	if cfg.Theme.Default != "light" {
		t.Errorf("expected default theme light, got %q", cfg.Theme.Default)
	}
	if cfg.Theme.CookieName != "theme" {
		t.Errorf("expected cookie name theme, got %q", cfg.Theme.CookieName)
	}
	if cfg.Contact.Endpoint != DefaultContactEndpoint {
		t.Errorf("expected default endpoint, got %q", cfg.Contact.Endpoint)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.craftburger.yml")

	original := DefaultConfig()
	original.Site.Brand = "Burger Lab"
	original.Server.Port = 9090
	original.Theme.Default = "dark"
	original.Contact.Timeout = 3 * time.Second
	original.Server.ImmutableAssets = []string{"/static/**"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Site.Brand != original.Site.Brand {
		t.Errorf("brand: got %q, want %q", loaded.Site.Brand, original.Site.Brand)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
	if loaded.Theme.Default != original.Theme.Default {
		t.Errorf("theme: got %q, want %q", loaded.Theme.Default, original.Theme.Default)
	}
	if loaded.Contact.Timeout != original.Contact.Timeout {
		t.Errorf("timeout: got %s, want %s", loaded.Contact.Timeout, original.Contact.Timeout)
	}
	if len(loaded.Server.ImmutableAssets) != 1 || loaded.Server.ImmutableAssets[0] != "/static/**" {
		t.Errorf("immutable_assets: got %v", loaded.Server.ImmutableAssets)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Site.Brand != "Craft Burger Co." {
		t.Errorf("expected default brand, got %q", cfg.Site.Brand)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("CRAFTBURGER_THEME__DEFAULT", "dark")
	t.Setenv("CRAFTBURGER_CONTACT__TIMEOUT", "2s")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Theme.Default != "dark" {
		t.Errorf("env override failed: got %q, want dark", loaded.Theme.Default)
	}
	if loaded.Contact.Timeout != 2*time.Second {
		t.Errorf("env duration override failed: got %s", loaded.Contact.Timeout)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CRAFTBURGER_SERVER__PORT", "server.port"},
		{"CRAFTBURGER_LOG__LEVEL", "log.level"},
		{"CRAFTBURGER_CONTACT__REPLY_TO", "contact.reply_to"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty brand", func(c *Config) { c.Site.Brand = "  " }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"negative shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }},
		{"empty cookie name", func(c *Config) { c.Theme.CookieName = "" }},
		{"unknown theme", func(c *Config) { c.Theme.Default = "sepia" }},
		{"empty endpoint", func(c *Config) { c.Contact.Endpoint = "" }},
		{"relative endpoint", func(c *Config) { c.Contact.Endpoint = "/f/xgvaezyd" }},
		{"ftp endpoint", func(c *Config) { c.Contact.Endpoint = "ftp://example.com/f" }},
		{"zero contact timeout", func(c *Config) { c.Contact.Timeout = 0 }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	if err := validatePort("8080"); err != nil {
		t.Errorf("8080 should be valid: %v", err)
	}
	for _, bad := range []string{"", "abc", "0", "65536"} {
		if err := validatePort(bad); err == nil {
			t.Errorf("validatePort(%q) should fail", bad)
		}
	}
}

func TestAddr(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9000
	if got := cfg.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
}
