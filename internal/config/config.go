package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a
// double underscore: CRAFTBURGER_SERVER__PORT -> server.port.
const EnvPrefix = "CRAFTBURGER_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CRAFTBURGER_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validThemes = map[string]bool{
	"light": true,
	"dark":  true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Site.Brand) == "" {
		return fmt.Errorf("site.brand is required")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535")
	}
	if c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}

	if c.Theme.CookieName == "" {
		return fmt.Errorf("theme.cookie_name is required")
	}
	if !validThemes[c.Theme.Default] {
		return fmt.Errorf("invalid theme.default %q: must be light or dark", c.Theme.Default)
	}

	if c.Contact.Endpoint == "" {
		return fmt.Errorf("contact.endpoint is required")
	}
	u, err := url.Parse(c.Contact.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid contact.endpoint %q: must be an absolute http(s) URL", c.Contact.Endpoint)
	}
	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("contact.timeout must be positive")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level %q: must be debug, info, warn, or error", c.Log.Level)
	}

	return nil
}

// Addr returns the host:port the server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
