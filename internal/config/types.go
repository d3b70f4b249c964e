package config

import "time"

// Config is the top-level craftburger configuration, corresponding to .craftburger.yml.
type Config struct {
	Site     SiteConfig     `yaml:"site" koanf:"site"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Theme    ThemeConfig    `yaml:"theme" koanf:"theme"`
	Contact  ContactConfig  `yaml:"contact" koanf:"contact"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// SiteConfig controls branding and where page content comes from.
type SiteConfig struct {
	Brand string `yaml:"brand" koanf:"brand"`
	// ContentFile overrides the embedded content (menu, restaurants, news).
	ContentFile string `yaml:"content_file" koanf:"content_file"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host" koanf:"host"`
	Port            int           `yaml:"port" koanf:"port"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	WriteTimeout    time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
	ImmutableAssets []string      `yaml:"immutable_assets" koanf:"immutable_assets"`
}

// ThemeConfig holds the theme cookie name and the fallback theme.
type ThemeConfig struct {
	CookieName string `yaml:"cookie_name" koanf:"cookie_name"`
	Default    string `yaml:"default" koanf:"default"`
}

// ContactConfig describes the external form-processing endpoint.
type ContactConfig struct {
	Endpoint string        `yaml:"endpoint" koanf:"endpoint"`
	ReplyTo  string        `yaml:"reply_to" koanf:"reply_to"`
	Timeout  time.Duration `yaml:"timeout" koanf:"timeout"`
}

// DatabaseConfig points at the SQLite file used for submission records.
type DatabaseConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
	Human bool   `yaml:"human" koanf:"human"`
}
