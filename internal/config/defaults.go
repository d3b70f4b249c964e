package config

import "time"

// DefaultFile is the config path used when --config is not given.
const DefaultFile = ".craftburger.yml"

// DefaultContactEndpoint is the Formspree form the site has always posted to.
const DefaultContactEndpoint = "https://formspree.io/f/xgvaezyd"

// DefaultImmutableAssets are path globs served with long-lived cache headers.
var DefaultImmutableAssets = []string{
	"/static/**/*.css",
	"/static/**/*.js",
	"/static/**/*.svg",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Brand: "Craft Burger Co.",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			AllowAllOrigins: false,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			ImmutableAssets: DefaultImmutableAssets,
		},
		Theme: ThemeConfig{
			CookieName: "theme",
			Default:    "light",
		},
		Contact: ContactConfig{
			Endpoint: DefaultContactEndpoint,
			ReplyTo:  "contact@craftburger.fr",
			Timeout:  10 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "data/craftburger.db",
		},
		Log: LogConfig{
			Level: "info",
			Human: false,
		},
	}
}
