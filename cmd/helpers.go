package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/ziadkadry99/craftburger/internal/config"
	"github.com/ziadkadry99/craftburger/internal/content"
	"github.com/ziadkadry99/craftburger/internal/db"
	"github.com/ziadkadry99/craftburger/internal/logging"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `craftburger init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:         level,
		HumanReadable: cfg.Log.Human,
		Writer:        os.Stderr,
	})
}

// loadContent reads the configured content file, or the embedded content.
func loadContent(cfg *config.Config) (*content.Site, error) {
	site, err := content.Load(cfg.Site.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return site, nil
}

// openDatabase opens the submissions database, creating its directory.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", cfg.Database.Path, err)
	}
	return database, nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
