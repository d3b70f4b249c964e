package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/craftburger/internal/config"
	"github.com/ziadkadry99/craftburger/internal/contact"
	"github.com/ziadkadry99/craftburger/internal/content"
	"github.com/ziadkadry99/craftburger/internal/db"
	"github.com/ziadkadry99/craftburger/internal/logging"
	"github.com/ziadkadry99/craftburger/internal/menu"
	"github.com/ziadkadry99/craftburger/internal/router"
	"github.com/ziadkadry99/craftburger/internal/server"
	"github.com/ziadkadry99/craftburger/internal/site"
	"github.com/ziadkadry99/craftburger/internal/theme"
)

const (
	// channelIdle is how long a visitor's contact channel survives unused.
	channelIdle = 30 * time.Minute
	sweepEvery  = 5 * time.Minute
)

var (
	serverPort int
	serverOpen bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the website server",
	Long:  `Starts the Craft Burger Co. website with its pages, theme endpoints, menu API and contact form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		siteContent, err := loadContent(cfg)
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Host:            cfg.Server.Host,
			Port:            cfg.Server.Port,
			AllowAll:        cfg.Server.AllowAllOrigins,
			ImmutableAssets: cfg.Server.ImmutableAssets,
			WriteTimeout:    cfg.Server.WriteTimeout,
		}, database, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		hub, channels, err := registerAllRoutes(srv, cfg, siteContent, database, logger)
		if err != nil {
			return err
		}
		defer hub.Close()
		go channels.Run(ctx, sweepEvery)

		shutdownDone := make(chan struct{})
		go func() {
			defer close(shutdownDone)
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			hub.Close()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error(err, "server shutdown")
			}
		}()

		logger.WithFields(map[string]any{
			"version":    Version,
			"addr":       cfg.Addr(),
			"database":   database.Path(),
			"categories": len(siteContent.Catalog.Names()),
			"items":      siteContent.Catalog.Len(),
			"contact":    cfg.Contact.Endpoint,
		}).Info("craftburger server starting")

		if serverOpen {
			go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
		}

		if err := srv.Start(); err != nil {
			return err
		}
		// Start returns as soon as Shutdown begins; wait for in-flight
		// requests before the database closes.
		<-shutdownDone
		return nil
	},
}

// registerAllRoutes wires every feature onto the server router.
func registerAllRoutes(srv *server.Server, cfg *config.Config, c *content.Site, database *db.DB, logger *logging.Logger) (*site.ThemeHub, *contact.Channels, error) {
	r := srv.Router()

	// Menu API
	menu.RegisterRoutes(r, c.Catalog)

	// Contact form
	client := contact.NewFormClient(cfg.Contact.Endpoint, cfg.Contact.ReplyTo, cfg.Contact.Timeout)
	channels := contact.NewChannels(client, channelIdle)
	contactSvc := contact.NewService(channels, contact.NewStore(database), logger)
	contact.RegisterRoutes(r, contactSvc)

	// Pages, theme and static assets
	defaultTheme, err := theme.Parse(cfg.Theme.Default)
	if err != nil {
		return nil, nil, fmt.Errorf("theme.default: %w", err)
	}
	hub := site.NewThemeHub(logger)
	pages, err := site.New(c, router.Default(), hub, site.Options{
		Brand:        cfg.Site.Brand,
		ThemeCookie:  cfg.Theme.CookieName,
		DefaultTheme: defaultTheme,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("building site: %w", err)
	}
	pages.RegisterRoutes(r)

	return hub, channels, nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides config)")
	serverCmd.Flags().BoolVar(&serverOpen, "open", false, "Open the site in the default browser")
	rootCmd.AddCommand(serverCmd)
}
