package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/craftburger/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Work with the site content file",
}

var contentCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a content file",
	Long: `Parses and validates a content file: required fields, unique ids, the
default menu category and every specialty and news link into the menu.
Without an argument the configured content (or the built-in content) is
checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.Site.ContentFile
		}

		site, err := content.Load(path)
		if err != nil {
			return err
		}
		if path == "" {
			path = "built-in content"
		}
		fmt.Printf("%s: ok\n", path)
		fmt.Printf("  %d categories, %d items (default %s)\n", len(site.Catalog.Names()), site.Catalog.Len(), site.Catalog.Default())
		fmt.Printf("  %d specialties, %d news, %d restaurants\n", len(site.Specialties), len(site.News), len(site.Restaurants))
		return nil
	},
}

func init() {
	contentCmd.AddCommand(contentCheckCmd)
	rootCmd.AddCommand(contentCmd)
}
