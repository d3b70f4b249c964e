package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/craftburger/internal/menu"
)

var (
	menuCategory string
	menuJSON     bool
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Inspect the menu catalog",
}

var menuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their items",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := loadContent(cfg)
		if err != nil {
			return err
		}

		categories := c.Catalog.Categories()
		if menuCategory != "" {
			cat, ok := c.Catalog.Category(menuCategory)
			if !ok {
				return fmt.Errorf("%w: %q (available: %s)", menu.ErrUnknownCategory, menuCategory, strings.Join(c.Catalog.Names(), ", "))
			}
			categories = []menu.Category{cat}
		}

		if menuJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(categories)
		}

		for _, cat := range categories {
			marker := ""
			if cat.Name == c.Catalog.Default() {
				marker = " (default)"
			}
			fmt.Printf("%s%s\n", cat.Name, marker)
			for _, item := range cat.Items {
				fmt.Printf("  %-22s %-28s %s\n", item.ID, item.Name, item.Price)
			}
		}
		return nil
	},
}

var menuResolveCmd = &cobra.Command{
	Use:   "resolve <link>",
	Short: "Show where a menu deep link lands",
	Long: `Resolves a link such as "/menu?category=Desserts&item=chocolat-sundae"
against the catalog and prints the category shown, the highlighted item
and the scroll anchor.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		c, err := loadContent(cfg)
		if err != nil {
			return err
		}

		link, ok := menu.ParseLink(args[0])
		if !ok {
			return fmt.Errorf("%q is not a menu link", args[0])
		}
		sel := c.Catalog.Resolve(link)

		if menuJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(sel)
		}

		fmt.Printf("Category: %s\n", sel.Category)
		if sel.CategoryFallback {
			fmt.Println("  (requested category unknown, showing default)")
		}
		if sel.Item != "" {
			fmt.Printf("Item:     %s\n", sel.Item)
			fmt.Printf("Anchor:   #%s\n", sel.Anchor)
		} else if sel.ItemIgnored {
			fmt.Println("Item:     ignored (not in catalog)")
		}
		return nil
	},
}

func init() {
	menuCmd.PersistentFlags().BoolVar(&menuJSON, "json", false, "Print JSON")
	menuListCmd.Flags().StringVar(&menuCategory, "category", "", "Only list this category")
	menuCmd.AddCommand(menuListCmd, menuResolveCmd)
	rootCmd.AddCommand(menuCmd)
}
