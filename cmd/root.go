package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/craftburger/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "craftburger",
	Short: "Craft Burger Co. restaurant website",
	Long: `craftburger serves the Craft Burger Co. website: the home page, the
menu with deep links to individual items, the restaurant list and the
contact form. It also inspects the menu catalog and contact submissions
from the command line.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
