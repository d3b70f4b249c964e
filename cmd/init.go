package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/craftburger/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize craftburger configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site server and writes a .craftburger.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
