package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hrmate-ai/hrmate/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(cfgFile); err == nil && !initForce {
			exitOnError(fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile))
		}
		exitOnError(config.RunWizard(cfgFile))
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
