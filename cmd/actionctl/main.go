package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "actionctl",
	Short: "Operate the dsfr gateway components",
	Long: `actionctl validates components catalogs and triggers catalog actions on a running
gateway. It is meant for deployment checks and manual operations.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
