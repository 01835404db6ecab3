package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without subcommands
var rootCmd = &cobra.Command{
	Use:   "tilctl",
	Short: "TIL acronym catalogue server",
	Long:  `tilctl runs and manages the TIL acronym catalogue server.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
