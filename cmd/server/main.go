package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	serveCmd := serveCommand()

	rootCmd := &cobra.Command{
		Use:          "thumbnail-review",
		Short:        "Thumbnail compliance review API",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	rootCmd.AddCommand(serveCmd, migrateCommand())
	return rootCmd
}
