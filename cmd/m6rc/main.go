package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "m6rc",
		Short: "A compiler for the Metaphor prompt language",
	}

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInitCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
