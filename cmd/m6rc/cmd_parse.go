package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m6r-ai/m6rclib/config"
	"github.com/m6r-ai/m6rclib/format"
	"github.com/m6r-ai/m6rclib/metaphor"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var searchPaths []string

	cmd := &cobra.Command{
		Use:           "parse <file>",
		Short:         "Parse a Metaphor file and dump the syntax tree",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runParse(args[0], outputFormat, searchPaths)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")
	cmd.Flags().StringArrayVarP(&searchPaths, "search-path", "I", nil, "directory to search for included files (repeatable)")

	return cmd
}

func runParse(filename, outputFormat string, flagPaths []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	root, err := metaphor.ParseFile(filename, append(cfg.SearchPaths, flagPaths...))
	if err != nil {
		return err
	}

	switch outputFormat {
	case "json":
		if err := format.NewJSONEncoder(os.Stdout).Encode(root); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Println()
	case "text":
		if err := format.NewTextEncoder(os.Stdout).Encode(root); err != nil {
			return fmt.Errorf("encode text: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}

	return nil
}
