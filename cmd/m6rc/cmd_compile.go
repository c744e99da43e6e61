package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/m6r-ai/m6rclib/config"
	"github.com/m6r-ai/m6rclib/format"
	"github.com/m6r-ai/m6rclib/metaphor"
)

func newCompileCmd() *cobra.Command {
	var searchPaths []string
	var output string

	cmd := &cobra.Command{
		Use:   "compile <file>",
		Short: "Compile a Metaphor file into prompt text",
		Long: `Compile a Metaphor file into prompt text.

Include directives are resolved against the current directory and any
search paths given with -I or listed in m6rc.yaml. The compiled prompt
goes to stdout unless -o or the configured output file says otherwise.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCompile(args[0], searchPaths, output)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&searchPaths, "search-path", "I", nil, "directory to search for included files (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the compiled prompt to this file instead of stdout")

	return cmd
}

func runCompile(filename string, flagPaths []string, flagOutput string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	root, err := metaphor.ParseFile(filename, append(cfg.SearchPaths, flagPaths...))
	if err != nil {
		return err
	}

	output := flagOutput
	if output == "" {
		output = cfg.Output
	}
	if output == "" {
		return format.NewTextEncoder(os.Stdout).Encode(root)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	if err := format.NewTextEncoder(f).Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Println(okStyle.Render("wrote " + output))
	return nil
}
