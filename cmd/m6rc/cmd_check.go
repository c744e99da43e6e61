package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/m6r-ai/m6rclib/config"
	"github.com/m6r-ai/m6rclib/format"
	"github.com/m6r-ai/m6rclib/workspace"
)

func newCheckCmd() *cobra.Command {
	var searchPaths []string

	cmd := &cobra.Command{
		Use:           "check [directory]",
		Short:         "Parse every Metaphor file under a directory and report errors",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			err := runCheck(dir, searchPaths)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&searchPaths, "search-path", "I", nil, "directory to search for included files (repeatable)")

	return cmd
}

func runCheck(dir string, flagPaths []string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	ws := workspace.New(dir, append(cfg.SearchPaths, flagPaths...))
	if err := ws.ScanAll(); err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	docs := ws.Documents()
	if len(docs) == 0 {
		fmt.Println("no .m6r files found")
		return nil
	}

	failed := 0
	for _, doc := range docs {
		rel := relPath(dir, doc.Path)
		if len(doc.Errors) == 0 {
			fmt.Println(okStyle.Render("ok  ") + rel)
			continue
		}
		failed++
		count := faintStyle.Render(fmt.Sprintf("  %d error%s", len(doc.Errors), plural(len(doc.Errors))))
		fmt.Println(errorStyle.Render("err ") + rel + count)
	}

	total := ws.ErrorCount()
	if total == 0 {
		return nil
	}

	for _, doc := range docs {
		if len(doc.Errors) == 0 {
			continue
		}
		fmt.Println()
		if err := format.NewErrorReportEncoder(os.Stdout).Encode(doc.Errors); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}

	return fmt.Errorf("%d syntax error%s in %d file%s", total, plural(total), failed, plural(failed))
}

func relPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
