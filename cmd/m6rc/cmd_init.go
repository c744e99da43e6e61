package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m6r-ai/m6rclib/config"
)

//go:embed init/main.m6r.tmpl
var mainM6rTemplate string

//go:embed init/m6rc.yaml
var configContent string

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Metaphor project",
		Long: `Initialize a new Metaphor project.

If a directory is given, creates it and initializes the project there.
Otherwise, initializes in the current directory.

This command:
  - Creates main.m6r with a starter Role/Context/Action skeleton
  - Creates m6rc.yaml for search paths and the default output file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir)
		},
	}
}

func runInit(dir string) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		fmt.Printf("Created %s/\n", dir)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	project := filepath.Base(absDir)

	mainPath := filepath.Join(dir, "main.m6r")
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		content := strings.ReplaceAll(mainM6rTemplate, "{{PROJECT}}", project)
		if err := os.WriteFile(mainPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("create main.m6r: %w", err)
		}
		fmt.Println("Created main.m6r")
	} else {
		fmt.Println("main.m6r already exists")
	}

	configPath := filepath.Join(dir, config.Filename)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			return fmt.Errorf("create %s: %w", config.Filename, err)
		}
		fmt.Printf("Created %s\n", config.Filename)
	} else {
		fmt.Printf("%s already exists\n", config.Filename)
	}

	fmt.Println("\nProject initialized! Next steps:")
	fmt.Println("  - Compile: m6rc compile main.m6r")
	fmt.Println("  - Check:   m6rc check")
	fmt.Println("  - Preview: m6rc serve")
	return nil
}
