package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/m6r-ai/m6rclib/config"
	"github.com/m6r-ai/m6rclib/ui"
	"github.com/m6r-ai/m6rclib/workspace"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Start the workspace preview server",
		Long: `Start the workspace preview server.

The server lists every Metaphor document under the directory and shows
the compiled prompt, or the error report, for each one. Files are
watched and reparsed as they change.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			err := runServe(dir, addr)
			if err != nil {
				printError(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}

func runServe(dir, addr string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	ws := workspace.New(dir, cfg.SearchPaths)
	if err := ws.ScanAll(); err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}

	watcher := workspace.NewFileWatcher(ws)
	watcher.Start()
	defer watcher.Stop()

	server, err := ui.NewServer(ws)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	displayAddr := addr
	if strings.HasPrefix(addr, ":") {
		displayAddr = "localhost" + addr
	}
	docs := ws.Documents()
	fmt.Printf("Serving %d document%s at http://%s\n", len(docs), plural(len(docs)), displayAddr)
	return http.ListenAndServe(addr, server)
}
