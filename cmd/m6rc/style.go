package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/m6r-ai/m6rclib/format"
	"github.com/m6r-ai/m6rclib/metaphor"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// printError writes a caret-annotated report to stderr for syntax
// errors and a single styled line for everything else.
func printError(err error) {
	var perr *metaphor.ParserError
	if errors.As(err, &perr) {
		format.NewErrorReportEncoder(os.Stderr).Encode(perr.Errors)
		fmt.Fprintln(os.Stderr, errorStyle.Render(perr.Error()))
		return
	}
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
