// SPDX-License-Identifier: EPL-2.0

// Package cli holds the terminal styling of the retrocrush command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#33FF66") // phosphor green
	warnColor   = lipgloss.Color("#FFB000") // amber
	errorColor  = lipgloss.Color("#FF3355")
	mutedColor  = lipgloss.Color("#888888")
	textColor   = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	WarnStyle = lipgloss.NewStyle().
			Foreground(warnColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints the program name and version.
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("retrocrush"))
	PrintField(os.Stdout, "Version", version)
}

// PrintError writes an error line to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintWarning writes a warning line to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", WarnStyle.Render("Warning:"), message)
}

// PrintField writes one "key: value" line.
func PrintField(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}
