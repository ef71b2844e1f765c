// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(warnColor).
				MarginTop(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter renders kong help with the retrocrush palette.
func StyledHelpPrinter(description string) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(TitleStyle.Render(ctx.Model.Name))
		sb.WriteString("\n")
		sb.WriteString(helpDescStyle.Render(description))
		sb.WriteString("\n")

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		fmt.Fprintf(&sb, "\n  %s\n", ctx.Model.Summary())

		if args := ctx.Model.Node.Positional; len(args) > 0 {
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range args {
				fmt.Fprintf(&sb, "  %s  %s\n", helpFlagStyle.Render(arg.Summary()), arg.Help)
			}
		}

		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, line := range flagLines(ctx.Model.Node.Flags) {
			sb.WriteString("  ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}

		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

func flagLines(flags []*kong.Flag) []string {
	lines := []string{helpFlagStyle.Render("-h, --help") + "  Show this help."}

	for _, f := range flags {
		if f.Name == "help" || f.Hidden {
			continue
		}

		name := "--" + f.Name
		if f.Short != 0 {
			name = fmt.Sprintf("-%c, %s", f.Short, name)
		}
		if !f.IsBool() {
			name += "=" + strings.ToUpper(f.FormatPlaceHolder())
		}

		line := helpFlagStyle.Render(name) + "  " + f.Help
		if f.HasDefault {
			line += " " + helpDefaultStyle.Render("(default: "+f.Default+")")
		}
		lines = append(lines, line)
	}

	return lines
}
