package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/law-makers/results/internal/ui"
	"github.com/spf13/cobra"
)

const (
	helpWidth    = 80
	minFlagWidth = 28
)

// writeHelp renders help for cmd. The short form used for usage errors
// omits the description, examples and inherited flags.
func writeHelp(w io.Writer, cmd *cobra.Command, full bool) {
	if full {
		fmt.Fprintf(w, "\n%s\n", ui.Heading(strings.ToUpper(cmd.Name())))
		if cmd.Short != "" {
			fmt.Fprintln(w, cmd.Short)
		}
		if cmd.Long != "" && cmd.Long != cmd.Short {
			fmt.Fprintf(w, "\n%s\n", wrapText(cmd.Long, helpWidth))
		}
	}

	fmt.Fprintf(w, "\n%s\n", ui.Heading("Usage"))
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", ui.Accent(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s %s %s\n", ui.Accent(cmd.CommandPath()), ui.Warn("<command>"), ui.Dim("[flags]"))
	}

	if full && cmd.HasExample() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Examples"))
		writeExamples(w, cmd.Example)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Commands"))
		writeCommands(w, cmd)
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Flags"))
		writeFlags(w, cmd.LocalFlags().FlagUsages())
	}
	if full && cmd.HasAvailableInheritedFlags() {
		fmt.Fprintf(w, "\n%s\n", ui.Heading("Global Flags"))
		writeFlags(w, cmd.InheritedFlags().FlagUsages())
	}

	hint := cmd.CommandPath()
	if cmd.HasAvailableSubCommands() {
		hint += " <command>"
	}
	fmt.Fprintf(w, "\n%s\n\n", ui.Dim(fmt.Sprintf("Use %q for more information.", hint+" --help")))
}

// writeExamples prints "#" lines as dim comments and the rest as shell commands
func writeExamples(w io.Writer, example string) {
	afterCommand := false
	for _, line := range strings.Split(example, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "#"):
			if afterCommand {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s\n", ui.Dim(line))
			afterCommand = false
		default:
			fmt.Fprintf(w, "  %s\n", ui.Success("$ "+line))
			afterCommand = true
		}
	}
}

func writeCommands(w io.Writer, cmd *cobra.Command) {
	var cmds []*cobra.Command
	width := 0
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || c.Name() == "help" {
			continue
		}
		cmds = append(cmds, c)
		width = max(width, len(c.Name()))
	}
	for _, c := range cmds {
		pad := strings.Repeat(" ", width-len(c.Name())+2)
		fmt.Fprintf(w, "  %s%s%s\n", ui.Accent(c.Name()), pad, ui.Dim(c.Short))
	}
}

// writeFlags re-aligns pflag's usage block: the flag column is padded to a
// common width and continuation lines are indented under the description.
func writeFlags(w io.Writer, usages string) {
	lines := strings.Split(usages, "\n")

	width := minFlagWidth
	for _, line := range lines {
		if name, _, ok := splitFlagLine(line); ok {
			width = max(width, len(name))
		}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, desc, ok := splitFlagLine(line)
		if !ok {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", width+4), ui.Dim(strings.TrimSpace(line)))
			continue
		}
		if desc == "" {
			fmt.Fprintf(w, "  %s\n", ui.Success(name))
			continue
		}
		fmt.Fprintf(w, "  %s%s%s\n", ui.Success(name), strings.Repeat(" ", width-len(name)+2), ui.Dim(desc))
	}
}

func splitFlagLine(line string) (name, desc string, ok bool) {
	trimmed := strings.TrimLeft(line, " ")
	if !strings.HasPrefix(trimmed, "-") {
		return "", "", false
	}
	name, desc, _ = strings.Cut(trimmed, "  ")
	return strings.TrimSpace(name), strings.TrimSpace(desc), true
}

// wrapText wraps text at width, keeping paragraphs, explicit line breaks
// and list items intact.
func wrapText(text string, width int) string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		var out []string
		for _, line := range strings.Split(para, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "POST ") || strings.HasPrefix(line, "GET ") {
				out = append(out, "  "+line)
				continue
			}
			out = append(out, wrapLine(line, width)...)
		}
		if len(out) > 0 {
			paragraphs = append(paragraphs, strings.Join(out, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

func wrapLine(line string, width int) []string {
	var out []string
	var cur strings.Builder
	for _, word := range strings.Fields(line) {
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			out = append(out, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
