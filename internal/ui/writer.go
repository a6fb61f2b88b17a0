package ui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/kvit-s/patchtool/internal/tools"
)

// Color definitions for consistent UI
var (
	// Green for success lines
	successColor = color.New(color.FgGreen)

	// Red for errors
	errorColor = color.New(color.FgRed)

	// Yellow for warnings and the preview banner
	warnColor = color.New(color.FgYellow)
)

// Styles for preview group rendering
var (
	groupHeaderStyle = lipgloss.NewStyle().Bold(true)
	beforeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	afterStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	truncatedStyle   = lipgloss.NewStyle().Faint(true)
)

// Writer provides formatted output for tool results.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// PrintResult renders a tool result. Raw string results are printed line by
// line with SUCCESS/FAILED coloring; structured results are printed as
// indented JSON. Returns false when the result reports a failure.
func (w *Writer) PrintResult(result any) bool {
	switch v := result.(type) {
	case string:
		ok := true
		for _, line := range strings.Split(v, "\n") {
			switch {
			case strings.HasPrefix(line, "SUCCESS"):
				successColor.Fprintln(w.out, line)
			case strings.HasPrefix(line, "FAILED"):
				errorColor.Fprintln(w.out, line)
				ok = false
			case strings.HasPrefix(line, "PREVIEW"):
				warnColor.Fprintln(w.out, line)
			default:
				fmt.Fprintln(w.out, line)
			}
		}
		return ok
	case map[string]any:
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fmt.Fprintf(w.out, "%v\n", v)
		} else {
			fmt.Fprintln(w.out, string(jsonBytes))
		}
		return v["status"] == "SUCCESS"
	default:
		fmt.Fprintf(w.out, "%v\n", v)
		return true
	}
}

// RenderPreviewGroups renders change groups as styled before/after blocks
// for the interactive confirm flow.
func RenderPreviewGroups(groups []tools.PreviewGroup, total int) string {
	var sb strings.Builder
	for _, g := range groups {
		header := fmt.Sprintf("lines %d-%d", g.StartLine, g.EndLine)
		if g.StartLine == g.EndLine {
			header = fmt.Sprintf("line %d", g.StartLine)
		}
		sb.WriteString(groupHeaderStyle.Render(header))
		sb.WriteString("\n")
		for _, line := range strings.Split(g.Before, "\n") {
			sb.WriteString(beforeStyle.Render("- " + line))
			sb.WriteString("\n")
		}
		for _, line := range strings.Split(g.After, "\n") {
			sb.WriteString(afterStyle.Render("+ " + line))
			sb.WriteString("\n")
		}
	}
	if hidden := total - len(groups); hidden > 0 {
		sb.WriteString(truncatedStyle.Render(fmt.Sprintf("... %d more change group(s) not shown", hidden)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Confirm prompts for a y/N answer on in and returns the choice.
// Anything other than y/yes counts as no.
func Confirm(prompt string, in io.Reader, out io.Writer) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
