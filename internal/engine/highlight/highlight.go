// Package highlight applies presentation-only styling to a cleaned log.
// It changes how text looks, never what it says: stripping the ANSI codes
// from the output yields the input byte for byte.
package highlight

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	countStyle   = lipgloss.NewStyle().Bold(true)
)

var (
	headingPattern = regexp.MustCompile(`^(?:Main Problem|What Happened|Key Code Locations|Suggested Actions):$`)
	errorPattern   = regexp.MustCompile(`(?i)\b(?:ERROR|FATAL|CRITICAL|PANIC)\b|(?:Exception|Error)\b|Caused by:`)
	warnPattern    = regexp.MustCompile(`(?i)\bWARN(?:ING)?\b`)
	okPattern      = regexp.MustCompile(`(?i)\bSUCCESS\b|\bOK\b|\bcompleted\b`)
	debugPattern   = regexp.MustCompile(`(?i)\b(?:DEBUG|TRACE)\b`)
	countPattern   = regexp.MustCompile(`\(x\d+\)$`)
)

// Apply styles text line by line. The mapping is purely cosmetic and safe
// on any input; unrecognized lines pass through untouched.
func Apply(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = styleLine(line)
	}
	return strings.Join(lines, "\n")
}

func styleLine(line string) string {
	// Dedup count markers stay readable inside any line style.
	if loc := countPattern.FindStringIndex(line); loc != nil {
		line = line[:loc[0]] + countStyle.Render(line[loc[0]:loc[1]])
	}

	switch {
	case headingPattern.MatchString(line):
		return headingStyle.Render(line)
	case errorPattern.MatchString(line):
		return errorStyle.Render(line)
	case warnPattern.MatchString(line):
		return warnStyle.Render(line)
	case okPattern.MatchString(line):
		return okStyle.Render(line)
	case debugPattern.MatchString(line):
		return dimStyle.Render(line)
	default:
		return line
	}
}
